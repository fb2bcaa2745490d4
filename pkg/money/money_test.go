package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestVatAmount(t *testing.T) {
	tests := []struct {
		net  string
		rate int
		want string
	}{
		{"100.00", 19, "19.00"},
		{"100.00", 7, "7.00"},
		{"100.00", 0, "0.00"},
		{"33.33", 19, "6.33"},   // 6.3327 rounds down
		{"33.34", 19, "6.33"},   // 6.3346 rounds down
		{"0.13", 19, "0.02"},    // 0.0247
		{"10.50", 7, "0.74"},    // 0.735 rounds half-up
		{"1234.56", 19, "234.57"},
	}
	for _, tt := range tests {
		got := VatAmount(dec(tt.net), tt.rate)
		assert.Equal(t, tt.want, got.StringFixed(2), "VatAmount(%s, %d)", tt.net, tt.rate)
	}
}

func TestGrossDerivation(t *testing.T) {
	net := dec("1234.56")
	vat := VatAmount(net, 19)
	assert.Equal(t, "234.57", vat.StringFixed(2))
	assert.Equal(t, "1469.13", Gross(net, vat).StringFixed(2))
}

func TestAdd2RoundsEachStep(t *testing.T) {
	// Summing pre-rounded line amounts must match the running total, not a
	// single rounding at the end of the loop.
	total := decimal.Zero
	for i := 0; i < 100; i++ {
		total = Add2(total, dec("0.105"))
	}
	// Each 0.105 rounds to 0.11 on accumulation.
	assert.Equal(t, "11.00", total.StringFixed(2))
}

func TestApplyPercent(t *testing.T) {
	assert.Equal(t, "83.30", ApplyPercent(dec("119.00"), 70).StringFixed(2))
	assert.Equal(t, "100.00", ApplyPercent(dec("100.00"), 100).StringFixed(2))
	assert.Equal(t, "0.00", ApplyPercent(dec("100.00"), 0).StringFixed(2))
}

func TestFormatGerman(t *testing.T) {
	assert.Equal(t, "1469,13", FormatGerman(dec("1469.13")))
	assert.Equal(t, "0,00", FormatGerman(decimal.Zero))
	assert.Equal(t, "-12,50", FormatGerman(dec("-12.5")))
}
