package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds a currency value half-up to two decimal places. Every
// derived amount is rounded through this function immediately after the
// arithmetic step that produced it; unrounded intermediates never cross a
// report boundary.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Add2 adds amounts to a running total, rounding after each addition so that
// long summations stay reproducible instead of drifting with float error.
func Add2(total decimal.Decimal, amounts ...decimal.Decimal) decimal.Decimal {
	for _, a := range amounts {
		total = Round2(total.Add(a))
	}
	return total
}

// VatAmount derives the VAT for a net amount at an integer percent rate:
// round2(net * rate / 100).
func VatAmount(net decimal.Decimal, vatRate int) decimal.Decimal {
	return Round2(net.Mul(decimal.NewFromInt(int64(vatRate))).Div(decimal.NewFromInt(100)))
}

// Gross derives the gross amount from net and its (already derived) VAT.
func Gross(net, vat decimal.Decimal) decimal.Decimal {
	return Round2(net.Add(vat))
}

// ApplyPercent scales an amount by an integer percentage (e.g. the
// deductible share of an expense) and rounds to two places.
func ApplyPercent(amount decimal.Decimal, percent int) decimal.Decimal {
	return Round2(amount.Mul(decimal.NewFromInt(int64(percent))).Div(decimal.NewFromInt(100)))
}

// FormatGerman renders an amount with two decimals and a comma decimal
// separator, the format DATEV expects in its Umsatz column.
func FormatGerman(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}
