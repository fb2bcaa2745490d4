package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontorhq/kontor-api/internal/domain/entity"
	"github.com/kontorhq/kontor-api/internal/domain/enum"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func scheduleSum(entries []entity.DepreciationScheduleEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.DepreciationAmount)
	}
	return sum
}

func TestGenerateDepreciationSchedule_Linear(t *testing.T) {
	assetID := uuid.New()
	purchase := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	entries, err := GenerateDepreciationSchedule(assetID, purchase, d("3000.00"), 3, d("0.00"), enum.DepreciationLinear)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for i, e := range entries {
		assert.Equal(t, 2024+i, e.Year)
		assert.True(t, e.DepreciationAmount.Equal(d("1000.00")), "year %d amount %s", e.Year, e.DepreciationAmount)
	}
	assert.True(t, entries[2].BookValue.IsZero())
}

func TestGenerateDepreciationSchedule_FinalYearAbsorbsRounding(t *testing.T) {
	// 1000/3 rounds to 333.33; the final year must take 333.34 so the
	// schedule sums exactly to the depreciable amount.
	entries, err := GenerateDepreciationSchedule(uuid.New(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		d("1000.00"), 3, d("0.00"), enum.DepreciationLinear)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.True(t, entries[0].DepreciationAmount.Equal(d("333.33")))
	assert.True(t, entries[1].DepreciationAmount.Equal(d("333.33")))
	assert.True(t, entries[2].DepreciationAmount.Equal(d("333.34")))
	assert.True(t, scheduleSum(entries).Equal(d("1000.00")))
}

func TestGenerateDepreciationSchedule_SumInvariant(t *testing.T) {
	cases := []struct {
		name    string
		price   string
		salvage string
		years   int
		method  enum.DepreciationMethod
	}{
		{"linear no salvage", "999.99", "0", 7, enum.DepreciationLinear},
		{"linear with salvage", "12345.67", "345.67", 5, enum.DepreciationLinear},
		{"declining no salvage", "8000.00", "0", 5, enum.DepreciationDeclining},
		{"declining with salvage", "10000.00", "1000.00", 4, enum.DepreciationDeclining},
		{"single year", "450.50", "50.50", 1, enum.DepreciationLinear},
		{"long life odd cents", "1000.01", "0.01", 13, enum.DepreciationLinear},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entries, err := GenerateDepreciationSchedule(uuid.New(), time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
				d(tc.price), tc.years, d(tc.salvage), tc.method)
			require.NoError(t, err)
			require.Len(t, entries, tc.years)

			depreciable := d(tc.price).Sub(d(tc.salvage)).Round(2)
			assert.True(t, scheduleSum(entries).Equal(depreciable),
				"schedule sums to %s, want %s", scheduleSum(entries), depreciable)
			assert.True(t, entries[tc.years-1].BookValue.Equal(d(tc.salvage).Round(2)))
		})
	}
}

func TestGenerateDepreciationSchedule_BookValueNeverBelowSalvage(t *testing.T) {
	salvage := d("2000.00")
	entries, err := GenerateDepreciationSchedule(uuid.New(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		d("10000.00"), 5, salvage, enum.DepreciationDeclining)
	require.NoError(t, err)

	for _, e := range entries {
		assert.False(t, e.BookValue.LessThan(salvage),
			"year %d book value %s below salvage", e.Year, e.BookValue)
	}
}

func TestGenerateDepreciationSchedule_DecliningFrontLoads(t *testing.T) {
	// Double declining at 2/5 = 40% of opening book value.
	entries, err := GenerateDepreciationSchedule(uuid.New(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		d("10000.00"), 5, d("0.00"), enum.DepreciationDeclining)
	require.NoError(t, err)
	require.Len(t, entries, 5)

	assert.True(t, entries[0].DepreciationAmount.Equal(d("4000.00")))
	assert.True(t, entries[1].DepreciationAmount.Equal(d("2400.00")))
	assert.True(t, entries[2].DepreciationAmount.Equal(d("1440.00")))
	assert.True(t, entries[3].DepreciationAmount.Equal(d("864.00")))
	// Final year takes the remaining 1296 rather than 40% of book value.
	assert.True(t, entries[4].DepreciationAmount.Equal(d("1296.00")))
}

func TestGenerateDepreciationSchedule_Idempotent(t *testing.T) {
	assetID := uuid.New()
	purchase := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

	first, err := GenerateDepreciationSchedule(assetID, purchase, d("7777.77"), 6, d("77.77"), enum.DepreciationDeclining)
	require.NoError(t, err)
	second, err := GenerateDepreciationSchedule(assetID, purchase, d("7777.77"), 6, d("77.77"), enum.DepreciationDeclining)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Year, second[i].Year)
		assert.True(t, first[i].DepreciationAmount.Equal(second[i].DepreciationAmount))
		assert.True(t, first[i].AccumulatedDepreciation.Equal(second[i].AccumulatedDepreciation))
		assert.True(t, first[i].BookValue.Equal(second[i].BookValue))
	}
}

func TestGenerateDepreciationSchedule_InvalidInputs(t *testing.T) {
	purchase := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := GenerateDepreciationSchedule(uuid.New(), purchase, d("100"), 0, d("0"), enum.DepreciationLinear)
	assert.Error(t, err)

	_, err = GenerateDepreciationSchedule(uuid.New(), purchase, d("100"), 3, d("0"), enum.DepreciationMethod("sum_of_years"))
	assert.Error(t, err)

	_, err = GenerateDepreciationSchedule(uuid.New(), purchase, d("100"), 3, d("200"), enum.DepreciationLinear)
	assert.Error(t, err)

	_, err = GenerateDepreciationSchedule(uuid.New(), purchase, d("-100"), 3, d("0"), enum.DepreciationLinear)
	assert.Error(t, err)
}
