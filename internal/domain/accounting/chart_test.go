package accounting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontorhq/kontor-api/internal/domain/enum"
	"github.com/kontorhq/kontor-api/pkg/apperror"
)

func TestVatCodeForRate(t *testing.T) {
	tests := []struct {
		rate enum.VatRate
		want int
	}{
		{enum.VatRateZero, 0},
		{enum.VatRateReduced, 2},
		{enum.VatRateStandard, 3},
	}
	for _, tt := range tests {
		code, err := VatCodeForRate(tt.rate)
		require.NoError(t, err)
		assert.Equal(t, tt.want, code)
	}

	_, err := VatCodeForRate(enum.VatRate(16))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConfiguration))
}

func TestChartSKR03Lookups(t *testing.T) {
	chart, err := ChartFor(ChartSKR03)
	require.NoError(t, err)

	account, err := chart.IncomeAccount("services")
	require.NoError(t, err)
	assert.Equal(t, 8400, account)

	counter, err := chart.CounterAccount(enum.PaymentMethodBank)
	require.NoError(t, err)
	assert.Equal(t, 1200, counter)

	expense, err := chart.ExpenseAccount("software")
	require.NoError(t, err)
	assert.Equal(t, 4806, expense)

	assert.Equal(t, 4830, chart.DepreciationAccount())
}

func TestChartSKR04Lookups(t *testing.T) {
	chart, err := ChartFor(ChartSKR04)
	require.NoError(t, err)

	account, err := chart.IncomeAccount("services")
	require.NoError(t, err)
	assert.Equal(t, 4400, account)

	counter, err := chart.CounterAccount(enum.PaymentMethodBank)
	require.NoError(t, err)
	assert.Equal(t, 1800, counter)
}

func TestUnknownKeysFailWithConfigurationError(t *testing.T) {
	chart, err := ChartFor(ChartSKR03)
	require.NoError(t, err)

	_, err = chart.IncomeAccount("crypto_mining")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConfiguration))
	assert.Contains(t, err.Error(), "crypto_mining")

	_, err = chart.ExpenseAccount("yacht")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConfiguration))

	_, err = chart.CounterAccount(enum.PaymentMethod("crypto"))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConfiguration))
}

func TestChartForUnknown(t *testing.T) {
	_, err := ChartFor(Chart("SKR99"))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestVorsteuerEligibility(t *testing.T) {
	assert.False(t, VorsteuerEligible("insurance"))
	assert.False(t, VorsteuerEligible("bank_fees"))
	assert.True(t, VorsteuerEligible("software"))
	// unknown categories default to eligible
	assert.True(t, VorsteuerEligible("something_new"))
}

func TestDefaultEuerLine(t *testing.T) {
	assert.Equal(t, 47, DefaultEuerLine("rent"))
	assert.Equal(t, 60, DefaultEuerLine("unmapped_category"))
}
