package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontorhq/kontor-api/internal/domain/entity"
	"github.com/kontorhq/kontor-api/internal/domain/enum"
	"github.com/kontorhq/kontor-api/pkg/apperror"
)

func newUstVaFixture() (*UstVaService, *fakeIncomeRepo, *fakeExpenseRepo, *fakeSettingsRepo) {
	incomeRepo := newFakeIncomeRepo()
	expenseRepo := newFakeExpenseRepo()
	settingsRepo := &fakeSettingsRepo{}
	return NewUstVaService(incomeRepo, expenseRepo, settingsRepo), incomeRepo, expenseRepo, settingsRepo
}

func addIncome(t *testing.T, repo *fakeIncomeRepo, date time.Time, net string, rate enum.VatRate, category string) *entity.IncomeEntry {
	t.Helper()
	entry := &entity.IncomeEntry{
		Date:         date,
		Description:  "test income",
		NetAmount:    d(net),
		VatRate:      rate,
		EuerCategory: category,
	}
	entry.Normalize()
	require.NoError(t, repo.Create(context.Background(), entry))
	return entry
}

func addExpense(t *testing.T, repo *fakeExpenseRepo, date time.Time, net string, rate enum.VatRate, category string, deductible int) *entity.ExpenseEntry {
	t.Helper()
	entry := &entity.ExpenseEntry{
		Date:              date,
		Description:       "test expense",
		Vendor:            "Test Vendor",
		NetAmount:         d(net),
		VatRate:           rate,
		Category:          category,
		EuerLine:          52,
		DeductiblePercent: deductible,
		PaymentMethod:     enum.PaymentMethodBank,
	}
	entry.Normalize()
	require.NoError(t, repo.Create(context.Background(), entry))
	return entry
}

func TestUstVaCalculate_Quarter(t *testing.T) {
	svc, incomeRepo, expenseRepo, _ := newUstVaFixture()
	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	addIncome(t, incomeRepo, jan, "5000.00", enum.VatRateStandard, "services")
	addIncome(t, incomeRepo, feb, "3000.00", enum.VatRateStandard, "services")
	addIncome(t, incomeRepo, mar, "1000.00", enum.VatRateReduced, "goods")
	addExpense(t, expenseRepo, jan, "500.00", enum.VatRateStandard, "software", 100)
	addExpense(t, expenseRepo, feb, "200.00", enum.VatRateStandard, "software", 100)

	result, err := svc.Calculate(context.Background(), 2024, "Q1", enum.PeriodQuarterly)
	require.NoError(t, err)

	assert.True(t, result.Kz81.Equal(d("8000.00")), "kz81 = %s", result.Kz81)
	assert.True(t, result.Kz86.Equal(d("1000.00")), "kz86 = %s", result.Kz86)
	assert.True(t, result.Kz36Tax.Equal(d("1520.00")), "kz36 = %s", result.Kz36Tax)
	assert.True(t, result.Kz35Tax.Equal(d("70.00")), "kz35 = %s", result.Kz35Tax)
	assert.True(t, result.Kz66.Equal(d("133.00")), "kz66 = %s", result.Kz66)
	assert.True(t, result.Kz83.Equal(d("1457.00")), "kz83 = %s", result.Kz83)
}

func TestUstVaCalculate_RefundPosition(t *testing.T) {
	svc, _, expenseRepo, _ := newUstVaFixture()
	date := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)

	addExpense(t, expenseRepo, date, "1000.00", enum.VatRateStandard, "equipment", 100)

	result, err := svc.Calculate(context.Background(), 2024, "04", enum.PeriodMonthly)
	require.NoError(t, err)

	assert.True(t, result.Kz66.Equal(d("190.00")))
	assert.True(t, result.Kz83.Equal(d("-190.00")), "refund position must stay negative, got %s", result.Kz83)
}

func TestUstVaCalculate_VorsteuerExclusion(t *testing.T) {
	svc, _, expenseRepo, _ := newUstVaFixture()
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	addExpense(t, expenseRepo, date, "300.00", enum.VatRateStandard, "insurance", 100)
	addExpense(t, expenseRepo, date, "100.00", enum.VatRateStandard, "software", 100)

	result, err := svc.Calculate(context.Background(), 2024, "01", enum.PeriodMonthly)
	require.NoError(t, err)

	// insurance VAT is not deductible; only the software row counts
	assert.True(t, result.Kz66.Equal(d("19.00")), "kz66 = %s", result.Kz66)
}

func TestUstVaCalculate_DeductiblePercentScalesInputTax(t *testing.T) {
	svc, _, expenseRepo, _ := newUstVaFixture()
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	addExpense(t, expenseRepo, date, "100.00", enum.VatRateStandard, "phone", 70)

	result, err := svc.Calculate(context.Background(), 2024, "01", enum.PeriodMonthly)
	require.NoError(t, err)

	assert.True(t, result.Kz66.Equal(d("13.30")), "kz66 = %s", result.Kz66)
}

func TestUstVaCalculate_ZeroRateOutsideBuckets(t *testing.T) {
	svc, incomeRepo, _, _ := newUstVaFixture()
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	addIncome(t, incomeRepo, date, "2500.00", enum.VatRateZero, "eu_services")

	result, err := svc.Calculate(context.Background(), 2024, "Q1", enum.PeriodQuarterly)
	require.NoError(t, err)

	assert.True(t, result.Kz81.IsZero())
	assert.True(t, result.Kz86.IsZero())
	assert.True(t, result.Kz83.IsZero())
}

func TestUstVaCalculate_PeriodParsing(t *testing.T) {
	svc, incomeRepo, _, _ := newUstVaFixture()
	addIncome(t, incomeRepo, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), "100.00", enum.VatRateStandard, "services")

	// lower-case quarter strings are accepted
	result, err := svc.Calculate(context.Background(), 2024, "q3", enum.PeriodQuarterly)
	require.NoError(t, err)
	assert.True(t, result.Kz81.Equal(d("100.00")))

	for _, bad := range []string{"Q5", "13", "00", "", "March", "Q"} {
		_, err := svc.Calculate(context.Background(), 2024, bad, enum.PeriodMonthly)
		if err == nil {
			_, err = svc.Calculate(context.Background(), 2024, bad, enum.PeriodQuarterly)
		}
		assert.Error(t, err, "period %q must be rejected", bad)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation), "period %q: wrong error kind", bad)
	}
}

func TestUstVaCalculate_ExcludesDeletedRows(t *testing.T) {
	svc, incomeRepo, _, _ := newUstVaFixture()
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	entry := addIncome(t, incomeRepo, date, "900.00", enum.VatRateStandard, "services")
	require.NoError(t, incomeRepo.SetDeleted(context.Background(), entry.ID, true))

	result, err := svc.Calculate(context.Background(), 2024, "01", enum.PeriodMonthly)
	require.NoError(t, err)
	assert.True(t, result.Kz81.IsZero())
}

func TestUstVaBuildXML(t *testing.T) {
	svc, incomeRepo, _, settingsRepo := newUstVaFixture()
	settingsRepo.settings = &entity.Settings{TaxNumber: "12/345/67890", HomeCountry: "DE"}
	addIncome(t, incomeRepo, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "100.00", enum.VatRateStandard, "services")

	result, err := svc.Calculate(context.Background(), 2024, "01", enum.PeriodMonthly)
	require.NoError(t, err)

	xmlOut, err := svc.BuildXML(context.Background(), result)
	require.NoError(t, err)

	assert.Contains(t, xmlOut, "<Erklaerung>")
	assert.Contains(t, xmlOut, "<DatenArt>UStVA</DatenArt>")
	assert.Contains(t, xmlOut, "<Steuernummer>12/345/67890</Steuernummer>")
	assert.Contains(t, xmlOut, "<Jahr>2024</Jahr>")
	assert.Contains(t, xmlOut, "<Kz81>100.00</Kz81>")
	assert.Contains(t, xmlOut, "<Kz86>0.00</Kz86>")
	assert.Contains(t, xmlOut, "<Kz66>0.00</Kz66>")
	assert.Contains(t, xmlOut, "<Kz83>19.00</Kz83>")
}

func TestUstVaBuildXML_NoSteuernummerWhenUnconfigured(t *testing.T) {
	svc, _, _, _ := newUstVaFixture()

	result, err := svc.Calculate(context.Background(), 2024, "02", enum.PeriodMonthly)
	require.NoError(t, err)

	xmlOut, err := svc.BuildXML(context.Background(), result)
	require.NoError(t, err)

	assert.NotContains(t, xmlOut, "<Steuernummer>")
	assert.Contains(t, xmlOut, "<Kz81>0.00</Kz81>")
}
