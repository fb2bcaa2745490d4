package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/kontorhq/kontor-api/internal/domain/accounting"
	"github.com/kontorhq/kontor-api/internal/domain/repository"
	"github.com/kontorhq/kontor-api/internal/logger"
	"github.com/kontorhq/kontor-api/pkg/apperror"
	"github.com/kontorhq/kontor-api/pkg/money"
)

// IncomeBreakdown splits a month's revenue by EÜR category and VAT rate.
type IncomeBreakdown struct {
	Total      decimal.Decimal            `json:"total"`
	ByCategory map[string]decimal.Decimal `json:"by_category"`
	ByVatRate  map[int]decimal.Decimal    `json:"by_vat_rate"`
}

// ExpenseBreakdown splits a month's deductible expenses by category and EÜR
// line. Amounts are the deductible share, not the raw booked net.
type ExpenseBreakdown struct {
	Total      decimal.Decimal            `json:"total"`
	ByCategory map[string]decimal.Decimal `json:"by_category"`
	ByEuerLine map[int]decimal.Decimal    `json:"by_euer_line"`
}

// MonthlyAggregate is one BWA month. It is recomputed from the ledger on
// every request and never persisted.
type MonthlyAggregate struct {
	Year         int              `json:"year"`
	Month        int              `json:"month"`
	Income       IncomeBreakdown  `json:"income"`
	Expenses     ExpenseBreakdown `json:"expenses"`
	Profit       decimal.Decimal  `json:"profit"`
	VatLiability decimal.Decimal  `json:"vat_liability"`
}

// BWAReport is the full-year view: twelve monthly aggregates plus totals.
type BWAReport struct {
	Year                int                `json:"year"`
	Months              []MonthlyAggregate `json:"months"`
	TotalIncome         decimal.Decimal    `json:"total_income"`
	TotalExpenses       decimal.Decimal    `json:"total_expenses"`
	TotalProfit         decimal.Decimal    `json:"total_profit"`
	TotalVatLiability   decimal.Decimal    `json:"total_vat_liability"`
	ProfitMarginPercent decimal.Decimal    `json:"profit_margin_percent"`
}

// BwaService computes the monthly management P&L from the ledger.
type BwaService struct {
	incomeRepo  repository.IncomeRepository
	expenseRepo repository.ExpenseRepository
	log         zerolog.Logger
}

// NewBwaService creates a new BWA service
func NewBwaService(incomeRepo repository.IncomeRepository, expenseRepo repository.ExpenseRepository) *BwaService {
	return &BwaService{
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		log:         logger.WithComponent("bwa"),
	}
}

// GenerateMonthlyAggregate aggregates all non-deleted ledger rows of one
// calendar month. Expense amounts enter the totals at their deductible
// share, and every running sum is rounded after each addition.
func (s *BwaService) GenerateMonthlyAggregate(ctx context.Context, year, month int) (*MonthlyAggregate, error) {
	if month < 1 || month > 12 {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("invalid month: %d", month))
	}

	start, end := monthRange(year, month)

	incomes, err := s.incomeRepo.FindInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.FindInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	agg := &MonthlyAggregate{
		Year:  year,
		Month: month,
		Income: IncomeBreakdown{
			ByCategory: make(map[string]decimal.Decimal),
			ByVatRate:  make(map[int]decimal.Decimal),
		},
		Expenses: ExpenseBreakdown{
			ByCategory: make(map[string]decimal.Decimal),
			ByEuerLine: make(map[int]decimal.Decimal),
		},
	}

	outputTax := decimal.Zero
	inputTax := decimal.Zero

	for _, row := range incomes {
		agg.Income.Total = money.Add2(agg.Income.Total, row.NetAmount)
		agg.Income.ByCategory[row.EuerCategory] = money.Add2(agg.Income.ByCategory[row.EuerCategory], row.NetAmount)
		agg.Income.ByVatRate[int(row.VatRate)] = money.Add2(agg.Income.ByVatRate[int(row.VatRate)], row.NetAmount)
		outputTax = money.Add2(outputTax, row.VatAmount)
	}

	for _, row := range expenses {
		net := row.DeductibleNet()
		agg.Expenses.Total = money.Add2(agg.Expenses.Total, net)
		agg.Expenses.ByCategory[row.Category] = money.Add2(agg.Expenses.ByCategory[row.Category], net)
		agg.Expenses.ByEuerLine[row.EuerLine] = money.Add2(agg.Expenses.ByEuerLine[row.EuerLine], net)

		if accounting.VorsteuerEligible(row.Category) {
			inputTax = money.Add2(inputTax, money.ApplyPercent(row.VatAmount, row.DeductiblePercent))
		}
	}

	agg.Profit = money.Round2(agg.Income.Total.Sub(agg.Expenses.Total))
	agg.VatLiability = money.Round2(outputTax.Sub(inputTax))

	return agg, nil
}

// GenerateBWA builds the yearly report by aggregating all twelve months.
func (s *BwaService) GenerateBWA(ctx context.Context, year int) (*BWAReport, error) {
	report := &BWAReport{
		Year:   year,
		Months: make([]MonthlyAggregate, 0, 12),
	}

	for month := 1; month <= 12; month++ {
		agg, err := s.GenerateMonthlyAggregate(ctx, year, month)
		if err != nil {
			return nil, err
		}
		report.Months = append(report.Months, *agg)
		report.TotalIncome = money.Add2(report.TotalIncome, agg.Income.Total)
		report.TotalExpenses = money.Add2(report.TotalExpenses, agg.Expenses.Total)
		report.TotalProfit = money.Add2(report.TotalProfit, agg.Profit)
		report.TotalVatLiability = money.Add2(report.TotalVatLiability, agg.VatLiability)
	}

	report.ProfitMarginPercent = profitMarginPercent(report.TotalIncome, report.TotalProfit)

	s.log.Debug().Int("year", year).
		Str("income", report.TotalIncome.StringFixed(2)).
		Str("profit", report.TotalProfit.StringFixed(2)).
		Msg("yearly report generated")

	return report, nil
}

// profitMarginPercent is round2(100*profit/income), defined as 0 when there
// is no income.
func profitMarginPercent(income, profit decimal.Decimal) decimal.Decimal {
	if income.IsZero() {
		return decimal.Zero
	}
	return money.Round2(profit.Mul(decimal.NewFromInt(100)).Div(income))
}

var germanMonths = [...]string{
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

// ExportXLSX renders the yearly report as a spreadsheet: one overview sheet
// with a row per month plus totals, and a categories sheet with the yearly
// sums per income and expense category.
func (s *BwaService) ExportXLSX(ctx context.Context, year int) ([]byte, string, error) {
	report, err := s.GenerateBWA(ctx, year)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	overview := "BWA"
	f.SetSheetName(f.GetSheetName(0), overview)

	headers := []string{"Monat", "Einnahmen", "Ausgaben", "Gewinn", "USt-Zahllast"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(overview, cell, h)
	}

	for i, m := range report.Months {
		row := i + 2
		f.SetCellValue(overview, fmt.Sprintf("A%d", row), germanMonths[m.Month-1])
		setAmountCell(f, overview, "B", row, m.Income.Total)
		setAmountCell(f, overview, "C", row, m.Expenses.Total)
		setAmountCell(f, overview, "D", row, m.Profit)
		setAmountCell(f, overview, "E", row, m.VatLiability)
	}

	totalRow := len(report.Months) + 2
	f.SetCellValue(overview, fmt.Sprintf("A%d", totalRow), "Gesamt")
	setAmountCell(f, overview, "B", totalRow, report.TotalIncome)
	setAmountCell(f, overview, "C", totalRow, report.TotalExpenses)
	setAmountCell(f, overview, "D", totalRow, report.TotalProfit)
	setAmountCell(f, overview, "E", totalRow, report.TotalVatLiability)
	f.SetCellValue(overview, fmt.Sprintf("A%d", totalRow+1), "Umsatzrendite %")
	setAmountCell(f, overview, "B", totalRow+1, report.ProfitMarginPercent)

	categories, err := f.NewSheet("Kategorien")
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(categories)
	writeCategorySheet(f, "Kategorien", report)
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("BWA_%d.xlsx", year)
	return buf.Bytes(), filename, nil
}

func setAmountCell(f *excelize.File, sheet, col string, row int, amount decimal.Decimal) {
	v, _ := amount.Float64()
	f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
}

func writeCategorySheet(f *excelize.File, sheet string, report *BWAReport) {
	incomeTotals := make(map[string]decimal.Decimal)
	expenseTotals := make(map[string]decimal.Decimal)
	for _, m := range report.Months {
		for cat, amount := range m.Income.ByCategory {
			incomeTotals[cat] = money.Add2(incomeTotals[cat], amount)
		}
		for cat, amount := range m.Expenses.ByCategory {
			expenseTotals[cat] = money.Add2(expenseTotals[cat], amount)
		}
	}

	f.SetCellValue(sheet, "A1", "Einnahmen nach Kategorie")
	row := 2
	for _, cat := range sortedKeys(incomeTotals) {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), cat)
		setAmountCell(f, sheet, "B", row, incomeTotals[cat])
		row++
	}

	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Ausgaben nach Kategorie")
	row++
	for _, cat := range sortedKeys(expenseTotals) {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), cat)
		setAmountCell(f, sheet, "B", row, expenseTotals[cat])
		row++
	}
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
