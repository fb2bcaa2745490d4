package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/kontorhq/kontor-api/internal/domain/accounting"
	"github.com/kontorhq/kontor-api/internal/domain/enum"
	"github.com/kontorhq/kontor-api/internal/domain/repository"
	"github.com/kontorhq/kontor-api/internal/logger"
	"github.com/kontorhq/kontor-api/pkg/apperror"
	"github.com/kontorhq/kontor-api/pkg/money"
)

const (
	datevDescriptionLimit = 60
	noRecordsWarning      = "No records found in the selected date range"
)

// DatevRecord is one booking line of an EXTF export.
type DatevRecord struct {
	Amount         decimal.Decimal `json:"amount"`
	DebitCredit    string          `json:"debit_credit"`
	Account        int             `json:"account"`
	CounterAccount int             `json:"counter_account"`
	VatCode        int             `json:"vat_code"`
	DocumentDate   string          `json:"document_date"`
	DocumentRef1   string          `json:"document_ref1"`
	Description    string          `json:"description"`
}

// DatevExportResult bundles the records with the assembled CSV. An empty
// date range produces a zero-record result with an advisory warning, never
// an error.
type DatevExportResult struct {
	Records     []DatevRecord `json:"records"`
	CSV         string        `json:"csv"`
	Filename    string        `json:"filename"`
	RecordCount int           `json:"record_count"`
	Warnings    []string      `json:"warnings"`
	Errors      []string      `json:"errors"`
}

// DatevExportOptions selects the export window and chart. Consultant and
// client numbers override the configured settings when set.
type DatevExportOptions struct {
	StartDate        time.Time
	EndDate          time.Time
	Chart            accounting.Chart
	ConsultantNumber string
	ClientNumber     string
}

// DatevService maps ledger rows and depreciation years into DATEV's EXTF
// CSV booking format.
type DatevService struct {
	incomeRepo   repository.IncomeRepository
	expenseRepo  repository.ExpenseRepository
	assetRepo    repository.AssetRepository
	settingsRepo repository.SettingsRepository
	log          zerolog.Logger
}

// NewDatevService creates a new DATEV export service
func NewDatevService(
	incomeRepo repository.IncomeRepository,
	expenseRepo repository.ExpenseRepository,
	assetRepo repository.AssetRepository,
	settingsRepo repository.SettingsRepository,
) *DatevService {
	return &DatevService{
		incomeRepo:   incomeRepo,
		expenseRepo:  expenseRepo,
		assetRepo:    assetRepo,
		settingsRepo: settingsRepo,
		log:          logger.WithComponent("datev"),
	}
}

// GenerateExport builds the booking records for the window, assembles the
// EXTF CSV, and names the file DATEV_{chart}_{start}_{end}.csv.
func (s *DatevService) GenerateExport(ctx context.Context, opts DatevExportOptions) (*DatevExportResult, error) {
	if !opts.Chart.Valid() {
		return nil, apperror.NewBadRequestError("unsupported chart of accounts: " + string(opts.Chart))
	}
	if opts.EndDate.Before(opts.StartDate) {
		return nil, apperror.NewBadRequestError("end date must not precede start date")
	}

	chart, err := accounting.ChartFor(opts.Chart)
	if err != nil {
		return nil, err
	}

	if opts.ConsultantNumber == "" || opts.ClientNumber == "" {
		settings, err := s.settingsRepo.Get(ctx)
		if err != nil {
			return nil, err
		}
		if settings != nil {
			if opts.ConsultantNumber == "" {
				opts.ConsultantNumber = settings.ConsultantNumber
			}
			if opts.ClientNumber == "" {
				opts.ClientNumber = settings.ClientNumber
			}
		}
	}

	records := make([]DatevRecord, 0)

	incomes, err := s.incomeRepo.FindInRange(ctx, opts.StartDate, opts.EndDate)
	if err != nil {
		return nil, err
	}
	for _, row := range incomes {
		account, err := chart.IncomeAccount(row.EuerCategory)
		if err != nil {
			return nil, err
		}
		counter, err := chart.CounterAccount(enum.PaymentMethodBank)
		if err != nil {
			return nil, err
		}
		vatCode, err := accounting.VatCodeForRate(row.VatRate)
		if err != nil {
			return nil, err
		}
		records = append(records, DatevRecord{
			Amount:         row.GrossAmount,
			DebitCredit:    "H",
			Account:        account,
			CounterAccount: counter,
			VatCode:        vatCode,
			DocumentDate:   row.Date.Format("0201"),
			DocumentRef1:   row.ID.String()[:8],
			Description:    truncateDescription(row.Description),
		})
	}

	expenses, err := s.expenseRepo.FindInRange(ctx, opts.StartDate, opts.EndDate)
	if err != nil {
		return nil, err
	}
	for _, row := range expenses {
		account, err := chart.ExpenseAccount(row.Category)
		if err != nil {
			return nil, err
		}
		counter, err := chart.CounterAccount(row.PaymentMethod)
		if err != nil {
			return nil, err
		}
		vatCode, err := accounting.VatCodeForRate(row.VatRate)
		if err != nil {
			return nil, err
		}
		records = append(records, DatevRecord{
			Amount:         row.DeductibleGross(),
			DebitCredit:    "S",
			Account:        account,
			CounterAccount: counter,
			VatCode:        vatCode,
			DocumentDate:   row.Date.Format("0201"),
			DocumentRef1:   row.ID.String()[:8],
			Description:    truncateDescription(row.Description),
		})
	}

	afaRecords, err := s.depreciationRecords(ctx, chart, opts.StartDate, opts.EndDate)
	if err != nil {
		return nil, err
	}
	records = append(records, afaRecords...)

	result := &DatevExportResult{
		Records:     records,
		RecordCount: len(records),
		Filename: fmt.Sprintf("DATEV_%s_%s_%s.csv",
			opts.Chart, opts.StartDate.Format("20060102"), opts.EndDate.Format("20060102")),
		Warnings: []string{},
		Errors:   []string{},
	}
	if len(records) == 0 {
		result.Warnings = append(result.Warnings, noRecordsWarning)
	}

	result.CSV = assembleCSV(records, opts.ConsultantNumber, opts.ClientNumber)

	s.log.Info().
		Str("chart", string(opts.Chart)).
		Int("records", result.RecordCount).
		Str("filename", result.Filename).
		Msg("datev export generated")

	return result, nil
}

// depreciationRecords emits one AfA debit per asset schedule year that falls
// inside the window. AfA carries no VAT, so the BU key is always 0, and the
// booking date is the year's closing day.
func (s *DatevService) depreciationRecords(ctx context.Context, chart *accounting.ChartOfAccounts, start, end time.Time) ([]DatevRecord, error) {
	records := make([]DatevRecord, 0)
	counter, err := chart.CounterAccount(enum.PaymentMethodBank)
	if err != nil {
		return nil, err
	}

	for year := start.Year(); year <= end.Year(); year++ {
		closing := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		if closing.Before(start) || closing.After(end) {
			continue
		}

		entries, err := s.assetRepo.SchedulesForYear(ctx, year)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			continue
		}

		assetIDs := make([]uuid.UUID, 0, len(entries))
		for _, e := range entries {
			assetIDs = append(assetIDs, e.AssetID)
		}
		assets, err := s.assetRepo.AssetsByIDs(ctx, assetIDs)
		if err != nil {
			return nil, err
		}

		for _, e := range entries {
			name := "Anlage"
			if asset, ok := assets[e.AssetID]; ok {
				name = asset.Name
			}
			records = append(records, DatevRecord{
				Amount:         e.DepreciationAmount,
				DebitCredit:    "S",
				Account:        chart.DepreciationAccount(),
				CounterAccount: counter,
				VatCode:        0,
				DocumentDate:   closing.Format("0201"),
				DocumentRef1:   e.AssetID.String()[:8],
				Description:    truncateDescription(fmt.Sprintf("AfA %d %s", year, name)),
			})
		}
	}
	return records, nil
}

// truncateDescription caps a booking text at 60 characters; longer texts are
// cut to 57 runes plus "...".
func truncateDescription(text string) string {
	runes := []rune(text)
	if len(runes) <= datevDescriptionLimit {
		return text
	}
	return string(runes[:datevDescriptionLimit-3]) + "..."
}

var datevColumns = []string{
	"Umsatz", "Soll/Haben-Kennzeichen", "Konto", "Gegenkonto", "BU-Schlüssel",
	"Belegdatum", "Belegfeld 1", "Buchungstext",
}

// assembleCSV builds the EXTF file: the format header line, the German
// column header line, then one semicolon-delimited row per record with
// comma-decimal amounts.
func assembleCSV(records []DatevRecord, consultantNumber, clientNumber string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf(`"EXTF";700;21;"Buchungsstapel";13;;;;;;"%s";"%s";;;;;;;;;;`,
		consultantNumber, clientNumber))
	b.WriteString("\n")
	b.WriteString(strings.Join(datevColumns, ";"))
	b.WriteString("\n")

	for _, r := range records {
		fields := []string{
			fmt.Sprintf(`"%s"`, money.FormatGerman(r.Amount)),
			fmt.Sprintf(`"%s"`, r.DebitCredit),
			fmt.Sprintf("%d", r.Account),
			fmt.Sprintf("%d", r.CounterAccount),
			fmt.Sprintf("%d", r.VatCode),
			r.DocumentDate,
			fmt.Sprintf(`"%s"`, r.DocumentRef1),
			fmt.Sprintf(`"%s"`, r.Description),
		}
		b.WriteString(strings.Join(fields, ";"))
		b.WriteString("\n")
	}
	return b.String()
}

// CSVBytes encodes the assembled CSV as Windows-1252, the charset DATEV
// imports expect. Characters outside the codepage are replaced.
func CSVBytes(csv string) ([]byte, error) {
	encoded, err := charmap.Windows1252.NewEncoder().String(csv)
	if err != nil {
		// fall back per rune so a single exotic character cannot sink the file
		var b strings.Builder
		enc := charmap.Windows1252.NewEncoder()
		for _, r := range csv {
			s, encErr := enc.String(string(r))
			if encErr != nil {
				b.WriteByte('?')
				continue
			}
			b.WriteString(s)
		}
		return []byte(b.String()), nil
	}
	return []byte(encoded), nil
}
