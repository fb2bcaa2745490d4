package service

import (
	"context"
	"encoding/xml"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kontorhq/kontor-api/internal/domain/accounting"
	"github.com/kontorhq/kontor-api/internal/domain/enum"
	"github.com/kontorhq/kontor-api/internal/domain/repository"
	"github.com/kontorhq/kontor-api/internal/logger"
	"github.com/kontorhq/kontor-api/pkg/money"
)

// UstVaResult holds the Voranmeldung box values of one period. Kz83 may be
// negative, a refund position, which is valid output.
type UstVaResult struct {
	Year       int             `json:"year"`
	Period     string          `json:"period"`
	PeriodType enum.PeriodType `json:"period_type"`
	Kz81       decimal.Decimal `json:"kz81"`
	Kz86       decimal.Decimal `json:"kz86"`
	Kz36Tax    decimal.Decimal `json:"kz36_tax"`
	Kz35Tax    decimal.Decimal `json:"kz35_tax"`
	Kz66       decimal.Decimal `json:"kz66"`
	Kz83       decimal.Decimal `json:"kz83"`
}

// UstVaService computes the periodic VAT return from the ledger and
// serializes it into the ELSTER transfer format.
type UstVaService struct {
	incomeRepo   repository.IncomeRepository
	expenseRepo  repository.ExpenseRepository
	settingsRepo repository.SettingsRepository
	log          zerolog.Logger
}

// NewUstVaService creates a new USt-VA service
func NewUstVaService(
	incomeRepo repository.IncomeRepository,
	expenseRepo repository.ExpenseRepository,
	settingsRepo repository.SettingsRepository,
) *UstVaService {
	return &UstVaService{
		incomeRepo:   incomeRepo,
		expenseRepo:  expenseRepo,
		settingsRepo: settingsRepo,
		log:          logger.WithComponent("ustva"),
	}
}

// Calculate buckets the period's income by VAT rate and accumulates the
// deductible input tax. Zero-rated income enters no box here; those sales
// are reported through the ZM instead.
func (s *UstVaService) Calculate(ctx context.Context, year int, period string, periodType enum.PeriodType) (*UstVaResult, error) {
	start, end, err := resolvePeriod(year, period, periodType)
	if err != nil {
		return nil, err
	}

	incomes, err := s.incomeRepo.FindInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.FindInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	result := &UstVaResult{
		Year:       year,
		Period:     period,
		PeriodType: periodType,
	}

	for _, row := range incomes {
		switch row.VatRate {
		case enum.VatRateStandard:
			result.Kz81 = money.Add2(result.Kz81, row.NetAmount)
		case enum.VatRateReduced:
			result.Kz86 = money.Add2(result.Kz86, row.NetAmount)
		}
	}
	result.Kz36Tax = money.VatAmount(result.Kz81, int(enum.VatRateStandard))
	result.Kz35Tax = money.VatAmount(result.Kz86, int(enum.VatRateReduced))

	for _, row := range expenses {
		if !accounting.VorsteuerEligible(row.Category) {
			continue
		}
		deductibleVat := money.ApplyPercent(money.VatAmount(row.NetAmount, int(row.VatRate)), row.DeductiblePercent)
		result.Kz66 = money.Add2(result.Kz66, deductibleVat)
	}

	result.Kz83 = money.Round2(money.Add2(result.Kz36Tax, result.Kz35Tax).Sub(result.Kz66))

	s.log.Debug().Int("year", year).Str("period", period).
		Str("kz83", result.Kz83.StringFixed(2)).
		Msg("ustva calculated")

	return result, nil
}

type ustVaXML struct {
	XMLName       xml.Name `xml:"Erklaerung"`
	DatenArt      string   `xml:"DatenArt"`
	Steuernummer  string   `xml:"Steuernummer,omitempty"`
	Jahr          int      `xml:"Jahr"`
	Zeitraum      string   `xml:"Zeitraum"`
	Kz81          string   `xml:"Kz81"`
	Kz86          string   `xml:"Kz86"`
	Kz36          string   `xml:"Kz36"`
	Kz35          string   `xml:"Kz35"`
	Kz66          string   `xml:"Kz66"`
	Kz83          string   `xml:"Kz83"`
}

// BuildXML serializes a calculated result into the ELSTER UStVA schema.
// The Steuernummer element appears only when configured in settings; all Kz
// elements are always present, zero or not.
func (s *UstVaService) BuildXML(ctx context.Context, result *UstVaResult) (string, error) {
	doc := ustVaXML{
		DatenArt: "UStVA",
		Jahr:     result.Year,
		Zeitraum: result.Period,
		Kz81:     result.Kz81.StringFixed(2),
		Kz86:     result.Kz86.StringFixed(2),
		Kz36:     result.Kz36Tax.StringFixed(2),
		Kz35:     result.Kz35Tax.StringFixed(2),
		Kz66:     result.Kz66.StringFixed(2),
		Kz83:     result.Kz83.StringFixed(2),
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return "", err
	}
	if settings != nil {
		doc.Steuernummer = settings.TaxNumber
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return xml.Header + string(out) + "\n", nil
}
