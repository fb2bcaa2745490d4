package service

import (
	"context"
	"encoding/xml"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kontorhq/kontor-api/internal/domain/repository"
	"github.com/kontorhq/kontor-api/internal/logger"
	"github.com/kontorhq/kontor-api/pkg/apperror"
	"github.com/kontorhq/kontor-api/pkg/money"
)

// ZmEntry is one reverse-charge summary line: total net revenue per EU
// client VAT-ID and country.
type ZmEntry struct {
	VatID       string          `json:"vat_id"`
	CountryCode string          `json:"country_code"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// ZmResult is the Zusammenfassende Meldung of one quarter.
type ZmResult struct {
	Year    int       `json:"year"`
	Quarter int       `json:"quarter"`
	Entries []ZmEntry `json:"entries"`
}

// ZmService aggregates zero-VAT income by EU business client.
type ZmService struct {
	incomeRepo   repository.IncomeRepository
	clientRepo   repository.ClientRepository
	settingsRepo repository.SettingsRepository
	log          zerolog.Logger
}

// NewZmService creates a new ZM service
func NewZmService(
	incomeRepo repository.IncomeRepository,
	clientRepo repository.ClientRepository,
	settingsRepo repository.SettingsRepository,
) *ZmService {
	return &ZmService{
		incomeRepo:   incomeRepo,
		clientRepo:   clientRepo,
		settingsRepo: settingsRepo,
		log:          logger.WithComponent("zm"),
	}
}

// Calculate joins the quarter's income rows to their clients and groups the
// net amounts by (vatId, countryCode). Only EU business clients outside the
// home country are reported; the amounts are summed as booked, since
// reverse-charge sales carry no VAT by construction.
func (s *ZmService) Calculate(ctx context.Context, year, quarter int) (*ZmResult, error) {
	if quarter < 1 || quarter > 4 {
		return nil, apperror.NewBadRequestError("quarter must be between 1 and 4")
	}

	homeCountry := "DE"
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings != nil && settings.HomeCountry != "" {
		homeCountry = settings.HomeCountry
	}

	start, end := quarterRange(year, quarter)
	incomes, err := s.incomeRepo.FindInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	clientIDs := make([]uuid.UUID, 0, len(incomes))
	for _, row := range incomes {
		if row.ClientID != nil {
			clientIDs = append(clientIDs, *row.ClientID)
		}
	}
	clients, err := s.clientRepo.GetByIDs(ctx, clientIDs)
	if err != nil {
		return nil, err
	}

	type groupKey struct {
		vatID   string
		country string
	}
	totals := make(map[groupKey]decimal.Decimal)

	for _, row := range incomes {
		if row.ClientID == nil {
			continue
		}
		client, ok := clients[*row.ClientID]
		if !ok || !client.IsEuBusiness || client.CountryCode == homeCountry {
			continue
		}
		key := groupKey{vatID: client.VatID, country: client.CountryCode}
		totals[key] = money.Add2(totals[key], row.NetAmount)
	}

	result := &ZmResult{Year: year, Quarter: quarter, Entries: make([]ZmEntry, 0, len(totals))}
	for key, total := range totals {
		result.Entries = append(result.Entries, ZmEntry{
			VatID:       key.vatID,
			CountryCode: key.country,
			TotalAmount: total,
		})
	}
	sort.Slice(result.Entries, func(i, j int) bool {
		if result.Entries[i].CountryCode != result.Entries[j].CountryCode {
			return result.Entries[i].CountryCode < result.Entries[j].CountryCode
		}
		return result.Entries[i].VatID < result.Entries[j].VatID
	})

	s.log.Debug().Int("year", year).Int("quarter", quarter).
		Int("entries", len(result.Entries)).Msg("zm calculated")

	return result, nil
}

type zmMeldungXML struct {
	UStIdNr string `xml:"UStIdNr"`
	Land    string `xml:"Land"`
	Betrag  string `xml:"Betrag"`
}

type zmXML struct {
	XMLName  xml.Name       `xml:"Erklaerung"`
	DatenArt string         `xml:"DatenArt"`
	Jahr     int            `xml:"Jahr"`
	Quartal  int            `xml:"quartal,attr"`
	Meldung  []zmMeldungXML `xml:"Meldung"`
}

// BuildXML serializes the quarterly summary: one Meldung element per
// (vatId, country) group with a two-decimal Betrag.
func (s *ZmService) BuildXML(result *ZmResult) (string, error) {
	doc := zmXML{
		DatenArt: "ZM",
		Jahr:     result.Year,
		Quartal:  result.Quarter,
		Meldung:  make([]zmMeldungXML, 0, len(result.Entries)),
	}
	for _, e := range result.Entries {
		doc.Meldung = append(doc.Meldung, zmMeldungXML{
			UStIdNr: e.VatID,
			Land:    e.CountryCode,
			Betrag:  e.TotalAmount.StringFixed(2),
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return xml.Header + string(out) + "\n", nil
}
