package service

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kontorhq/kontor-api/internal/domain/enum"
	"github.com/kontorhq/kontor-api/internal/domain/repository"
	"github.com/kontorhq/kontor-api/internal/logger"
	"github.com/kontorhq/kontor-api/pkg/apperror"
)

// ScoringPolicy holds the duplicate-match weighting. The defaults are
// empirically chosen, not a hard contract, so they stay adjustable.
type ScoringPolicy struct {
	AmountWeight          float64
	DateWeight            float64
	PartnerWeight         float64
	PartnerMatchThreshold float64
	CandidateThreshold    float64
	CandidateWindowDays   int
}

// DefaultScoringPolicy returns the standard 0.4/0.3/0.3 weighting with a
// 0.6 acceptance threshold and a ±3 day candidate window.
func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		AmountWeight:          0.4,
		DateWeight:            0.3,
		PartnerWeight:         0.3,
		PartnerMatchThreshold: 0.6,
		CandidateThreshold:    0.6,
		CandidateWindowDays:   3,
	}
}

// DuplicateCandidate is a transient scoring result. Nothing is persisted
// until a user confirms via MarkDuplicate.
type DuplicateCandidate struct {
	EntryID           uuid.UUID       `json:"entry_id"`
	Date              time.Time       `json:"date"`
	NetAmount         decimal.Decimal `json:"net_amount"`
	Partner           string          `json:"partner"`
	Description       string          `json:"description"`
	Score             float64         `json:"score"`
	DateSimilarity    float64         `json:"date_similarity"`
	PartnerSimilarity float64         `json:"partner_similarity"`
}

// DuplicateService scores probable duplicate ledger entries before they
// pollute the aggregates.
type DuplicateService struct {
	incomeRepo  repository.IncomeRepository
	expenseRepo repository.ExpenseRepository
	policy      ScoringPolicy
	log         zerolog.Logger
}

// NewDuplicateService creates a new duplicate scorer with the given policy.
func NewDuplicateService(incomeRepo repository.IncomeRepository, expenseRepo repository.ExpenseRepository, policy ScoringPolicy) *DuplicateService {
	return &DuplicateService{
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		policy:      policy,
		log:         logger.WithComponent("duplicates"),
	}
}

// FindCandidates returns entries of the given type with the exact same net
// amount whose date and partner similarity push the composite score over
// the policy threshold, sorted by descending score.
func (s *DuplicateService) FindCandidates(
	ctx context.Context,
	entryType enum.EntryType,
	amount decimal.Decimal,
	date time.Time,
	partner string,
	excludeID *uuid.UUID,
) ([]DuplicateCandidate, error) {
	if !entryType.Valid() {
		return nil, apperror.NewBadRequestError("invalid entry type: " + string(entryType))
	}

	windowStart := date.AddDate(0, 0, -s.policy.CandidateWindowDays)
	windowEnd := date.AddDate(0, 0, s.policy.CandidateWindowDays)

	candidates := make([]DuplicateCandidate, 0)

	switch entryType {
	case enum.EntryIncome:
		rows, err := s.incomeRepo.FindByAmountNear(ctx, amount, windowStart, windowEnd, excludeID)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if c, ok := s.score(row.Date, row.NetAmount, row.Description, date, partner); ok {
				c.EntryID = row.ID
				c.Description = row.Description
				candidates = append(candidates, c)
			}
		}
	case enum.EntryExpense:
		rows, err := s.expenseRepo.FindByAmountNear(ctx, amount, windowStart, windowEnd, excludeID)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if c, ok := s.score(row.Date, row.NetAmount, row.Vendor, date, partner); ok {
				c.EntryID = row.ID
				c.Description = row.Description
				candidates = append(candidates, c)
			}
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return candidates, nil
}

// score computes the composite similarity against one candidate row. The
// amount component is always 1.0 because the candidate pool is filtered to
// exact amount matches.
func (s *DuplicateService) score(rowDate time.Time, rowAmount decimal.Decimal, rowPartner string, date time.Time, partner string) (DuplicateCandidate, bool) {
	dateSim := dateSimilarity(rowDate, date)
	if dateSim == 0 {
		return DuplicateCandidate{}, false
	}

	partnerSim := partnerSimilarity(rowPartner, partner)
	if partnerSim < s.policy.PartnerMatchThreshold {
		partnerSim = 0
	}

	composite := s.policy.AmountWeight + s.policy.DateWeight*dateSim + s.policy.PartnerWeight*partnerSim
	if composite < s.policy.CandidateThreshold {
		return DuplicateCandidate{}, false
	}

	return DuplicateCandidate{
		Date:              rowDate,
		NetAmount:         rowAmount,
		Partner:           rowPartner,
		Score:             composite,
		DateSimilarity:    dateSim,
		PartnerSimilarity: partnerSim,
	}, true
}

// dateSimilarity grades how close two booking dates are: full score inside
// a day, 0.8 inside two days, nothing beyond.
func dateSimilarity(a, b time.Time) float64 {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff < 24*time.Hour:
		return 1.0
	case diff <= 48*time.Hour:
		return 0.8
	}
	return 0
}

var (
	legalSuffixes      = regexp.MustCompile(`\b(gmbh & co\. kg|gmbh & co kg|gmbh|ug|ag|kg|ohg|gbr|e\.k\.|ev|e\.v\.|ltd|inc|llc|sarl|bv|sa)\b`)
	partnerPunctuation = regexp.MustCompile(`[.,;:!?'"()\-_/]+`)
	whitespaceRuns     = regexp.MustCompile(`\s+`)
)

// normalizePartner lowercases a partner name, strips legal-entity suffixes
// and punctuation, and collapses whitespace so that "Amazon GmbH" and
// "amazon" compare equal.
func normalizePartner(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = legalSuffixes.ReplaceAllString(n, " ")
	n = partnerPunctuation.ReplaceAllString(n, " ")
	n = whitespaceRuns.ReplaceAllString(n, " ")
	return strings.TrimSpace(n)
}

// partnerSimilarity is 1 - levenshtein/maxLen over the normalized names.
func partnerSimilarity(a, b string) float64 {
	na, nb := normalizePartner(a), normalizePartner(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}
	maxLen := len([]rune(na))
	if l := len([]rune(nb)); l > maxLen {
		maxLen = l
	}
	dist := levenshtein.ComputeDistance(na, nb)
	return 1 - float64(dist)/float64(maxLen)
}

// MarkDuplicate flags an entry as a confirmed duplicate of another. Only
// the two flag columns move; no new row is created.
func (s *DuplicateService) MarkDuplicate(ctx context.Context, entryType enum.EntryType, id, duplicateOfID uuid.UUID) error {
	return s.setDuplicate(ctx, entryType, id, true, &duplicateOfID)
}

// UnmarkDuplicate clears the duplicate flag and reference.
func (s *DuplicateService) UnmarkDuplicate(ctx context.Context, entryType enum.EntryType, id uuid.UUID) error {
	return s.setDuplicate(ctx, entryType, id, false, nil)
}

func (s *DuplicateService) setDuplicate(ctx context.Context, entryType enum.EntryType, id uuid.UUID, isDuplicate bool, duplicateOfID *uuid.UUID) error {
	switch entryType {
	case enum.EntryIncome:
		entry, err := s.incomeRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if entry == nil || entry.IsDeleted {
			return apperror.NewNotFoundError("Income entry")
		}
		return s.incomeRepo.SetDuplicate(ctx, id, isDuplicate, duplicateOfID)
	case enum.EntryExpense:
		entry, err := s.expenseRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if entry == nil || entry.IsDeleted {
			return apperror.NewNotFoundError("Expense entry")
		}
		return s.expenseRepo.SetDuplicate(ctx, id, isDuplicate, duplicateOfID)
	}
	return apperror.NewBadRequestError("invalid entry type: " + string(entryType))
}
