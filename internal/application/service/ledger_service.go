package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kontorhq/kontor-api/internal/domain/accounting"
	"github.com/kontorhq/kontor-api/internal/domain/entity"
	"github.com/kontorhq/kontor-api/internal/domain/enum"
	"github.com/kontorhq/kontor-api/internal/domain/repository"
	"github.com/kontorhq/kontor-api/internal/logger"
	"github.com/kontorhq/kontor-api/pkg/apperror"
	"github.com/kontorhq/kontor-api/pkg/pagination"
)

// LedgerService books income and expense rows. Amount derivation is the
// write-boundary invariant: every stored row carries vat and gross derived
// from net and rate, never caller-supplied values.
type LedgerService struct {
	incomeRepo  repository.IncomeRepository
	expenseRepo repository.ExpenseRepository
	clientRepo  repository.ClientRepository
	log         zerolog.Logger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	incomeRepo repository.IncomeRepository,
	expenseRepo repository.ExpenseRepository,
	clientRepo repository.ClientRepository,
) *LedgerService {
	return &LedgerService{
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		clientRepo:  clientRepo,
		log:         logger.WithComponent("ledger"),
	}
}

// CreateIncomeInput is the booking payload for a revenue row.
type CreateIncomeInput struct {
	Date         time.Time
	Description  string
	ClientID     *uuid.UUID
	NetAmount    decimal.Decimal
	VatRate      enum.VatRate
	EuerCategory string
}

// CreateExpenseInput is the booking payload for an expense row. A nil
// DeductiblePercent means fully deductible; an explicit 0 books a
// non-deductible expense and is kept as-is.
type CreateExpenseInput struct {
	Date              time.Time
	Description       string
	Vendor            string
	NetAmount         decimal.Decimal
	VatRate           enum.VatRate
	Category          string
	EuerLine          int
	DeductiblePercent *int
	PaymentMethod     enum.PaymentMethod
}

func validateAmount(net decimal.Decimal, rate enum.VatRate) []apperror.FieldError {
	var errs []apperror.FieldError
	if net.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "net_amount", Message: "must not be negative"})
	}
	if !rate.Valid() {
		errs = append(errs, apperror.FieldError{Field: "vat_rate", Message: "must be 0, 7 or 19"})
	}
	return errs
}

// CreateIncome books a revenue row with derived VAT and gross amounts.
func (s *LedgerService) CreateIncome(ctx context.Context, input *CreateIncomeInput) (*entity.IncomeEntry, error) {
	if errs := validateAmount(input.NetAmount, input.VatRate); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}
	if input.ClientID != nil {
		client, err := s.clientRepo.GetByID(ctx, *input.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, apperror.NewNotFoundError("Client")
		}
	}

	entry := &entity.IncomeEntry{
		ID:           uuid.New(),
		Date:         input.Date,
		Description:  input.Description,
		ClientID:     input.ClientID,
		NetAmount:    input.NetAmount,
		VatRate:      input.VatRate,
		EuerCategory: input.EuerCategory,
	}
	entry.Normalize()

	if err := s.incomeRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// CreateExpense books an expense row. The EÜR line defaults from the
// category table when the caller leaves it unset.
func (s *LedgerService) CreateExpense(ctx context.Context, input *CreateExpenseInput) (*entity.ExpenseEntry, error) {
	errs := validateAmount(input.NetAmount, input.VatRate)
	if input.DeductiblePercent != nil && (*input.DeductiblePercent < 0 || *input.DeductiblePercent > 100) {
		errs = append(errs, apperror.FieldError{Field: "deductible_percent", Message: "must be between 0 and 100"})
	}
	if input.PaymentMethod != "" && !input.PaymentMethod.Valid() {
		errs = append(errs, apperror.FieldError{Field: "payment_method", Message: "must be bank, cash or credit_card"})
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	entry := &entity.ExpenseEntry{
		ID:                uuid.New(),
		Date:              input.Date,
		Description:       input.Description,
		Vendor:            input.Vendor,
		NetAmount:         input.NetAmount,
		VatRate:           input.VatRate,
		Category:          input.Category,
		EuerLine:          input.EuerLine,
		DeductiblePercent: 100,
		PaymentMethod:     input.PaymentMethod,
	}
	if input.DeductiblePercent != nil {
		entry.DeductiblePercent = *input.DeductiblePercent
	}
	if entry.EuerLine == 0 {
		entry.EuerLine = accounting.DefaultEuerLine(entry.Category)
	}
	if entry.PaymentMethod == "" {
		entry.PaymentMethod = enum.PaymentMethodBank
	}
	entry.Normalize()

	if err := s.expenseRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetIncome returns one revenue row.
func (s *LedgerService) GetIncome(ctx context.Context, id uuid.UUID) (*entity.IncomeEntry, error) {
	entry, err := s.incomeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NewNotFoundError("Income entry")
	}
	return entry, nil
}

// GetExpense returns one expense row.
func (s *LedgerService) GetExpense(ctx context.Context, id uuid.UUID) (*entity.ExpenseEntry, error) {
	entry, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NewNotFoundError("Expense entry")
	}
	return entry, nil
}

// ListIncome returns a paginated income listing.
func (s *LedgerService) ListIncome(ctx context.Context, params *repository.LedgerFilterParams) (*pagination.PaginatedResult[entity.IncomeEntry], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	entries, total, err := s.incomeRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(entries, p), nil
}

// ListExpenses returns a paginated expense listing.
func (s *LedgerService) ListExpenses(ctx context.Context, params *repository.LedgerFilterParams) (*pagination.PaginatedResult[entity.ExpenseEntry], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	entries, total, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(entries, p), nil
}

// DeleteEntry soft-deletes a ledger row; aggregates stop seeing it but the
// row stays for the audit trail.
func (s *LedgerService) DeleteEntry(ctx context.Context, entryType enum.EntryType, id uuid.UUID) error {
	return s.setDeleted(ctx, entryType, id, true)
}

// RestoreEntry clears the soft-delete flag.
func (s *LedgerService) RestoreEntry(ctx context.Context, entryType enum.EntryType, id uuid.UUID) error {
	return s.setDeleted(ctx, entryType, id, false)
}

func (s *LedgerService) setDeleted(ctx context.Context, entryType enum.EntryType, id uuid.UUID, deleted bool) error {
	switch entryType {
	case enum.EntryIncome:
		entry, err := s.incomeRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if entry == nil {
			return apperror.NewNotFoundError("Income entry")
		}
		return s.incomeRepo.SetDeleted(ctx, id, deleted)
	case enum.EntryExpense:
		entry, err := s.expenseRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if entry == nil {
			return apperror.NewNotFoundError("Expense entry")
		}
		return s.expenseRepo.SetDeleted(ctx, id, deleted)
	}
	return apperror.NewBadRequestError("invalid entry type: " + string(entryType))
}
