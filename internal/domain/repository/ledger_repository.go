package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kontorhq/kontor-api/internal/domain/entity"
	"github.com/kontorhq/kontor-api/pkg/pagination"
)

// LedgerFilterParams filters ledger listings. Deleted rows are excluded
// unless IncludeDeleted is set; date bounds are inclusive.
type LedgerFilterParams struct {
	Pagination     *pagination.PaginationParams
	StartDate      *time.Time
	EndDate        *time.Time
	Category       string
	IncludeDeleted bool
	SortBy         string
	SortOrder      string
}

// IncomeRepository defines income ledger access
type IncomeRepository interface {
	Create(ctx context.Context, entry *entity.IncomeEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.IncomeEntry, error)
	Update(ctx context.Context, entry *entity.IncomeEntry) error
	List(ctx context.Context, params *LedgerFilterParams) ([]entity.IncomeEntry, int64, error)

	// FindInRange returns all non-deleted entries with date in [start, end]
	// inclusive, the query the aggregation engines run on.
	FindInRange(ctx context.Context, start, end time.Time) ([]entity.IncomeEntry, error)

	// FindByAmountNear returns non-deleted entries with the exact net amount
	// and a date within the window, excluding excludeID when set. Feeds the
	// duplicate scorer's candidate pool.
	FindByAmountNear(ctx context.Context, amount decimal.Decimal, start, end time.Time, excludeID *uuid.UUID) ([]entity.IncomeEntry, error)

	SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error
	SetDuplicate(ctx context.Context, id uuid.UUID, isDuplicate bool, duplicateOfID *uuid.UUID) error
}

// ExpenseRepository defines expense ledger access
type ExpenseRepository interface {
	Create(ctx context.Context, entry *entity.ExpenseEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ExpenseEntry, error)
	Update(ctx context.Context, entry *entity.ExpenseEntry) error
	List(ctx context.Context, params *LedgerFilterParams) ([]entity.ExpenseEntry, int64, error)
	FindInRange(ctx context.Context, start, end time.Time) ([]entity.ExpenseEntry, error)
	FindByAmountNear(ctx context.Context, amount decimal.Decimal, start, end time.Time, excludeID *uuid.UUID) ([]entity.ExpenseEntry, error)
	SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error
	SetDuplicate(ctx context.Context, id uuid.UUID, isDuplicate bool, duplicateOfID *uuid.UUID) error
}
