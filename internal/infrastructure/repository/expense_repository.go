package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kontorhq/kontor-api/internal/domain/entity"
	domainRepo "github.com/kontorhq/kontor-api/internal/domain/repository"
)

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense ledger repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, entry *entity.ExpenseEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *expenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ExpenseEntry, error) {
	var entry entity.ExpenseEntry
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &entry, err
}

func (r *expenseRepository) Update(ctx context.Context, entry *entity.ExpenseEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *expenseRepository) List(ctx context.Context, params *domainRepo.LedgerFilterParams) ([]entity.ExpenseEntry, int64, error) {
	var entries []entity.ExpenseEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ExpenseEntry{})
	if !params.IncludeDeleted {
		query = query.Where("is_deleted = ?", false)
	}
	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "date"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&entries).Error

	return entries, total, err
}

func (r *expenseRepository) FindInRange(ctx context.Context, start, end time.Time) ([]entity.ExpenseEntry, error) {
	var entries []entity.ExpenseEntry
	err := r.db.WithContext(ctx).
		Where("is_deleted = ? AND date >= ? AND date <= ?", false, start, end).
		Order("date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *expenseRepository) FindByAmountNear(ctx context.Context, amount decimal.Decimal, start, end time.Time, excludeID *uuid.UUID) ([]entity.ExpenseEntry, error) {
	var entries []entity.ExpenseEntry
	query := r.db.WithContext(ctx).
		Where("is_deleted = ? AND net_amount = ? AND date >= ? AND date <= ?", false, amount, start, end)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	err := query.Find(&entries).Error
	return entries, err
}

func (r *expenseRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	return setFlag(r.db.WithContext(ctx), &entity.ExpenseEntry{}, id, map[string]interface{}{"is_deleted": deleted})
}

func (r *expenseRepository) SetDuplicate(ctx context.Context, id uuid.UUID, isDuplicate bool, duplicateOfID *uuid.UUID) error {
	return setFlag(r.db.WithContext(ctx), &entity.ExpenseEntry{}, id, map[string]interface{}{
		"is_duplicate":    isDuplicate,
		"duplicate_of_id": duplicateOfID,
	})
}
