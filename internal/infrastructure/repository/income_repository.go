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

type incomeRepository struct {
	db *gorm.DB
}

// NewIncomeRepository creates a new income ledger repository
func NewIncomeRepository(db *gorm.DB) domainRepo.IncomeRepository {
	return &incomeRepository{db: db}
}

func (r *incomeRepository) Create(ctx context.Context, entry *entity.IncomeEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *incomeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.IncomeEntry, error) {
	var entry entity.IncomeEntry
	err := r.db.WithContext(ctx).
		Preload("Client").
		First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &entry, err
}

func (r *incomeRepository) Update(ctx context.Context, entry *entity.IncomeEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *incomeRepository) List(ctx context.Context, params *domainRepo.LedgerFilterParams) ([]entity.IncomeEntry, int64, error) {
	var entries []entity.IncomeEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.IncomeEntry{})
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
		query = query.Where("euer_category = ?", params.Category)
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
		Preload("Client").
		Order(sortBy + " " + sortOrder).
		Find(&entries).Error

	return entries, total, err
}

func (r *incomeRepository) FindInRange(ctx context.Context, start, end time.Time) ([]entity.IncomeEntry, error) {
	var entries []entity.IncomeEntry
	err := r.db.WithContext(ctx).
		Where("is_deleted = ? AND date >= ? AND date <= ?", false, start, end).
		Order("date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *incomeRepository) FindByAmountNear(ctx context.Context, amount decimal.Decimal, start, end time.Time, excludeID *uuid.UUID) ([]entity.IncomeEntry, error) {
	var entries []entity.IncomeEntry
	query := r.db.WithContext(ctx).
		Preload("Client").
		Where("is_deleted = ? AND net_amount = ? AND date >= ? AND date <= ?", false, amount, start, end)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	err := query.Find(&entries).Error
	return entries, err
}

func (r *incomeRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	return setFlag(r.db.WithContext(ctx), &entity.IncomeEntry{}, id, map[string]interface{}{"is_deleted": deleted})
}

func (r *incomeRepository) SetDuplicate(ctx context.Context, id uuid.UUID, isDuplicate bool, duplicateOfID *uuid.UUID) error {
	return setFlag(r.db.WithContext(ctx), &entity.IncomeEntry{}, id, map[string]interface{}{
		"is_duplicate":    isDuplicate,
		"duplicate_of_id": duplicateOfID,
	})
}

// setFlag updates flag columns on a single row and reports gorm.ErrRecordNotFound
// when no row matched, so services can surface a NotFoundError.
func setFlag(db *gorm.DB, model interface{}, id uuid.UUID, updates map[string]interface{}) error {
	result := db.Model(model).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
