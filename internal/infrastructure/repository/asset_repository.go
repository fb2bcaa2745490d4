package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kontorhq/kontor-api/internal/domain/entity"
	domainRepo "github.com/kontorhq/kontor-api/internal/domain/repository"
)

type assetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *gorm.DB) domainRepo.AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) Create(ctx context.Context, asset *entity.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *assetRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Asset, error) {
	var asset entity.Asset
	err := r.db.WithContext(ctx).First(&asset, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &asset, err
}

func (r *assetRepository) GetWithSchedule(ctx context.Context, id uuid.UUID) (*entity.Asset, error) {
	var asset entity.Asset
	err := r.db.WithContext(ctx).
		Preload("Schedule", func(db *gorm.DB) *gorm.DB {
			return db.Order("year ASC")
		}).
		First(&asset, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &asset, err
}

func (r *assetRepository) List(ctx context.Context) ([]entity.Asset, error) {
	var assets []entity.Asset
	err := r.db.WithContext(ctx).Order("purchase_date DESC").Find(&assets).Error
	return assets, err
}

func (r *assetRepository) Update(ctx context.Context, asset *entity.Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

func (r *assetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Schedule rows are owned by the asset and go with it.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.DepreciationScheduleEntry{}, "asset_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Asset{}, "id = ?", id).Error
	})
}

// ReplaceSchedule swaps an asset's schedule atomically: readers either see
// the complete old set or the complete new set, never a mix.
func (r *assetRepository) ReplaceSchedule(ctx context.Context, assetID uuid.UUID, entries []entity.DepreciationScheduleEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.DepreciationScheduleEntry{}, "asset_id = ?", assetID).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

func (r *assetRepository) SchedulesForYear(ctx context.Context, year int) ([]entity.DepreciationScheduleEntry, error) {
	var entries []entity.DepreciationScheduleEntry
	err := r.db.WithContext(ctx).
		Where("year = ?", year).
		Order("asset_id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *assetRepository) AssetsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.Asset, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]entity.Asset{}, nil
	}
	var assets []entity.Asset
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&assets).Error; err != nil {
		return nil, err
	}
	result := make(map[uuid.UUID]entity.Asset, len(assets))
	for i := range assets {
		result[assets[i].ID] = assets[i]
	}
	return result, nil
}
