package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kontorhq/kontor-api/internal/domain/entity"
	"github.com/kontorhq/kontor-api/internal/domain/enum"
	"github.com/kontorhq/kontor-api/internal/domain/repository"
	"github.com/kontorhq/kontor-api/internal/logger"
	"github.com/kontorhq/kontor-api/pkg/apperror"
)

// AssetService manages fixed assets and keeps their depreciation schedules
// in sync with the purchase inputs.
type AssetService struct {
	assetRepo repository.AssetRepository
	log       zerolog.Logger
}

// NewAssetService creates a new asset service
func NewAssetService(assetRepo repository.AssetRepository) *AssetService {
	return &AssetService{
		assetRepo: assetRepo,
		log:       logger.WithComponent("assets"),
	}
}

// CreateAssetInput holds the purchase record for a new asset.
type CreateAssetInput struct {
	Name               string
	Category           string
	PurchaseDate       time.Time
	PurchasePrice      decimal.Decimal
	UsefulLifeYears    int
	SalvageValue       decimal.Decimal
	DepreciationMethod enum.DepreciationMethod
}

// UpdateAssetInput carries changed fields; nil means unchanged.
type UpdateAssetInput struct {
	Name               *string
	Category           *string
	PurchaseDate       *time.Time
	PurchasePrice      *decimal.Decimal
	UsefulLifeYears    *int
	SalvageValue       *decimal.Decimal
	DepreciationMethod *enum.DepreciationMethod
}

// CreateAsset stores the asset and generates its initial schedule.
func (s *AssetService) CreateAsset(ctx context.Context, input *CreateAssetInput) (*entity.Asset, error) {
	asset := &entity.Asset{
		ID:                 uuid.New(),
		Name:               input.Name,
		Category:           input.Category,
		PurchaseDate:       input.PurchaseDate,
		PurchasePrice:      input.PurchasePrice,
		UsefulLifeYears:    input.UsefulLifeYears,
		SalvageValue:       input.SalvageValue,
		DepreciationMethod: input.DepreciationMethod,
	}

	schedule, err := GenerateDepreciationSchedule(
		asset.ID, asset.PurchaseDate, asset.PurchasePrice,
		asset.UsefulLifeYears, asset.SalvageValue, asset.DepreciationMethod,
	)
	if err != nil {
		return nil, err
	}

	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}
	if err := s.assetRepo.ReplaceSchedule(ctx, asset.ID, schedule); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("asset_id", asset.ID.String()).
		Str("method", string(asset.DepreciationMethod)).
		Int("years", asset.UsefulLifeYears).
		Msg("asset created with depreciation schedule")

	return s.assetRepo.GetWithSchedule(ctx, asset.ID)
}

// UpdateAsset applies changes and regenerates the schedule when any
// depreciation input changed. Regeneration replaces the whole schedule
// atomically; there is never a partial mix of old and new years.
func (s *AssetService) UpdateAsset(ctx context.Context, id uuid.UUID, input *UpdateAssetInput) (*entity.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, apperror.NewNotFoundError("Asset")
	}

	scheduleInputsChanged := false

	if input.Name != nil {
		asset.Name = *input.Name
	}
	if input.Category != nil {
		asset.Category = *input.Category
	}
	if input.PurchaseDate != nil && !input.PurchaseDate.Equal(asset.PurchaseDate) {
		asset.PurchaseDate = *input.PurchaseDate
		scheduleInputsChanged = true
	}
	if input.PurchasePrice != nil && !input.PurchasePrice.Equal(asset.PurchasePrice) {
		asset.PurchasePrice = *input.PurchasePrice
		scheduleInputsChanged = true
	}
	if input.UsefulLifeYears != nil && *input.UsefulLifeYears != asset.UsefulLifeYears {
		asset.UsefulLifeYears = *input.UsefulLifeYears
		scheduleInputsChanged = true
	}
	if input.SalvageValue != nil && !input.SalvageValue.Equal(asset.SalvageValue) {
		asset.SalvageValue = *input.SalvageValue
		scheduleInputsChanged = true
	}
	if input.DepreciationMethod != nil && *input.DepreciationMethod != asset.DepreciationMethod {
		asset.DepreciationMethod = *input.DepreciationMethod
		scheduleInputsChanged = true
	}

	if scheduleInputsChanged {
		schedule, err := GenerateDepreciationSchedule(
			asset.ID, asset.PurchaseDate, asset.PurchasePrice,
			asset.UsefulLifeYears, asset.SalvageValue, asset.DepreciationMethod,
		)
		if err != nil {
			return nil, err
		}
		if err := s.assetRepo.ReplaceSchedule(ctx, asset.ID, schedule); err != nil {
			return nil, err
		}
		s.log.Info().Str("asset_id", asset.ID.String()).Msg("depreciation schedule regenerated")
	}

	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return nil, err
	}

	return s.assetRepo.GetWithSchedule(ctx, asset.ID)
}

// GetAsset returns the asset with its ordered schedule.
func (s *AssetService) GetAsset(ctx context.Context, id uuid.UUID) (*entity.Asset, error) {
	asset, err := s.assetRepo.GetWithSchedule(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, apperror.NewNotFoundError("Asset")
	}
	return asset, nil
}

// ListAssets returns all assets.
func (s *AssetService) ListAssets(ctx context.Context) ([]entity.Asset, error) {
	return s.assetRepo.List(ctx)
}

// DeleteAsset removes the asset together with its schedule.
func (s *AssetService) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if asset == nil {
		return apperror.NewNotFoundError("Asset")
	}
	return s.assetRepo.Delete(ctx, id)
}
