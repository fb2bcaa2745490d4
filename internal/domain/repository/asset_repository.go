package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kontorhq/kontor-api/internal/domain/entity"
)

// AssetRepository defines fixed-asset access. ReplaceSchedule must be
// atomic: the old schedule rows are deleted and the new set inserted within
// a single transaction so no reader ever sees a partial mix of years.
type AssetRepository interface {
	Create(ctx context.Context, asset *entity.Asset) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Asset, error)
	GetWithSchedule(ctx context.Context, id uuid.UUID) (*entity.Asset, error)
	List(ctx context.Context) ([]entity.Asset, error)
	Update(ctx context.Context, asset *entity.Asset) error
	Delete(ctx context.Context, id uuid.UUID) error

	ReplaceSchedule(ctx context.Context, assetID uuid.UUID, entries []entity.DepreciationScheduleEntry) error

	// SchedulesForYear returns the schedule entries of all assets for one
	// calendar year, joined with their assets. Feeds BWA and DATEV.
	SchedulesForYear(ctx context.Context, year int) ([]entity.DepreciationScheduleEntry, error)
	AssetsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.Asset, error)
}
