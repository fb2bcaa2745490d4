package repository

import (
	"context"

	"github.com/kontorhq/kontor-api/internal/domain/entity"
)

// SettingsRepository defines access to the single settings row
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.Settings, error)
	Save(ctx context.Context, settings *entity.Settings) error
}
