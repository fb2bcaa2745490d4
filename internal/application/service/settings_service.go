package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/kontorhq/kontor-api/internal/domain/entity"
	"github.com/kontorhq/kontor-api/internal/domain/repository"
)

// SettingsService manages the single business settings row.
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings returns the configured settings, or a default row when none
// has been saved yet.
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return &entity.Settings{HomeCountry: "DE"}, nil
	}
	return settings, nil
}

// UpdateSettingsInput carries changed settings fields; nil means unchanged.
type UpdateSettingsInput struct {
	BusinessName     *string
	TaxNumber        *string
	VatID            *string
	ConsultantNumber *string
	ClientNumber     *string
	HomeCountry      *string
}

// UpdateSettings applies the changes, creating the row on first save.
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &entity.Settings{ID: uuid.New(), HomeCountry: "DE"}
	}

	if input.BusinessName != nil {
		settings.BusinessName = *input.BusinessName
	}
	if input.TaxNumber != nil {
		settings.TaxNumber = *input.TaxNumber
	}
	if input.VatID != nil {
		settings.VatID = *input.VatID
	}
	if input.ConsultantNumber != nil {
		settings.ConsultantNumber = *input.ConsultantNumber
	}
	if input.ClientNumber != nil {
		settings.ClientNumber = *input.ClientNumber
	}
	if input.HomeCountry != nil && *input.HomeCountry != "" {
		settings.HomeCountry = *input.HomeCountry
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
