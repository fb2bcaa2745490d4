package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/kontorhq/kontor-api/internal/domain/entity"
	"github.com/kontorhq/kontor-api/internal/domain/repository"
	"github.com/kontorhq/kontor-api/pkg/apperror"
)

// ClientService manages invoicing counterparties.
type ClientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// CreateClientInput is the payload for a new client.
type CreateClientInput struct {
	Name         string
	VatID        string
	CountryCode  string
	IsEuBusiness bool
	Email        string
}

// UpdateClientInput carries changed fields; nil means unchanged.
type UpdateClientInput struct {
	Name         *string
	VatID        *string
	CountryCode  *string
	IsEuBusiness *bool
	Email        *string
}

func validateClient(name, countryCode, vatID string, isEuBusiness bool) []apperror.FieldError {
	var errs []apperror.FieldError
	if strings.TrimSpace(name) == "" {
		errs = append(errs, apperror.FieldError{Field: "name", Message: "must not be empty"})
	}
	if len(countryCode) != 2 {
		errs = append(errs, apperror.FieldError{Field: "country_code", Message: "must be a two-letter ISO code"})
	}
	if isEuBusiness && strings.TrimSpace(vatID) == "" {
		errs = append(errs, apperror.FieldError{Field: "vat_id", Message: "required for EU business clients"})
	}
	return errs
}

// CreateClient stores a new client.
func (s *ClientService) CreateClient(ctx context.Context, input *CreateClientInput) (*entity.Client, error) {
	if input.CountryCode == "" {
		input.CountryCode = "DE"
	}
	input.CountryCode = strings.ToUpper(input.CountryCode)

	if errs := validateClient(input.Name, input.CountryCode, input.VatID, input.IsEuBusiness); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	client := &entity.Client{
		ID:           uuid.New(),
		Name:         input.Name,
		VatID:        strings.ToUpper(strings.ReplaceAll(input.VatID, " ", "")),
		CountryCode:  input.CountryCode,
		IsEuBusiness: input.IsEuBusiness,
		Email:        input.Email,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// GetClient returns one client.
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// ListClients returns all clients.
func (s *ClientService) ListClients(ctx context.Context) ([]entity.Client, error) {
	return s.clientRepo.List(ctx)
}

// UpdateClient applies the changed fields.
func (s *ClientService) UpdateClient(ctx context.Context, id uuid.UUID, input *UpdateClientInput) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.VatID != nil {
		client.VatID = strings.ToUpper(strings.ReplaceAll(*input.VatID, " ", ""))
	}
	if input.CountryCode != nil {
		client.CountryCode = strings.ToUpper(*input.CountryCode)
	}
	if input.IsEuBusiness != nil {
		client.IsEuBusiness = *input.IsEuBusiness
	}
	if input.Email != nil {
		client.Email = *input.Email
	}

	if errs := validateClient(client.Name, client.CountryCode, client.VatID, client.IsEuBusiness); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// DeleteClient removes a client.
func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return apperror.NewNotFoundError("Client")
	}
	return s.clientRepo.Delete(ctx, id)
}
