package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kontorhq/kontor-api/internal/domain/entity"
)

// ClientRepository defines client access
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.Client, error)
	List(ctx context.Context) ([]entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}
