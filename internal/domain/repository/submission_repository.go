package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kontorhq/kontor-api/internal/domain/entity"
	"github.com/kontorhq/kontor-api/internal/domain/enum"
)

// SubmissionFilterParams filters the submission listing.
type SubmissionFilterParams struct {
	Type   *enum.SubmissionType
	Year   *int
	Status *enum.SubmissionStatus
}

// SubmissionRepository defines ELSTER submission audit-record access
type SubmissionRepository interface {
	Create(ctx context.Context, submission *entity.ElsterSubmission) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ElsterSubmission, error)
	Update(ctx context.Context, submission *entity.ElsterSubmission) error
	List(ctx context.Context, params *SubmissionFilterParams) ([]entity.ElsterSubmission, error)
}
