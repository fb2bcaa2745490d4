package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kontorhq/kontor-api/internal/domain/entity"
	domainRepo "github.com/kontorhq/kontor-api/internal/domain/repository"
)

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *gorm.DB) domainRepo.SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, submission *entity.ElsterSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ElsterSubmission, error) {
	var submission entity.ElsterSubmission
	err := r.db.WithContext(ctx).First(&submission, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &submission, err
}

func (r *submissionRepository) Update(ctx context.Context, submission *entity.ElsterSubmission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}

func (r *submissionRepository) List(ctx context.Context, params *domainRepo.SubmissionFilterParams) ([]entity.ElsterSubmission, error) {
	var submissions []entity.ElsterSubmission

	query := r.db.WithContext(ctx).Model(&entity.ElsterSubmission{})
	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}
	if params.Year != nil {
		query = query.Where("year = ?", *params.Year)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	err := query.Order("created_at DESC").Find(&submissions).Error
	return submissions, err
}
