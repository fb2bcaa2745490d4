package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kontorhq/kontor-api/internal/domain/entity"
	"github.com/kontorhq/kontor-api/internal/domain/enum"
	"github.com/kontorhq/kontor-api/internal/domain/repository"
	"github.com/kontorhq/kontor-api/internal/logger"
	"github.com/kontorhq/kontor-api/pkg/apperror"
)

// SubmissionService tracks filed declarations. Status transitions only move
// forwards; a rejected or accepted filing never changes again.
type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	log            zerolog.Logger
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(submissionRepo repository.SubmissionRepository) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		log:            logger.WithComponent("submissions"),
	}
}

// CreateSubmissionInput is the payload for recording a new filing draft.
type CreateSubmissionInput struct {
	Type       enum.SubmissionType
	Year       int
	Period     string
	XMLPayload string
	TestMode   bool
}

// UpdateStatusInput carries a lifecycle transition.
type UpdateStatusInput struct {
	Status         enum.SubmissionStatus
	TransferTicket string
	ErrorMessage   string
}

// CreateSubmission stores a draft audit record for a generated declaration.
func (s *SubmissionService) CreateSubmission(ctx context.Context, input *CreateSubmissionInput) (*entity.ElsterSubmission, error) {
	if !input.Type.Valid() {
		return nil, apperror.NewBadRequestError("invalid submission type: " + string(input.Type))
	}
	if input.XMLPayload == "" {
		return nil, apperror.NewBadRequestError("xml payload must not be empty")
	}

	submission := &entity.ElsterSubmission{
		ID:         uuid.New(),
		Type:       input.Type,
		Year:       input.Year,
		Period:     input.Period,
		XMLPayload: input.XMLPayload,
		Status:     enum.SubmissionDraft,
		TestMode:   input.TestMode,
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("submission_id", submission.ID.String()).
		Str("type", string(submission.Type)).
		Str("period", submission.Period).
		Bool("test_mode", submission.TestMode).
		Msg("submission recorded")

	return submission, nil
}

// UpdateStatus applies a lifecycle transition. Invalid moves (backwards, or
// out of a terminal state) are rejected as conflicts.
func (s *SubmissionService) UpdateStatus(ctx context.Context, id uuid.UUID, input *UpdateStatusInput) (*entity.ElsterSubmission, error) {
	if !input.Status.Valid() {
		return nil, apperror.NewBadRequestError("invalid submission status: " + string(input.Status))
	}

	submission, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, apperror.NewNotFoundError("Submission")
	}

	if !submission.Status.CanTransitionTo(input.Status) {
		return nil, apperror.NewConflictError(
			"submission cannot move from " + string(submission.Status) + " to " + string(input.Status))
	}

	submission.Status = input.Status
	if input.Status == enum.SubmissionSubmitted {
		now := time.Now().UTC()
		submission.SubmittedAt = &now
	}
	if input.TransferTicket != "" {
		submission.TransferTicket = input.TransferTicket
	}
	if input.ErrorMessage != "" {
		submission.ErrorMessage = input.ErrorMessage
	}

	if err := s.submissionRepo.Update(ctx, submission); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("submission_id", submission.ID.String()).
		Str("status", string(submission.Status)).
		Msg("submission status updated")

	return submission, nil
}

// GetSubmission returns one filing record.
func (s *SubmissionService) GetSubmission(ctx context.Context, id uuid.UUID) (*entity.ElsterSubmission, error) {
	submission, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, apperror.NewNotFoundError("Submission")
	}
	return submission, nil
}

// ListSubmissions returns filings matching the filters.
func (s *SubmissionService) ListSubmissions(ctx context.Context, params *repository.SubmissionFilterParams) ([]entity.ElsterSubmission, error) {
	return s.submissionRepo.List(ctx, params)
}
