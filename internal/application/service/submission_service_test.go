package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontorhq/kontor-api/internal/domain/enum"
	"github.com/kontorhq/kontor-api/internal/domain/repository"
	"github.com/kontorhq/kontor-api/pkg/apperror"
)

func newSubmissionFixture() (*SubmissionService, *fakeSubmissionRepo) {
	repo := newFakeSubmissionRepo()
	return NewSubmissionService(repo), repo
}

func draftInput() *CreateSubmissionInput {
	return &CreateSubmissionInput{
		Type:       enum.SubmissionUstVa,
		Year:       2024,
		Period:     "Q1",
		XMLPayload: "<Erklaerung><DatenArt>UStVA</DatenArt></Erklaerung>",
		TestMode:   true,
	}
}

func TestCreateSubmission(t *testing.T) {
	svc, _ := newSubmissionFixture()

	submission, err := svc.CreateSubmission(context.Background(), draftInput())
	require.NoError(t, err)

	assert.Equal(t, enum.SubmissionDraft, submission.Status)
	assert.True(t, submission.TestMode)
	assert.Nil(t, submission.SubmittedAt)
}

func TestCreateSubmission_Validation(t *testing.T) {
	svc, _ := newSubmissionFixture()

	input := draftInput()
	input.Type = enum.SubmissionType("EUER")
	_, err := svc.CreateSubmission(context.Background(), input)
	assert.Error(t, err)

	input = draftInput()
	input.XMLPayload = ""
	_, err = svc.CreateSubmission(context.Background(), input)
	assert.Error(t, err)
}

func TestUpdateStatus_Lifecycle(t *testing.T) {
	svc, _ := newSubmissionFixture()
	ctx := context.Background()

	submission, err := svc.CreateSubmission(ctx, draftInput())
	require.NoError(t, err)

	submitted, err := svc.UpdateStatus(ctx, submission.ID, &UpdateStatusInput{
		Status:         enum.SubmissionSubmitted,
		TransferTicket: "et-123456",
	})
	require.NoError(t, err)
	assert.Equal(t, enum.SubmissionSubmitted, submitted.Status)
	assert.Equal(t, "et-123456", submitted.TransferTicket)
	assert.NotNil(t, submitted.SubmittedAt)

	accepted, err := svc.UpdateStatus(ctx, submission.ID, &UpdateStatusInput{Status: enum.SubmissionAccepted})
	require.NoError(t, err)
	assert.Equal(t, enum.SubmissionAccepted, accepted.Status)
}

func TestUpdateStatus_RejectsBackwardsMoves(t *testing.T) {
	svc, _ := newSubmissionFixture()
	ctx := context.Background()

	submission, err := svc.CreateSubmission(ctx, draftInput())
	require.NoError(t, err)

	// draft cannot jump straight to accepted
	_, err = svc.UpdateStatus(ctx, submission.ID, &UpdateStatusInput{Status: enum.SubmissionAccepted})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	_, err = svc.UpdateStatus(ctx, submission.ID, &UpdateStatusInput{Status: enum.SubmissionSubmitted})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, submission.ID, &UpdateStatusInput{
		Status:       enum.SubmissionRejected,
		ErrorMessage: "Steuernummer ungültig",
	})
	require.NoError(t, err)

	// rejected is terminal
	_, err = svc.UpdateStatus(ctx, submission.ID, &UpdateStatusInput{Status: enum.SubmissionSubmitted})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc, _ := newSubmissionFixture()

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), &UpdateStatusInput{Status: enum.SubmissionSubmitted})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestListSubmissions_Filters(t *testing.T) {
	svc, _ := newSubmissionFixture()
	ctx := context.Background()

	_, err := svc.CreateSubmission(ctx, draftInput())
	require.NoError(t, err)

	zmInput := draftInput()
	zmInput.Type = enum.SubmissionZm
	zmInput.XMLPayload = "<Erklaerung><DatenArt>ZM</DatenArt></Erklaerung>"
	_, err = svc.CreateSubmission(ctx, zmInput)
	require.NoError(t, err)

	ustva := enum.SubmissionUstVa
	got, err := svc.ListSubmissions(ctx, &repository.SubmissionFilterParams{Type: &ustva})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, enum.SubmissionUstVa, got[0].Type)
}
