package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontorhq/kontor-api/internal/domain/enum"
	"github.com/kontorhq/kontor-api/pkg/apperror"
)

func newAssetFixture() (*AssetService, *fakeAssetRepo) {
	repo := newFakeAssetRepo()
	return NewAssetService(repo), repo
}

func laptopInput() *CreateAssetInput {
	return &CreateAssetInput{
		Name:               "ThinkPad X1",
		Category:           "it_equipment",
		PurchaseDate:       time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		PurchasePrice:      d("3000.00"),
		UsefulLifeYears:    3,
		SalvageValue:       d("0.00"),
		DepreciationMethod: enum.DepreciationLinear,
	}
}

func TestCreateAsset_GeneratesSchedule(t *testing.T) {
	svc, _ := newAssetFixture()

	asset, err := svc.CreateAsset(context.Background(), laptopInput())
	require.NoError(t, err)
	require.Len(t, asset.Schedule, 3)

	assert.Equal(t, 2024, asset.Schedule[0].Year)
	assert.True(t, asset.Schedule[0].DepreciationAmount.Equal(d("1000.00")))
	assert.True(t, asset.Schedule[2].BookValue.IsZero())
}

func TestUpdateAsset_RegeneratesScheduleOnInputChange(t *testing.T) {
	svc, _ := newAssetFixture()
	ctx := context.Background()

	asset, err := svc.CreateAsset(ctx, laptopInput())
	require.NoError(t, err)

	years := 5
	updated, err := svc.UpdateAsset(ctx, asset.ID, &UpdateAssetInput{UsefulLifeYears: &years})
	require.NoError(t, err)

	require.Len(t, updated.Schedule, 5, "schedule must be fully replaced, not mixed")
	assert.True(t, updated.Schedule[0].DepreciationAmount.Equal(d("600.00")))
}

func TestUpdateAsset_NameChangeKeepsSchedule(t *testing.T) {
	svc, repo := newAssetFixture()
	ctx := context.Background()

	asset, err := svc.CreateAsset(ctx, laptopInput())
	require.NoError(t, err)
	before := repo.schedules[asset.ID]

	name := "ThinkPad X1 Carbon"
	updated, err := svc.UpdateAsset(ctx, asset.ID, &UpdateAssetInput{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "ThinkPad X1 Carbon", updated.Name)
	after := repo.schedules[asset.ID]
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID, "pure rename must not touch schedule rows")
	}
}

func TestDeleteAsset_RemovesSchedule(t *testing.T) {
	svc, repo := newAssetFixture()
	ctx := context.Background()

	asset, err := svc.CreateAsset(ctx, laptopInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAsset(ctx, asset.ID))
	_, ok := repo.schedules[asset.ID]
	assert.False(t, ok)

	err = svc.DeleteAsset(ctx, asset.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestGetAsset_NotFound(t *testing.T) {
	svc, _ := newAssetFixture()

	_, err := svc.GetAsset(context.Background(), uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
