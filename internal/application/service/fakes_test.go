package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kontorhq/kontor-api/internal/domain/entity"
	"github.com/kontorhq/kontor-api/internal/domain/repository"
)

// In-memory repositories for service tests. They implement only the
// semantics the services rely on: date filtering is inclusive, deleted
// rows never leave FindInRange or FindByAmountNear, and flag updates on
// missing rows fail with gorm.ErrRecordNotFound like the real store.

type fakeIncomeRepo struct {
	entries map[uuid.UUID]*entity.IncomeEntry
}

func newFakeIncomeRepo() *fakeIncomeRepo {
	return &fakeIncomeRepo{entries: make(map[uuid.UUID]*entity.IncomeEntry)}
}

func (r *fakeIncomeRepo) Create(_ context.Context, e *entity.IncomeEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	clone := *e
	r.entries[e.ID] = &clone
	return nil
}

func (r *fakeIncomeRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.IncomeEntry, error) {
	if e, ok := r.entries[id]; ok {
		clone := *e
		return &clone, nil
	}
	return nil, nil
}

func (r *fakeIncomeRepo) Update(_ context.Context, e *entity.IncomeEntry) error {
	clone := *e
	r.entries[e.ID] = &clone
	return nil
}

func (r *fakeIncomeRepo) List(_ context.Context, params *repository.LedgerFilterParams) ([]entity.IncomeEntry, int64, error) {
	out := make([]entity.IncomeEntry, 0)
	for _, e := range r.entries {
		if e.IsDeleted && !params.IncludeDeleted {
			continue
		}
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *fakeIncomeRepo) FindInRange(_ context.Context, start, end time.Time) ([]entity.IncomeEntry, error) {
	out := make([]entity.IncomeEntry, 0)
	for _, e := range r.entries {
		if e.IsDeleted || e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeIncomeRepo) FindByAmountNear(_ context.Context, amount decimal.Decimal, start, end time.Time, excludeID *uuid.UUID) ([]entity.IncomeEntry, error) {
	out := make([]entity.IncomeEntry, 0)
	for _, e := range r.entries {
		if e.IsDeleted || !e.NetAmount.Equal(amount) {
			continue
		}
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		if excludeID != nil && e.ID == *excludeID {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeIncomeRepo) SetDeleted(_ context.Context, id uuid.UUID, deleted bool) error {
	e, ok := r.entries[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.IsDeleted = deleted
	return nil
}

func (r *fakeIncomeRepo) SetDuplicate(_ context.Context, id uuid.UUID, isDuplicate bool, duplicateOfID *uuid.UUID) error {
	e, ok := r.entries[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.IsDuplicate = isDuplicate
	e.DuplicateOfID = duplicateOfID
	return nil
}

type fakeExpenseRepo struct {
	entries map[uuid.UUID]*entity.ExpenseEntry
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{entries: make(map[uuid.UUID]*entity.ExpenseEntry)}
}

func (r *fakeExpenseRepo) Create(_ context.Context, e *entity.ExpenseEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	clone := *e
	r.entries[e.ID] = &clone
	return nil
}

func (r *fakeExpenseRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.ExpenseEntry, error) {
	if e, ok := r.entries[id]; ok {
		clone := *e
		return &clone, nil
	}
	return nil, nil
}

func (r *fakeExpenseRepo) Update(_ context.Context, e *entity.ExpenseEntry) error {
	clone := *e
	r.entries[e.ID] = &clone
	return nil
}

func (r *fakeExpenseRepo) List(_ context.Context, params *repository.LedgerFilterParams) ([]entity.ExpenseEntry, int64, error) {
	out := make([]entity.ExpenseEntry, 0)
	for _, e := range r.entries {
		if e.IsDeleted && !params.IncludeDeleted {
			continue
		}
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *fakeExpenseRepo) FindInRange(_ context.Context, start, end time.Time) ([]entity.ExpenseEntry, error) {
	out := make([]entity.ExpenseEntry, 0)
	for _, e := range r.entries {
		if e.IsDeleted || e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeExpenseRepo) FindByAmountNear(_ context.Context, amount decimal.Decimal, start, end time.Time, excludeID *uuid.UUID) ([]entity.ExpenseEntry, error) {
	out := make([]entity.ExpenseEntry, 0)
	for _, e := range r.entries {
		if e.IsDeleted || !e.NetAmount.Equal(amount) {
			continue
		}
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		if excludeID != nil && e.ID == *excludeID {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeExpenseRepo) SetDeleted(_ context.Context, id uuid.UUID, deleted bool) error {
	e, ok := r.entries[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.IsDeleted = deleted
	return nil
}

func (r *fakeExpenseRepo) SetDuplicate(_ context.Context, id uuid.UUID, isDuplicate bool, duplicateOfID *uuid.UUID) error {
	e, ok := r.entries[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.IsDuplicate = isDuplicate
	e.DuplicateOfID = duplicateOfID
	return nil
}

type fakeAssetRepo struct {
	assets    map[uuid.UUID]*entity.Asset
	schedules map[uuid.UUID][]entity.DepreciationScheduleEntry
}

func newFakeAssetRepo() *fakeAssetRepo {
	return &fakeAssetRepo{
		assets:    make(map[uuid.UUID]*entity.Asset),
		schedules: make(map[uuid.UUID][]entity.DepreciationScheduleEntry),
	}
}

func (r *fakeAssetRepo) Create(_ context.Context, a *entity.Asset) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	clone := *a
	r.assets[a.ID] = &clone
	return nil
}

func (r *fakeAssetRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Asset, error) {
	if a, ok := r.assets[id]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, nil
}

func (r *fakeAssetRepo) GetWithSchedule(ctx context.Context, id uuid.UUID) (*entity.Asset, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil || a == nil {
		return a, err
	}
	a.Schedule = append([]entity.DepreciationScheduleEntry(nil), r.schedules[id]...)
	return a, nil
}

func (r *fakeAssetRepo) List(_ context.Context) ([]entity.Asset, error) {
	out := make([]entity.Asset, 0, len(r.assets))
	for _, a := range r.assets {
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeAssetRepo) Update(_ context.Context, a *entity.Asset) error {
	clone := *a
	r.assets[a.ID] = &clone
	return nil
}

func (r *fakeAssetRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.assets, id)
	delete(r.schedules, id)
	return nil
}

func (r *fakeAssetRepo) ReplaceSchedule(_ context.Context, assetID uuid.UUID, entries []entity.DepreciationScheduleEntry) error {
	r.schedules[assetID] = append([]entity.DepreciationScheduleEntry(nil), entries...)
	return nil
}

func (r *fakeAssetRepo) SchedulesForYear(_ context.Context, year int) ([]entity.DepreciationScheduleEntry, error) {
	out := make([]entity.DepreciationScheduleEntry, 0)
	for _, entries := range r.schedules {
		for _, e := range entries {
			if e.Year == year {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (r *fakeAssetRepo) AssetsByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.Asset, error) {
	out := make(map[uuid.UUID]entity.Asset)
	for _, id := range ids {
		if a, ok := r.assets[id]; ok {
			out[id] = *a
		}
	}
	return out, nil
}

type fakeClientRepo struct {
	clients map[uuid.UUID]*entity.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]*entity.Client)}
}

func (r *fakeClientRepo) Create(_ context.Context, c *entity.Client) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	clone := *c
	r.clients[c.ID] = &clone
	return nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Client, error) {
	if c, ok := r.clients[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, nil
}

func (r *fakeClientRepo) GetByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.Client, error) {
	out := make(map[uuid.UUID]entity.Client)
	for _, id := range ids {
		if c, ok := r.clients[id]; ok {
			out[id] = *c
		}
	}
	return out, nil
}

func (r *fakeClientRepo) List(_ context.Context) ([]entity.Client, error) {
	out := make([]entity.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeClientRepo) Update(_ context.Context, c *entity.Client) error {
	clone := *c
	r.clients[c.ID] = &clone
	return nil
}

func (r *fakeClientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clients, id)
	return nil
}

type fakeSettingsRepo struct {
	settings *entity.Settings
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*entity.Settings, error) {
	if r.settings == nil {
		return nil, nil
	}
	clone := *r.settings
	return &clone, nil
}

func (r *fakeSettingsRepo) Save(_ context.Context, s *entity.Settings) error {
	clone := *s
	r.settings = &clone
	return nil
}

type fakeSubmissionRepo struct {
	submissions map[uuid.UUID]*entity.ElsterSubmission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: make(map[uuid.UUID]*entity.ElsterSubmission)}
}

func (r *fakeSubmissionRepo) Create(_ context.Context, s *entity.ElsterSubmission) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	clone := *s
	r.submissions[s.ID] = &clone
	return nil
}

func (r *fakeSubmissionRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.ElsterSubmission, error) {
	if s, ok := r.submissions[id]; ok {
		clone := *s
		return &clone, nil
	}
	return nil, nil
}

func (r *fakeSubmissionRepo) Update(_ context.Context, s *entity.ElsterSubmission) error {
	clone := *s
	r.submissions[s.ID] = &clone
	return nil
}

func (r *fakeSubmissionRepo) List(_ context.Context, params *repository.SubmissionFilterParams) ([]entity.ElsterSubmission, error) {
	out := make([]entity.ElsterSubmission, 0)
	for _, s := range r.submissions {
		if params != nil {
			if params.Type != nil && s.Type != *params.Type {
				continue
			}
			if params.Year != nil && s.Year != *params.Year {
				continue
			}
			if params.Status != nil && s.Status != *params.Status {
				continue
			}
		}
		out = append(out, *s)
	}
	return out, nil
}
