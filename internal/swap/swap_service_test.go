package swap_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/employee"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/schedule"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/shared/contextutil"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/swap"
	swaperrors "github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/swap/errors"
)

type memSwapRepo struct {
	byID map[string]*swap.ShiftSwapRequest
}

func newMemSwapRepo() *memSwapRepo {
	return &memSwapRepo{byID: make(map[string]*swap.ShiftSwapRequest)}
}

func (m *memSwapRepo) WithTx(*gorm.DB) swap.Repository { return m }

func (m *memSwapRepo) Create(_ context.Context, row *swap.ShiftSwapRequest) error {
	cp := *row
	m.byID[row.ID.String()] = &cp
	return nil
}

func (m *memSwapRepo) FindByID(_ context.Context, id string) (*swap.ShiftSwapRequest, error) {
	row, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *row
	return &cp, nil
}

func (m *memSwapRepo) FindByStatus(_ context.Context, status string) ([]swap.ShiftSwapRequest, error) {
	var rows []swap.ShiftSwapRequest
	for _, row := range m.byID {
		if row.Status == status {
			rows = append(rows, *row)
		}
	}
	return rows, nil
}

func (m *memSwapRepo) FindByEmployee(_ context.Context, employeeID string) ([]swap.ShiftSwapRequest, error) {
	var rows []swap.ShiftSwapRequest
	for _, row := range m.byID {
		if row.RequesterID.String() == employeeID || row.TargetID.String() == employeeID {
			rows = append(rows, *row)
		}
	}
	return rows, nil
}

func (m *memSwapRepo) Decide(_ context.Context, id, to string, decidedBy uuid.UUID, comment string, at time.Time) (int64, error) {
	row, ok := m.byID[id]
	if !ok || row.Status != swap.StatusPending {
		return 0, nil
	}
	row.Status = to
	row.DecidedBy, row.DecidedAt = &decidedBy, &at
	row.ManagerComment = comment
	return 1, nil
}

type fakeScheduleRepo struct {
	schedule.Repository
	upserted []schedule.ScheduleOverride
	fail     error
}

func (f *fakeScheduleRepo) WithTx(*gorm.DB) schedule.Repository { return f }

func (f *fakeScheduleRepo) UpsertOverrides(_ context.Context, rows []schedule.ScheduleOverride) error {
	if f.fail != nil {
		return f.fail
	}
	f.upserted = append(f.upserted, rows...)
	return nil
}

type fakeEmployeeRepo struct {
	employee.Repository
	known map[string]bool
}

func (f *fakeEmployeeRepo) FindByID(_ context.Context, id string) (*employee.Employee, error) {
	if !f.known[id] {
		return nil, gorm.ErrRecordNotFound
	}
	empID, _ := uuid.Parse(id)
	return &employee.Employee{ID: empID}, nil
}

type shiftResolver struct {
	byEmployee map[string]schedule.EffectiveShift
}

func (r *shiftResolver) Resolve(_ context.Context, employeeID string, _ time.Time) (schedule.EffectiveShift, error) {
	return r.byEmployee[employeeID], nil
}

type fixture struct {
	svc          swap.Service
	repo         *memSwapRepo
	scheduleRepo *fakeScheduleRepo
	requesterID  uuid.UUID
	targetID     uuid.UUID
}

func newFixture(t *testing.T, txCount int) *fixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < txCount; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectRollback()
	}
	gormDB := newGormDB(t, db)

	f := &fixture{
		repo:         newMemSwapRepo(),
		scheduleRepo: &fakeScheduleRepo{},
		requesterID:  uuid.New(),
		targetID:     uuid.New(),
	}
	empRepo := &fakeEmployeeRepo{known: map[string]bool{
		f.requesterID.String(): true,
		f.targetID.String():    true,
	}}
	resolver := &shiftResolver{byEmployee: map[string]schedule.EffectiveShift{
		f.requesterID.String(): {IsWorking: true, StartTime: "07:00", EndTime: "15:00", GraceMinutes: 15, Source: "weekly"},
		f.targetID.String():    {IsWorking: true, StartTime: "15:00", EndTime: "23:00", GraceMinutes: 10, Source: "weekly"},
	}}
	f.svc = swap.NewService(gormDB, f.repo, f.scheduleRepo, empRepo, resolver)
	return f
}

func newGormDB(t *testing.T, db *sql.DB) *gorm.DB {
	t.Helper()
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	return gormDB
}

func (f *fixture) submit(t *testing.T) swap.SwapResponse {
	t.Helper()
	resp, err := f.svc.Submit(context.Background(), swap.SubmitRequest{
		RequesterID: f.requesterID.String(),
		TargetID:    f.targetID.String(),
		ShiftDate:   "2024-05-10",
		Reason:      "family visit",
	})
	require.NoError(t, err)
	return resp
}

func managerCtx() context.Context {
	return contextutil.WithUserID(context.Background(), uuid.NewString())
}

func TestApproveCrossesShifts(t *testing.T) {
	f := newFixture(t, 1)
	req := f.submit(t)

	got, err := f.svc.Approve(managerCtx(), req.ID, swap.DecideRequest{Comment: "both confirmed in person"})
	require.NoError(t, err)
	assert.Equal(t, swap.StatusApproved, got.Status)
	assert.NotNil(t, got.DecidedAt)
	assert.Equal(t, "both confirmed in person", got.ManagerComment)

	require.Len(t, f.scheduleRepo.upserted, 2)
	byEmployee := map[string]schedule.ScheduleOverride{}
	for _, o := range f.scheduleRepo.upserted {
		byEmployee[o.EmployeeID.String()] = o
	}

	requesterOverride := byEmployee[f.requesterID.String()]
	targetOverride := byEmployee[f.targetID.String()]

	// each party now holds the other's shift
	assert.Equal(t, "15:00", *requesterOverride.StartTime)
	assert.Equal(t, "23:00", *requesterOverride.EndTime)
	assert.Equal(t, 10, *requesterOverride.GraceMinutes)
	assert.Equal(t, "07:00", *targetOverride.StartTime)
	assert.Equal(t, "15:00", *targetOverride.EndTime)
	assert.Equal(t, 15, *targetOverride.GraceMinutes)

	for _, o := range f.scheduleRepo.upserted {
		assert.Equal(t, "2024-05-10", o.ShiftDate)
		require.NotNil(t, o.SwapRequestID)
		assert.Equal(t, req.ID, o.SwapRequestID.String())
		require.NotNil(t, o.IsWorking)
		assert.True(t, *o.IsWorking)
	}
}

func TestRejectLeavesSchedulesUntouched(t *testing.T) {
	f := newFixture(t, 0)
	req := f.submit(t)

	got, err := f.svc.Reject(managerCtx(), req.ID, swap.DecideRequest{Comment: "short staffed that evening"})
	require.NoError(t, err)
	assert.Equal(t, swap.StatusRejected, got.Status)
	assert.Equal(t, "short staffed that evening", got.ManagerComment)
	assert.Empty(t, f.scheduleRepo.upserted)
}

func TestApproveAfterDecisionFails(t *testing.T) {
	f := newFixture(t, 0)
	req := f.submit(t)

	_, err := f.svc.Reject(managerCtx(), req.ID, swap.DecideRequest{})
	require.NoError(t, err)

	_, err = f.svc.Approve(managerCtx(), req.ID, swap.DecideRequest{})
	assert.ErrorIs(t, err, swaperrors.ErrNotPending)
	assert.Empty(t, f.scheduleRepo.upserted)
}

func TestSubmitRejectsSelfSwap(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.svc.Submit(context.Background(), swap.SubmitRequest{
		RequesterID: f.requesterID.String(),
		TargetID:    f.requesterID.String(),
		ShiftDate:   "2024-05-10",
	})
	assert.ErrorIs(t, err, swaperrors.ErrSelfSwap)
}

func TestSubmitRejectsUnknownEmployee(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.svc.Submit(context.Background(), swap.SubmitRequest{
		RequesterID: f.requesterID.String(),
		TargetID:    uuid.NewString(),
		ShiftDate:   "2024-05-10",
	})
	assert.ErrorIs(t, err, swaperrors.ErrEmployeeNotFound)
}

func TestCancelRequiresRequester(t *testing.T) {
	f := newFixture(t, 0)
	req := f.submit(t)

	_, err := f.svc.Cancel(managerCtx(), req.ID)
	assert.ErrorIs(t, err, swaperrors.ErrNotRequester)

	ctx := contextutil.WithUserID(context.Background(), f.requesterID.String())
	got, err := f.svc.Cancel(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, swap.StatusCancelled, got.Status)
}

func TestApproveFailClosedWhenOverrideWriteFails(t *testing.T) {
	f := newFixture(t, 1)
	f.scheduleRepo.fail = gorm.ErrInvalidTransaction
	req := f.submit(t)

	_, err := f.svc.Approve(managerCtx(), req.ID, swap.DecideRequest{})
	assert.Error(t, err)
	assert.Empty(t, f.scheduleRepo.upserted)
}

// Runs Approve against the real repository on a mocked connection and
// checks, statement by statement, that the decision update happens
// inside the transaction and is rolled back when the override write
// fails.
func TestApproveDecisionRidesServiceTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	gormDB := newGormDB(t, db)

	requesterID, targetID, swapID := uuid.New(), uuid.New(), uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM "shift_swap_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "requester_id", "target_id", "shift_date", "status"}).
			AddRow(swapID.String(), requesterID.String(), targetID.String(), "2024-05-10", swap.StatusPending))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "shift_swap_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	scheduleRepo := &fakeScheduleRepo{fail: gorm.ErrInvalidTransaction}
	resolver := &shiftResolver{byEmployee: map[string]schedule.EffectiveShift{}}
	svc := swap.NewService(gormDB, swap.NewRepository(gormDB), scheduleRepo, &fakeEmployeeRepo{}, resolver)

	_, err = svc.Approve(managerCtx(), swapID.String(), swap.DecideRequest{})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
