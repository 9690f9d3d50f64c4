package schedule_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/employee"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/schedule"
	scheduleerrors "github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/schedule/errors"
)

type svcScheduleRepo struct {
	schedule.Repository
	findWeekFn        func(ctx context.Context, employeeID string) ([]schedule.WeeklyScheduleDay, error)
	replacedWeeks     map[string][]schedule.WeeklyScheduleDay
	upsertedOverrides []schedule.ScheduleOverride
}

func newSvcScheduleRepo() *svcScheduleRepo {
	return &svcScheduleRepo{replacedWeeks: make(map[string][]schedule.WeeklyScheduleDay)}
}

func (f *svcScheduleRepo) WithTx(*gorm.DB) schedule.Repository { return f }

func (f *svcScheduleRepo) FindWeek(ctx context.Context, employeeID string) ([]schedule.WeeklyScheduleDay, error) {
	if f.findWeekFn == nil {
		return nil, nil
	}
	return f.findWeekFn(ctx, employeeID)
}

func (f *svcScheduleRepo) ReplaceWeek(_ context.Context, employeeID string, days []schedule.WeeklyScheduleDay) error {
	f.replacedWeeks[employeeID] = days
	return nil
}

func (f *svcScheduleRepo) UpsertOverrides(_ context.Context, rows []schedule.ScheduleOverride) error {
	f.upsertedOverrides = append(f.upsertedOverrides, rows...)
	return nil
}

func newScheduleTestService(t *testing.T, repo schedule.Repository, empRepo employee.Repository, txCount int) schedule.Service {
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
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	return schedule.NewService(gormDB, repo, empRepo, schedule.NewResolver(repo, empRepo))
}

func fullWeek() []schedule.WeekDayRequest {
	days := make([]schedule.WeekDayRequest, 7)
	for d := 0; d < 7; d++ {
		days[d] = schedule.WeekDayRequest{
			DayOfWeek: d,
			IsWorking: d != 5, // Friday off
			StartTime: strPtr("08:00"),
			EndTime:   strPtr("16:00"),
		}
	}
	return days
}

func TestReplaceWeekWritesAllSevenDays(t *testing.T) {
	repo := newSvcScheduleRepo()
	svc := newScheduleTestService(t, repo, &fakeEmployeeRepo{}, 1)
	employeeID := uuid.New().String()

	res, err := svc.ReplaceWeek(context.Background(), employeeID, schedule.ReplaceWeekRequest{Days: fullWeek()})
	require.NoError(t, err)

	require.Len(t, res, 7)
	require.Len(t, repo.replacedWeeks[employeeID], 7)
	assert.False(t, res[5].IsWorking)
	assert.Equal(t, "08:00", res[0].StartTime)

	saved := repo.replacedWeeks[employeeID][5]
	require.NotNil(t, saved.IsWorking)
	assert.False(t, *saved.IsWorking)
	assert.Nil(t, saved.StartTime, "non-working days drop their times")
}

func TestReplaceWeekRejectsIncompleteWeek(t *testing.T) {
	svc := newScheduleTestService(t, newSvcScheduleRepo(), &fakeEmployeeRepo{}, 0)

	_, err := svc.ReplaceWeek(context.Background(), uuid.New().String(), schedule.ReplaceWeekRequest{
		Days: fullWeek()[:6],
	})
	assert.ErrorIs(t, err, scheduleerrors.ErrIncompleteWeek)
}

func TestReplaceWeekRejectsDuplicateDay(t *testing.T) {
	svc := newScheduleTestService(t, newSvcScheduleRepo(), &fakeEmployeeRepo{}, 0)

	days := fullWeek()
	days[6].DayOfWeek = 0
	_, err := svc.ReplaceWeek(context.Background(), uuid.New().String(), schedule.ReplaceWeekRequest{Days: days})
	assert.ErrorIs(t, err, scheduleerrors.ErrIncompleteWeek)
}

func TestReplaceWeekRejectsBadDayAndTime(t *testing.T) {
	svc := newScheduleTestService(t, newSvcScheduleRepo(), &fakeEmployeeRepo{}, 0)

	days := fullWeek()
	days[0].DayOfWeek = 7
	_, err := svc.ReplaceWeek(context.Background(), uuid.New().String(), schedule.ReplaceWeekRequest{Days: days})
	assert.ErrorIs(t, err, scheduleerrors.ErrInvalidDayOfWeek)

	days = fullWeek()
	days[2].StartTime = strPtr("26:00")
	_, err = svc.ReplaceWeek(context.Background(), uuid.New().String(), schedule.ReplaceWeekRequest{Days: days})
	assert.ErrorIs(t, err, scheduleerrors.ErrInvalidTimeFormat)
}

func TestBulkApplyWeekCopiesTemplate(t *testing.T) {
	source := uuid.New().String()
	targetA := uuid.New().String()
	targetB := uuid.New().String()

	repo := newSvcScheduleRepo()
	repo.findWeekFn = func(_ context.Context, employeeID string) ([]schedule.WeeklyScheduleDay, error) {
		require.Equal(t, source, employeeID)
		rows := make([]schedule.WeeklyScheduleDay, 7)
		for d := 0; d < 7; d++ {
			rows[d] = schedule.WeeklyScheduleDay{
				DayOfWeek: d,
				IsWorking: boolPtr(true),
				StartTime: strPtr("07:00"),
				EndTime:   strPtr("15:00"),
			}
		}
		return rows, nil
	}
	svc := newScheduleTestService(t, repo, &fakeEmployeeRepo{}, 1)

	written, err := svc.BulkApplyWeek(context.Background(), schedule.BulkApplyWeekRequest{
		SourceEmployeeID:  source,
		TargetEmployeeIDs: []string{targetA, targetB},
	})
	require.NoError(t, err)

	assert.Equal(t, 14, written)
	require.Len(t, repo.replacedWeeks[targetA], 7)
	require.Len(t, repo.replacedWeeks[targetB], 7)
	assert.Equal(t, targetB, repo.replacedWeeks[targetB][0].EmployeeID.String())
}

func TestBulkApplyWeekRequiresTemplateAndTargets(t *testing.T) {
	svc := newScheduleTestService(t, newSvcScheduleRepo(), &fakeEmployeeRepo{}, 0)

	_, err := svc.BulkApplyWeek(context.Background(), schedule.BulkApplyWeekRequest{
		SourceEmployeeID: uuid.New().String(),
	})
	assert.ErrorIs(t, err, scheduleerrors.ErrNoTargetEmployees)

	_, err = svc.BulkApplyWeek(context.Background(), schedule.BulkApplyWeekRequest{
		SourceEmployeeID:  uuid.New().String(),
		TargetEmployeeIDs: []string{uuid.New().String()},
	})
	assert.ErrorIs(t, err, scheduleerrors.ErrNoTemplateToApply)
}

func TestUpsertOverrideValidatesAndWrites(t *testing.T) {
	repo := newSvcScheduleRepo()
	svc := newScheduleTestService(t, repo, &fakeEmployeeRepo{}, 0)
	employeeID := uuid.New().String()

	_, err := svc.UpsertOverride(context.Background(), employeeID, schedule.OverrideRequest{ShiftDate: "06-05-2024"})
	assert.ErrorIs(t, err, scheduleerrors.ErrInvalidDateFormat)

	_, err = svc.UpsertOverride(context.Background(), employeeID, schedule.OverrideRequest{
		ShiftDate: "2024-05-06",
		StartTime: strPtr("8am"),
	})
	assert.ErrorIs(t, err, scheduleerrors.ErrInvalidTimeFormat)

	res, err := svc.UpsertOverride(context.Background(), employeeID, schedule.OverrideRequest{
		ShiftDate:    "2024-05-06",
		IsWorking:    true,
		StartTime:    strPtr("10:00"),
		EndTime:      strPtr("18:00"),
		GraceMinutes: intPtr(5),
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-05-06", res.ShiftDate)
	assert.Equal(t, 5, res.GraceMinutes)
	require.Len(t, repo.upsertedOverrides, 1)
	assert.Equal(t, employeeID, repo.upsertedOverrides[0].EmployeeID.String())
}

func TestGetWeekSynthesizesDefaultsWhenEmpty(t *testing.T) {
	empRepo := &fakeEmployeeRepo{findByIDFn: func(context.Context, string) (*employee.Employee, error) {
		return baristaWithDefaults(), nil
	}}
	svc := newScheduleTestService(t, newSvcScheduleRepo(), empRepo, 0)

	res, err := svc.GetWeek(context.Background(), uuid.New().String())
	require.NoError(t, err)

	require.Len(t, res, 7)
	for _, day := range res {
		assert.True(t, day.IsWorking)
		assert.Equal(t, "08:00", day.StartTime)
		assert.Equal(t, schedule.DefaultGraceMinutes, day.GraceMinutes)
	}
}

func TestResolveDayRejectsBadInput(t *testing.T) {
	svc := newScheduleTestService(t, newSvcScheduleRepo(), &fakeEmployeeRepo{}, 0)

	_, err := svc.ResolveDay(context.Background(), "not-a-uuid", "2024-05-06")
	assert.ErrorIs(t, err, scheduleerrors.ErrInvalidEmployeeID)

	_, err = svc.ResolveDay(context.Background(), uuid.New().String(), "May 6")
	assert.ErrorIs(t, err, scheduleerrors.ErrInvalidDateFormat)
}
