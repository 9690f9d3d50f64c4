package attendance_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/attendance"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/employee"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/schedule"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/settings"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/timeclock"
)

type fakeTimeclockRepo struct {
	timeclock.Repository
	findAllBetweenFn        func(ctx context.Context, from, to time.Time) ([]timeclock.TimeLog, error)
	findByEmployeeBetweenFn func(ctx context.Context, employeeID string, from, to time.Time) ([]timeclock.TimeLog, error)
}

func (f *fakeTimeclockRepo) FindAllBetween(ctx context.Context, from, to time.Time) ([]timeclock.TimeLog, error) {
	return f.findAllBetweenFn(ctx, from, to)
}

func (f *fakeTimeclockRepo) FindByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]timeclock.TimeLog, error) {
	return f.findByEmployeeBetweenFn(ctx, employeeID, from, to)
}

type fakeEmployeeRepo struct {
	employee.Repository
	findAllActiveFn func(ctx context.Context) ([]employee.Employee, error)
	findByIDFn      func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepo) FindAllActive(ctx context.Context) ([]employee.Employee, error) {
	return f.findAllActiveFn(ctx)
}

func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return f.findByIDFn(ctx, id)
}

type fakeSettingsRepo struct {
	cfg *settings.SystemSettings
}

func (f *fakeSettingsRepo) Get(context.Context) (*settings.SystemSettings, error) {
	if f.cfg != nil {
		return f.cfg, nil
	}
	return &settings.SystemSettings{LatePenaltyType: settings.PenaltyPerMinute, Currency: "QAR"}, nil
}

func (f *fakeSettingsRepo) Save(context.Context, *settings.SystemSettings) error { return nil }

type fakeResolver struct {
	resolveFn func(ctx context.Context, employeeID string, date time.Time) (schedule.EffectiveShift, error)
}

func (f *fakeResolver) Resolve(ctx context.Context, employeeID string, date time.Time) (schedule.EffectiveShift, error) {
	return f.resolveFn(ctx, employeeID, date)
}

func fixedShiftResolver(start, end string, grace int) *fakeResolver {
	return &fakeResolver{resolveFn: func(context.Context, string, time.Time) (schedule.EffectiveShift, error) {
		return schedule.EffectiveShift{
			IsWorking:    true,
			StartTime:    start,
			EndTime:      end,
			GraceMinutes: grace,
			Source:       "weekly",
		}, nil
	}}
}

func sessionOn(empID uuid.UUID, day time.Time, inHour, inMinute, outHour int) timeclock.TimeLog {
	in := time.Date(day.Year(), day.Month(), day.Day(), inHour, inMinute, 0, 0, time.UTC)
	out := time.Date(day.Year(), day.Month(), day.Day(), outHour, 0, 0, 0, time.UTC)
	return timeclock.TimeLog{ID: uuid.New(), EmployeeID: empID, ClockInAt: in, ClockOutAt: &out}
}

// The week of 2024-05-05 (Sunday) through 2024-05-11 lies entirely in the
// past, so every unworked day classifies as absent without clock injection.
func TestSummaryWeeklyCountsAndAnomalies(t *testing.T) {
	punctualID := uuid.New()
	tardyID := uuid.New()
	ghostID := uuid.New()

	weekStart := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)

	var logs []timeclock.TimeLog
	for offset := 0; offset < 7; offset++ {
		day := weekStart.AddDate(0, 0, offset)
		logs = append(logs, sessionOn(punctualID, day, 8, 0, 16))
	}
	// tardy: three late arrivals, on time otherwise
	for offset := 0; offset < 7; offset++ {
		day := weekStart.AddDate(0, 0, offset)
		if offset < 3 {
			logs = append(logs, sessionOn(tardyID, day, 8, 30, 16))
		} else {
			logs = append(logs, sessionOn(tardyID, day, 8, 0, 16))
		}
	}
	// ghost: worked the first two days then vanished for five

	logs = append(logs,
		sessionOn(ghostID, weekStart, 8, 0, 16),
		sessionOn(ghostID, weekStart.AddDate(0, 0, 1), 8, 0, 16),
	)

	employees := []employee.Employee{
		{ID: punctualID, EmployeeCode: "EMP-001", FullName: "Punctual", Role: "ROASTER"},
		{ID: tardyID, EmployeeCode: "EMP-002", FullName: "Tardy", Role: "CASHIER"},
		{ID: ghostID, EmployeeCode: "EMP-003", FullName: "Ghost", Role: "CASHIER"},
	}

	svc := attendance.NewService(
		&fakeTimeclockRepo{findAllBetweenFn: func(context.Context, time.Time, time.Time) ([]timeclock.TimeLog, error) {
			return logs, nil
		}},
		&fakeEmployeeRepo{findAllActiveFn: func(context.Context) ([]employee.Employee, error) {
			return employees, nil
		}},
		&fakeSettingsRepo{},
		fixedShiftResolver("08:00", "16:00", 15),
	)

	got, err := svc.Summary(context.Background(), attendance.PeriodWeekly, "2024-05-08")
	require.NoError(t, err)

	assert.Equal(t, "2024-05-05", got.From)
	assert.Equal(t, "2024-05-11", got.To)
	require.Len(t, got.Employees, 3)

	punctual := got.Employees[0]
	assert.Equal(t, 7, punctual.PresentDays)
	assert.Zero(t, punctual.LateDays)
	assert.Empty(t, punctual.Anomalies)
	assert.InDelta(t, 56.0, punctual.WorkedHours, 1e-9)

	tardy := got.Employees[1]
	assert.Equal(t, 7, tardy.PresentDays)
	assert.Equal(t, 3, tardy.LateDays)
	assert.Equal(t, 45, tardy.TotalLateMinutes)
	assert.Contains(t, tardy.Anomalies, attendance.AnomalyFrequentLateness)

	ghost := got.Employees[2]
	assert.Equal(t, 2, ghost.PresentDays)
	assert.Equal(t, 5, ghost.AbsentDays)
	assert.Equal(t, 5, ghost.MaxConsecutiveAbsences)
	assert.Contains(t, ghost.Anomalies, attendance.AnomalyAbsenceStreak)

	assert.Equal(t, 5, got.Totals.Absent)
	assert.Equal(t, 3, got.Totals.Late)
	assert.Equal(t, 13, got.Totals.Present)
}

func TestSummaryOnLeaveEmployeeCountsLeaveDays(t *testing.T) {
	leaveID := uuid.New()
	svc := attendance.NewService(
		&fakeTimeclockRepo{findAllBetweenFn: func(context.Context, time.Time, time.Time) ([]timeclock.TimeLog, error) {
			return nil, nil
		}},
		&fakeEmployeeRepo{findAllActiveFn: func(context.Context) ([]employee.Employee, error) {
			return []employee.Employee{{ID: leaveID, EmployeeCode: "EMP-009", FullName: "Away", Role: "HR", IsOnLeave: true}}, nil
		}},
		&fakeSettingsRepo{},
		fixedShiftResolver("08:00", "16:00", 15),
	)

	got, err := svc.Summary(context.Background(), attendance.PeriodDaily, "2024-05-06")
	require.NoError(t, err)

	require.Len(t, got.Employees, 1)
	assert.Equal(t, 1, got.Employees[0].LeaveDays)
	assert.Zero(t, got.Employees[0].AbsentDays)
	assert.Equal(t, 1, got.Totals.OnLeave)
}

func TestSummaryRejectsUnknownPeriod(t *testing.T) {
	svc := attendance.NewService(&fakeTimeclockRepo{}, &fakeEmployeeRepo{}, &fakeSettingsRepo{}, &fakeResolver{})

	_, err := svc.Summary(context.Background(), "quarterly", "2024-05-06")
	assert.Error(t, err)
}

func TestDayReturnsClassification(t *testing.T) {
	empID := uuid.New()
	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)

	svc := attendance.NewService(
		&fakeTimeclockRepo{findByEmployeeBetweenFn: func(context.Context, string, time.Time, time.Time) ([]timeclock.TimeLog, error) {
			return []timeclock.TimeLog{sessionOn(empID, day, 8, 20, 16)}, nil
		}},
		&fakeEmployeeRepo{findByIDFn: func(context.Context, string) (*employee.Employee, error) {
			return &employee.Employee{ID: empID, FullName: "Tardy"}, nil
		}},
		&fakeSettingsRepo{},
		fixedShiftResolver("08:00", "16:00", 15),
	)

	got, err := svc.Day(context.Background(), empID.String(), "2024-05-06")
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusLate, got.Status)
	assert.Equal(t, 5, got.LateMinutes)
}

func TestDayRejectsBadInput(t *testing.T) {
	svc := attendance.NewService(&fakeTimeclockRepo{}, &fakeEmployeeRepo{}, &fakeSettingsRepo{}, &fakeResolver{})

	_, err := svc.Day(context.Background(), "not-a-uuid", "2024-05-06")
	assert.Error(t, err)

	_, err = svc.Day(context.Background(), uuid.NewString(), "06-05-2024")
	assert.Error(t, err)
}
