package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	attendanceerrors "github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/attendance/errors"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/employee"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/schedule"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/settings"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/timeclock"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Day(ctx context.Context, employeeID, date string) (DayResponse, error)
	DailyBoard(ctx context.Context, date string) (BoardResponse, error)
	Summary(ctx context.Context, period, date string) (SummaryResponse, error)
}

type service struct {
	timeclockRepo timeclock.Repository
	employeeRepo  employee.Repository
	settingsRepo  settings.Repository
	resolver      schedule.Resolver
	logger        *zap.Logger
	now           func() time.Time
}

func NewService(
	timeclockRepo timeclock.Repository,
	employeeRepo employee.Repository,
	settingsRepo settings.Repository,
	resolver schedule.Resolver,
) Service {
	return &service{
		timeclockRepo: timeclockRepo,
		employeeRepo:  employeeRepo,
		settingsRepo:  settingsRepo,
		resolver:      resolver,
		logger:        zap.L().Named("attendance.service"),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Day(ctx context.Context, employeeID, date string) (DayResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return DayResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	day, err := parseDate(date)
	if err != nil {
		return DayResponse{}, attendanceerrors.ErrInvalidDateFormat
	}

	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DayResponse{}, attendanceerrors.ErrEmployeeNotFound
		}
		return DayResponse{}, err
	}

	shift, err := s.resolver.Resolve(ctx, employeeID, day)
	if err != nil {
		return DayResponse{}, err
	}
	logs, err := s.timeclockRepo.FindByEmployeeBetween(ctx, employeeID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return DayResponse{}, err
	}
	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return DayResponse{}, err
	}

	return DayResponse{
		EmployeeID:        employeeID,
		Date:              date,
		DayClassification: ClassifyDay(emp.IsOnLeave, day, s.now(), shift, logs, cfg.HolidaySet()),
	}, nil
}

func (s *service) DailyBoard(ctx context.Context, date string) (BoardResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return BoardResponse{}, attendanceerrors.ErrInvalidDateFormat
	}

	employees, err := s.employeeRepo.FindAllActive(ctx)
	if err != nil {
		return BoardResponse{}, err
	}
	logs, err := s.timeclockRepo.FindAllBetween(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return BoardResponse{}, err
	}
	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return BoardResponse{}, err
	}
	holidays := cfg.HolidaySet()

	byEmployee := make(map[string][]timeclock.TimeLog)
	for _, log := range logs {
		key := log.EmployeeID.String()
		byEmployee[key] = append(byEmployee[key], log)
	}

	resp := BoardResponse{Date: date, Rows: make([]BoardRow, 0, len(employees))}
	for i := range employees {
		emp := &employees[i]
		shift, err := s.resolver.Resolve(ctx, emp.ID.String(), day)
		if err != nil {
			return BoardResponse{}, err
		}
		empLogs := byEmployee[emp.ID.String()]
		cls := ClassifyDay(emp.IsOnLeave, day, s.now(), shift, empLogs, holidays)

		row := BoardRow{
			EmployeeID:   emp.ID.String(),
			EmployeeCode: emp.EmployeeCode,
			FullName:     emp.FullName,
			Role:         emp.Role,
			Status:       cls.Status,
			LateMinutes:  cls.LateMinutes,
			WorkedHours:  cls.WorkedHours,
		}
		if len(empLogs) > 0 {
			first := earliestClockIn(empLogs).Format(time.RFC3339)
			row.FirstClockIn = &first
			if out, open := lastClockOut(empLogs); open {
				row.StillClockedIn = true
			} else if out != nil {
				v := out.Format(time.RFC3339)
				row.LastClockOut = &v
			}
		}
		resp.Rows = append(resp.Rows, row)
	}
	return resp, nil
}

// Summary aggregates per-employee attendance over a daily, weekly (Sunday
// start) or monthly window anchored at the given date. Totals count
// employee-days, so one employee late twice in a week contributes two to
// the late total.
func (s *service) Summary(ctx context.Context, period, date string) (SummaryResponse, error) {
	anchor, err := parseDate(date)
	if err != nil {
		return SummaryResponse{}, attendanceerrors.ErrInvalidDateFormat
	}
	from, to, err := periodRange(period, anchor)
	if err != nil {
		return SummaryResponse{}, err
	}

	employees, err := s.employeeRepo.FindAllActive(ctx)
	if err != nil {
		return SummaryResponse{}, err
	}
	logs, err := s.timeclockRepo.FindAllBetween(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return SummaryResponse{}, err
	}
	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return SummaryResponse{}, err
	}
	holidays := cfg.HolidaySet()

	// logs keyed by employee then clock-in date
	byDay := make(map[string]map[string][]timeclock.TimeLog)
	for _, log := range logs {
		empKey := log.EmployeeID.String()
		dayKey := log.ClockInAt.Format(dateLayout)
		if byDay[empKey] == nil {
			byDay[empKey] = make(map[string][]timeclock.TimeLog)
		}
		byDay[empKey][dayKey] = append(byDay[empKey][dayKey], log)
	}

	resp := SummaryResponse{
		Period:    period,
		From:      from.Format(dateLayout),
		To:        to.Format(dateLayout),
		Employees: make([]EmployeeSummary, 0, len(employees)),
	}
	today := s.now()

	for i := range employees {
		emp := &employees[i]
		row := EmployeeSummary{
			EmployeeID:   emp.ID.String(),
			EmployeeCode: emp.EmployeeCode,
			FullName:     emp.FullName,
			Role:         emp.Role,
		}

		streak := 0
		for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
			shift, err := s.resolver.Resolve(ctx, emp.ID.String(), day)
			if err != nil {
				return SummaryResponse{}, err
			}
			cls := ClassifyDay(emp.IsOnLeave, day, today, shift, byDay[emp.ID.String()][day.Format(dateLayout)], holidays)

			switch cls.Status {
			case StatusPresent:
				row.PresentDays++
				resp.Totals.Present++
			case StatusLate:
				row.PresentDays++
				row.LateDays++
				row.TotalLateMinutes += cls.LateMinutes
				resp.Totals.Late++
			case StatusAbsent:
				row.AbsentDays++
				resp.Totals.Absent++
			case StatusOnLeave:
				row.LeaveDays++
				resp.Totals.OnLeave++
			}

			if cls.Status == StatusAbsent {
				streak++
				if streak > row.MaxConsecutiveAbsences {
					row.MaxConsecutiveAbsences = streak
				}
			} else {
				streak = 0
			}

			row.WorkedHours += cls.WorkedHours
			row.OvertimeHours += cls.OvertimeHours
		}

		if row.MaxConsecutiveAbsences >= 3 {
			row.Anomalies = append(row.Anomalies, AnomalyAbsenceStreak)
		}
		if row.LateDays >= 3 {
			row.Anomalies = append(row.Anomalies, AnomalyFrequentLateness)
		}
		resp.Employees = append(resp.Employees, row)
	}
	return resp, nil
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

func periodRange(period string, anchor time.Time) (time.Time, time.Time, error) {
	switch period {
	case PeriodDaily:
		return anchor, anchor, nil
	case PeriodWeekly:
		start := anchor.AddDate(0, 0, -int(anchor.Weekday()))
		return start, start.AddDate(0, 0, 6), nil
	case PeriodMonthly:
		start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1), nil
	default:
		return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidPeriod
	}
}

// lastClockOut returns the latest close time; open reports an unfinished
// session among the logs.
func lastClockOut(logs []timeclock.TimeLog) (latest *time.Time, open bool) {
	for i := range logs {
		if logs[i].ClockOutAt == nil {
			open = true
			continue
		}
		if latest == nil || logs[i].ClockOutAt.After(*latest) {
			latest = logs[i].ClockOutAt
		}
	}
	return latest, open
}
