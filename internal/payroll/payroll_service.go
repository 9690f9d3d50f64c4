package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/advance"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/attendance"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/employee"
	payrollerrors "github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/payroll/errors"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/schedule"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/settings"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/timeclock"
)

const (
	monthLayout   = "2006-01"
	dateLayout    = "2006-01-02"
	cacheTTL      = 5 * time.Minute
	cacheKeyMonth = "payroll:month:"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	ComputeMonth(ctx context.Context, month string) (MonthResponse, error)
	Payslip(ctx context.Context, employeeID, month string) (Line, error)
	History(ctx context.Context, month string) (HistoryResponse, error)
	SnapshotRows(summary MonthResponse) []PayrollHistory
	InvalidateMonth(ctx context.Context, month string)
}

type service struct {
	employeeRepo  employee.Repository
	timeclockRepo timeclock.Repository
	settingsRepo  settings.Repository
	advanceRepo   advance.Repository
	historyRepo   HistoryRepository
	resolver      schedule.Resolver
	rdb           *redis.Client
	group         singleflight.Group
	logger        *zap.Logger
	now           func() time.Time
}

func NewService(
	employeeRepo employee.Repository,
	timeclockRepo timeclock.Repository,
	settingsRepo settings.Repository,
	advanceRepo advance.Repository,
	historyRepo HistoryRepository,
	resolver schedule.Resolver,
	rdb *redis.Client,
) Service {
	return &service{
		employeeRepo:  employeeRepo,
		timeclockRepo: timeclockRepo,
		settingsRepo:  settingsRepo,
		advanceRepo:   advanceRepo,
		historyRepo:   historyRepo,
		resolver:      resolver,
		rdb:           rdb,
		logger:        zap.L().Named("payroll.service"),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// ComputeMonth builds the pay run for a month from attendance and
// advances as they stand now. Only days strictly before today are
// evaluated, so an in-progress month shows a projection that converges
// as days close. Concurrent requests for the same month share one
// computation, and a short cache absorbs dashboard refreshes.
func (s *service) ComputeMonth(ctx context.Context, month string) (MonthResponse, error) {
	if _, err := time.Parse(monthLayout, month); err != nil {
		return MonthResponse{}, payrollerrors.ErrInvalidMonthFormat
	}

	if cached, ok := s.cacheGet(ctx, month); ok {
		return cached, nil
	}

	v, err, _ := s.group.Do(month, func() (interface{}, error) {
		summary, err := s.computeMonth(ctx, month)
		if err != nil {
			return nil, err
		}
		s.cacheSet(ctx, month, summary)
		return summary, nil
	})
	if err != nil {
		return MonthResponse{}, err
	}
	return v.(MonthResponse), nil
}

func (s *service) computeMonth(ctx context.Context, month string) (MonthResponse, error) {
	start, _ := time.ParseInLocation(monthLayout, month, time.UTC)
	end := start.AddDate(0, 1, 0)

	employees, err := s.employeeRepo.FindAllActive(ctx)
	if err != nil {
		return MonthResponse{}, err
	}
	logs, err := s.timeclockRepo.FindAllBetween(ctx, start, end)
	if err != nil {
		return MonthResponse{}, err
	}
	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return MonthResponse{}, err
	}
	payments, err := s.advanceRepo.PaymentsBetween(ctx, start, end)
	if err != nil {
		return MonthResponse{}, err
	}

	holidays := cfg.HolidaySet()
	policy := cfg.Policy()
	today := s.now()

	byDay := make(map[string]map[string][]timeclock.TimeLog)
	for _, log := range logs {
		empKey := log.EmployeeID.String()
		dayKey := log.ClockInAt.Format(dateLayout)
		if byDay[empKey] == nil {
			byDay[empKey] = make(map[string][]timeclock.TimeLog)
		}
		byDay[empKey][dayKey] = append(byDay[empKey][dayKey], log)
	}

	deductions := make(map[string]float64)
	for _, p := range payments {
		deductions[p.EmployeeID] += p.Amount
	}

	summary := MonthResponse{
		Month: month,
		From:  start.Format(dateLayout),
		To:    end.AddDate(0, 0, -1).Format(dateLayout),
		Lines: make([]Line, 0, len(employees)),
	}

	for i := range employees {
		emp := &employees[i]
		var days []attendance.DayClassification

		for day := start; day.Before(end) && day.Format(dateLayout) < today.Format(dateLayout); day = day.AddDate(0, 0, 1) {
			shift, err := s.resolver.Resolve(ctx, emp.ID.String(), day)
			if err != nil {
				return MonthResponse{}, err
			}
			days = append(days, attendance.ClassifyDay(
				emp.IsOnLeave, day, today, shift,
				byDay[emp.ID.String()][day.Format(dateLayout)], holidays,
			))
		}

		line := ComputeLine(emp, days, policy, deductions[emp.ID.String()], cfg.Currency)
		summary.Lines = append(summary.Lines, line)

		summary.Totals.GrossPay += line.GrossPay
		summary.Totals.OvertimePay += line.OvertimePay
		summary.Totals.AbsenceDeduction += line.AbsenceDeduction
		summary.Totals.LatePenalty += line.LatePenalty
		summary.Totals.AdvanceDeduction += line.AdvanceDeduction
		summary.Totals.NetPay += line.NetPay
	}

	s.logger.Info("payroll month computed",
		zap.String("month", month),
		zap.Int("employees", len(summary.Lines)),
		zap.Float64("net_total", summary.Totals.NetPay),
	)
	return summary, nil
}

func (s *service) Payslip(ctx context.Context, employeeID, month string) (Line, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return Line{}, payrollerrors.ErrInvalidEmployeeID
	}

	summary, err := s.ComputeMonth(ctx, month)
	if err != nil {
		return Line{}, err
	}
	for _, line := range summary.Lines {
		if line.EmployeeID == employeeID {
			return line, nil
		}
	}
	return Line{}, payrollerrors.ErrEmployeeNotFound
}

func (s *service) History(ctx context.Context, month string) (HistoryResponse, error) {
	if _, err := time.Parse(monthLayout, month); err != nil {
		return HistoryResponse{}, payrollerrors.ErrInvalidMonthFormat
	}

	rows, err := s.historyRepo.FindByMonth(ctx, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HistoryResponse{}, payrollerrors.ErrNoHistoryForMonth
		}
		return HistoryResponse{}, err
	}
	if len(rows) == 0 {
		return HistoryResponse{}, payrollerrors.ErrNoHistoryForMonth
	}
	return HistoryResponse{Month: month, Rows: rows}, nil
}

// SnapshotRows converts a computed summary into history rows for the
// finalize step.
func (s *service) SnapshotRows(summary MonthResponse) []PayrollHistory {
	rows := make([]PayrollHistory, 0, len(summary.Lines))
	for _, line := range summary.Lines {
		empID, err := uuid.Parse(line.EmployeeID)
		if err != nil {
			continue
		}
		rows = append(rows, PayrollHistory{
			ID:               uuid.New(),
			Month:            summary.Month,
			EmployeeID:       empID,
			EmployeeCode:     line.EmployeeCode,
			FullName:         line.FullName,
			BaseSalary:       line.BaseSalary,
			Allowances:       line.Allowances,
			GrossPay:         line.GrossPay,
			OvertimePay:      line.OvertimePay,
			AbsenceDeduction: line.AbsenceDeduction,
			LatePenalty:      line.LatePenalty,
			AdvanceDeduction: line.AdvanceDeduction,
			NetPay:           line.NetPay,
			WorkedHours:      line.WorkedHours,
			OvertimeHours:    line.OvertimeHours,
			PresentDays:      line.PresentDays,
			AbsentDays:       line.AbsentDays,
			LateDays:         line.LateDays,
		})
	}
	return rows
}

// InvalidateMonth drops the cached summary after writes that change the
// month's inputs, approval state included.
func (s *service) InvalidateMonth(ctx context.Context, month string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, cacheKeyMonth+month).Err(); err != nil {
		s.logger.Warn("payroll cache invalidation failed", zap.String("month", month), zap.Error(err))
	}
}

func (s *service) cacheGet(ctx context.Context, month string) (MonthResponse, bool) {
	if s.rdb == nil {
		return MonthResponse{}, false
	}
	raw, err := s.rdb.Get(ctx, cacheKeyMonth+month).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("payroll cache read failed", zap.String("month", month), zap.Error(err))
		}
		return MonthResponse{}, false
	}
	var summary MonthResponse
	if err := json.Unmarshal(raw, &summary); err != nil {
		return MonthResponse{}, false
	}
	return summary, true
}

func (s *service) cacheSet(ctx context.Context, month string, summary MonthResponse) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, cacheKeyMonth+month, raw, cacheTTL).Err(); err != nil {
		s.logger.Warn("payroll cache write failed", zap.String("month", month), zap.Error(err))
	}
}
