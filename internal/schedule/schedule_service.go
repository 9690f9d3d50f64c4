package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/employee"
	scheduleerrors "github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/schedule/errors"
)

//go:generate mockgen -source=schedule_service.go -destination=mock/schedule_service_mock.go -package=mock
type Service interface {
	GetWeek(ctx context.Context, employeeID string) ([]WeekDayResponse, error)
	ReplaceWeek(ctx context.Context, employeeID string, req ReplaceWeekRequest) ([]WeekDayResponse, error)
	BulkApplyWeek(ctx context.Context, req BulkApplyWeekRequest) (int, error)
	UpsertOverride(ctx context.Context, employeeID string, req OverrideRequest) (OverrideResponse, error)
	GetOverrides(ctx context.Context, employeeID, fromDate, toDate string) ([]OverrideResponse, error)
	ResolveDay(ctx context.Context, employeeID, date string) (EffectiveShiftResponse, error)
}

type service struct {
	db           *gorm.DB
	repo         Repository
	employeeRepo employee.Repository
	resolver     Resolver
	logger       *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, employeeRepo employee.Repository, resolver Resolver) Service {
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		resolver:     resolver,
		logger:       zap.L().Named("schedule.service"),
	}
}

// GetWeek returns the saved weekly template, synthesizing a default week
// from the employee's own shift fields when no rows exist yet.
func (s *service) GetWeek(ctx context.Context, employeeID string) ([]WeekDayResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, scheduleerrors.ErrInvalidEmployeeID
	}

	rows, err := s.repo.FindWeek(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		res := make([]WeekDayResponse, len(rows))
		for i, row := range rows {
			res[i] = mapWeekDay(row)
		}
		return res, nil
	}

	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, scheduleerrors.ErrInvalidEmployeeID
		}
		return nil, err
	}

	base := defaultShift(emp)
	res := make([]WeekDayResponse, 7)
	for day := 0; day < 7; day++ {
		res[day] = WeekDayResponse{
			DayOfWeek:    day,
			IsWorking:    base.IsWorking,
			StartTime:    base.StartTime,
			EndTime:      base.EndTime,
			BreakMinutes: base.BreakMinutes,
			GraceMinutes: base.GraceMinutes,
		}
	}
	return res, nil
}

func (s *service) ReplaceWeek(ctx context.Context, employeeID string, req ReplaceWeekRequest) ([]WeekDayResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, scheduleerrors.ErrInvalidEmployeeID
	}

	rows, err := buildWeekRows(employeeUUID, req.Days)
	if err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.ReplaceWeek(ctx, employeeID, rows); err != nil {
		s.logger.Error("replace weekly schedule failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.logger.Info("weekly schedule replaced", zap.String("employee_id", employeeID))
	res := make([]WeekDayResponse, len(rows))
	for i, row := range rows {
		res[i] = mapWeekDay(row)
	}
	return res, nil
}

// BulkApplyWeek copies one employee's saved weekly template onto a set of
// other employees. Returns how many rows were written.
func (s *service) BulkApplyWeek(ctx context.Context, req BulkApplyWeekRequest) (int, error) {
	if _, err := uuid.Parse(req.SourceEmployeeID); err != nil {
		return 0, scheduleerrors.ErrInvalidEmployeeID
	}
	if len(req.TargetEmployeeIDs) == 0 {
		return 0, scheduleerrors.ErrNoTargetEmployees
	}

	template, err := s.repo.FindWeek(ctx, req.SourceEmployeeID)
	if err != nil {
		return 0, err
	}
	if len(template) == 0 {
		return 0, scheduleerrors.ErrNoTemplateToApply
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	written := 0
	for _, targetID := range req.TargetEmployeeIDs {
		targetUUID, err := uuid.Parse(targetID)
		if err != nil {
			return 0, scheduleerrors.ErrInvalidEmployeeID
		}
		rows := make([]WeeklyScheduleDay, len(template))
		for i, day := range template {
			rows[i] = WeeklyScheduleDay{
				ID:           uuid.New(),
				EmployeeID:   targetUUID,
				DayOfWeek:    day.DayOfWeek,
				IsWorking:    day.IsWorking,
				StartTime:    day.StartTime,
				EndTime:      day.EndTime,
				BreakMinutes: day.BreakMinutes,
				GraceMinutes: day.GraceMinutes,
			}
		}
		if err := qtx.ReplaceWeek(ctx, targetID, rows); err != nil {
			s.logger.Error("bulk apply schedule failed",
				zap.String("target_employee_id", targetID),
				zap.Error(err),
			)
			return 0, err
		}
		written += len(rows)
	}
	if err := tx.Commit().Error; err != nil {
		return 0, err
	}

	s.logger.Info("bulk schedule applied",
		zap.String("source_employee_id", req.SourceEmployeeID),
		zap.Int("targets", len(req.TargetEmployeeIDs)),
	)
	return written, nil
}

func (s *service) UpsertOverride(ctx context.Context, employeeID string, req OverrideRequest) (OverrideResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return OverrideResponse{}, scheduleerrors.ErrInvalidEmployeeID
	}
	if _, err := time.Parse("2006-01-02", req.ShiftDate); err != nil {
		return OverrideResponse{}, scheduleerrors.ErrInvalidDateFormat
	}
	if err := validateShiftTimes(req.StartTime, req.EndTime); err != nil {
		return OverrideResponse{}, err
	}

	isWorking := req.IsWorking
	row := ScheduleOverride{
		ID:           uuid.New(),
		EmployeeID:   employeeUUID,
		ShiftDate:    req.ShiftDate,
		IsWorking:    &isWorking,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		BreakMinutes: req.BreakMinutes,
		GraceMinutes: req.GraceMinutes,
	}
	if err := s.repo.UpsertOverrides(ctx, []ScheduleOverride{row}); err != nil {
		s.logger.Error("upsert schedule override failed",
			zap.String("employee_id", employeeID),
			zap.String("shift_date", req.ShiftDate),
			zap.Error(err),
		)
		return OverrideResponse{}, err
	}
	return mapOverride(row), nil
}

func (s *service) GetOverrides(ctx context.Context, employeeID, fromDate, toDate string) ([]OverrideResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, scheduleerrors.ErrInvalidEmployeeID
	}
	if _, err := time.Parse("2006-01-02", fromDate); err != nil {
		return nil, scheduleerrors.ErrInvalidDateFormat
	}
	if _, err := time.Parse("2006-01-02", toDate); err != nil {
		return nil, scheduleerrors.ErrInvalidDateFormat
	}

	rows, err := s.repo.FindOverridesInRange(ctx, employeeID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	res := make([]OverrideResponse, len(rows))
	for i, row := range rows {
		res[i] = mapOverride(row)
	}
	return res, nil
}

func (s *service) ResolveDay(ctx context.Context, employeeID, date string) (EffectiveShiftResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return EffectiveShiftResponse{}, scheduleerrors.ErrInvalidEmployeeID
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return EffectiveShiftResponse{}, scheduleerrors.ErrInvalidDateFormat
	}

	shift, err := s.resolver.Resolve(ctx, employeeID, day)
	if err != nil {
		return EffectiveShiftResponse{}, err
	}
	return EffectiveShiftResponse{
		EmployeeID: employeeID,
		Date:       date,
		Shift:      shift,
	}, nil
}

func buildWeekRows(employeeID uuid.UUID, days []WeekDayRequest) ([]WeeklyScheduleDay, error) {
	if len(days) != 7 {
		return nil, scheduleerrors.ErrIncompleteWeek
	}
	seen := make(map[int]bool, 7)
	rows := make([]WeeklyScheduleDay, len(days))
	for i, day := range days {
		if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
			return nil, scheduleerrors.ErrInvalidDayOfWeek
		}
		if seen[day.DayOfWeek] {
			return nil, scheduleerrors.ErrIncompleteWeek
		}
		seen[day.DayOfWeek] = true
		if err := validateShiftTimes(day.StartTime, day.EndTime); err != nil {
			return nil, err
		}

		isWorking := day.IsWorking
		row := WeeklyScheduleDay{
			ID:         uuid.New(),
			EmployeeID: employeeID,
			DayOfWeek:  day.DayOfWeek,
			IsWorking:  &isWorking,
		}
		if isWorking {
			row.StartTime = day.StartTime
			row.EndTime = day.EndTime
			row.BreakMinutes = day.BreakMinutes
		}
		row.GraceMinutes = day.GraceMinutes
		rows[i] = row
	}
	return rows, nil
}

func validateShiftTimes(values ...*string) error {
	for _, v := range values {
		if v == nil || *v == "" {
			continue
		}
		if _, ok := MinutesOfDay(*v); !ok {
			return scheduleerrors.ErrInvalidTimeFormat
		}
	}
	return nil
}

func mapWeekDay(row WeeklyScheduleDay) WeekDayResponse {
	res := WeekDayResponse{
		DayOfWeek:    row.DayOfWeek,
		GraceMinutes: DefaultGraceMinutes,
	}
	if row.IsWorking != nil {
		res.IsWorking = *row.IsWorking
	}
	if row.StartTime != nil {
		res.StartTime = *row.StartTime
	}
	if row.EndTime != nil {
		res.EndTime = *row.EndTime
	}
	if row.BreakMinutes != nil {
		res.BreakMinutes = *row.BreakMinutes
	}
	if row.GraceMinutes != nil {
		res.GraceMinutes = *row.GraceMinutes
	}
	return res
}

func mapOverride(row ScheduleOverride) OverrideResponse {
	res := OverrideResponse{
		EmployeeID:   row.EmployeeID.String(),
		ShiftDate:    row.ShiftDate,
		GraceMinutes: DefaultGraceMinutes,
	}
	if row.IsWorking != nil {
		res.IsWorking = *row.IsWorking
	}
	if row.StartTime != nil {
		res.StartTime = *row.StartTime
	}
	if row.EndTime != nil {
		res.EndTime = *row.EndTime
	}
	if row.BreakMinutes != nil {
		res.BreakMinutes = *row.BreakMinutes
	}
	if row.GraceMinutes != nil {
		res.GraceMinutes = *row.GraceMinutes
	}
	if row.SwapRequestID != nil {
		v := row.SwapRequestID.String()
		res.SwapRequestID = &v
	}
	return res
}
