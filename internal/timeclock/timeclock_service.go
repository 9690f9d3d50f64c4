package timeclock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/employee"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/shared/contextutil"
	timeclockerrors "github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/timeclock/errors"
)

//go:generate mockgen -source=timeclock_service.go -destination=mock/timeclock_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (TimeLogResponse, error)
	ClockOut(ctx context.Context, employeeID string) (TimeLogResponse, error)
	ManualEntry(ctx context.Context, employeeID string, req ManualEntryRequest) (TimeLogResponse, error)
	QuickClock(ctx context.Context, req QuickClockRequest) (TimeLogResponse, error)
	OpenLogs(ctx context.Context) ([]TimeLogResponse, error)
}

type service struct {
	db           *gorm.DB
	repo         Repository
	employeeRepo employee.Repository
	logger       *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, employeeRepo employee.Repository) Service {
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		logger:       zap.L().Named("timeclock.service"),
	}
}

func (s *service) ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (TimeLogResponse, error) {
	emp, err := s.findEmployee(ctx, employeeID)
	if err != nil {
		return TimeLogResponse{}, err
	}

	now := time.Now().UTC()
	locationID, err := s.checkBranch(ctx, emp, req.LocationID, now)
	if err != nil {
		return TimeLogResponse{}, err
	}

	// Good-faith pre-check; the partial unique index is the actual
	// invariant and a racing duplicate surfaces as 23505 below.
	_, err = s.repo.FindOpenByEmployee(ctx, employeeID)
	if err == nil {
		return TimeLogResponse{}, timeclockerrors.ErrAlreadyClockedIn
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return TimeLogResponse{}, err
	}

	row := &TimeLog{
		ID:         uuid.New(),
		EmployeeID: emp.ID,
		ClockInAt:  now,
		LocationID: locationID,
		CreatedBy:  actorUUID(ctx),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if isUniqueOpenLogViolation(err) {
			s.logger.Warn("concurrent clock-in rejected by store",
				zap.String("employee_id", employeeID),
			)
			return TimeLogResponse{}, timeclockerrors.ErrAlreadyClockedIn
		}
		s.logger.Error("clock in persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return TimeLogResponse{}, err
	}

	s.logger.Info("clock in recorded",
		zap.String("employee_id", employeeID),
		zap.Time("clock_in_at", now),
	)
	return mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, employeeID string) (TimeLogResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return TimeLogResponse{}, timeclockerrors.ErrInvalidEmployeeID
	}

	open, err := s.repo.FindOpenByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeLogResponse{}, timeclockerrors.ErrNoOpenLog
		}
		return TimeLogResponse{}, err
	}

	now := time.Now().UTC()
	if err := s.repo.SetClockOut(ctx, open.ID.String(), now); err != nil {
		s.logger.Error("clock out persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return TimeLogResponse{}, err
	}

	open.ClockOutAt = &now
	s.logger.Info("clock out recorded",
		zap.String("employee_id", employeeID),
		zap.Time("clock_out_at", now),
	)
	return mapToResponse(*open), nil
}

func (s *service) ManualEntry(ctx context.Context, employeeID string, req ManualEntryRequest) (TimeLogResponse, error) {
	emp, err := s.findEmployee(ctx, employeeID)
	if err != nil {
		return TimeLogResponse{}, err
	}
	if req.Reason == "" {
		return TimeLogResponse{}, timeclockerrors.ErrReasonRequired
	}

	clockIn, err := time.Parse(time.RFC3339, req.ClockInAt)
	if err != nil {
		return TimeLogResponse{}, timeclockerrors.ErrInvalidTimestamp
	}
	clockOut, err := time.Parse(time.RFC3339, req.ClockOutAt)
	if err != nil {
		return TimeLogResponse{}, timeclockerrors.ErrInvalidTimestamp
	}
	if !clockOut.After(clockIn) {
		return TimeLogResponse{}, timeclockerrors.ErrClockOutBeforeIn
	}

	locationID, err := s.checkBranch(ctx, emp, req.LocationID, clockIn)
	if err != nil {
		return TimeLogResponse{}, err
	}

	overlap, err := s.repo.HasOverlapping(ctx, employeeID, clockIn, clockOut)
	if err != nil {
		return TimeLogResponse{}, err
	}
	if overlap {
		return TimeLogResponse{}, timeclockerrors.ErrOverlappingLog
	}

	reason := req.Reason
	out := clockOut.UTC()
	row := &TimeLog{
		ID:           uuid.New(),
		EmployeeID:   emp.ID,
		ClockInAt:    clockIn.UTC(),
		ClockOutAt:   &out,
		IsManual:     true,
		ManualReason: &reason,
		LocationID:   locationID,
		CreatedBy:    actorUUID(ctx),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("manual entry persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return TimeLogResponse{}, err
	}

	s.logger.Info("manual time entry recorded",
		zap.String("employee_id", employeeID),
		zap.String("reason", reason),
	)
	return mapToResponse(*row), nil
}

// QuickClock clocks in by employee code or PIN, for the shared terminal
// at the counter.
func (s *service) QuickClock(ctx context.Context, req QuickClockRequest) (TimeLogResponse, error) {
	emp, err := s.employeeRepo.FindByCode(ctx, req.Value)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return TimeLogResponse{}, err
	}
	if emp == nil || err != nil {
		emp, err = s.findByPIN(ctx, req.Value)
		if err != nil {
			return TimeLogResponse{}, err
		}
	}
	return s.ClockIn(ctx, emp.ID.String(), ClockInRequest{LocationID: req.LocationID})
}

func (s *service) OpenLogs(ctx context.Context) ([]TimeLogResponse, error) {
	rows, err := s.repo.FindAllOpen(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]TimeLogResponse, len(rows))
	for i, row := range rows {
		res[i] = mapToResponse(row)
	}
	return res, nil
}

func (s *service) findEmployee(ctx context.Context, employeeID string) (*employee.Employee, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, timeclockerrors.ErrInvalidEmployeeID
	}
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timeclockerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return emp, nil
}

func (s *service) findByPIN(ctx context.Context, pin string) (*employee.Employee, error) {
	candidates, err := s.employeeRepo.FindAllWithPIN(ctx)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		if candidates[i].PinHash == nil {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(*candidates[i].PinHash), []byte(pin)) == nil {
			return &candidates[i], nil
		}
	}
	return nil, timeclockerrors.ErrNoMatchingEmployee
}

// checkBranch resolves the punch location (explicit request value or the
// employee's home branch) and rejects punches at branches the employee is
// neither assigned nor temporarily transferred to.
func (s *service) checkBranch(ctx context.Context, emp *employee.Employee, locationID *string, at time.Time) (*uuid.UUID, error) {
	var target uuid.UUID
	if locationID != nil && *locationID != "" {
		parsed, err := uuid.Parse(*locationID)
		if err != nil {
			return nil, timeclockerrors.ErrBranchMismatch
		}
		target = parsed
	} else if emp.LocationID != nil {
		target = *emp.LocationID
	} else {
		return nil, nil
	}

	transfer, err := s.employeeRepo.ActiveTemporaryTransfer(ctx, emp.ID.String(), at)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if !employee.AllowedAtBranch(emp, transfer, target) {
		return nil, timeclockerrors.ErrBranchMismatch
	}
	return &target, nil
}

func actorUUID(ctx context.Context) *uuid.UUID {
	if actor := contextutil.GetUserID(ctx); actor != "" {
		if id, err := uuid.Parse(actor); err == nil {
			return &id
		}
	}
	return nil
}

func isUniqueOpenLogViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapToResponse(log TimeLog) TimeLogResponse {
	resp := TimeLogResponse{
		ID:           log.ID.String(),
		EmployeeID:   log.EmployeeID.String(),
		ClockInAt:    log.ClockInAt.Format(time.RFC3339),
		IsManual:     log.IsManual,
		ManualReason: log.ManualReason,
	}
	if log.ClockOutAt != nil {
		v := log.ClockOutAt.Format(time.RFC3339)
		resp.ClockOutAt = &v
	}
	if log.LocationID != nil {
		v := log.LocationID.String()
		resp.LocationID = &v
	}
	return resp
}
