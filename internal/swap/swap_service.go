package swap

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/employee"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/schedule"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/shared/contextutil"
	swaperrors "github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/swap/errors"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=swap_service.go -destination=mock/swap_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (SwapResponse, error)
	Approve(ctx context.Context, requestID string, req DecideRequest) (SwapResponse, error)
	Reject(ctx context.Context, requestID string, req DecideRequest) (SwapResponse, error)
	Cancel(ctx context.Context, requestID string) (SwapResponse, error)
	ListPending(ctx context.Context) ([]SwapResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]SwapResponse, error)
}

type service struct {
	db           *gorm.DB
	repo         Repository
	scheduleRepo schedule.Repository
	employeeRepo employee.Repository
	resolver     schedule.Resolver
	logger       *zap.Logger
	now          func() time.Time
}

func NewService(
	db *gorm.DB,
	repo Repository,
	scheduleRepo schedule.Repository,
	employeeRepo employee.Repository,
	resolver schedule.Resolver,
) Service {
	return &service{
		db:           db,
		repo:         repo,
		scheduleRepo: scheduleRepo,
		employeeRepo: employeeRepo,
		resolver:     resolver,
		logger:       zap.L().Named("swap.service"),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (SwapResponse, error) {
	requesterID, err := uuid.Parse(req.RequesterID)
	if err != nil {
		return SwapResponse{}, swaperrors.ErrInvalidEmployeeID
	}
	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		return SwapResponse{}, swaperrors.ErrInvalidEmployeeID
	}
	if requesterID == targetID {
		return SwapResponse{}, swaperrors.ErrSelfSwap
	}
	if _, err := time.Parse(dateLayout, req.ShiftDate); err != nil {
		return SwapResponse{}, swaperrors.ErrInvalidDateFormat
	}

	for _, id := range []string{req.RequesterID, req.TargetID} {
		if _, err := s.employeeRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return SwapResponse{}, swaperrors.ErrEmployeeNotFound
			}
			return SwapResponse{}, err
		}
	}

	row := &ShiftSwapRequest{
		ID:          uuid.New(),
		RequesterID: requesterID,
		TargetID:    targetID,
		ShiftDate:   req.ShiftDate,
		Reason:      req.Reason,
		Status:      StatusPending,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("swap request persist failed", zap.Error(err))
		return SwapResponse{}, err
	}

	s.logger.Info("swap request submitted",
		zap.String("swap_id", row.ID.String()),
		zap.String("requester_id", req.RequesterID),
		zap.String("target_id", req.TargetID),
		zap.String("shift_date", req.ShiftDate),
	)
	return mapToResponse(row), nil
}

// Approve resolves both parties' effective shifts for the date as they
// stand right now, then crosses them as overrides and marks the request
// approved in one transaction. Any failure leaves the request pending
// and the schedules untouched.
func (s *service) Approve(ctx context.Context, requestID string, req DecideRequest) (SwapResponse, error) {
	row, err := s.findPending(ctx, requestID)
	if err != nil {
		return SwapResponse{}, err
	}

	date, err := time.ParseInLocation(dateLayout, row.ShiftDate, time.UTC)
	if err != nil {
		return SwapResponse{}, swaperrors.ErrInvalidDateFormat
	}

	requesterShift, err := s.resolver.Resolve(ctx, row.RequesterID.String(), date)
	if err != nil {
		return SwapResponse{}, err
	}
	targetShift, err := s.resolver.Resolve(ctx, row.TargetID.String(), date)
	if err != nil {
		return SwapResponse{}, err
	}

	actor := actorUUID(ctx)
	at := s.now()

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return SwapResponse{}, tx.Error
	}
	defer tx.Rollback()

	affected, err := s.repo.WithTx(tx).Decide(ctx, requestID, StatusApproved, actor, req.Comment, at)
	if err != nil {
		return SwapResponse{}, err
	}
	if affected == 0 {
		return SwapResponse{}, swaperrors.ErrNotPending
	}

	// each side inherits the other's resolved shift
	overrides := []schedule.ScheduleOverride{
		overrideFromShift(row.RequesterID, row.ShiftDate, targetShift, row.ID),
		overrideFromShift(row.TargetID, row.ShiftDate, requesterShift, row.ID),
	}
	if err := s.scheduleRepo.WithTx(tx).UpsertOverrides(ctx, overrides); err != nil {
		return SwapResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return SwapResponse{}, err
	}

	row.Status = StatusApproved
	row.DecidedBy, row.DecidedAt = &actor, &at
	row.ManagerComment = req.Comment
	s.logger.Info("swap request approved",
		zap.String("swap_id", requestID),
		zap.String("shift_date", row.ShiftDate),
	)
	return mapToResponse(row), nil
}

func (s *service) Reject(ctx context.Context, requestID string, req DecideRequest) (SwapResponse, error) {
	row, err := s.findPending(ctx, requestID)
	if err != nil {
		return SwapResponse{}, err
	}

	actor := actorUUID(ctx)
	at := s.now()
	affected, err := s.repo.Decide(ctx, requestID, StatusRejected, actor, req.Comment, at)
	if err != nil {
		return SwapResponse{}, err
	}
	if affected == 0 {
		return SwapResponse{}, swaperrors.ErrNotPending
	}

	row.Status = StatusRejected
	row.DecidedBy, row.DecidedAt = &actor, &at
	row.ManagerComment = req.Comment
	s.logger.Info("swap request rejected", zap.String("swap_id", requestID))
	return mapToResponse(row), nil
}

// Cancel withdraws a pending request. Only the requester may do it.
func (s *service) Cancel(ctx context.Context, requestID string) (SwapResponse, error) {
	row, err := s.findPending(ctx, requestID)
	if err != nil {
		return SwapResponse{}, err
	}

	actor := actorUUID(ctx)
	if actor != row.RequesterID {
		return SwapResponse{}, swaperrors.ErrNotRequester
	}

	at := s.now()
	affected, err := s.repo.Decide(ctx, requestID, StatusCancelled, actor, "", at)
	if err != nil {
		return SwapResponse{}, err
	}
	if affected == 0 {
		return SwapResponse{}, swaperrors.ErrNotPending
	}

	row.Status = StatusCancelled
	row.DecidedBy, row.DecidedAt = &actor, &at
	s.logger.Info("swap request cancelled", zap.String("swap_id", requestID))
	return mapToResponse(row), nil
}

func (s *service) ListPending(ctx context.Context) ([]SwapResponse, error) {
	rows, err := s.repo.FindByStatus(ctx, StatusPending)
	if err != nil {
		return nil, err
	}
	return mapAll(rows), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]SwapResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, swaperrors.ErrInvalidEmployeeID
	}
	rows, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapAll(rows), nil
}

func (s *service) findPending(ctx context.Context, requestID string) (*ShiftSwapRequest, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return nil, swaperrors.ErrInvalidRequestID
	}
	row, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, swaperrors.ErrRequestNotFound
		}
		return nil, err
	}
	if row.Status != StatusPending {
		return nil, swaperrors.ErrNotPending
	}
	return row, nil
}

// overrideFromShift materializes a resolved shift as a concrete override
// row. All sub-fields are written explicitly so the override fully pins
// the day regardless of what the weekly template later becomes.
func overrideFromShift(employeeID uuid.UUID, shiftDate string, shift schedule.EffectiveShift, swapID uuid.UUID) schedule.ScheduleOverride {
	isWorking := shift.IsWorking
	breakMinutes := shift.BreakMinutes
	graceMinutes := shift.GraceMinutes
	row := schedule.ScheduleOverride{
		EmployeeID:    employeeID,
		ShiftDate:     shiftDate,
		IsWorking:     &isWorking,
		BreakMinutes:  &breakMinutes,
		GraceMinutes:  &graceMinutes,
		SwapRequestID: &swapID,
	}
	if shift.StartTime != "" {
		start := shift.StartTime
		row.StartTime = &start
	}
	if shift.EndTime != "" {
		end := shift.EndTime
		row.EndTime = &end
	}
	return row
}

func actorUUID(ctx context.Context) uuid.UUID {
	if actor := contextutil.GetUserID(ctx); actor != "" {
		if id, err := uuid.Parse(actor); err == nil {
			return id
		}
	}
	return uuid.Nil
}

func mapAll(rows []ShiftSwapRequest) []SwapResponse {
	res := make([]SwapResponse, len(rows))
	for i := range rows {
		res[i] = mapToResponse(&rows[i])
	}
	return res
}

func mapToResponse(row *ShiftSwapRequest) SwapResponse {
	resp := SwapResponse{
		ID:             row.ID.String(),
		RequesterID:    row.RequesterID.String(),
		TargetID:       row.TargetID.String(),
		ShiftDate:      row.ShiftDate,
		Reason:         row.Reason,
		Status:         row.Status,
		ManagerComment: row.ManagerComment,
		CreatedAt:      row.CreatedAt.Format(time.RFC3339),
	}
	if row.DecidedBy != nil {
		v := row.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if row.DecidedAt != nil {
		v := row.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}
