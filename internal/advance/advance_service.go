package advance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	advanceerrors "github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/advance/errors"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/employee"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/shared/contextutil"
)

//go:generate mockgen -source=advance_service.go -destination=mock/advance_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, employeeID string, req CreateAdvanceRequest) (AdvanceResponse, error)
	RecordPayment(ctx context.Context, advanceID string, req RecordPaymentRequest) (AdvanceResponse, error)
	Cancel(ctx context.Context, advanceID string) (AdvanceResponse, error)
	Get(ctx context.Context, advanceID string) (AdvanceResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]AdvanceResponse, error)
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
		logger:       zap.L().Named("advance.service"),
	}
}

func (s *service) Create(ctx context.Context, employeeID string, req CreateAdvanceRequest) (AdvanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AdvanceResponse{}, advanceerrors.ErrInvalidEmployeeID
	}
	if req.Amount <= 0 {
		return AdvanceResponse{}, advanceerrors.ErrInvalidAmount
	}
	if req.MonthlyDeduction < 0 || req.MonthlyDeduction > req.Amount {
		return AdvanceResponse{}, advanceerrors.ErrInvalidDeduction
	}

	requestedAt := time.Now().UTC()
	if req.RequestedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.RequestedAt)
		if err != nil {
			return AdvanceResponse{}, advanceerrors.ErrInvalidRequestedAt
		}
		requestedAt = parsed.UTC()
	}

	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AdvanceResponse{}, advanceerrors.ErrEmployeeNotFound
		}
		return AdvanceResponse{}, err
	}

	row := &SalaryAdvance{
		ID:               uuid.New(),
		EmployeeID:       emp.ID,
		Amount:           req.Amount,
		MonthlyDeduction: req.MonthlyDeduction,
		RequestedAt:      requestedAt,
		Reason:           req.Reason,
		Status:           StatusOpen,
		CreatedBy:        actorUUID(ctx),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("advance persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return AdvanceResponse{}, err
	}

	s.logger.Info("salary advance opened",
		zap.String("advance_id", row.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Float64("amount", req.Amount),
	)
	return mapToResponse(row, 0, nil), nil
}

// RecordPayment books one installment and closes the advance in the same
// transaction once total payments cover the amount.
func (s *service) RecordPayment(ctx context.Context, advanceID string, req RecordPaymentRequest) (AdvanceResponse, error) {
	if _, err := uuid.Parse(advanceID); err != nil {
		return AdvanceResponse{}, advanceerrors.ErrInvalidAdvanceID
	}
	if req.Amount <= 0 {
		return AdvanceResponse{}, advanceerrors.ErrInvalidAmount
	}

	paidAt := time.Now().UTC()
	if req.PaidAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.PaidAt)
		if err != nil {
			return AdvanceResponse{}, advanceerrors.ErrInvalidPaidAt
		}
		paidAt = parsed.UTC()
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AdvanceResponse{}, tx.Error
	}
	defer tx.Rollback()
	qtx := s.repo.WithTx(tx)

	adv, err := qtx.FindByID(ctx, advanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AdvanceResponse{}, advanceerrors.ErrAdvanceNotFound
		}
		return AdvanceResponse{}, err
	}
	switch adv.Status {
	case StatusCancelled:
		return AdvanceResponse{}, advanceerrors.ErrAdvanceCancelled
	case StatusClosed:
		return AdvanceResponse{}, advanceerrors.ErrAdvanceNotOpen
	}

	payment := &AdvancePayment{
		ID:        uuid.New(),
		AdvanceID: adv.ID,
		Amount:    req.Amount,
		PaidAt:    paidAt,
		Note:      req.Note,
		CreatedBy: actorUUID(ctx),
	}
	if err := qtx.CreatePayment(ctx, payment); err != nil {
		return AdvanceResponse{}, err
	}

	paid, err := qtx.SumPayments(ctx, advanceID)
	if err != nil {
		return AdvanceResponse{}, err
	}
	if paid >= adv.Amount {
		if _, err := qtx.UpdateStatus(ctx, advanceID, StatusOpen, StatusClosed); err != nil {
			return AdvanceResponse{}, err
		}
		adv.Status = StatusClosed
	}

	payments, err := qtx.PaymentsByAdvance(ctx, advanceID)
	if err != nil {
		return AdvanceResponse{}, err
	}
	if err := tx.Commit().Error; err != nil {
		return AdvanceResponse{}, err
	}

	s.logger.Info("advance payment recorded",
		zap.String("advance_id", advanceID),
		zap.Float64("amount", req.Amount),
		zap.Float64("paid_total", paid),
		zap.String("status", adv.Status),
	)
	return mapToResponse(adv, paid, payments), nil
}

// Cancel voids an untouched advance. Once an installment exists the
// advance stays on the books for payroll history.
func (s *service) Cancel(ctx context.Context, advanceID string) (AdvanceResponse, error) {
	if _, err := uuid.Parse(advanceID); err != nil {
		return AdvanceResponse{}, advanceerrors.ErrInvalidAdvanceID
	}

	adv, err := s.repo.FindByID(ctx, advanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AdvanceResponse{}, advanceerrors.ErrAdvanceNotFound
		}
		return AdvanceResponse{}, err
	}
	if adv.Status != StatusOpen {
		return AdvanceResponse{}, advanceerrors.ErrAdvanceNotOpen
	}

	paid, err := s.repo.SumPayments(ctx, advanceID)
	if err != nil {
		return AdvanceResponse{}, err
	}
	if paid > 0 {
		return AdvanceResponse{}, advanceerrors.ErrAdvanceHasPayments
	}

	affected, err := s.repo.UpdateStatus(ctx, advanceID, StatusOpen, StatusCancelled)
	if err != nil {
		return AdvanceResponse{}, err
	}
	if affected == 0 {
		return AdvanceResponse{}, advanceerrors.ErrAdvanceNotOpen
	}
	adv.Status = StatusCancelled

	s.logger.Info("salary advance cancelled", zap.String("advance_id", advanceID))
	return mapToResponse(adv, 0, nil), nil
}

func (s *service) Get(ctx context.Context, advanceID string) (AdvanceResponse, error) {
	if _, err := uuid.Parse(advanceID); err != nil {
		return AdvanceResponse{}, advanceerrors.ErrInvalidAdvanceID
	}

	adv, err := s.repo.FindByID(ctx, advanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AdvanceResponse{}, advanceerrors.ErrAdvanceNotFound
		}
		return AdvanceResponse{}, err
	}
	paid, err := s.repo.SumPayments(ctx, advanceID)
	if err != nil {
		return AdvanceResponse{}, err
	}
	payments, err := s.repo.PaymentsByAdvance(ctx, advanceID)
	if err != nil {
		return AdvanceResponse{}, err
	}
	return mapToResponse(adv, paid, payments), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]AdvanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, advanceerrors.ErrInvalidEmployeeID
	}

	rows, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	res := make([]AdvanceResponse, 0, len(rows))
	for i := range rows {
		paid, err := s.repo.SumPayments(ctx, rows[i].ID.String())
		if err != nil {
			return nil, err
		}
		res = append(res, mapToResponse(&rows[i], paid, nil))
	}
	return res, nil
}

func actorUUID(ctx context.Context) *uuid.UUID {
	if actor := contextutil.GetUserID(ctx); actor != "" {
		if id, err := uuid.Parse(actor); err == nil {
			return &id
		}
	}
	return nil
}

func mapToResponse(adv *SalaryAdvance, paid float64, payments []AdvancePayment) AdvanceResponse {
	resp := AdvanceResponse{
		ID:               adv.ID.String(),
		EmployeeID:       adv.EmployeeID.String(),
		Amount:           adv.Amount,
		MonthlyDeduction: adv.MonthlyDeduction,
		RequestedAt:      adv.RequestedAt.Format(time.RFC3339),
		Reason:           adv.Reason,
		Status:           adv.Status,
		Paid:             paid,
		Outstanding:      adv.Outstanding(paid),
		CreatedAt:        adv.CreatedAt.Format(time.RFC3339),
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, PaymentResponse{
			ID:        p.ID.String(),
			AdvanceID: p.AdvanceID.String(),
			Amount:    p.Amount,
			PaidAt:    p.PaidAt.Format(time.RFC3339),
			Note:      p.Note,
		})
	}
	return resp
}
