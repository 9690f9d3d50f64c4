package approval

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	approvalerrors "github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/approval/errors"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/domain"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/events"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/messaging/kafka"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/payroll"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/shared/contextutil"
)

const monthLayout = "2006-01"

// stage maps an approver role to the one transition it may perform.
type stage struct {
	from string
	to   string
}

var stageByRole = map[string]stage{
	domain.RoleHR:      {from: StatusDraft, to: StatusHRApproved},
	domain.RoleManager: {from: StatusHRApproved, to: StatusManagerApproved},
	domain.RoleAdmin:   {from: StatusManagerApproved, to: StatusAdminApproved},
}

//go:generate mockgen -source=approval_service.go -destination=mock/approval_service_mock.go -package=mock
type Service interface {
	Approve(ctx context.Context, month string) (ApprovalResponse, error)
	Get(ctx context.Context, month string) (ApprovalResponse, error)
}

type service struct {
	db             *gorm.DB
	repo           Repository
	historyRepo    payroll.HistoryRepository
	outboxRepo     kafka.OutboxRepository
	payrollService payroll.Service
	logger         *zap.Logger
	now            func() time.Time
}

func NewService(
	db *gorm.DB,
	repo Repository,
	historyRepo payroll.HistoryRepository,
	outboxRepo kafka.OutboxRepository,
	payrollService payroll.Service,
) Service {
	return &service{
		db:             db,
		repo:           repo,
		historyRepo:    historyRepo,
		outboxRepo:     outboxRepo,
		payrollService: payrollService,
		logger:         zap.L().Named("approval.service"),
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Approve advances the month one stage based on the caller's role. Each
// role owns exactly one transition, and the store-level compare-and-set
// rejects stale or skipped stages. Final approval snapshots the pay run
// and stages the finalized event atomically; if any of that fails the
// month stays at manager_approved.
func (s *service) Approve(ctx context.Context, month string) (ApprovalResponse, error) {
	if _, err := time.Parse(monthLayout, month); err != nil {
		return ApprovalResponse{}, approvalerrors.ErrInvalidMonthFormat
	}
	actor, err := uuid.Parse(contextutil.GetUserID(ctx))
	if err != nil {
		return ApprovalResponse{}, approvalerrors.ErrActorRequired
	}
	role := contextutil.GetUserRole(ctx)
	transition, ok := stageByRole[role]
	if !ok {
		return ApprovalResponse{}, approvalerrors.ErrRoleNotAllowed
	}

	row, err := s.ensureRow(ctx, month)
	if err != nil {
		return ApprovalResponse{}, err
	}
	if row.Status == StatusAdminApproved {
		return ApprovalResponse{}, approvalerrors.ErrAlreadyFinalized
	}

	at := s.now()
	if transition.to == StatusAdminApproved {
		if err := s.finalize(ctx, month, transition, actor, at); err != nil {
			return ApprovalResponse{}, err
		}
	} else {
		affected, err := s.repo.Transition(ctx, month, transition.from, transition.to, actor, at)
		if err != nil {
			return ApprovalResponse{}, err
		}
		if affected == 0 {
			return ApprovalResponse{}, approvalerrors.ErrStageConflict
		}
	}

	s.logger.Info("payroll approval advanced",
		zap.String("month", month),
		zap.String("role", role),
		zap.String("status", transition.to),
		zap.String("actor", actor.String()),
	)
	return s.Get(ctx, month)
}

// finalize runs the terminal transition: CAS to admin_approved, history
// snapshot and outbox event in one transaction.
func (s *service) finalize(ctx context.Context, month string, transition stage, actor uuid.UUID, at time.Time) error {
	// Compute before opening the transaction; it is read-only and slow.
	summary, err := s.payrollService.ComputeMonth(ctx, month)
	if err != nil {
		return err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qApproval := s.repo.WithTx(tx)
	affected, err := qApproval.Transition(ctx, month, transition.from, transition.to, actor, at)
	if err != nil {
		return err
	}
	if affected == 0 {
		return approvalerrors.ErrStageConflict
	}

	qHistory := s.historyRepo.WithTx(tx)
	if err := qHistory.Upsert(ctx, s.payrollService.SnapshotRows(summary)); err != nil {
		return err
	}

	event, err := buildFinalizedEvent(summary, actor, at)
	if err != nil {
		return err
	}
	outbox := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll_month",
		AggregateID:   month,
		EventType:     events.PayrollFinalizedType,
		Topic:         events.PayrollFinalizedTopic,
		Payload:       event,
		Status:        kafka.OutboxStatusPending,
	}
	if err := s.outboxRepo.WithTx(tx).Create(ctx, outbox); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.payrollService.InvalidateMonth(ctx, month)
	return nil
}

func (s *service) Get(ctx context.Context, month string) (ApprovalResponse, error) {
	if _, err := time.Parse(monthLayout, month); err != nil {
		return ApprovalResponse{}, approvalerrors.ErrInvalidMonthFormat
	}

	row, err := s.repo.FindByMonth(ctx, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ApprovalResponse{Month: month, Status: StatusDraft}, nil
		}
		return ApprovalResponse{}, err
	}
	return mapToResponse(row), nil
}

// ensureRow lazily creates the month's draft row. A concurrent creator
// winning the unique index race is fine; we re-read their row.
func (s *service) ensureRow(ctx context.Context, month string) (*PayrollApproval, error) {
	row, err := s.repo.FindByMonth(ctx, month)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := &PayrollApproval{ID: uuid.New(), Month: month, Status: StatusDraft}
	if err := s.repo.Create(ctx, fresh); err != nil {
		if isUniqueMonthViolation(err) {
			return s.repo.FindByMonth(ctx, month)
		}
		return nil, err
	}
	return fresh, nil
}

func buildFinalizedEvent(summary payroll.MonthResponse, actor uuid.UUID, at time.Time) ([]byte, error) {
	event := events.PayrollFinalizedEvent{
		EventID:     uuid.NewString(),
		Month:       summary.Month,
		FinalizedBy: actor.String(),
		FinalizedAt: at,
		NetTotal:    summary.Totals.NetPay,
		Lines:       make([]events.PayrollFinalizedLine, 0, len(summary.Lines)),
	}
	for _, line := range summary.Lines {
		event.Lines = append(event.Lines, events.PayrollFinalizedLine{
			EmployeeID:   line.EmployeeID,
			EmployeeCode: line.EmployeeCode,
			FullName:     line.FullName,
			BankName:     line.BankName,
			IBAN:         line.IBAN,
			NetPay:       line.NetPay,
			Currency:     line.Currency,
		})
	}
	return json.Marshal(event)
}

func isUniqueMonthViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapToResponse(row *PayrollApproval) ApprovalResponse {
	resp := ApprovalResponse{Month: row.Month, Status: row.Status}
	resp.HRApprovedBy, resp.HRApprovedAt = formatApprover(row.HRApprovedBy, row.HRApprovedAt)
	resp.ManagerApprovedBy, resp.ManagerApprovedAt = formatApprover(row.ManagerApprovedBy, row.ManagerApprovedAt)
	resp.AdminApprovedBy, resp.AdminApprovedAt = formatApprover(row.AdminApprovedBy, row.AdminApprovedAt)
	return resp
}

func formatApprover(by *uuid.UUID, at *time.Time) (*string, *string) {
	var idStr, atStr *string
	if by != nil {
		v := by.String()
		idStr = &v
	}
	if at != nil {
		v := at.Format(time.RFC3339)
		atStr = &v
	}
	return idStr, atStr
}
