package approval_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/approval"
	approvalerrors "github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/approval/errors"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/domain"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/events"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/messaging/kafka"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/payroll"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/shared/contextutil"
)

type memApprovalRepo struct {
	byMonth map[string]*approval.PayrollApproval
}

func newMemApprovalRepo() *memApprovalRepo {
	return &memApprovalRepo{byMonth: make(map[string]*approval.PayrollApproval)}
}

func (m *memApprovalRepo) WithTx(*gorm.DB) approval.Repository { return m }

func (m *memApprovalRepo) Create(_ context.Context, row *approval.PayrollApproval) error {
	cp := *row
	m.byMonth[row.Month] = &cp
	return nil
}

func (m *memApprovalRepo) FindByMonth(_ context.Context, month string) (*approval.PayrollApproval, error) {
	row, ok := m.byMonth[month]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *row
	return &cp, nil
}

func (m *memApprovalRepo) Transition(_ context.Context, month, from, to string, actor uuid.UUID, at time.Time) (int64, error) {
	row, ok := m.byMonth[month]
	if !ok || row.Status != from {
		return 0, nil
	}
	row.Status = to
	switch to {
	case approval.StatusHRApproved:
		row.HRApprovedBy, row.HRApprovedAt = &actor, &at
	case approval.StatusManagerApproved:
		row.ManagerApprovedBy, row.ManagerApprovedAt = &actor, &at
	case approval.StatusAdminApproved:
		row.AdminApprovedBy, row.AdminApprovedAt = &actor, &at
	}
	return 1, nil
}

type fakeHistoryRepo struct {
	upserted []payroll.PayrollHistory
	fail     error
}

func (f *fakeHistoryRepo) WithTx(*gorm.DB) payroll.HistoryRepository { return f }

func (f *fakeHistoryRepo) Upsert(_ context.Context, rows []payroll.PayrollHistory) error {
	if f.fail != nil {
		return f.fail
	}
	f.upserted = append(f.upserted, rows...)
	return nil
}

func (f *fakeHistoryRepo) FindByMonth(context.Context, string) ([]payroll.PayrollHistory, error) {
	return f.upserted, nil
}

func (f *fakeHistoryRepo) FindByEmployee(context.Context, string) ([]payroll.PayrollHistory, error) {
	return f.upserted, nil
}

type fakeOutboxRepo struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepo) WithTx(*gorm.DB) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepo) Create(_ context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepo) ListPending(context.Context, int) ([]kafka.OutboxEvent, error) {
	return f.created, nil
}

func (f *fakeOutboxRepo) MarkSent(context.Context, string) error           { return nil }
func (f *fakeOutboxRepo) MarkFailed(context.Context, string, string) error { return nil }

type fakePayrollService struct {
	summary     payroll.MonthResponse
	invalidated []string
}

func (f *fakePayrollService) ComputeMonth(context.Context, string) (payroll.MonthResponse, error) {
	return f.summary, nil
}

func (f *fakePayrollService) Payslip(context.Context, string, string) (payroll.Line, error) {
	return payroll.Line{}, nil
}

func (f *fakePayrollService) History(context.Context, string) (payroll.HistoryResponse, error) {
	return payroll.HistoryResponse{}, nil
}

func (f *fakePayrollService) SnapshotRows(summary payroll.MonthResponse) []payroll.PayrollHistory {
	rows := make([]payroll.PayrollHistory, 0, len(summary.Lines))
	for _, line := range summary.Lines {
		empID, _ := uuid.Parse(line.EmployeeID)
		rows = append(rows, payroll.PayrollHistory{
			ID: uuid.New(), Month: summary.Month, EmployeeID: empID,
			FullName: line.FullName, NetPay: line.NetPay,
		})
	}
	return rows
}

func (f *fakePayrollService) InvalidateMonth(_ context.Context, month string) {
	f.invalidated = append(f.invalidated, month)
}

func actorCtx(role string) context.Context {
	ctx := contextutil.WithUserID(context.Background(), uuid.NewString())
	return contextutil.WithUserRole(ctx, role)
}

func testSummary(month string) payroll.MonthResponse {
	return payroll.MonthResponse{
		Month: month,
		Lines: []payroll.Line{
			{EmployeeID: uuid.NewString(), FullName: "Roaster One", NetPay: 2800, IBAN: "QA00TEST0000000000000000001", Currency: "QAR"},
			{EmployeeID: uuid.NewString(), FullName: "Cashier Two", NetPay: 2100, Currency: "QAR"},
		},
		Totals: payroll.MonthTotals{NetPay: 4900},
	}
}

type fixture struct {
	svc     approval.Service
	repo    *memApprovalRepo
	history *fakeHistoryRepo
	outbox  *fakeOutboxRepo
	payroll *fakePayrollService
}

func newFixture(t *testing.T, month string, txCount int) *fixture {
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

	f := &fixture{
		repo:    newMemApprovalRepo(),
		history: &fakeHistoryRepo{},
		outbox:  &fakeOutboxRepo{},
		payroll: &fakePayrollService{summary: testSummary(month)},
	}
	f.svc = approval.NewService(newGormDB(t, db), f.repo, f.history, f.outbox, f.payroll)
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

func TestApproveAdvancesThroughChain(t *testing.T) {
	f := newFixture(t, "2024-05", 1)

	got, err := f.svc.Approve(actorCtx(domain.RoleHR), "2024-05")
	require.NoError(t, err)
	assert.Equal(t, approval.StatusHRApproved, got.Status)
	assert.NotNil(t, got.HRApprovedBy)

	got, err = f.svc.Approve(actorCtx(domain.RoleManager), "2024-05")
	require.NoError(t, err)
	assert.Equal(t, approval.StatusManagerApproved, got.Status)

	got, err = f.svc.Approve(actorCtx(domain.RoleAdmin), "2024-05")
	require.NoError(t, err)
	assert.Equal(t, approval.StatusAdminApproved, got.Status)
	assert.NotNil(t, got.AdminApprovedAt)
}

func TestApproveRejectsSkippedStage(t *testing.T) {
	f := newFixture(t, "2024-05", 0)

	// manager cannot sign a month HR has not reviewed
	_, err := f.svc.Approve(actorCtx(domain.RoleManager), "2024-05")
	assert.ErrorIs(t, err, approvalerrors.ErrStageConflict)
}

func TestApproveRejectsRepeatOfSameStage(t *testing.T) {
	f := newFixture(t, "2024-05", 0)

	_, err := f.svc.Approve(actorCtx(domain.RoleHR), "2024-05")
	require.NoError(t, err)

	_, err = f.svc.Approve(actorCtx(domain.RoleHR), "2024-05")
	assert.ErrorIs(t, err, approvalerrors.ErrStageConflict)
}

func TestApproveRejectsNonApproverRole(t *testing.T) {
	f := newFixture(t, "2024-05", 0)

	_, err := f.svc.Approve(actorCtx(domain.RoleCashier), "2024-05")
	assert.ErrorIs(t, err, approvalerrors.ErrRoleNotAllowed)
}

func TestApproveRejectsFinalizedMonth(t *testing.T) {
	f := newFixture(t, "2024-05", 1)

	for _, role := range []string{domain.RoleHR, domain.RoleManager, domain.RoleAdmin} {
		_, err := f.svc.Approve(actorCtx(role), "2024-05")
		require.NoError(t, err)
	}

	_, err := f.svc.Approve(actorCtx(domain.RoleAdmin), "2024-05")
	assert.ErrorIs(t, err, approvalerrors.ErrAlreadyFinalized)
}

func TestOnlyFinalApprovalSnapshotsHistory(t *testing.T) {
	f := newFixture(t, "2024-05", 1)

	_, err := f.svc.Approve(actorCtx(domain.RoleHR), "2024-05")
	require.NoError(t, err)
	_, err = f.svc.Approve(actorCtx(domain.RoleManager), "2024-05")
	require.NoError(t, err)
	assert.Empty(t, f.history.upserted)
	assert.Empty(t, f.outbox.created)

	_, err = f.svc.Approve(actorCtx(domain.RoleAdmin), "2024-05")
	require.NoError(t, err)

	assert.Len(t, f.history.upserted, 2)
	require.Len(t, f.outbox.created, 1)
	assert.Equal(t, events.PayrollFinalizedTopic, f.outbox.created[0].Topic)
	assert.Equal(t, []string{"2024-05"}, f.payroll.invalidated)

	var event events.PayrollFinalizedEvent
	require.NoError(t, json.Unmarshal(f.outbox.created[0].Payload, &event))
	assert.Equal(t, "2024-05", event.Month)
	assert.Len(t, event.Lines, 2)
	assert.InDelta(t, 4900.0, event.NetTotal, 1e-9)
}

func TestFinalizeFailureLeavesNoEvent(t *testing.T) {
	f := newFixture(t, "2024-05", 1)
	f.history.fail = errors.New("history store unavailable")

	_, err := f.svc.Approve(actorCtx(domain.RoleHR), "2024-05")
	require.NoError(t, err)
	_, err = f.svc.Approve(actorCtx(domain.RoleManager), "2024-05")
	require.NoError(t, err)

	_, err = f.svc.Approve(actorCtx(domain.RoleAdmin), "2024-05")
	assert.Error(t, err)
	assert.Empty(t, f.outbox.created)
	assert.Empty(t, f.payroll.invalidated)
}

// Runs the final approval against the real repository on a mocked
// connection and checks, statement by statement, that the terminal CAS
// happens inside the transaction and is rolled back when the history
// snapshot fails.
func TestFinalizeStageRidesServiceTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	gormDB := newGormDB(t, db)

	mock.ExpectQuery(`SELECT (.+) FROM "payroll_approvals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "month", "status"}).
			AddRow(uuid.NewString(), "2024-05", approval.StatusManagerApproved))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "payroll_approvals" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	history := &fakeHistoryRepo{fail: errors.New("history store unavailable")}
	svc := approval.NewService(
		gormDB,
		approval.NewRepository(gormDB),
		history,
		&fakeOutboxRepo{},
		&fakePayrollService{summary: testSummary("2024-05")},
	)

	_, err = svc.Approve(actorCtx(domain.RoleAdmin), "2024-05")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUnknownMonthIsDraft(t *testing.T) {
	f := newFixture(t, "2024-05", 0)

	got, err := f.svc.Get(context.Background(), "2024-07")
	require.NoError(t, err)
	assert.Equal(t, approval.StatusDraft, got.Status)
}
