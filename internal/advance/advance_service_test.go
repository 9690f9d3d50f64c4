package advance_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/advance"
	advanceerrors "github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/advance/errors"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/employee"
)

// memRepo keeps advances and payments in memory so the service's
// close-on-full-recovery logic runs against real state transitions.
type memRepo struct {
	advances map[string]*advance.SalaryAdvance
	payments map[string][]advance.AdvancePayment
}

func newMemRepo() *memRepo {
	return &memRepo{
		advances: make(map[string]*advance.SalaryAdvance),
		payments: make(map[string][]advance.AdvancePayment),
	}
}

func (m *memRepo) WithTx(*gorm.DB) advance.Repository { return m }

func (m *memRepo) Create(_ context.Context, row *advance.SalaryAdvance) error {
	cp := *row
	m.advances[row.ID.String()] = &cp
	return nil
}

func (m *memRepo) FindByID(_ context.Context, id string) (*advance.SalaryAdvance, error) {
	row, ok := m.advances[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *row
	return &cp, nil
}

func (m *memRepo) FindByEmployee(_ context.Context, employeeID string) ([]advance.SalaryAdvance, error) {
	var rows []advance.SalaryAdvance
	for _, row := range m.advances {
		if row.EmployeeID.String() == employeeID {
			rows = append(rows, *row)
		}
	}
	return rows, nil
}

func (m *memRepo) UpdateStatus(_ context.Context, id, from, to string) (int64, error) {
	row, ok := m.advances[id]
	if !ok || row.Status != from {
		return 0, nil
	}
	row.Status = to
	return 1, nil
}

func (m *memRepo) CreatePayment(_ context.Context, row *advance.AdvancePayment) error {
	key := row.AdvanceID.String()
	m.payments[key] = append(m.payments[key], *row)
	return nil
}

func (m *memRepo) PaymentsByAdvance(_ context.Context, advanceID string) ([]advance.AdvancePayment, error) {
	return m.payments[advanceID], nil
}

func (m *memRepo) SumPayments(_ context.Context, advanceID string) (float64, error) {
	total := 0.0
	for _, p := range m.payments[advanceID] {
		total += p.Amount
	}
	return total, nil
}

func (m *memRepo) PaymentsBetween(_ context.Context, from, to time.Time) ([]advance.EmployeePayment, error) {
	var rows []advance.EmployeePayment
	for advID, payments := range m.payments {
		adv := m.advances[advID]
		if adv == nil || adv.Status == advance.StatusCancelled {
			continue
		}
		for _, p := range payments {
			if !p.PaidAt.Before(from) && p.PaidAt.Before(to) {
				rows = append(rows, advance.EmployeePayment{
					EmployeeID: adv.EmployeeID.String(),
					Amount:     p.Amount,
					PaidAt:     p.PaidAt,
				})
			}
		}
	}
	return rows, nil
}

type fakeEmployeeRepo struct {
	employee.Repository
	byID map[string]*employee.Employee
}

func (f *fakeEmployeeRepo) FindByID(_ context.Context, id string) (*employee.Employee, error) {
	emp, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return emp, nil
}

func newTestService(t *testing.T, repo advance.Repository, empRepo employee.Repository, txCount int) advance.Service {
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
	return advance.NewService(gormDB, repo, empRepo)
}

func seedEmployee(repo *memRepo) (*fakeEmployeeRepo, uuid.UUID) {
	empID := uuid.New()
	return &fakeEmployeeRepo{byID: map[string]*employee.Employee{
		empID.String(): {ID: empID, FullName: "Roaster"},
	}}, empID
}

func TestAdvanceClosesWhenPaymentsCoverAmount(t *testing.T) {
	repo := newMemRepo()
	empRepo, empID := seedEmployee(repo)
	svc := newTestService(t, repo, empRepo, 2)

	created, err := svc.Create(context.Background(), empID.String(), advance.CreateAdvanceRequest{Amount: 500, Reason: "rent"})
	require.NoError(t, err)
	assert.Equal(t, advance.StatusOpen, created.Status)
	assert.Equal(t, 500.0, created.Outstanding)

	first, err := svc.RecordPayment(context.Background(), created.ID, advance.RecordPaymentRequest{Amount: 300})
	require.NoError(t, err)
	assert.Equal(t, advance.StatusOpen, first.Status)
	assert.Equal(t, 200.0, first.Outstanding)

	second, err := svc.RecordPayment(context.Background(), created.ID, advance.RecordPaymentRequest{Amount: 200})
	require.NoError(t, err)
	assert.Equal(t, advance.StatusClosed, second.Status)
	assert.Zero(t, second.Outstanding)
	assert.Len(t, second.Payments, 2)
}

func TestAdvanceStaysOpenUntilFullyRecovered(t *testing.T) {
	repo := newMemRepo()
	empRepo, empID := seedEmployee(repo)
	svc := newTestService(t, repo, empRepo, 1)

	created, err := svc.Create(context.Background(), empID.String(), advance.CreateAdvanceRequest{Amount: 500})
	require.NoError(t, err)

	got, err := svc.RecordPayment(context.Background(), created.ID, advance.RecordPaymentRequest{Amount: 499})
	require.NoError(t, err)
	assert.Equal(t, advance.StatusOpen, got.Status)
	assert.Equal(t, 1.0, got.Outstanding)
}

func TestOverpaymentClampsOutstandingToZero(t *testing.T) {
	repo := newMemRepo()
	empRepo, empID := seedEmployee(repo)
	svc := newTestService(t, repo, empRepo, 1)

	created, err := svc.Create(context.Background(), empID.String(), advance.CreateAdvanceRequest{Amount: 500})
	require.NoError(t, err)

	got, err := svc.RecordPayment(context.Background(), created.ID, advance.RecordPaymentRequest{Amount: 600})
	require.NoError(t, err)
	assert.Equal(t, advance.StatusClosed, got.Status)
	assert.Zero(t, got.Outstanding)
}

func TestPaymentOnClosedAdvanceRejected(t *testing.T) {
	repo := newMemRepo()
	empRepo, empID := seedEmployee(repo)
	svc := newTestService(t, repo, empRepo, 2)

	created, err := svc.Create(context.Background(), empID.String(), advance.CreateAdvanceRequest{Amount: 100})
	require.NoError(t, err)
	_, err = svc.RecordPayment(context.Background(), created.ID, advance.RecordPaymentRequest{Amount: 100})
	require.NoError(t, err)

	_, err = svc.RecordPayment(context.Background(), created.ID, advance.RecordPaymentRequest{Amount: 10})
	assert.ErrorIs(t, err, advanceerrors.ErrAdvanceNotOpen)
}

func TestCancelRejectedOncePaymentsExist(t *testing.T) {
	repo := newMemRepo()
	empRepo, empID := seedEmployee(repo)
	svc := newTestService(t, repo, empRepo, 1)

	created, err := svc.Create(context.Background(), empID.String(), advance.CreateAdvanceRequest{Amount: 500})
	require.NoError(t, err)
	_, err = svc.RecordPayment(context.Background(), created.ID, advance.RecordPaymentRequest{Amount: 50})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), created.ID)
	assert.ErrorIs(t, err, advanceerrors.ErrAdvanceHasPayments)
}

func TestCancelUntouchedAdvance(t *testing.T) {
	repo := newMemRepo()
	empRepo, empID := seedEmployee(repo)
	svc := newTestService(t, repo, empRepo, 1)

	created, err := svc.Create(context.Background(), empID.String(), advance.CreateAdvanceRequest{Amount: 500})
	require.NoError(t, err)

	got, err := svc.Cancel(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, advance.StatusCancelled, got.Status)

	_, err = svc.RecordPayment(context.Background(), created.ID, advance.RecordPaymentRequest{Amount: 10})
	assert.ErrorIs(t, err, advanceerrors.ErrAdvanceCancelled)
}

func TestCreateCarriesDeductionPlan(t *testing.T) {
	repo := newMemRepo()
	empRepo, empID := seedEmployee(repo)
	svc := newTestService(t, repo, empRepo, 0)

	created, err := svc.Create(context.Background(), empID.String(), advance.CreateAdvanceRequest{
		Amount:           900,
		MonthlyDeduction: 300,
		RequestedAt:      "2024-05-02T09:00:00Z",
		Reason:           "eid travel",
	})
	require.NoError(t, err)
	assert.Equal(t, 300.0, created.MonthlyDeduction)
	assert.Equal(t, "2024-05-02T09:00:00Z", created.RequestedAt)
}

func TestCreateRejectsBadDeductionPlan(t *testing.T) {
	repo := newMemRepo()
	empRepo, empID := seedEmployee(repo)
	svc := newTestService(t, repo, empRepo, 0)

	_, err := svc.Create(context.Background(), empID.String(), advance.CreateAdvanceRequest{Amount: 500, MonthlyDeduction: -10})
	assert.ErrorIs(t, err, advanceerrors.ErrInvalidDeduction)

	_, err = svc.Create(context.Background(), empID.String(), advance.CreateAdvanceRequest{Amount: 500, MonthlyDeduction: 600})
	assert.ErrorIs(t, err, advanceerrors.ErrInvalidDeduction)

	_, err = svc.Create(context.Background(), empID.String(), advance.CreateAdvanceRequest{Amount: 500, RequestedAt: "May 2nd"})
	assert.ErrorIs(t, err, advanceerrors.ErrInvalidRequestedAt)
}

func TestCreateRejectsNonPositiveAmount(t *testing.T) {
	repo := newMemRepo()
	empRepo, empID := seedEmployee(repo)
	svc := newTestService(t, repo, empRepo, 0)

	_, err := svc.Create(context.Background(), empID.String(), advance.CreateAdvanceRequest{Amount: 0})
	assert.ErrorIs(t, err, advanceerrors.ErrInvalidAmount)

	_, err = svc.Create(context.Background(), empID.String(), advance.CreateAdvanceRequest{Amount: -20})
	assert.ErrorIs(t, err, advanceerrors.ErrInvalidAmount)
}
