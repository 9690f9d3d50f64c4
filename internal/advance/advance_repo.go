package advance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// EmployeePayment is a payment joined with the owning advance's employee,
// the shape the payroll deduction pass consumes.
type EmployeePayment struct {
	EmployeeID string
	Amount     float64
	PaidAt     time.Time
}

//go:generate mockgen -source=advance_repo.go -destination=mock/advance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, row *SalaryAdvance) error
	FindByID(ctx context.Context, id string) (*SalaryAdvance, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]SalaryAdvance, error)
	UpdateStatus(ctx context.Context, id, from, to string) (int64, error)
	CreatePayment(ctx context.Context, row *AdvancePayment) error
	PaymentsByAdvance(ctx context.Context, advanceID string) ([]AdvancePayment, error)
	SumPayments(ctx context.Context, advanceID string) (float64, error)
	PaymentsBetween(ctx context.Context, from, to time.Time) ([]EmployeePayment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds every method to the open transaction, keeping the
// payment insert and the auto-close CAS atomic.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, row *SalaryAdvance) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*SalaryAdvance, error) {
	var row SalaryAdvance
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]SalaryAdvance, error) {
	var rows []SalaryAdvance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// UpdateStatus is a compare-and-set on status; zero rows means the
// advance moved out of `from` concurrently.
func (r *repository) UpdateStatus(ctx context.Context, id, from, to string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&SalaryAdvance{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *repository) CreatePayment(ctx context.Context, row *AdvancePayment) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) PaymentsByAdvance(ctx context.Context, advanceID string) ([]AdvancePayment, error) {
	var rows []AdvancePayment
	err := r.db.WithContext(ctx).
		Where("advance_id = ?", advanceID).
		Order("paid_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) SumPayments(ctx context.Context, advanceID string) (float64, error) {
	var total sql.NullFloat64
	err := r.db.WithContext(ctx).
		Model(&AdvancePayment{}).
		Where("advance_id = ?", advanceID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total.Float64, err
}

// PaymentsBetween joins payments with their advances so payroll can
// attribute each installment to an employee by paid_at.
func (r *repository) PaymentsBetween(ctx context.Context, from, to time.Time) ([]EmployeePayment, error) {
	var rows []EmployeePayment
	err := r.db.WithContext(ctx).
		Model(&AdvancePayment{}).
		Select("salary_advances.employee_id AS employee_id, salary_advance_payments.amount AS amount, salary_advance_payments.paid_at AS paid_at").
		Joins("JOIN salary_advances ON salary_advances.id = salary_advance_payments.advance_id").
		Where("salary_advance_payments.paid_at >= ? AND salary_advance_payments.paid_at < ?", from, to).
		Where("salary_advances.status <> ?", StatusCancelled).
		Scan(&rows).Error
	return rows, err
}
