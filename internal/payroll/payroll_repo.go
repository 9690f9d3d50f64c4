package payroll

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type HistoryRepository interface {
	WithTx(tx *gorm.DB) HistoryRepository
	Upsert(ctx context.Context, rows []PayrollHistory) error
	FindByMonth(ctx context.Context, month string) ([]PayrollHistory, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]PayrollHistory, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// WithTx rebinds the repository to the open transaction; the snapshot
// lands together with the approval's terminal stage or not at all.
func (r *historyRepository) WithTx(tx *gorm.DB) HistoryRepository {
	return &historyRepository{db: tx}
}

// Upsert keys on (month, employee_id) so repeating the finalize step
// overwrites rather than duplicates.
func (r *historyRepository) Upsert(ctx context.Context, rows []PayrollHistory) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "month"}, {Name: "employee_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"employee_code", "full_name", "base_salary", "allowances",
				"gross_pay", "overtime_pay", "absence_deduction", "late_penalty",
				"advance_deduction", "net_pay", "worked_hours", "overtime_hours",
				"present_days", "absent_days", "late_days", "updated_at",
			}),
		}).
		Create(&rows).Error
}

func (r *historyRepository) FindByMonth(ctx context.Context, month string) ([]PayrollHistory, error) {
	var rows []PayrollHistory
	err := r.db.WithContext(ctx).
		Where("month = ?", month).
		Order("full_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *historyRepository) FindByEmployee(ctx context.Context, employeeID string) ([]PayrollHistory, error) {
	var rows []PayrollHistory
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("month DESC").
		Find(&rows).Error
	return rows, err
}
