package timeclock

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=timeclock_repo.go -destination=mock/timeclock_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, log *TimeLog) error
	FindOpenByEmployee(ctx context.Context, employeeID string) (*TimeLog, error)
	FindAllOpen(ctx context.Context) ([]TimeLog, error)
	SetClockOut(ctx context.Context, id string, at time.Time) error
	HasOverlapping(ctx context.Context, employeeID string, from, to time.Time) (bool, error)
	FindByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]TimeLog, error)
	FindAllBetween(ctx context.Context, from, to time.Time) ([]TimeLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds every method to the open transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, log *TimeLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) FindOpenByEmployee(ctx context.Context, employeeID string) (*TimeLog, error) {
	var log TimeLog
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("clock_out_at IS NULL").
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *repository) FindAllOpen(ctx context.Context) ([]TimeLog, error) {
	var rows []TimeLog
	err := r.db.WithContext(ctx).
		Where("clock_out_at IS NULL").
		Order("clock_in_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) SetClockOut(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&TimeLog{}).
		Where("id = ?", id).
		Where("clock_out_at IS NULL").
		Update("clock_out_at", at).Error
}

// HasOverlapping reports whether any closed session for the employee
// intersects [from, to). Open sessions overlap when they started before `to`.
func (r *repository) HasOverlapping(ctx context.Context, employeeID string, from, to time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&TimeLog{}).
		Where("employee_id = ?", employeeID).
		Where("clock_in_at < ?", to).
		Where("clock_out_at IS NULL OR clock_out_at > ?", from).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]TimeLog, error) {
	var rows []TimeLog
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("clock_in_at >= ? AND clock_in_at < ?", from, to).
		Order("clock_in_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllBetween(ctx context.Context, from, to time.Time) ([]TimeLog, error) {
	var rows []TimeLog
	err := r.db.WithContext(ctx).
		Where("clock_in_at >= ? AND clock_in_at < ?", from, to).
		Order("clock_in_at ASC").
		Find(&rows).Error
	return rows, err
}
