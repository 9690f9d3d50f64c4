package schedule

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=schedule_repo.go -destination=mock/schedule_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindWeek(ctx context.Context, employeeID string) ([]WeeklyScheduleDay, error)
	FindWeeklyDay(ctx context.Context, employeeID string, dayOfWeek int) (*WeeklyScheduleDay, error)
	ReplaceWeek(ctx context.Context, employeeID string, days []WeeklyScheduleDay) error
	FindOverride(ctx context.Context, employeeID, shiftDate string) (*ScheduleOverride, error)
	FindOverridesInRange(ctx context.Context, employeeID, fromDate, toDate string) ([]ScheduleOverride, error)
	UpsertOverrides(ctx context.Context, rows []ScheduleOverride) error
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

func (r *repository) FindWeek(ctx context.Context, employeeID string) ([]WeeklyScheduleDay, error) {
	var rows []WeeklyScheduleDay
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("day_of_week ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindWeeklyDay(ctx context.Context, employeeID string, dayOfWeek int) (*WeeklyScheduleDay, error) {
	var row WeeklyScheduleDay
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("day_of_week = ?", dayOfWeek).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ReplaceWeek(ctx context.Context, employeeID string, days []WeeklyScheduleDay) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "day_of_week"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"is_working", "start_time", "end_time", "break_minutes", "grace_minutes", "updated_at",
			}),
		}).
		Create(&days).Error
}

func (r *repository) FindOverride(ctx context.Context, employeeID, shiftDate string) (*ScheduleOverride, error) {
	var row ScheduleOverride
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("shift_date = ?", shiftDate).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindOverridesInRange(ctx context.Context, employeeID, fromDate, toDate string) ([]ScheduleOverride, error) {
	var rows []ScheduleOverride
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("shift_date >= ? AND shift_date <= ?", fromDate, toDate).
		Order("shift_date ASC").
		Find(&rows).Error
	return rows, err
}

// UpsertOverrides is keyed by (employee_id, shift_date) and safe to retry.
func (r *repository) UpsertOverrides(ctx context.Context, rows []ScheduleOverride) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "shift_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"is_working", "start_time", "end_time", "break_minutes", "grace_minutes", "swap_request_id", "updated_at",
			}),
		}).
		Create(&rows).Error
}
