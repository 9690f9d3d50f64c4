package approval

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=approval_repo.go -destination=mock/approval_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, row *PayrollApproval) error
	FindByMonth(ctx context.Context, month string) (*PayrollApproval, error)
	Transition(ctx context.Context, month, from, to string, actor uuid.UUID, at time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds every method to the open transaction; the final-stage
// CAS must not commit ahead of the history snapshot and outbox write.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, row *PayrollApproval) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) FindByMonth(ctx context.Context, month string) (*PayrollApproval, error) {
	var row PayrollApproval
	err := r.db.WithContext(ctx).Where("month = ?", month).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Transition is a compare-and-set keyed on (month, status). Zero rows
// affected means another approver moved the month first, or the caller
// tried to skip a stage.
func (r *repository) Transition(ctx context.Context, month, from, to string, actor uuid.UUID, at time.Time) (int64, error) {
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": at,
	}
	switch to {
	case StatusHRApproved:
		updates["hr_approved_by"] = actor
		updates["hr_approved_at"] = at
	case StatusManagerApproved:
		updates["manager_approved_by"] = actor
		updates["manager_approved_at"] = at
	case StatusAdminApproved:
		updates["admin_approved_by"] = actor
		updates["admin_approved_at"] = at
	}

	res := r.db.WithContext(ctx).
		Model(&PayrollApproval{}).
		Where("month = ? AND status = ?", month, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}
