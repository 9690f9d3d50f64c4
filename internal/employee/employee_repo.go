package employee

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByCode(ctx context.Context, code string) (*Employee, error)
	FindAllActive(ctx context.Context) ([]Employee, error)
	FindAllWithPIN(ctx context.Context) ([]Employee, error)
	ActiveTemporaryTransfer(ctx context.Context, employeeID string, at time.Time) (*BranchTransfer, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).Where("LOWER(employee_code) = LOWER(?)", code).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindAllActive(ctx context.Context) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Where("employment_status NOT IN ?", []string{"Terminated", "Resigned"}).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllWithPIN(ctx context.Context) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Where("pin_hash IS NOT NULL").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ActiveTemporaryTransfer(ctx context.Context, employeeID string, at time.Time) (*BranchTransfer, error) {
	var t BranchTransfer
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("transfer_type = ?", TransferTemporary).
		Where("status = ?", TransferStatusApproved).
		Where("start_at IS NOT NULL AND start_at <= ?", at).
		Where("end_at IS NOT NULL AND end_at >= ?", at).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// AllowedAtBranch reports whether an employee may punch at a branch: the
// home branch always qualifies, otherwise an approved temporary transfer
// window covering `at` does.
func AllowedAtBranch(e *Employee, transfer *BranchTransfer, locationID uuid.UUID) bool {
	if locationID == uuid.Nil {
		return false
	}
	if e.LocationID != nil && *e.LocationID == locationID {
		return true
	}
	return transfer != nil && transfer.ToLocationID == locationID
}
