package swap

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=swap_repo.go -destination=mock/swap_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, row *ShiftSwapRequest) error
	FindByID(ctx context.Context, id string) (*ShiftSwapRequest, error)
	FindByStatus(ctx context.Context, status string) ([]ShiftSwapRequest, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]ShiftSwapRequest, error)
	Decide(ctx context.Context, id, to string, decidedBy uuid.UUID, comment string, at time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds every method to the open transaction, so the decision
// update commits or rolls back with the rest of the approval's writes.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, row *ShiftSwapRequest) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*ShiftSwapRequest, error) {
	var row ShiftSwapRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindByStatus(ctx context.Context, status string) ([]ShiftSwapRequest, error) {
	var rows []ShiftSwapRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]ShiftSwapRequest, error) {
	var rows []ShiftSwapRequest
	err := r.db.WithContext(ctx).
		Where("requester_id = ? OR target_id = ?", employeeID, employeeID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// Decide is a compare-and-set from pending; zero rows means the request
// was decided concurrently.
func (r *repository) Decide(ctx context.Context, id, to string, decidedBy uuid.UUID, comment string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&ShiftSwapRequest{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]interface{}{
			"status":          to,
			"decided_by":      decidedBy,
			"decided_at":      at,
			"manager_comment": comment,
			"updated_at":      at,
		})
	return res.RowsAffected, res.Error
}
