package swap

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// ShiftSwapRequest asks to trade effective shifts with a colleague on
// one date. Approval resolves both parties' shifts at decision time and
// materializes them as crossed overrides tagged with this request's id.
type ShiftSwapRequest struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RequesterID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"requester_id"`
	TargetID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"target_id"`
	ShiftDate      string     `gorm:"column:shift_date;type:date;not null" json:"shift_date"` // YYYY-MM-DD
	Reason         string     `gorm:"type:text" json:"reason"`
	Status         string     `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	DecidedBy      *uuid.UUID `gorm:"type:uuid" json:"decided_by,omitempty"`
	DecidedAt      *time.Time `json:"decided_at,omitempty"`
	ManagerComment string     `gorm:"column:manager_comment;type:text" json:"manager_comment,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ShiftSwapRequest) TableName() string { return "shift_swap_requests" }
