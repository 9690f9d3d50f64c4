package approval

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft           = "draft"
	StatusHRApproved      = "hr_approved"
	StatusManagerApproved = "manager_approved"
	StatusAdminApproved   = "admin_approved"
)

// PayrollApproval tracks the sign-off chain for one payroll month. One
// row per month, created lazily on first approval. Status only moves
// forward; admin_approved is terminal and freezes the month into
// payroll history.
type PayrollApproval struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Month             string     `gorm:"type:varchar(7);not null;uniqueIndex:uq_payroll_approval_month" json:"month"`
	Status            string     `gorm:"type:varchar(24);not null;default:'draft'" json:"status"`
	HRApprovedBy      *uuid.UUID `gorm:"type:uuid" json:"hr_approved_by,omitempty"`
	HRApprovedAt      *time.Time `json:"hr_approved_at,omitempty"`
	ManagerApprovedBy *uuid.UUID `gorm:"type:uuid" json:"manager_approved_by,omitempty"`
	ManagerApprovedAt *time.Time `json:"manager_approved_at,omitempty"`
	AdminApprovedBy   *uuid.UUID `gorm:"type:uuid" json:"admin_approved_by,omitempty"`
	AdminApprovedAt   *time.Time `json:"admin_approved_at,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PayrollApproval) TableName() string { return "payroll_approvals" }
