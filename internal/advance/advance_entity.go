package advance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusOpen      = "open"
	StatusClosed    = "closed"
	StatusCancelled = "cancelled"
)

// SalaryAdvance is money paid out ahead of payroll and recovered through
// payments. It closes automatically once recorded payments cover the
// amount.
type SalaryAdvance struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"employee_id"`
	Amount           float64    `gorm:"not null" json:"amount"`
	MonthlyDeduction float64    `gorm:"column:monthly_deduction;not null;default:0" json:"monthly_deduction"`
	RequestedAt      time.Time  `gorm:"not null" json:"requested_at"`
	Reason           string     `gorm:"type:text" json:"reason"`
	Status           string     `gorm:"type:varchar(16);not null;default:'open'" json:"status"`
	CreatedBy        *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SalaryAdvance) TableName() string { return "salary_advances" }

// AdvancePayment is one recovery installment against an advance. PaidAt
// decides which payroll month deducts it, not CreatedAt.
type AdvancePayment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AdvanceID uuid.UUID  `gorm:"type:uuid;not null;index" json:"advance_id"`
	Amount    float64    `gorm:"not null" json:"amount"`
	PaidAt    time.Time  `gorm:"not null;index" json:"paid_at"`
	Note      string     `gorm:"type:text" json:"note"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (AdvancePayment) TableName() string { return "salary_advance_payments" }

// Outstanding is the unrecovered remainder, never negative even when an
// operator overpays the final installment.
func (a *SalaryAdvance) Outstanding(paid float64) float64 {
	remaining := a.Amount - paid
	if remaining < 0 {
		return 0
	}
	return remaining
}
