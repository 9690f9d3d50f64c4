package payroll

import (
	"time"

	"github.com/google/uuid"
)

// PayrollHistory is the immutable snapshot written when a month reaches
// final approval. One row per employee per month, upserted so a re-run
// of the finalize step stays idempotent.
type PayrollHistory struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Month            string    `gorm:"type:varchar(7);not null;uniqueIndex:uq_payroll_history_month_employee" json:"month"`
	EmployeeID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_history_month_employee" json:"employee_id"`
	EmployeeCode     string    `gorm:"type:varchar(32)" json:"employee_code"`
	FullName         string    `gorm:"type:varchar(255)" json:"full_name"`
	BaseSalary       float64   `json:"base_salary"`
	Allowances       float64   `json:"allowances"`
	GrossPay         float64   `json:"gross_pay"`
	OvertimePay      float64   `json:"overtime_pay"`
	AbsenceDeduction float64   `json:"absence_deduction"`
	LatePenalty      float64   `json:"late_penalty"`
	AdvanceDeduction float64   `json:"advance_deduction"`
	NetPay           float64   `json:"net_pay"`
	WorkedHours      float64   `json:"worked_hours"`
	OvertimeHours    float64   `json:"overtime_hours"`
	PresentDays      int       `json:"present_days"`
	AbsentDays       int       `json:"absent_days"`
	LateDays         int       `json:"late_days"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PayrollHistory) TableName() string { return "payroll_history" }
