package employee

import (
	"time"

	"github.com/google/uuid"
)

// Employee is the read side of the employee registry. Record CRUD and its
// form validation live outside this service; the workforce engine only
// consumes shift defaults, salary fields, role, leave flag and location.
type Employee struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeCode     string     `gorm:"column:employee_code;type:varchar(30);uniqueIndex"`
	FullName         string     `gorm:"column:full_name"`
	Role             string     `gorm:"column:role;type:varchar(30);not null"`
	Department       *string    `gorm:"column:department"`
	EmploymentStatus string     `gorm:"column:employment_status;type:varchar(20);not null;default:'Active'"`
	IsOnLeave        bool       `gorm:"column:is_on_leave;not null;default:false"`
	LocationID       *uuid.UUID `gorm:"column:location_id;type:uuid"`

	// Weekly default shift, the lowest-precedence schedule source.
	ShiftStartTime    *string `gorm:"column:shift_start_time;type:varchar(5)"` // HH:MM
	ShiftEndTime      *string `gorm:"column:shift_end_time;type:varchar(5)"`
	ShiftBreakMinutes *int    `gorm:"column:shift_break_minutes"`
	ShiftGraceMinutes *int    `gorm:"column:shift_grace_minutes"`

	SalaryBase       float64 `gorm:"column:salary_base;not null;default:0"`
	SalaryAllowances float64 `gorm:"column:salary_allowances;not null;default:0"`
	BankName         *string `gorm:"column:bank_name"`
	IBAN             *string `gorm:"column:iban;type:varchar(34)"`

	PinHash *string `gorm:"column:pin_hash;type:varchar(100)"` // bcrypt, for quick clock-in

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Employee) TableName() string {
	return "employees"
}

// Gross is salary_base + salary_allowances, before any deduction or
// overtime addition.
func (e *Employee) Gross() float64 {
	return e.SalaryBase + e.SalaryAllowances
}

const (
	TransferTemporary = "TEMPORARY"
	TransferPermanent = "PERMANENT"

	TransferStatusApproved = "APPROVED"
)

// BranchTransfer records a temporary or permanent move between branches.
// Approved temporary windows extend where an employee may punch in.
type BranchTransfer struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	FromLocationID *uuid.UUID `gorm:"type:uuid"`
	ToLocationID   uuid.UUID  `gorm:"type:uuid;not null"`
	TransferType   string     `gorm:"type:varchar(20);not null"`
	Status         string     `gorm:"type:varchar(20);not null"`
	StartAt        *time.Time `gorm:"type:timestamptz"`
	EndAt          *time.Time `gorm:"type:timestamptz"`
	CreatedAt      time.Time
}

func (BranchTransfer) TableName() string {
	return "employee_branch_transfers"
}
