package settings

import "time"

const (
	PenaltyPerMinute     = "per_minute"
	PenaltyPerOccurrence = "per_occurrence"
)

// SystemSettings is a single-row table. Late-penalty policy and the
// overtime holiday list drive the payroll calculator.
type SystemSettings struct {
	ID                uint      `gorm:"primaryKey"`
	LatePenaltyType   string    `gorm:"column:late_penalty_type;type:varchar(20);not null;default:'per_minute'"`
	LatePenaltyAmount float64   `gorm:"column:late_penalty_amount;not null;default:0"`
	Currency          string    `gorm:"column:currency;type:varchar(10);not null;default:'QAR'"`
	OvertimeHolidays  string    `gorm:"column:overtime_holidays;type:text"` // comma-separated YYYY-MM-DD
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (SystemSettings) TableName() string {
	return "system_settings"
}
