package timeclock

import (
	"time"

	"github.com/google/uuid"
)

// TimeLog is one punch session. A row with a null clock_out_at is an open
// session; the store enforces at most one open session per employee via a
// partial unique index on (employee_id) WHERE clock_out_at IS NULL.
// Rows are never mutated after creation except to set clock_out_at.
type TimeLog struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClockInAt    time.Time  `gorm:"column:clock_in_at;type:timestamptz;not null;index"`
	ClockOutAt   *time.Time `gorm:"column:clock_out_at;type:timestamptz"`
	IsManual     bool       `gorm:"column:is_manual;not null;default:false"`
	ManualReason *string    `gorm:"column:manual_reason;type:text"`
	LocationID   *uuid.UUID `gorm:"column:location_id;type:uuid"`
	CreatedBy    *uuid.UUID `gorm:"column:created_by;type:uuid"`
	CreatedAt    time.Time
}

func (TimeLog) TableName() string {
	return "employee_time_logs"
}
