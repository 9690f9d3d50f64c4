package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// WeeklyScheduleDay is one weekday of an employee's weekly template.
// Exactly one row per (employee_id, day_of_week); the set is replaced
// as a whole when HR saves the template.
type WeeklyScheduleDay struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_weekly_employee_day"`
	DayOfWeek    int       `gorm:"not null;uniqueIndex:uq_weekly_employee_day"` // 0=Sunday .. 6=Saturday
	IsWorking    *bool     `gorm:"column:is_working"`
	StartTime    *string   `gorm:"column:start_time;type:varchar(5)"` // HH:MM
	EndTime      *string   `gorm:"column:end_time;type:varchar(5)"`
	BreakMinutes *int      `gorm:"column:break_minutes"`
	GraceMinutes *int      `gorm:"column:grace_minutes"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (WeeklyScheduleDay) TableName() string {
	return "employee_weekly_schedules"
}

// ScheduleOverride replaces the weekly template for one employee on one
// specific date. At most one row per (employee_id, shift_date). Overrides
// written by swap approval carry the swap request id for traceability.
type ScheduleOverride struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_override_employee_date"`
	ShiftDate     string     `gorm:"column:shift_date;type:date;not null;uniqueIndex:uq_override_employee_date"` // YYYY-MM-DD
	IsWorking     *bool      `gorm:"column:is_working"`
	StartTime     *string    `gorm:"column:start_time;type:varchar(5)"`
	EndTime       *string    `gorm:"column:end_time;type:varchar(5)"`
	BreakMinutes  *int       `gorm:"column:break_minutes"`
	GraceMinutes  *int       `gorm:"column:grace_minutes"`
	SwapRequestID *uuid.UUID `gorm:"column:swap_request_id;type:uuid;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ScheduleOverride) TableName() string {
	return "employee_schedule_overrides"
}

const DefaultGraceMinutes = 15

// EffectiveShift is the single resolved shift definition for one employee
// on one date, after applying override -> weekly -> employee default.
type EffectiveShift struct {
	IsWorking    bool   `json:"is_working"`
	StartTime    string `json:"start_time"` // HH:MM, empty when unknown
	EndTime      string `json:"end_time"`
	BreakMinutes int    `json:"break_minutes"`
	GraceMinutes int    `json:"grace_minutes"`
	Source       string `json:"source"` // override | weekly | default | none
}

// MinutesOfDay parses HH:MM into minutes since midnight.
func MinutesOfDay(value string) (int, bool) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// StartMinutes returns the shift start in minutes since midnight.
func (s EffectiveShift) StartMinutes() (int, bool) {
	return MinutesOfDay(s.StartTime)
}

// Hours is the scheduled working time net of break. Shifts that wrap
// midnight (end before start) span into the next day.
func (s EffectiveShift) Hours() float64 {
	start, ok1 := MinutesOfDay(s.StartTime)
	end, ok2 := MinutesOfDay(s.EndTime)
	if !ok1 || !ok2 {
		return 0
	}
	raw := end - start
	if raw < 0 {
		raw += 24 * 60
	}
	net := raw - s.BreakMinutes
	if net < 0 {
		net = 0
	}
	return float64(net) / 60
}
