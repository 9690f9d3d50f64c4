package attendance

import (
	"time"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/schedule"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/timeclock"
)

const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusAbsent  = "absent"
	StatusOnLeave = "on_leave"
	StatusNone    = "none"
)

const (
	OvertimeWeekday        = "weekday"
	OvertimeWeekendHoliday = "weekend_holiday"
)

type DayClassification struct {
	Status        string  `json:"status"`
	LateMinutes   int     `json:"late_minutes"`
	WorkedHours   float64 `json:"worked_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	OvertimeKind  string  `json:"overtime_kind,omitempty"`
}

// ClassifyDay classifies one employee-day from the resolved shift and that
// day's raw clock events.
//
// Leave wins outright. A day with any log is present, downgraded to late
// when the earliest clock-in lands past start+grace. A past day with no
// logs is absent regardless of whether the resolved schedule marks it as
// working (matching the attendance reports this engine replaces; see
// DESIGN.md). Today and future days without logs are not yet evaluable.
func ClassifyDay(
	onLeave bool,
	date time.Time,
	today time.Time,
	shift schedule.EffectiveShift,
	logs []timeclock.TimeLog,
	holidays map[string]struct{},
) DayClassification {
	if onLeave {
		return DayClassification{Status: StatusOnLeave}
	}

	result := DayClassification{Status: StatusNone}

	switch {
	case len(logs) > 0:
		result.Status = StatusPresent
		if start, ok := shift.StartMinutes(); ok {
			clockMinutes := minutesOfDay(earliestClockIn(logs))
			allowed := start + shift.GraceMinutes
			if clockMinutes > allowed {
				result.Status = StatusLate
				result.LateMinutes = clockMinutes - allowed
			}
		}
	case dateOnly(date).Before(dateOnly(today)):
		result.Status = StatusAbsent
		return result
	default:
		return result
	}

	result.WorkedHours = workedHours(logs)
	if scheduled := shift.Hours(); scheduled > 0 && result.WorkedHours > scheduled {
		result.OvertimeHours = result.WorkedHours - scheduled
		result.OvertimeKind = OvertimeKind(date, holidays)
	}
	return result
}

// OvertimeKind flags Friday/Saturday and configured holiday dates for the
// higher payroll multiplier.
func OvertimeKind(date time.Time, holidays map[string]struct{}) string {
	if _, ok := holidays[date.Format("2006-01-02")]; ok {
		return OvertimeWeekendHoliday
	}
	if wd := date.Weekday(); wd == time.Friday || wd == time.Saturday {
		return OvertimeWeekendHoliday
	}
	return OvertimeWeekday
}

// workedHours sums closed sessions only; an employee still clocked in
// contributes to presence but not to worked or overtime hours yet.
// Same-day sessions are summed as-is, manual corrections included.
func workedHours(logs []timeclock.TimeLog) float64 {
	total := 0.0
	for _, log := range logs {
		if log.ClockOutAt == nil {
			continue
		}
		diff := log.ClockOutAt.Sub(log.ClockInAt).Hours()
		if diff > 0 {
			total += diff
		}
	}
	return total
}

func earliestClockIn(logs []timeclock.TimeLog) time.Time {
	earliest := logs[0].ClockInAt
	for _, log := range logs[1:] {
		if log.ClockInAt.Before(earliest) {
			earliest = log.ClockInAt
		}
	}
	return earliest
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
