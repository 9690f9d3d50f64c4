package payroll

import (
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/attendance"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/employee"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/schedule"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/settings"
)

// Pay is normalized over a fixed 30-day month regardless of calendar
// length, so February and July absences cost the same.
const (
	DaysPerMonth      = 30.0
	DefaultShiftHours = 8.0

	WeekdayOvertimeRate = 1.25
	WeekendOvertimeRate = 1.5
)

// Line is one employee's computed pay for a month.
type Line struct {
	EmployeeID       string  `json:"employee_id"`
	EmployeeCode     string  `json:"employee_code"`
	FullName         string  `json:"full_name"`
	Role             string  `json:"role"`
	BaseSalary       float64 `json:"base_salary"`
	Allowances       float64 `json:"allowances"`
	GrossPay         float64 `json:"gross_pay"`
	HourlyRate       float64 `json:"hourly_rate"`
	DailyRate        float64 `json:"daily_rate"`
	PresentDays      int     `json:"present_days"`
	AbsentDays       int     `json:"absent_days"`
	LateDays         int     `json:"late_days"`
	LeaveDays        int     `json:"leave_days"`
	LateMinutes      int     `json:"late_minutes"`
	WorkedHours      float64 `json:"worked_hours"`
	OvertimeHours    float64 `json:"overtime_hours"`
	OvertimePay      float64 `json:"overtime_pay"`
	AbsenceDeduction float64 `json:"absence_deduction"`
	LatePenalty      float64 `json:"late_penalty"`
	AdvanceDeduction float64 `json:"advance_deduction"`
	NetPay           float64 `json:"net_pay"`
	BankName         string  `json:"bank_name,omitempty"`
	IBAN             string  `json:"iban,omitempty"`
	Currency         string  `json:"currency"`
}

// ShiftHours derives the employee's standard shift length from their
// default shift fields, falling back to eight hours when none are set.
func ShiftHours(emp *employee.Employee) float64 {
	if emp.ShiftStartTime == nil || emp.ShiftEndTime == nil {
		return DefaultShiftHours
	}
	shift := schedule.EffectiveShift{
		StartTime: *emp.ShiftStartTime,
		EndTime:   *emp.ShiftEndTime,
	}
	if emp.ShiftBreakMinutes != nil {
		shift.BreakMinutes = *emp.ShiftBreakMinutes
	}
	if hours := shift.Hours(); hours > 0 {
		return hours
	}
	return DefaultShiftHours
}

// HourlyRate spreads the gross monthly salary over 30 shift-length days.
func HourlyRate(emp *employee.Employee) float64 {
	return emp.Gross() / (DaysPerMonth * ShiftHours(emp))
}

// ComputeLine folds one employee's classified month into a pay line.
// Days tagged on_leave count for the leave tally only; they neither
// deduct pay nor add hours. A zero penalty amount disables the late
// penalty entirely.
func ComputeLine(
	emp *employee.Employee,
	days []attendance.DayClassification,
	policy settings.PenaltyPolicy,
	advanceDeduction float64,
	currency string,
) Line {
	gross := emp.Gross()
	hourly := HourlyRate(emp)

	line := Line{
		EmployeeID:       emp.ID.String(),
		EmployeeCode:     emp.EmployeeCode,
		FullName:         emp.FullName,
		Role:             emp.Role,
		BaseSalary:       emp.SalaryBase,
		Allowances:       emp.SalaryAllowances,
		GrossPay:         gross,
		HourlyRate:       hourly,
		DailyRate:        gross / DaysPerMonth,
		AdvanceDeduction: advanceDeduction,
		Currency:         currency,
	}
	if emp.BankName != nil {
		line.BankName = *emp.BankName
	}
	if emp.IBAN != nil {
		line.IBAN = *emp.IBAN
	}

	for _, day := range days {
		switch day.Status {
		case attendance.StatusPresent:
			line.PresentDays++
		case attendance.StatusLate:
			line.PresentDays++
			line.LateDays++
			line.LateMinutes += day.LateMinutes
		case attendance.StatusAbsent:
			line.AbsentDays++
			continue
		case attendance.StatusOnLeave:
			line.LeaveDays++
			continue
		default:
			continue
		}

		line.WorkedHours += day.WorkedHours
		line.OvertimeHours += day.OvertimeHours
		if day.OvertimeHours > 0 {
			rate := WeekdayOvertimeRate
			if day.OvertimeKind == attendance.OvertimeWeekendHoliday {
				rate = WeekendOvertimeRate
			}
			line.OvertimePay += day.OvertimeHours * hourly * rate
		}
	}

	line.AbsenceDeduction = float64(line.AbsentDays) * line.DailyRate
	line.LatePenalty = latePenalty(line, policy)
	line.NetPay = gross + line.OvertimePay - line.AbsenceDeduction - line.LatePenalty - line.AdvanceDeduction
	return line
}

func latePenalty(line Line, policy settings.PenaltyPolicy) float64 {
	if policy.Amount <= 0 {
		return 0
	}
	if policy.Type == settings.PenaltyPerOccurrence {
		return float64(line.LateDays) * policy.Amount
	}
	return float64(line.LateMinutes) * policy.Amount
}
