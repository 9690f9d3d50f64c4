package attendance

const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

const (
	AnomalyAbsenceStreak    = "absence_streak"
	AnomalyFrequentLateness = "frequent_lateness"
)

type DayResponse struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	DayClassification
}

type BoardRow struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeCode   string  `json:"employee_code"`
	FullName       string  `json:"full_name"`
	Role           string  `json:"role"`
	Status         string  `json:"status"`
	LateMinutes    int     `json:"late_minutes"`
	WorkedHours    float64 `json:"worked_hours"`
	FirstClockIn   *string `json:"first_clock_in,omitempty"`
	LastClockOut   *string `json:"last_clock_out,omitempty"`
	StillClockedIn bool    `json:"still_clocked_in"`
}

type BoardResponse struct {
	Date string     `json:"date"`
	Rows []BoardRow `json:"rows"`
}

type EmployeeSummary struct {
	EmployeeID             string   `json:"employee_id"`
	EmployeeCode           string   `json:"employee_code"`
	FullName               string   `json:"full_name"`
	Role                   string   `json:"role"`
	PresentDays            int      `json:"present_days"`
	LateDays               int      `json:"late_days"`
	AbsentDays             int      `json:"absent_days"`
	LeaveDays              int      `json:"leave_days"`
	TotalLateMinutes       int      `json:"total_late_minutes"`
	WorkedHours            float64  `json:"worked_hours"`
	OvertimeHours          float64  `json:"overtime_hours"`
	MaxConsecutiveAbsences int      `json:"max_consecutive_absences"`
	Anomalies              []string `json:"anomalies,omitempty"`
}

type SummaryTotals struct {
	Present int `json:"present"`
	Late    int `json:"late"`
	Absent  int `json:"absent"`
	OnLeave int `json:"on_leave"`
}

type SummaryResponse struct {
	Period    string            `json:"period"`
	From      string            `json:"from"`
	To        string            `json:"to"`
	Totals    SummaryTotals     `json:"totals"`
	Employees []EmployeeSummary `json:"employees"`
}
