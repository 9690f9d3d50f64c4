package schedule

type WeekDayRequest struct {
	DayOfWeek    int     `json:"day_of_week"`
	IsWorking    bool    `json:"is_working"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	BreakMinutes *int    `json:"break_minutes"`
	GraceMinutes *int    `json:"grace_minutes"`
}

type ReplaceWeekRequest struct {
	Days []WeekDayRequest `json:"days" binding:"required"`
}

type BulkApplyWeekRequest struct {
	SourceEmployeeID  string   `json:"source_employee_id" binding:"required"`
	TargetEmployeeIDs []string `json:"target_employee_ids" binding:"required"`
}

type OverrideRequest struct {
	ShiftDate    string  `json:"shift_date" binding:"required"`
	IsWorking    bool    `json:"is_working"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	BreakMinutes *int    `json:"break_minutes"`
	GraceMinutes *int    `json:"grace_minutes"`
}

type WeekDayResponse struct {
	DayOfWeek    int    `json:"day_of_week"`
	IsWorking    bool   `json:"is_working"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	BreakMinutes int    `json:"break_minutes"`
	GraceMinutes int    `json:"grace_minutes"`
}

type OverrideResponse struct {
	EmployeeID    string  `json:"employee_id"`
	ShiftDate     string  `json:"shift_date"`
	IsWorking     bool    `json:"is_working"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	BreakMinutes  int     `json:"break_minutes"`
	GraceMinutes  int     `json:"grace_minutes"`
	SwapRequestID *string `json:"swap_request_id,omitempty"`
}

type EffectiveShiftResponse struct {
	EmployeeID string         `json:"employee_id"`
	Date       string         `json:"date"`
	Shift      EffectiveShift `json:"shift"`
}
