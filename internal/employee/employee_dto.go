package employee

type EmployeeResponse struct {
	ID               string  `json:"id"`
	EmployeeCode     string  `json:"employee_code"`
	FullName         string  `json:"full_name"`
	Role             string  `json:"role"`
	Department       string  `json:"department,omitempty"`
	EmploymentStatus string  `json:"employment_status"`
	IsOnLeave        bool    `json:"is_on_leave"`
	LocationID       *string `json:"location_id,omitempty"`
	ShiftStartTime   *string `json:"shift_start_time,omitempty"`
	ShiftEndTime     *string `json:"shift_end_time,omitempty"`
	ShiftBreakMins   *int    `json:"shift_break_minutes,omitempty"`
	ShiftGraceMins   *int    `json:"shift_grace_minutes,omitempty"`
	SalaryBase       float64 `json:"salary_base"`
	SalaryAllowances float64 `json:"salary_allowances"`
	BankName         string  `json:"bank_name,omitempty"`
	IBAN             string  `json:"iban,omitempty"`
}
