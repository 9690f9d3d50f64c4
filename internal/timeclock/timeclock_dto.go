package timeclock

type ClockInRequest struct {
	LocationID *string `json:"location_id"`
}

type ManualEntryRequest struct {
	ClockInAt  string  `json:"clock_in_at" binding:"required"`  // RFC3339
	ClockOutAt string  `json:"clock_out_at" binding:"required"` // RFC3339
	Reason     string  `json:"reason" binding:"required"`
	LocationID *string `json:"location_id"`
}

type QuickClockRequest struct {
	// Value is either an employee code or a clock-in PIN.
	Value      string  `json:"value" binding:"required"`
	LocationID *string `json:"location_id"`
}

type TimeLogResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	ClockInAt    string  `json:"clock_in_at"`
	ClockOutAt   *string `json:"clock_out_at,omitempty"`
	IsManual     bool    `json:"is_manual"`
	ManualReason *string `json:"manual_reason,omitempty"`
	LocationID   *string `json:"location_id,omitempty"`
}
