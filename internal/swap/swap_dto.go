package swap

type SubmitRequest struct {
	RequesterID string `json:"requester_id" binding:"required,uuid"`
	TargetID    string `json:"target_id" binding:"required,uuid"`
	ShiftDate   string `json:"shift_date" binding:"required"`
	Reason      string `json:"reason"`
}

type DecideRequest struct {
	Comment string `json:"comment"`
}

type SwapResponse struct {
	ID             string  `json:"id"`
	RequesterID    string  `json:"requester_id"`
	TargetID       string  `json:"target_id"`
	ShiftDate      string  `json:"shift_date"`
	Reason         string  `json:"reason,omitempty"`
	Status         string  `json:"status"`
	DecidedBy      *string `json:"decided_by,omitempty"`
	DecidedAt      *string `json:"decided_at,omitempty"`
	ManagerComment string  `json:"manager_comment,omitempty"`
	CreatedAt      string  `json:"created_at"`
}
