package advance

type CreateAdvanceRequest struct {
	Amount           float64 `json:"amount" binding:"required"`
	MonthlyDeduction float64 `json:"monthly_deduction"`
	RequestedAt      string  `json:"requested_at"`
	Reason           string  `json:"reason"`
}

type RecordPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	PaidAt string  `json:"paid_at"`
	Note   string  `json:"note"`
}

type PaymentResponse struct {
	ID        string  `json:"id"`
	AdvanceID string  `json:"advance_id"`
	Amount    float64 `json:"amount"`
	PaidAt    string  `json:"paid_at"`
	Note      string  `json:"note,omitempty"`
}

type AdvanceResponse struct {
	ID               string            `json:"id"`
	EmployeeID       string            `json:"employee_id"`
	Amount           float64           `json:"amount"`
	MonthlyDeduction float64           `json:"monthly_deduction"`
	RequestedAt      string            `json:"requested_at"`
	Reason           string            `json:"reason,omitempty"`
	Status           string            `json:"status"`
	Paid             float64           `json:"paid"`
	Outstanding      float64           `json:"outstanding"`
	Payments         []PaymentResponse `json:"payments,omitempty"`
	CreatedAt        string            `json:"created_at"`
}
