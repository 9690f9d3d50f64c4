package events

import "time"

const (
	PayrollFinalizedTopic = "hr.payroll.finalized.v1"
	PayrollFinalizedType  = "payroll_finalized"
)

// PayrollFinalizedLine carries the per-employee figures the downstream
// bank-file renderer needs. It is a projection of the history snapshot,
// not the full pay line.
type PayrollFinalizedLine struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	BankName     string  `json:"bank_name,omitempty"`
	IBAN         string  `json:"iban,omitempty"`
	NetPay       float64 `json:"net_pay"`
	Currency     string  `json:"currency"`
}

// PayrollFinalizedEvent is emitted through the outbox in the same
// transaction that records final approval, so a consumed event always
// has matching history rows.
type PayrollFinalizedEvent struct {
	EventID     string                 `json:"event_id"`
	Month       string                 `json:"month"`
	FinalizedBy string                 `json:"finalized_by"`
	FinalizedAt time.Time              `json:"finalized_at"`
	NetTotal    float64                `json:"net_total"`
	Lines       []PayrollFinalizedLine `json:"lines"`
}
