package payroll

type MonthTotals struct {
	GrossPay         float64 `json:"gross_pay"`
	OvertimePay      float64 `json:"overtime_pay"`
	AbsenceDeduction float64 `json:"absence_deduction"`
	LatePenalty      float64 `json:"late_penalty"`
	AdvanceDeduction float64 `json:"advance_deduction"`
	NetPay           float64 `json:"net_pay"`
}

type MonthResponse struct {
	Month  string      `json:"month"`
	From   string      `json:"from"`
	To     string      `json:"to"`
	Lines  []Line      `json:"lines"`
	Totals MonthTotals `json:"totals"`
}

type HistoryResponse struct {
	Month string           `json:"month"`
	Rows  []PayrollHistory `json:"rows"`
}
