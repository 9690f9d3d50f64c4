package settings

type UpdateSettingsRequest struct {
	LatePenaltyType   string   `json:"late_penalty_type" binding:"required,oneof=per_minute per_occurrence"`
	LatePenaltyAmount float64  `json:"late_penalty_amount" binding:"gte=0"`
	Currency          string   `json:"currency" binding:"required"`
	OvertimeHolidays  []string `json:"overtime_holidays"`
}

type SettingsResponse struct {
	LatePenaltyType   string   `json:"late_penalty_type"`
	LatePenaltyAmount float64  `json:"late_penalty_amount"`
	Currency          string   `json:"currency"`
	OvertimeHolidays  []string `json:"overtime_holidays"`
}
