package approval

type ApprovalResponse struct {
	Month             string  `json:"month"`
	Status            string  `json:"status"`
	HRApprovedBy      *string `json:"hr_approved_by,omitempty"`
	HRApprovedAt      *string `json:"hr_approved_at,omitempty"`
	ManagerApprovedBy *string `json:"manager_approved_by,omitempty"`
	ManagerApprovedAt *string `json:"manager_approved_at,omitempty"`
	AdminApprovedBy   *string `json:"admin_approved_by,omitempty"`
	AdminApprovedAt   *string `json:"admin_approved_at,omitempty"`
}
