package domain

// Roles mirror the employee registry's role field. The payroll approval
// chain only ever advances through HR, Manager and Admin.
const (
	RoleAdmin          = "ADMIN"
	RoleManager        = "MANAGER"
	RoleHR             = "HR"
	RoleCashier        = "CASHIER"
	RoleRoaster        = "ROASTER"
	RoleWarehouseStaff = "WAREHOUSE_STAFF"
)

type EnforceRequest struct {
	ActorID  string `json:"actor_id" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
