package payroll

import (
	"github.com/gin-gonic/gin"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/middleware"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	payroll := r.Group("/payroll")
	payroll.Use(middleware.AuthMiddleware())
	{
		payroll.GET("/:month", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.ComputeMonth)
		payroll.GET("/:month/payslips/:employeeId", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.Payslip)
		payroll.GET("/:month/history", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.History)
		payroll.GET("/:month/export", middleware.RBACAuthorize(rbacService, "payroll", "export"), handler.Export)
	}
}
