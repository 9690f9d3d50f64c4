package employee

import (
	"github.com/gin-gonic/gin"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/middleware"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.ListActive)
		employees.GET("/:employeeId", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.Get)
	}
}
