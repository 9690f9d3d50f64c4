package schedule

import (
	"github.com/gin-gonic/gin"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/middleware"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	schedules := r.Group("/schedules")
	schedules.Use(middleware.AuthMiddleware())
	{
		schedules.GET("/:employeeId/week", middleware.RBACAuthorize(rbacService, "schedule", "read"), handler.GetWeek)
		schedules.PUT("/:employeeId/week", middleware.RBACAuthorize(rbacService, "schedule", "write"), handler.ReplaceWeek)
		schedules.POST("/bulk-apply", middleware.RBACAuthorize(rbacService, "schedule", "write"), handler.BulkApplyWeek)
		schedules.GET("/:employeeId/overrides", middleware.RBACAuthorize(rbacService, "schedule", "read"), handler.GetOverrides)
		schedules.PUT("/:employeeId/overrides", middleware.RBACAuthorize(rbacService, "schedule", "write"), handler.UpsertOverride)
		schedules.GET("/:employeeId/resolve", middleware.RBACAuthorize(rbacService, "schedule", "read"), handler.ResolveDay)
	}
}
