package attendance

import (
	"github.com/gin-gonic/gin"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/middleware"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware())
	{
		attendance.GET("/board", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.DailyBoard)
		attendance.GET("/summary", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.Summary)
		attendance.GET("/:employeeId/day", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.Day)
	}
}
