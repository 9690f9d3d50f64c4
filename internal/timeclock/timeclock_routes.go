package timeclock

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/middleware"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	logs := r.Group("/time-logs")
	logs.Use(middleware.AuthMiddleware())
	{
		logs.GET("/open", middleware.RBACAuthorize(rbacService, "timeclock", "read"), handler.OpenLogs)
		if redisClient != nil {
			logs.POST(
				"/:employeeId/clock-in",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "timeclock", "punch"),
				handler.ClockIn,
			)
		} else {
			logs.POST("/:employeeId/clock-in", middleware.RBACAuthorize(rbacService, "timeclock", "punch"), handler.ClockIn)
		}
		logs.POST("/:employeeId/clock-out", middleware.RBACAuthorize(rbacService, "timeclock", "punch"), handler.ClockOut)
		logs.POST("/:employeeId/manual", middleware.RBACAuthorize(rbacService, "timeclock", "manual"), handler.ManualEntry)
		logs.POST("/quick", middleware.RBACAuthorize(rbacService, "timeclock", "punch"), handler.QuickClock)
	}
}
