package advance

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

	advances := r.Group("/advances")
	advances.Use(middleware.AuthMiddleware())
	{
		advances.POST("/employees/:employeeId", middleware.RBACAuthorize(rbacService, "advance", "write"), handler.Create)
		advances.GET("/employees/:employeeId", middleware.RBACAuthorize(rbacService, "advance", "read"), handler.ListByEmployee)
		advances.GET("/:advanceId", middleware.RBACAuthorize(rbacService, "advance", "read"), handler.Get)
		if redisClient != nil {
			advances.POST(
				"/:advanceId/payments",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "advance", "write"),
				handler.RecordPayment,
			)
		} else {
			advances.POST("/:advanceId/payments", middleware.RBACAuthorize(rbacService, "advance", "write"), handler.RecordPayment)
		}
		advances.POST("/:advanceId/cancel", middleware.RBACAuthorize(rbacService, "advance", "write"), handler.Cancel)
	}
}
