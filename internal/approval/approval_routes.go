package approval

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

	approvals := r.Group("/payroll-approvals")
	approvals.Use(middleware.AuthMiddleware())
	{
		approvals.GET("/:month", middleware.RBACAuthorize(rbacService, "approval", "read"), handler.Get)
		if redisClient != nil {
			approvals.POST(
				"/:month/approve",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "approval", "approve"),
				handler.Approve,
			)
		} else {
			approvals.POST("/:month/approve", middleware.RBACAuthorize(rbacService, "approval", "approve"), handler.Approve)
		}
	}
}
