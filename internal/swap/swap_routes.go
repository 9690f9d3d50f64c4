package swap

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

	swaps := r.Group("/shift-swaps")
	swaps.Use(middleware.AuthMiddleware())
	{
		if redisClient != nil {
			swaps.POST(
				"",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "swap", "write"),
				handler.Submit,
			)
		} else {
			swaps.POST("", middleware.RBACAuthorize(rbacService, "swap", "write"), handler.Submit)
		}
		swaps.GET("/pending", middleware.RBACAuthorize(rbacService, "swap", "decide"), handler.ListPending)
		swaps.GET("/employees/:employeeId", middleware.RBACAuthorize(rbacService, "swap", "read"), handler.ListByEmployee)
		swaps.POST("/:requestId/approve", middleware.RBACAuthorize(rbacService, "swap", "decide"), handler.Approve)
		swaps.POST("/:requestId/reject", middleware.RBACAuthorize(rbacService, "swap", "decide"), handler.Reject)
		swaps.POST("/:requestId/cancel", middleware.RBACAuthorize(rbacService, "swap", "write"), handler.Cancel)
	}
}
