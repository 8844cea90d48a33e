package leave

import (
	"hr-portal/internal/auth"
	"hr-portal/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	leaves := r.Group("/leave-requests")
	leaves.Use(middleware.AuthMiddleware())
	leaves.Use(middleware.ContextLogger(logger))
	{
		leaves.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.GetAll,
		)

		leaves.POST("",
			middleware.RateLimitByUser(1, 3),
			middleware.Idempotency(rdb),
			handler.Submit,
		)

		leaves.POST("/:id/approve",
			middleware.RateLimitByUser(1, 3),
			middleware.RoleMiddleware(auth.RoleAdmin),
			handler.Approve,
		)

		leaves.POST("/:id/deny",
			middleware.RateLimitByUser(1, 3),
			middleware.RoleMiddleware(auth.RoleAdmin),
			handler.Deny,
		)
	}
}
