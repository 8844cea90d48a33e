package attendance

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
	records := r.Group("/attendance")
	records.Use(middleware.AuthMiddleware())
	records.Use(middleware.ContextLogger(logger))
	{
		records.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.GetAll,
		)

		records.POST("",
			middleware.RateLimitByUser(1, 3),
			middleware.RoleMiddleware(auth.RoleAdmin),
			middleware.Idempotency(rdb),
			handler.Mark,
		)
	}
}
