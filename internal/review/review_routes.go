package review

import (
	"hr-portal/internal/auth"
	"hr-portal/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	logger *zap.Logger,
) {
	reviews := r.Group("/reviews")
	reviews.Use(middleware.AuthMiddleware())
	reviews.Use(middleware.ContextLogger(logger))
	{
		reviews.GET("/employee/:employeeID",
			middleware.RateLimitByUser(3, 10),
			handler.ListByEmployee,
		)

		reviews.POST("",
			middleware.RateLimitByUser(1, 3),
			middleware.RoleMiddleware(auth.RoleAdmin),
			handler.Add,
		)

		reviews.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware(auth.RoleAdmin),
			handler.Delete,
		)
	}
}
