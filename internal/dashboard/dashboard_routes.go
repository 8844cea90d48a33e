package dashboard

import (
	"hr-portal/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	dash := r.Group("/dashboard")
	dash.Use(middleware.AuthMiddleware())
	dash.Use(middleware.ContextLogger(logger))
	{
		dash.GET("/summary",
			middleware.RateLimitByUser(5, 20),
			handler.Summary,
		)
	}
}
