package payroll

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
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	payrolls.Use(middleware.ContextLogger(logger))
	payrolls.Use(middleware.RoleMiddleware(auth.RoleAdmin))
	{
		payrolls.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.GetAll,
		)

		payrolls.GET("/:employeeID",
			middleware.RateLimitByUser(3, 10),
			handler.GetByEmployee,
		)

		payrolls.GET("/:employeeID/payslip",
			middleware.RateLimitByUser(1, 3),
			handler.GetPayslip,
		)

		payrolls.POST("/:employeeID/payslip-requests",
			middleware.RateLimitByUser(1, 3),
			handler.RequestPayslip,
		)

		payrolls.GET("/:employeeID/payslips/latest",
			middleware.RateLimitByUser(1, 3),
			handler.GetLatestPayslip,
		)
	}
}
