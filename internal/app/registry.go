package app

import (
	"hr-portal/internal/attendance"
	"hr-portal/internal/auth"
	"hr-portal/internal/dashboard"
	"hr-portal/internal/employee"
	"hr-portal/internal/leave"
	"hr-portal/internal/messaging/kafka"
	"hr-portal/internal/payroll"
	"hr-portal/internal/review"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	reviewRepo := review.NewRepository(gormDB)
	dashboardRepo := dashboard.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Services ---
	authService := auth.NewService(authRepo)
	employeeService := employee.NewServiceWithOutbox(gormDB, employeeRepo, outboxRepo, rdb)
	payrollService := payroll.NewService(payrollRepo, outboxRepo)
	leaveService := leave.NewService(gormDB, leaveRepo)
	attendanceService := attendance.NewService(attendanceRepo)
	reviewService := review.NewService(reviewRepo)
	dashboardService := dashboard.NewService(dashboardRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	payrollHandler := payroll.NewHandler(payrollService)
	leaveHandler := leave.NewHandler(leaveService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	reviewHandler := review.NewHandler(reviewService)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, rdb, logger)
		payroll.RegisterRoutes(api, payrollHandler, logger)
		leave.RegisterRoutes(api, leaveHandler, rdb, logger)
		attendance.RegisterRoutes(api, attendanceHandler, rdb, logger)
		review.RegisterRoutes(api, reviewHandler, logger)
		dashboard.RegisterRoutes(api, dashboardHandler, logger)
	}

	return nil
}
