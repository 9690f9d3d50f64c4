package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/advance"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/approval"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/attendance"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/bootstrap"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/employee"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/messaging/kafka"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/middleware"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/payroll"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/rbac"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/schedule"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/settings"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/swap"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/timeclock"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)
	timeclockRepo := timeclock.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)
	advanceRepo := advance.NewRepository(gormDB)
	historyRepo := payroll.NewHistoryRepository(gormDB)
	approvalRepo := approval.NewRepository(gormDB)
	swapRepo := swap.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	shiftResolver := schedule.NewResolver(scheduleRepo, employeeRepo)
	employeeService := employee.NewService(employeeRepo)
	scheduleService := schedule.NewService(gormDB, scheduleRepo, employeeRepo, shiftResolver)
	timeclockService := timeclock.NewService(gormDB, timeclockRepo, employeeRepo)
	settingsService := settings.NewService(settingsRepo)
	attendanceService := attendance.NewService(timeclockRepo, employeeRepo, settingsRepo, shiftResolver)
	advanceService := advance.NewService(gormDB, advanceRepo, employeeRepo)
	payrollService := payroll.NewService(employeeRepo, timeclockRepo, settingsRepo, advanceRepo, historyRepo, shiftResolver, rdb)
	approvalService := approval.NewService(gormDB, approvalRepo, historyRepo, outboxRepo, payrollService)
	swapService := swap.NewService(gormDB, swapRepo, scheduleRepo, employeeRepo, shiftResolver)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	scheduleHandler := schedule.NewHandler(scheduleService)
	timeclockHandler := timeclock.NewHandler(timeclockService)
	settingsHandler := settings.NewHandler(settingsService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	advanceHandler := advance.NewHandler(advanceService)
	payrollHandler := payroll.NewHandler(payrollService)
	approvalHandler := approval.NewHandler(approvalService)
	swapHandler := swap.NewHandler(swapService)

	// --- Global middleware & metrics ---
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(bootstrap.HTTPMetrics())
	router.Use(middleware.RateLimitByIP(rate.Limit(20), 40))
	router.GET("/metrics", bootstrap.MetricsHandler())

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		schedule.RegisterRoutes(api, scheduleHandler, rbacService)
		timeclock.RegisterRoutes(api, timeclockHandler, rbacService, rdb)
		settings.RegisterRoutes(api, settingsHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		advance.RegisterRoutes(api, advanceHandler, rbacService, rdb)
		payroll.RegisterRoutes(api, payrollHandler, rbacService)
		approval.RegisterRoutes(api, approvalHandler, rbacService, rdb)
		swap.RegisterRoutes(api, swapHandler, rbacService, rdb)
	}

	return nil
}
