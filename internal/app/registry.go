package app

import (
	"database/sql"

	"go-erp/internal/assignment"
	"go-erp/internal/employee"
	"go-erp/internal/equipment"
	"go-erp/internal/messaging/kafka"
	"go-erp/internal/middleware"
	"go-erp/internal/payroll"
	"go-erp/internal/timesheet"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	assignmentRepo := assignment.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	equipmentRepo := equipment.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)
	timesheetRepo := timesheet.NewRepository(gormDB)

	// --- Services ---
	equipmentStatusService := equipment.NewStatusService(equipmentRepo, assignmentRepo)
	assignmentService := assignment.NewServiceWithDeps(gormDB, assignmentRepo, outboxRepo, equipmentStatusService)
	employeeService := employee.NewService(employeeRepo)
	payrollService := payroll.NewServiceWithOutbox(gormDB, payrollRepo, employeeRepo, timesheetRepo, outboxRepo)
	timesheetService := timesheet.NewService(timesheetRepo)

	// --- Handlers ---
	assignmentHandler := assignment.NewHandler(assignmentService)
	employeeHandler := employee.NewHandler(employeeService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	timesheetHandler := timesheet.NewHandler(timesheetService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(rate.Limit(50), 100))

	api := router.Group("/api/v1")
	api.Use(middleware.TenantContext())
	{
		assignment.RegisterRoutes(api, assignmentHandler)
		employee.RegisterRoutes(api, employeeHandler)
		payroll.RegisterRoutes(api, payrollHandler, rdb)
		timesheet.RegisterRoutes(api, timesheetHandler)
	}

	return nil
}
