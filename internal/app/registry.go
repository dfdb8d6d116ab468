package app

import (
	"context"
	"net/http"

	"go-attendance/internal/attendance"
	"go-attendance/internal/employee"
	"go-attendance/internal/leave"
	"go-attendance/internal/leavelifecycle"
	"go-attendance/internal/ledger"
	"go-attendance/internal/middleware"
	"go-attendance/internal/notification"
	"go-attendance/internal/policy"
	"go-attendance/internal/rbac"
	rbacinfra "go-attendance/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	cfg Config,
	in *infra,
	svc *services,
) error {
	logger := zap.L()

	// --- RBAC Core ---
	enforcer, err := rbacinfra.NewEnforcer("")
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbac.NewRepository(in.gormDB), enforcer, logger)
	if err := rbacService.LoadPolicy(ctx); err != nil {
		return err
	}

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(svc.attendance)
	employeeHandler := employee.NewHandler(svc.employees, logger)
	leaveHandler := leave.NewHandler(svc.leaves, logger)
	lifecycleHandler := leavelifecycle.NewHandler(svc.lifecycle, logger)
	ledgerHandler := ledger.NewHandler(svc.ledger, logger)
	notificationHandler := notification.NewHandler(svc.notifier, logger)
	policyHandler := policy.NewHandler(svc.policies, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Routes Registration ---
	api := router.Group("/api/v1",
		middleware.RateLimitByIP(20, 40),
		middleware.AuthMiddleware(cfg.JWTSecret, svc.directory),
		middleware.ContextLogger(logger),
	)
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, in.rdb, logger)
		leavelifecycle.RegisterRoutes(api, lifecycleHandler, rbacService)
		ledger.RegisterRoutes(api, ledgerHandler, rbacService)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
		policy.RegisterRoutes(api, policyHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
