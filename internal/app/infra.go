package app

import (
	"context"
	"database/sql"

	"go-attendance/internal/attendance"
	"go-attendance/internal/employee"
	"go-attendance/internal/identity"
	"go-attendance/internal/leave"
	"go-attendance/internal/leavelifecycle"
	"go-attendance/internal/ledger"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/notification"
	"go-attendance/internal/policy"
	"go-attendance/internal/rbac"
	"go-attendance/internal/shared/connection"
	"go-attendance/internal/shared/counter"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// infra holds the connections every binary opens.
type infra struct {
	gormDB *gorm.DB
	sqlDB  *sql.DB
	rdb    *redis.Client
}

func connectInfra(cfg Config) (*infra, error) {
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		cfg.ConnectRetries,
	)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	} else {
		zap.L().Warn("REDIS_ADDR not set, roster cache and idempotency keys disabled")
	}

	return &infra{gormDB: gormDB, sqlDB: sqlDB, rdb: rdb}, nil
}

func (i *infra) Close() {
	if i.rdb != nil {
		_ = i.rdb.Close()
	}
	_ = i.sqlDB.Close()
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&counter.Counter{},
		&employee.Employee{},
		&leave.LeaveRequest{},
		&ledger.LeaveDaysTaken{},
		&notification.Notification{},
		&policy.Holiday{},
		&policy.CompanySetting{},
		&attendance.Attendance{},
		&kafka.OutboxEvent{},
		&rbac.RolePermission{},
	)
}

// services is the wired domain layer shared by the api, worker and consumer.
type services struct {
	outbox     kafka.OutboxRepository
	employees  employee.Service
	directory  *employee.Directory
	notifier   notification.Service
	leaves     leave.Service
	ledger     ledger.Service
	lifecycle  leavelifecycle.Service
	policies   policy.Service
	attendance attendance.Service
}

// buildServices wires the domain. Policy announcements go through the Kafka
// outbox when outboxed is set and are fanned out in-process otherwise.
func buildServices(cfg Config, in *infra, outboxed bool, logger *zap.Logger) *services {
	employeeRepo := employee.NewRepository(in.gormDB)
	outboxRepo := kafka.NewOutboxRepository(in.sqlDB)

	identityService := identity.NewService(identity.NewRepository(in.gormDB), counter.NewRepository(in.gormDB), logger)
	employeeService := employee.NewService(employeeRepo, identityService, in.rdb, logger)
	directory := employee.NewDirectory(employeeRepo, in.rdb, cfg.RosterCacheTTL, logger)

	notifier := notification.NewService(notification.NewRepository(in.gormDB), directory, cfg.FanoutConcurrency, logger)
	leaveService := leave.NewService(leave.NewRepository(in.gormDB), directory, logger)
	ledgerService := ledger.NewService(ledger.NewRepository(in.gormDB), logger)

	var announcer policy.Announcer = policy.NewDirectAnnouncer(notifier, logger)
	if outboxed {
		announcer = policy.NewOutboxAnnouncer(outboxRepo)
	}
	policyService := policy.NewService(in.sqlDB, policy.NewRepository(in.gormDB), announcer, logger)

	return &services{
		outbox:     outboxRepo,
		employees:  employeeService,
		directory:  directory,
		notifier:   notifier,
		leaves:     leaveService,
		ledger:     ledgerService,
		lifecycle:  leavelifecycle.NewService(leaveService, ledgerService, notifier, logger),
		policies:   policyService,
		attendance: attendance.NewService(in.sqlDB, attendance.NewRepository(in.gormDB), directory, policyService, notifier, logger),
	}
}

func (s *services) seedAdministrator(ctx context.Context, cfg Config) error {
	_, err := s.employees.EnsureAdministrator(ctx, cfg.AdminName, cfg.AdminEmail)
	return err
}
