package app

import (
	"context"
	"strings"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	"go-payroll/internal/leave"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/middleware"
	"go-payroll/internal/notification"
	"go-payroll/internal/payroll"
	"go-payroll/internal/rbac"
	"go-payroll/internal/rbac/infra"
	"go-payroll/internal/shared/config"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/shared/lock"
	"go-payroll/internal/storage"
	"go-payroll/internal/tax"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	cfg *config.Config,
	in *Infra,
	logger *zap.Logger,
) error {
	db, gormDB, rdb := in.DB, in.GormDB, in.Redis

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)
	taxRepo := tax.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(cfg.RBAC.ModelPath, cfg.RBAC.PolicyPath)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Infrastructure adapters ---
	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	hub := notification.NewHub(logger)

	// Mail goes through the outbox when a broker is configured so payment
	// never waits on SMTP.
	var emailer notification.Emailer = notification.NewDirectEmailer(notification.NewMailer(cfg.SMTP))
	if cfg.Kafka.Broker != "" {
		emailer = notification.NewOutboxEmailer(outboxRepo)
	}
	dispatcher := notification.NewDispatcher(emailer, hub, in.Metrics, logger)

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo, cfg.Payroll, logger)
	employeeService := employee.NewServiceWithOutbox(
		db, employeeRepo, counterRepo, outboxRepo, rdb,
		decimal.NewFromFloat(cfg.Payroll.MinBasicSalary), logger,
	)
	leaveService := leave.NewService(db, leaveRepo, attendanceService, logger)
	payrollService := payroll.NewService(payroll.Deps{
		DB:        db,
		Repo:      payrollRepo,
		Employees: employeeRepo,
		LOP:       attendanceService,
		Counter:   counterRepo,
		Renderer:  payroll.NewPDFPayslipRenderer(cfg.Payroll.CompanyName, cfg.Payroll.Currency),
		Store:     store,
		Sink:      dispatcher,
		Locker:    lock.NewRedisLocker(rdb),
		Metrics:   in.Metrics,
		Config:    cfg.Payroll,
	}, logger)
	taxService := tax.NewService(taxRepo, employeeRepo, tax.DefaultPolicy(), logger)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	employeeHandler := employee.NewHandler(employeeService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	rbacHandler := rbac.NewHandler(rbacService)
	taxHandler := tax.NewHandler(taxService, logger)

	// --- Routes Registration ---
	if local, ok := store.(*storage.LocalStore); ok && strings.HasPrefix(cfg.Storage.PublicBaseURL, "/") {
		router.Static(cfg.Storage.PublicBaseURL, local.Dir())
	}

	auth := middleware.AuthMiddleware(cfg.Auth.JWTSecret)
	router.GET("/ws", auth, hub.ServeWS)

	api := router.Group("/api/v1")
	api.Use(auth, middleware.ContextLogger(logger))
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
		tax.RegisterRoutes(api, taxHandler, rbacService)
	}

	return nil
}
