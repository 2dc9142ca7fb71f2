package app

import (
	"context"
	"database/sql"
	"net/http"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	"go-payroll/internal/leave"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/middleware"
	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/config"
	"go-payroll/internal/shared/connection"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/shared/metrics"
	"go-payroll/internal/tax"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infra holds the long-lived connections shared by the api process.
type Infra struct {
	GormDB  *gorm.DB
	DB      *sql.DB
	Redis   *redis.Client
	Metrics *metrics.Registry
}

func (i *Infra) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.DB != nil {
		_ = i.DB.Close()
	}
}

// BuildApp connects to postgres and redis, migrates the schema when asked to,
// installs global middleware and registers every module on router.
func BuildApp(ctx context.Context, router *gin.Engine, cfg *config.Config, logger *zap.Logger) (*Infra, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis, logger)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	infra := &Infra{GormDB: gormDB, DB: sqlDB, Redis: rdb, Metrics: metrics.New()}

	if cfg.Database.Migrate {
		if err := migrate(gormDB); err != nil {
			infra.Close()
			return nil, err
		}
		logger.Info("database schema migrated")
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "Idempotency-Key", "X-Request-ID")
	router.Use(cors.New(corsConfig))
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics(infra.Metrics))

	router.GET("/healthz", healthz(sqlDB, rdb))
	router.GET("/metrics", gin.WrapH(infra.Metrics.Handler()))

	if err := registerModules(ctx, router, cfg, infra, logger); err != nil {
		infra.Close()
		return nil, err
	}
	return infra, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&employee.Employee{},
		&attendance.Attendance{},
		&leave.Leave{},
		&payroll.Payroll{},
		&payroll.Adjustment{},
		&tax.TaxDeclaration{},
		&kafka.OutboxRecord{},
		&counter.Counter{},
	)
}

func healthz(db *sql.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		status := gin.H{"database": "ok", "redis": "ok"}
		code := http.StatusOK

		if err := db.PingContext(ctx); err != nil {
			status["database"] = err.Error()
			code = http.StatusServiceUnavailable
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			status["redis"] = err.Error()
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	}
}
