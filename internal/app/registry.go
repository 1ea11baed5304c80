package app

import (
	"database/sql"
	"net/http"

	"go-payroll/internal/analytics"
	"go-payroll/internal/approval"
	"go-payroll/internal/config"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/middleware"
	"go-payroll/internal/notification"
	"go-payroll/internal/paycycle"
	"go-payroll/internal/payroll"
	"go-payroll/internal/payslip"
	"go-payroll/internal/rateconfig"
	"go-payroll/internal/shared/clock"
	"go-payroll/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	sender notification.Sender,
	logger *zap.Logger,
) error {
	clk := clock.SystemClock{}

	// --- Repositories ---
	analyticsRepo := analytics.NewRepository(gormDB)
	approvalRepo := approval.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	paycycleRepo := paycycle.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	rateConfigRepo := rateconfig.NewRepository(gormDB)

	// --- Services ---
	analyticsService := analytics.NewService(analyticsRepo, rdb, logger)
	approvalService := approval.NewService(db, approvalRepo, outboxRepo, sender, analyticsService, clk, logger)
	paycycleService := paycycle.NewService(paycycleRepo, clk, logger)
	rateConfigService := rateconfig.NewService(db, rateConfigRepo, logger)
	payrollService, err := newPayrollService(cfg, db, payrollRepo, counterRepo, outboxRepo, rdb, logger)
	if err != nil {
		return err
	}

	// --- Handlers ---
	analyticsHandler := analytics.NewHandler(analyticsService)
	approvalHandler := approval.NewHandler(approvalService)
	paycycleHandler := paycycle.NewHandler(paycycleService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	rateConfigHandler := rateconfig.NewHandler(rateConfigService)

	router.Use(middleware.RequestID(), middleware.RateLimitByIP(rate.Limit(cfg.Server.RateLimit*5), cfg.Server.RateBurst*5))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Routes Registration ---
	api := router.Group("/api/v1",
		middleware.AuthMiddleware(cfg.Auth.JWTSecret),
		middleware.ContextLogger(logger),
		middleware.RateLimitByUser(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst),
	)
	authenticated := middleware.RequireRole(middleware.RoleAdmin, middleware.RoleEmployee)
	{
		analytics.RegisterRoutes(api, analyticsHandler, authenticated)
		approval.RegisterRoutes(api, approvalHandler, authenticated)
		paycycle.RegisterRoutes(api, paycycleHandler, authenticated)
		payroll.RegisterRoutes(api, payrollHandler, authenticated, rdb)
		rateconfig.RegisterRoutes(api, rateConfigHandler, authenticated)
	}

	return nil
}

func newPayrollService(
	cfg config.Config,
	db *sql.DB,
	repo payroll.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger *zap.Logger,
) (payroll.Service, error) {
	storage, err := payslip.NewLocalStorage(cfg.Payslip.StorageDir)
	if err != nil {
		return nil, err
	}

	locker := payroll.NewNoopRunLocker()
	if rdb != nil {
		locker = payroll.NewRedisRunLocker(rdb, cfg.Payroll.LockTTL, logger)
	}

	return payroll.NewService(
		db,
		repo,
		counterRepo,
		outboxRepo,
		locker,
		payroll.Payslips{
			Renderer: payslip.NewPDFRenderer(),
			Storage:  storage,
			Settings: payslip.Settings{
				CompanyName: cfg.Payslip.CompanyName,
				Currency:    cfg.Payslip.Currency,
			},
		},
		clock.SystemClock{},
		logger,
	), nil
}
