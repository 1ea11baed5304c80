package app

import (
	"database/sql"

	"go-payroll/internal/config"
	"go-payroll/internal/notification"
	"go-payroll/internal/shared/connection"

	"github.com/gin-gonic/gin"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildApp connects the infrastructure and registers every module on router.
// The returned func releases the connections.
func BuildApp(router *gin.Engine, cfg config.Config, logger *zap.Logger) (func(), error) {
	log := logger.Named("app")

	gormDB, sqlDB, err := connectDatabase(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Database.MaxRetries)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	sender, writer, err := buildSender(cfg, logger)
	if err != nil {
		redisClient.Close()
		sqlDB.Close()
		return nil, err
	}

	if err := registerModules(router, cfg, sqlDB, gormDB, redisClient, sender, logger); err != nil {
		if writer != nil {
			writer.Close()
		}
		redisClient.Close()
		sqlDB.Close()
		return nil, err
	}
	log.Info("modules registered")

	return func() {
		if writer != nil {
			_ = writer.Close()
		}
		_ = redisClient.Close()
		_ = sqlDB.Close()
	}, nil
}

func connectDatabase(cfg config.Config) (*gorm.DB, *sql.DB, error) {
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.Database.Host,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.Port,
		cfg.Database.SSLMode,
		cfg.Database.MaxRetries,
	)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}
	return gormDB, sqlDB, nil
}

// buildSender returns the Kafka sender when configured; the writer is nil
// for the no-op sender.
func buildSender(cfg config.Config, logger *zap.Logger) (notification.Sender, *kafkago.Writer, error) {
	if cfg.Notification.Sender != "kafka" {
		return notification.NewNoopSender(logger), nil, nil
	}
	if err := cfg.ValidateKafka(); err != nil {
		return nil, nil, err
	}

	writer, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.Database.MaxRetries)
	if err != nil {
		return nil, nil, err
	}
	return notification.NewKafkaSender(writer), writer, nil
}
