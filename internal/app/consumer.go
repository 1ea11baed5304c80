package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-payroll/internal/config"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/messaging/kafka/consumer"
	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/counter"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer renders payslips for approved payrolls until interrupted.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if err := cfg.ValidateKafka(); err != nil {
		return err
	}

	gormDB, sqlDB, err := connectDatabase(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	// Payslip generation never runs a calculation, so the run lock and
	// redis are not needed here.
	payrollService, err := newPayrollService(
		cfg,
		sqlDB,
		payroll.NewRepository(gormDB),
		counter.NewRepository(gormDB),
		kafka.NewOutboxRepository(sqlDB),
		nil,
		logger,
	)
	if err != nil {
		return err
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.PayrollPayslipRequestedTopic,
		GroupID:        cfg.Kafka.PayslipGroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	consumer.ConsumePayrollPayslipRequested(ctx, reader, payrollService, consumer.DefaultRetryPolicy, logger)

	logger.Info("consumer shutting down")
	return nil
}
