package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-payroll/internal/events"
	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/apperror"

	"github.com/cenkalti/backoff/v4"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// PayslipGenerator is satisfied by payroll.Service.
type PayslipGenerator interface {
	GeneratePayslip(ctx context.Context, organizationID, id string) (payroll.PayrollResponse, error)
}

// RetryPolicy builds the backoff used for one message.
type RetryPolicy func() backoff.BackOff

// DefaultRetryPolicy retries with exponential backoff capped at one minute
// and never gives up on its own.
func DefaultRetryPolicy() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = time.Minute
	b.MaxElapsedTime = 0
	return b
}

// ConsumePayrollPayslipRequested renders a payslip for every approved
// payroll. Messages that can never succeed are committed and dropped. Other
// failures are retried in place, so a later offset is never committed past
// a payslip that was not generated.
func ConsumePayrollPayslipRequested(
	ctx context.Context,
	reader MessageReader,
	generator PayslipGenerator,
	retry RetryPolicy,
	logger *zap.Logger,
) {
	if retry == nil {
		retry = DefaultRetryPolicy
	}
	log := logger.Named("kafka.consumer.payroll_payslip")
	log.Info("payroll payslip consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll payslip consumer stopped")
				return
			}
			log.Error("fetch payroll payslip message failed", zap.Error(err))
			continue
		}

		handlePayslipMessage(ctx, reader, generator, retry, log, msg)
	}
}

func handlePayslipMessage(
	ctx context.Context,
	reader MessageReader,
	generator PayslipGenerator,
	retry RetryPolicy,
	log *zap.Logger,
	msg kafkago.Message,
) {
	var event events.PayrollPayslipRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode payroll payslip event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	fields := []zap.Field{
		zap.String("payroll_id", event.PayrollID),
		zap.String("organization_id", event.OrganizationID),
		zap.Int64("offset", msg.Offset),
	}

	resp, err := backoff.RetryNotifyWithData(
		func() (payroll.PayrollResponse, error) {
			resp, err := generator.GeneratePayslip(ctx, event.OrganizationID, event.PayrollID)
			if err != nil && permanentFailure(err) {
				return resp, backoff.Permanent(err)
			}
			return resp, err
		},
		backoff.WithContext(retry(), ctx),
		func(err error, wait time.Duration) {
			log.Warn("generate payslip failed, retrying", append(fields, zap.Duration("retry_in", wait), zap.Error(err))...)
		},
	)
	if err != nil {
		if permanentFailure(err) {
			log.Warn("payslip request dropped", append(fields, zap.Error(err))...)
			_ = reader.CommitMessages(ctx, msg)
			return
		}
		// Left uncommitted; the group resumes here after a restart.
		log.Error("payslip not generated before shutdown", append(fields, zap.Error(err))...)
		return
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit payroll payslip message failed", zap.Error(err))
		return
	}

	log.Info("payroll payslip generated",
		zap.String("payroll_id", event.PayrollID),
		zap.String("organization_id", event.OrganizationID),
		zap.String("reference", resp.Reference),
	)
}

func permanentFailure(err error) bool {
	return apperror.HasCode(err, apperror.CodeNotFound) ||
		apperror.HasCode(err, apperror.CodeInvalidInput)
}
