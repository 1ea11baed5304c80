package notification

import (
	"context"
	"encoding/json"
	"time"

	"go-payroll/internal/events"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const EventTypePayrollNotification = "payroll.notification"

//go:generate mockgen -source=sender.go -destination=mock/sender_mock.go -package=mock
type Sender interface {
	Notify(ctx context.Context, employeeID, organizationID, message string) error
}

type noopSender struct {
	logger *zap.Logger
}

// NewNoopSender logs messages instead of delivering them.
func NewNoopSender(logger ...*zap.Logger) Sender {
	l := zap.L().Named("notification.noop")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.noop")
	}
	return &noopSender{logger: l}
}

func (s *noopSender) Notify(_ context.Context, employeeID, organizationID, message string) error {
	s.logger.Debug("notification dropped",
		zap.String("employee_id", employeeID),
		zap.String("organization_id", organizationID),
		zap.String("message", message),
	)
	return nil
}

type kafkaSender struct {
	writer *kafka.Writer
	now    func() time.Time
}

func NewKafkaSender(writer *kafka.Writer) Sender {
	return &kafkaSender{writer: writer, now: time.Now}
}

func (s *kafkaSender) Notify(ctx context.Context, employeeID, organizationID, message string) error {
	payload, err := json.Marshal(events.PayrollNotificationEvent{
		EventType:      EventTypePayrollNotification,
		EmployeeID:     employeeID,
		OrganizationID: organizationID,
		Message:        message,
		OccurredAt:     s.now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.writer.WriteMessages(ctx, kafka.Message{
		Topic: events.PayrollNotificationTopic,
		Key:   []byte(employeeID),
		Value: payload,
	})
}
