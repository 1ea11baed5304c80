package approval

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	approvalerrors "go-payroll/internal/approval/errors"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/notification"
	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/clock"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	EventTypePayslipRequested = "payroll.payslip.requested"
	aggregateTypePayroll      = "payroll"

	dateLayout = "2006-01-02"
)

//go:generate mockgen -source=approval_service.go -destination=mock/approval_service_mock.go -package=mock
type Service interface {
	Approve(ctx context.Context, organizationID, payrollID, reviewerID string, req ApproveRequest) (ApprovalResponse, error)
	Reject(ctx context.Context, organizationID, payrollID, reviewerID string, req RejectRequest) (ApprovalResponse, error)
}

// SummaryInvalidator drops cached monthly summaries after a record changes
// status.
type SummaryInvalidator interface {
	InvalidateMonths(ctx context.Context, organizationID string, periodStart, periodEnd time.Time) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	outbox    kafka.OutboxRepository
	notifier  notification.Sender
	summaries SummaryInvalidator
	clock     clock.Clock
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	notifier notification.Sender,
	summaries SummaryInvalidator,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("approval.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.service")
	}
	if notifier == nil {
		notifier = notification.NewNoopSender(l)
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &service{
		db:        db,
		repo:      repo,
		outbox:    outbox,
		notifier:  notifier,
		summaries: summaries,
		clock:     clk,
		logger:    l,
	}
}

type review struct {
	organizationID uuid.UUID
	payrollID      uuid.UUID
	reviewerID     uuid.UUID
}

func parseReview(organizationID, payrollID, reviewerID string) (review, error) {
	orgID, err := uuid.Parse(organizationID)
	if err != nil {
		return review{}, approvalerrors.ErrInvalidOrganizationID
	}
	id, err := uuid.Parse(payrollID)
	if err != nil {
		return review{}, approvalerrors.ErrInvalidPayrollID
	}
	reviewer, err := uuid.Parse(reviewerID)
	if err != nil {
		return review{}, approvalerrors.ErrInvalidReviewerID
	}
	return review{organizationID: orgID, payrollID: id, reviewerID: reviewer}, nil
}

func (s *service) Approve(ctx context.Context, organizationID, payrollID, reviewerID string, req ApproveRequest) (ApprovalResponse, error) {
	rv, err := parseReview(organizationID, payrollID, reviewerID)
	if err != nil {
		return ApprovalResponse{}, err
	}

	var notes *string
	if req.Notes != nil {
		if trimmed := strings.TrimSpace(*req.Notes); trimmed != "" {
			notes = &trimmed
		}
	}

	t := Transition{
		Status:        payroll.StatusApproved,
		ReviewedBy:    rv.reviewerID,
		ReviewedAt:    s.clock.Now().UTC(),
		ApprovalNotes: notes,
	}
	record, err := s.transition(ctx, rv, t)
	if err != nil {
		return ApprovalResponse{}, err
	}

	message := fmt.Sprintf("Your payroll for %s has been approved.", periodLabel(record))
	sent := s.afterTransition(ctx, record, message)
	return mapToResponse(record, t, sent), nil
}

func (s *service) Reject(ctx context.Context, organizationID, payrollID, reviewerID string, req RejectRequest) (ApprovalResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return ApprovalResponse{}, approvalerrors.ErrReasonRequired
	}

	rv, err := parseReview(organizationID, payrollID, reviewerID)
	if err != nil {
		return ApprovalResponse{}, err
	}

	t := Transition{
		Status:          payroll.StatusRejected,
		ReviewedBy:      rv.reviewerID,
		ReviewedAt:      s.clock.Now().UTC(),
		RejectionReason: &reason,
	}
	record, err := s.transition(ctx, rv, t)
	if err != nil {
		return ApprovalResponse{}, err
	}

	message := fmt.Sprintf("Your payroll for %s has been rejected. Reason: %s", periodLabel(record), reason)
	sent := s.afterTransition(ctx, record, message)
	return mapToResponse(record, t, sent), nil
}

// transition moves a pending record to t.Status inside one transaction. An
// approval also enqueues the payslip request so the document is produced
// only for committed approvals.
func (s *service) transition(ctx context.Context, rv review, t Transition) (*payroll.PayrollRecord, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	orgID := rv.organizationID.String()
	id := rv.payrollID.String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperror.Store("begin transaction", err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByIDAndOrganization(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, approvalerrors.ErrPayrollNotFound
		}
		return nil, apperror.Store("read payroll", err)
	}
	if record.Status != payroll.StatusPending {
		log.Warn("payroll review refused",
			zap.String("payroll_id", id),
			zap.String("status", record.Status),
			zap.String("requested", t.Status),
		)
		return nil, approvalerrors.ErrInvalidStatusTransition
	}

	affected, err := qtx.TransitionPending(ctx, orgID, id, t)
	if err != nil {
		return nil, apperror.Store("update payroll status", err)
	}
	if affected == 0 {
		return nil, approvalerrors.ErrInvalidStatusTransition
	}

	if t.Status == payroll.StatusApproved && s.outbox != nil {
		event, err := kafka.NewOutboxEvent(
			contextutil.GetRequestID(ctx),
			aggregateTypePayroll,
			id,
			EventTypePayslipRequested,
			events.PayrollPayslipRequestedTopic,
			events.PayrollPayslipRequestedEvent{
				EventType:      EventTypePayslipRequested,
				PayrollID:      id,
				OrganizationID: orgID,
				RequestedBy:    rv.reviewerID.String(),
				OccurredAt:     t.ReviewedAt,
			},
		)
		if err != nil {
			return nil, apperror.Store("build payslip event", err)
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			log.Error("payslip outbox persist failed", zap.String("payroll_id", id), zap.Error(err))
			return nil, apperror.Store("write payslip event", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, apperror.Store("commit payroll review", err)
	}

	log.Info("payroll reviewed",
		zap.String("payroll_id", id),
		zap.String("status", t.Status),
		zap.String("reviewed_by", rv.reviewerID.String()),
	)

	record.Status = t.Status
	return record, nil
}

// afterTransition runs the best-effort side effects of a committed review and
// reports whether the employee was notified.
func (s *service) afterTransition(ctx context.Context, record *payroll.PayrollRecord, message string) bool {
	log := contextutil.GetLogger(ctx, s.logger)
	orgID := record.OrganizationID.String()

	if s.summaries != nil {
		if err := s.summaries.InvalidateMonths(ctx, orgID, record.PeriodStart, record.PeriodEnd); err != nil {
			log.Warn("summary cache invalidation failed", zap.String("payroll_id", record.ID.String()), zap.Error(err))
		}
	}

	if err := s.notifier.Notify(ctx, record.EmployeeID.String(), orgID, message); err != nil {
		appErr := apperror.Notification(err)
		log.Error(appErr.Message,
			zap.String("code", appErr.Code),
			zap.String("payroll_id", record.ID.String()),
			zap.String("employee_id", record.EmployeeID.String()),
			zap.Error(err),
		)
		return false
	}
	return true
}

func periodLabel(record *payroll.PayrollRecord) string {
	return fmt.Sprintf("%s to %s", record.PeriodStart.Format(dateLayout), record.PeriodEnd.Format(dateLayout))
}

func mapToResponse(record *payroll.PayrollRecord, t Transition, sent bool) ApprovalResponse {
	return ApprovalResponse{
		ID:               record.ID.String(),
		EmployeeID:       record.EmployeeID.String(),
		PeriodStart:      record.PeriodStart.Format(dateLayout),
		PeriodEnd:        record.PeriodEnd.Format(dateLayout),
		Status:           t.Status,
		ReviewedBy:       t.ReviewedBy.String(),
		ReviewedAt:       t.ReviewedAt.Format(time.RFC3339),
		ApprovalNotes:    t.ApprovalNotes,
		RejectionReason:  t.RejectionReason,
		NotificationSent: sent,
	}
}
