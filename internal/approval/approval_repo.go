package approval

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/connection"
	"go-payroll/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transition is the set of columns a review writes.
type Transition struct {
	Status          string
	ReviewedBy      uuid.UUID
	ReviewedAt      time.Time
	ApprovalNotes   *string
	RejectionReason *string
}

//go:generate mockgen -source=approval_repo.go -destination=mock/approval_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByIDAndOrganization(ctx context.Context, organizationID string, id string) (*payroll.PayrollRecord, error)
	// TransitionPending applies t only while the record is still pending and
	// reports how many rows changed.
	TransitionPending(ctx context.Context, organizationID string, id string, t Transition) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID string, id string) (*payroll.PayrollRecord, error) {
	var record payroll.PayrollRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) TransitionPending(ctx context.Context, organizationID string, id string, t Transition) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&payroll.PayrollRecord{}).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		Where("status = ?", payroll.StatusPending).
		Updates(map[string]interface{}{
			"status":           t.Status,
			"approved_by":      t.ReviewedBy,
			"approved_at":      t.ReviewedAt,
			"approval_notes":   t.ApprovalNotes,
			"rejection_reason": t.RejectionReason,
			"updated_at":       t.ReviewedAt,
		})
	return result.RowsAffected, result.Error
}
