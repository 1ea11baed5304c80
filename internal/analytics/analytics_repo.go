package analytics

import (
	"context"
	"time"

	"go-payroll/internal/payroll"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	// FindApprovedWithin returns approved records whose whole period lies in
	// [from, to].
	FindApprovedWithin(ctx context.Context, organizationID string, from, to time.Time) ([]payroll.PayrollRecord, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindApprovedWithin(ctx context.Context, organizationID string, from, to time.Time) ([]payroll.PayrollRecord, error) {
	var records []payroll.PayrollRecord
	err := r.db.WithContext(ctx).
		Select("id", "organization_id", "employee_id", "net_pay", "status", "period_start", "period_end").
		Scopes(tenant.Scope(organizationID)).
		Where("status = ?", payroll.StatusApproved).
		Where("period_start >= ? AND period_end <= ?", from, to).
		Find(&records).Error
	return records, err
}
