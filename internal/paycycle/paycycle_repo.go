package paycycle

import (
	"context"
	"errors"

	"go-payroll/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	FindByOrganization(ctx context.Context, organizationID string) (*PayCycleConfig, error)
	Upsert(ctx context.Context, cfg *PayCycleConfig) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// FindByOrganization returns (nil, nil) when the organization has no config.
func (r *repository) FindByOrganization(ctx context.Context, organizationID string) (*PayCycleConfig, error) {
	var cfg PayCycleConfig
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Upsert replaces the window of an existing config; created_at is never
// overwritten.
func (r *repository) Upsert(ctx context.Context, cfg *PayCycleConfig) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "organization_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"frequency", "next_cycle_start", "next_cycle_end", "updated_at"}),
		}).
		Create(cfg).Error
}
