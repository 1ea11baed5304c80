package rateconfig

import (
	"context"
	"database/sql"

	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/connection"
	"go-payroll/internal/tenant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RateConfigRow is a rate configuration joined with the employee name.
type RateConfigRow struct {
	EmployeeID     uuid.UUID
	OrganizationID uuid.UUID
	PaymentMode    string
	HourlyRate     decimal.Decimal
	EmployeeName   string
}

//go:generate mockgen -source=rate_config_repo.go -destination=mock/rate_config_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	EmployeeExists(ctx context.Context, organizationID string, employeeID string) (bool, error)
	Upsert(ctx context.Context, cfg *payroll.RateConfig) error
	FindAllByOrganization(ctx context.Context, organizationID string) ([]RateConfigRow, error)
	FindByEmployee(ctx context.Context, organizationID string, employeeID string) (*RateConfigRow, error)
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

func (r *repository) EmployeeExists(ctx context.Context, organizationID string, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&payroll.Employee{}).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Upsert(ctx context.Context, cfg *payroll.RateConfig) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payment_mode", "hourly_rate"}),
		}).
		Create(cfg).Error
}

func (r *repository) baseQuery(ctx context.Context, organizationID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("rate_configs").
		Select("rate_configs.*, employees.full_name AS employee_name").
		Joins("JOIN employees ON employees.id = rate_configs.employee_id").
		Scopes(tenant.ScopeTable("rate_configs", organizationID))
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string) ([]RateConfigRow, error) {
	var rows []RateConfigRow
	err := r.baseQuery(ctx, organizationID).
		Order("employees.full_name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployee(ctx context.Context, organizationID string, employeeID string) (*RateConfigRow, error) {
	var row RateConfigRow
	err := r.baseQuery(ctx, organizationID).
		Where("rate_configs.employee_id = ?", employeeID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
