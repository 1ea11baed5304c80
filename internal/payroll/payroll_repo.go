package payroll

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/shared/connection"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	ListPayableEmployees(ctx context.Context, organizationID string) ([]Employee, error)
	ExistsByIdempotencyKey(ctx context.Context, organizationID string, key string) (bool, error)
	HasOverlappingPeriod(ctx context.Context, organizationID string, employeeID string, projectID string, periodStart time.Time, periodEnd time.Time, excludeKey string) (bool, error)
	FindCompletedTasks(ctx context.Context, organizationID string, projectID string, employeeID string, from time.Time, until time.Time) ([]Task, error)
	FindUnprocessedExpenses(ctx context.Context, organizationID string, projectID string, employeeID string, from time.Time, until time.Time) ([]Expense, error)
	FindRateConfig(ctx context.Context, organizationID string, employeeID string) (*RateConfig, error)
	Create(ctx context.Context, record *PayrollRecord) error
	MarkExpensesProcessed(ctx context.Context, organizationID string, payrollID string, expenseIDs []string) (int64, error)
	FindAllByOrganization(ctx context.Context, organizationID string, filter PayrollQueryFilter) ([]PayrollRecord, error)
	FindByIDAndOrganization(ctx context.Context, organizationID string, id string) (*PayrollRecord, error)
	UpdatePayslip(ctx context.Context, organizationID string, id string, path string, generatedAt time.Time) error
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

func (r *repository) ListPayableEmployees(ctx context.Context, organizationID string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("role = ?", RoleEmployee).
		Order("id ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) ExistsByIdempotencyKey(ctx context.Context, organizationID string, key string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PayrollRecord{}).
		Scopes(tenant.Scope(organizationID)).
		Where("idempotency_key = ?", key).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) HasOverlappingPeriod(
	ctx context.Context,
	organizationID string,
	employeeID string,
	projectID string,
	periodStart time.Time,
	periodEnd time.Time,
	excludeKey string,
) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&PayrollRecord{}).
		Scopes(tenant.Scope(organizationID)).
		Where("employee_id = ?", employeeID).
		Where("project_id = ?", projectID).
		Where("NOT (period_end < ? OR period_start > ?)", periodStart, periodEnd)

	if excludeKey != "" {
		db = db.Where("idempotency_key <> ?", excludeKey)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

// FindCompletedTasks returns tasks whose updated_at falls in [from, until).
func (r *repository) FindCompletedTasks(
	ctx context.Context,
	organizationID string,
	projectID string,
	employeeID string,
	from time.Time,
	until time.Time,
) ([]Task, error) {
	var tasks []Task
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("project_id = ?", projectID).
		Where("assigned_employee_id = ?", employeeID).
		Where("status IN ?", []string{TaskStatusCompleted, TaskStatusVerified}).
		Where("updated_at >= ? AND updated_at < ?", from, until).
		Order("updated_at ASC").
		Find(&tasks).Error
	return tasks, err
}

// FindUnprocessedExpenses locks the returned rows until the transaction ends
// so a concurrent run cannot consume them.
func (r *repository) FindUnprocessedExpenses(
	ctx context.Context,
	organizationID string,
	projectID string,
	employeeID string,
	from time.Time,
	until time.Time,
) ([]Expense, error) {
	var expenses []Expense
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("project_id = ?", projectID).
		Where("employee_id = ?", employeeID).
		Where("approved = ? AND processed = ?", true, false).
		Where("approved_at >= ? AND approved_at < ?", from, until).
		Order("approved_at ASC").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Find(&expenses).Error
	return expenses, err
}

// FindRateConfig returns (nil, nil) when the employee has no rate config.
func (r *repository) FindRateConfig(ctx context.Context, organizationID string, employeeID string) (*RateConfig, error) {
	var cfgs []RateConfig
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("employee_id = ?", employeeID).
		Limit(1).
		Find(&cfgs).Error
	if err != nil {
		return nil, err
	}
	if len(cfgs) == 0 {
		return nil, nil
	}
	return &cfgs[0], nil
}

// Create inserts the record together with its line items.
func (r *repository) Create(ctx context.Context, record *PayrollRecord) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(record).Error
}

// MarkExpensesProcessed flips only rows that are still unprocessed and
// reports how many it changed.
func (r *repository) MarkExpensesProcessed(ctx context.Context, organizationID string, payrollID string, expenseIDs []string) (int64, error) {
	if len(expenseIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&Expense{}).
		Scopes(tenant.Scope(organizationID)).
		Where("id IN ?", expenseIDs).
		Where("processed = ?", false).
		Updates(map[string]any{
			"processed":         true,
			"payroll_record_id": payrollID,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string, filter PayrollQueryFilter) ([]PayrollRecord, error) {
	var records []PayrollRecord
	db := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(organizationID))

	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.ProjectID != "" {
		db = db.Where("project_id = ?", filter.ProjectID)
	}
	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}

	err := db.Order("period_start DESC").
		Order("reference DESC").
		Find(&records).Error
	return records, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID string, id string) (*PayrollRecord, error) {
	var record PayrollRecord
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Scopes(tenant.Scope(organizationID)).
		First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) UpdatePayslip(ctx context.Context, organizationID string, id string, path string, generatedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&PayrollRecord{}).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		Updates(map[string]any{
			"payslip_path":         path,
			"payslip_generated_at": generatedAt,
			"updated_at":           generatedAt,
		}).Error
}
