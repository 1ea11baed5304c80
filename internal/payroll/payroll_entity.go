package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// PayrollRecord is one employee's pay for one project and period. Monetary
// fields are written once at creation; only approval touches the status block.
type PayrollRecord struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID    `gorm:"type:uuid;not null;index:idx_payroll_org_status"`
	Reference      string       `gorm:"type:varchar(32);not null"`
	EmployeeID     uuid.UUID    `gorm:"type:uuid;not null;index:idx_payroll_employee_period"`
	Employee       *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
	ProjectID      uuid.UUID    `gorm:"type:uuid;not null;index:idx_payroll_employee_period"`

	PeriodStart time.Time `gorm:"type:date;not null;index:idx_payroll_employee_period"`
	PeriodEnd   time.Time `gorm:"type:date;not null;index:idx_payroll_employee_period"`

	HoursWorked      decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	HourlyRate       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TaskPay          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ApprovedExpenses decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	OvertimeHours    decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	OvertimePay      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	GrossPay         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	NetPay           decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	GeneratedBy         uuid.UUID                   `gorm:"type:uuid;not null"`
	GeneratedAt         time.Time                   `gorm:"not null"`
	TaskIDsProcessed    datatypes.JSONSlice[string] `gorm:"type:jsonb;not null"`
	ExpenseIDsProcessed datatypes.JSONSlice[string] `gorm:"type:jsonb;not null"`
	// project:start:end:employee, unique per organization.
	IdempotencyKey string `gorm:"type:varchar(200);not null;uniqueIndex:uq_payroll_idempotency_key"`

	Status          string     `gorm:"type:varchar(16);not null;default:'pending';index:idx_payroll_org_status"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time `gorm:"index"`
	ApprovalNotes   *string    `gorm:"type:text"`
	RejectionReason *string    `gorm:"type:text"`

	PayslipPath        *string
	PayslipGeneratedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	LineItems []PayrollLineItem `gorm:"foreignKey:PayrollID"`
}

func (PayrollRecord) TableName() string {
	return "payroll_records"
}

// PayrollLineItem is the stored form of a Bonus, Allowance or Deduction.
type PayrollLineItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PayrollID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind           LineItemKind    `gorm:"type:varchar(16);not null;index"`
	Label          string          `gorm:"type:varchar(120);not null"`
	Reason         *string         `gorm:"type:text"`
	Amount         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Position       int             `gorm:"not null;default:0"`
	CreatedAt      time.Time
}

func (PayrollLineItem) TableName() string {
	return "payroll_line_items"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
