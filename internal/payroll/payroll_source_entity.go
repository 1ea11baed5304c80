package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Source facts read by the calculation engine. The engine only ever writes
// Expense.Processed and Expense.PayrollRecordID.

const (
	RoleEmployee = "employee"

	TaskStatusCompleted = "completed"
	TaskStatusVerified  = "verified"

	PaymentModeHourly   = "hourly"
	PaymentModeSalaried = "salaried"
)

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	FullName       string    `gorm:"column:full_name"`
	Role           string    `gorm:"type:varchar(32);not null"`
}

func (Employee) TableName() string {
	return "employees"
}

type Task struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProjectID          uuid.UUID `gorm:"type:uuid;not null;index"`
	AssignedEmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status             string    `gorm:"type:varchar(32);not null"`
	ElapsedTimeSeconds int64     `gorm:"not null;default:0"`
	UpdatedAt          time.Time
}

func (Task) TableName() string {
	return "tasks"
}

type Expense struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrganizationID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProjectID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Approved        bool            `gorm:"not null;default:false"`
	Processed       bool            `gorm:"not null;default:false"`
	ApprovedAt      *time.Time
	PayrollRecordID *uuid.UUID `gorm:"type:uuid"`
}

func (Expense) TableName() string {
	return "expenses"
}

type RateConfig struct {
	EmployeeID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaymentMode    string          `gorm:"type:varchar(16);not null"`
	HourlyRate     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
}

func (RateConfig) TableName() string {
	return "rate_configs"
}
