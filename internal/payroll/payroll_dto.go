package payroll

// CalculateRequest triggers a batch run for one project and period. Policy and
// Adjustments are optional. Without them each record uses the base formula;
// with either, every record in the run is itemized and expenses are added to
// net pay instead of gross.
type CalculateRequest struct {
	ProjectID   string              `json:"project_id" binding:"required,uuid"`
	PeriodStart string              `json:"period_start" binding:"required"`
	PeriodEnd   string              `json:"period_end" binding:"required"`
	Policy      *PolicyRequest      `json:"policy"`
	Adjustments []AdjustmentRequest `json:"adjustments" binding:"omitempty,dive"`
}

type PolicyRequest struct {
	OvertimeThreshold  float64 `json:"overtime_threshold" binding:"gte=0"`
	OvertimeMultiplier float64 `json:"overtime_multiplier" binding:"gte=0"`
	TaxRate            float64 `json:"tax_rate" binding:"gte=0,lte=1"`
}

// AdjustmentRequest carries per-employee pay components for the run.
type AdjustmentRequest struct {
	EmployeeID    string             `json:"employee_id" binding:"required,uuid"`
	OvertimeHours float64            `json:"overtime_hours" binding:"gte=0"`
	Bonuses       []BonusRequest     `json:"bonuses" binding:"omitempty,dive"`
	Allowances    []AllowanceRequest `json:"allowances" binding:"omitempty,dive"`
	Deductions    []DeductionRequest `json:"deductions" binding:"omitempty,dive"`
}

type BonusRequest struct {
	Type   string  `json:"type" binding:"required"`
	Reason string  `json:"reason"`
	Amount float64 `json:"amount" binding:"gte=0"`
}

type AllowanceRequest struct {
	Name   string  `json:"name" binding:"required"`
	Amount float64 `json:"amount" binding:"gte=0"`
}

type DeductionRequest struct {
	Type   string  `json:"type" binding:"required"`
	Amount float64 `json:"amount" binding:"gte=0"`
}

type GetPayrollsFilterRequest struct {
	Status     string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	ProjectID  string `form:"project_id" binding:"omitempty,uuid"`
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
}

// ReadScope narrows reads to one employee's own records. The zero value
// covers the whole organization.
type ReadScope struct {
	EmployeeID string
}

type PayrollQueryFilter struct {
	Status     string
	ProjectID  string
	EmployeeID string
}

type CalculateResponse struct {
	ProjectID   string            `json:"project_id"`
	PeriodStart string            `json:"period_start"`
	PeriodEnd   string            `json:"period_end"`
	Created     int               `json:"created"`
	Payrolls    []PayrollResponse `json:"payrolls"`
}

type PayrollResponse struct {
	ID                  string   `json:"id"`
	Reference           string   `json:"reference"`
	OrganizationID      string   `json:"organization_id"`
	EmployeeID          string   `json:"employee_id"`
	EmployeeName        string   `json:"employee_name,omitempty"`
	ProjectID           string   `json:"project_id"`
	PeriodStart         string   `json:"period_start"`
	PeriodEnd           string   `json:"period_end"`
	HoursWorked         string   `json:"hours_worked"`
	HourlyRate          string   `json:"hourly_rate"`
	TaskPay             string   `json:"task_pay"`
	OvertimeHours       string   `json:"overtime_hours"`
	OvertimePay         string   `json:"overtime_pay"`
	ApprovedExpenses    string   `json:"approved_expenses"`
	GrossPay            string   `json:"gross_pay"`
	NetPay              string   `json:"net_pay"`
	Status              string   `json:"status"`
	GeneratedBy         string   `json:"generated_by"`
	GeneratedAt         string   `json:"generated_at"`
	TaskIDsProcessed    []string `json:"task_ids_processed"`
	ExpenseIDsProcessed []string `json:"expense_ids_processed"`
	ApprovedBy          *string  `json:"approved_by,omitempty"`
	ApprovedAt          *string  `json:"approved_at,omitempty"`
	ApprovalNotes       *string  `json:"approval_notes,omitempty"`
	RejectionReason     *string  `json:"rejection_reason,omitempty"`
	PayslipAvailable    bool     `json:"payslip_available"`
	PayslipGeneratedAt  *string  `json:"payslip_generated_at,omitempty"`
}

type LineItemResponse struct {
	Kind   string  `json:"kind"`
	Label  string  `json:"label"`
	Reason *string `json:"reason,omitempty"`
	Amount string  `json:"amount"`
}

type PayrollBreakdownResponse struct {
	Payroll        PayrollResponse    `json:"payroll"`
	BonusTotal     string             `json:"bonus_total"`
	AllowanceTotal string             `json:"allowance_total"`
	DeductionTotal string             `json:"deduction_total"`
	LineItems      []LineItemResponse `json:"line_items"`
}
