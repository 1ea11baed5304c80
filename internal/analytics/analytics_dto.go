package analytics

type MonthlySummaryRequest struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=2000,max=9999"`
}

type SummaryResponse struct {
	OrganizationID string `json:"organization_id"`
	Month          int    `json:"month"`
	Year           int    `json:"year"`
	PeriodStart    string `json:"period_start"`
	PeriodEnd      string `json:"period_end"`
	TotalAmount    string `json:"total_amount"`
	EmployeeCount  int    `json:"employee_count"`
	AverageSalary  string `json:"average_salary"`
}
