package rateconfig

type UpsertRateConfigRequest struct {
	PaymentMode string  `json:"payment_mode" binding:"required,oneof=hourly salaried"`
	HourlyRate  float64 `json:"hourly_rate" binding:"gte=0"`
}

type RateConfigResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	PaymentMode  string `json:"payment_mode"`
	HourlyRate   string `json:"hourly_rate"`
}
