package events

import "time"

const PayrollCalculatedTopic = "hr.payroll.calculated.v1"

type PayrollCalculatedEvent struct {
	EventType      string    `json:"event_type"`
	OrganizationID string    `json:"organization_id"`
	ProjectID      string    `json:"project_id"`
	PeriodStart    string    `json:"period_start"`
	PeriodEnd      string    `json:"period_end"`
	PayrollIDs     []string  `json:"payroll_ids"`
	TotalNetPay    string    `json:"total_net_pay"`
	GeneratedBy    string    `json:"generated_by"`
	OccurredAt     time.Time `json:"occurred_at"`
}
