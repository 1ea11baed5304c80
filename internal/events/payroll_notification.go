package events

import "time"

const PayrollNotificationTopic = "hr.payroll.notification.v1"

type PayrollNotificationEvent struct {
	EventType      string    `json:"event_type"`
	EmployeeID     string    `json:"employee_id"`
	OrganizationID string    `json:"organization_id"`
	Message        string    `json:"message"`
	OccurredAt     time.Time `json:"occurred_at"`
}
