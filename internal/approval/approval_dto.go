package approval

type ApproveRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=1000"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required,max=1000"`
}

type ApprovalResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	PeriodStart      string  `json:"period_start"`
	PeriodEnd        string  `json:"period_end"`
	Status           string  `json:"status"`
	ReviewedBy       string  `json:"reviewed_by"`
	ReviewedAt       string  `json:"reviewed_at"`
	ApprovalNotes    *string `json:"approval_notes,omitempty"`
	RejectionReason  *string `json:"rejection_reason,omitempty"`
	NotificationSent bool    `json:"notification_sent"`
}
