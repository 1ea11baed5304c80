package paycycle

type ConfigurePayCycleRequest struct {
	Frequency string `json:"frequency" binding:"required,oneof=weekly biweekly monthly"`
}

type PayCycleResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	Frequency      string `json:"frequency"`
	NextCycleStart string `json:"next_cycle_start"`
	NextCycleEnd   string `json:"next_cycle_end"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}
