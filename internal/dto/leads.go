package dto

// CreateLeadRequest captures a manually entered lead.
type CreateLeadRequest struct {
	BusinessName string `json:"business_name"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Notes        string `json:"notes"`
	Status       string `json:"status"`
}

// UpdateLeadStatusRequest changes a lead's temperature.
type UpdateLeadStatusRequest struct {
	Status string `json:"status"`
}

// LeadStats aggregates lead counts for the dashboard.
type LeadStats struct {
	Total int `json:"total"`
	Hot   int `json:"hot"`
	Warm  int `json:"warm"`
	Cold  int `json:"cold"`
}
