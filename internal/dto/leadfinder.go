package dto

// FindLeadsRequest is the payload for the lead finder search endpoint.
type FindLeadsRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}

// LeadDraft is a qualified search result held in the operator's working set
// until it is approved. It carries no identity or timestamp yet.
type LeadDraft struct {
	BusinessName string   `json:"business_name"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Notes        string   `json:"notes"`
	Status       string   `json:"status"`
	Source       string   `json:"source"`
	PlaceID      string   `json:"place_id,omitempty"`
	Website      string   `json:"website,omitempty"`
	Address      string   `json:"address,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	ReviewCount  *int     `json:"review_count,omitempty"`
	PriceLevel   string   `json:"price_level"`
}

// FindLeadsResponse reports qualified drafts plus search-wide counters.
type FindLeadsResponse struct {
	Leads      []LeadDraft `json:"leads"`
	TotalFound int         `json:"total_found"`
	Filtered   int         `json:"filtered"`
}

// BulkApproveRequest carries the operator-selected drafts to persist.
type BulkApproveRequest struct {
	Leads []LeadDraft `json:"leads"`
}

// BulkApproveResponse summarises a committed batch.
type BulkApproveResponse struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}
