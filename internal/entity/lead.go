package entity

import (
	"time"

	"github.com/google/uuid"
)

// LeadStatus tracks how warm a prospect is.
type LeadStatus string

const (
	LeadStatusHot  LeadStatus = "Hot"
	LeadStatusWarm LeadStatus = "Warm"
	LeadStatusCold LeadStatus = "Cold"
)

// ValidLeadStatus reports whether the given status is one of the known values.
func ValidLeadStatus(s LeadStatus) bool {
	switch s {
	case LeadStatusHot, LeadStatusWarm, LeadStatusCold:
		return true
	}
	return false
}

// SourceLeadFinder tags leads created through the places-search pipeline.
const SourceLeadFinder = "lead_finder"

// Lead represents a prospective client business tracked for follow-up.
type Lead struct {
	ID           uuid.UUID  `json:"id"`
	BusinessName string     `json:"business_name"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Notes        string     `json:"notes"`
	Status       LeadStatus `json:"status"`
	Called       bool       `json:"called"`
	Source       string     `json:"source,omitempty"`
	PlaceID      *string    `json:"place_id,omitempty"`
	Website      *string    `json:"website,omitempty"`
	Address      *string    `json:"address,omitempty"`
	Rating       *float64   `json:"rating,omitempty"`
	ReviewCount  *int       `json:"review_count,omitempty"`
	PriceLevel   *string    `json:"price_level,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
