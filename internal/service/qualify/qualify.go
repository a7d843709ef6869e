// Package qualify decides which raw place records are worth surfacing as
// leads and projects the accepted ones into drafts. All functions are pure.
package qualify

import (
	"fmt"
	"strconv"

	"github.com/amplyfy/consulting-crm/api/internal/dto"
	"github.com/amplyfy/consulting-crm/api/internal/entity"
	"github.com/amplyfy/consulting-crm/api/internal/places"
)

// Defaults for the qualification policy. The review-count window and the
// draft cap are product policy, tunable through configuration.
const (
	DefaultMinReviews = 50
	DefaultMaxReviews = 500
	DefaultMinRating  = 3.5
	DefaultMaxLeads   = 20
)

// Policy holds the thresholds applied to every raw record.
type Policy struct {
	MinReviews int
	MaxReviews int
	MinRating  float64
	MaxLeads   int
}

// DefaultPolicy returns the policy the product ships with.
func DefaultPolicy() Policy {
	return Policy{
		MinReviews: DefaultMinReviews,
		MaxReviews: DefaultMaxReviews,
		MinRating:  DefaultMinRating,
		MaxLeads:   DefaultMaxLeads,
	}
}

// Mid-range price tiers qualify; free, inexpensive and very-expensive tiers
// are poor cold-call targets.
var allowedPriceLevels = map[string]struct{}{
	places.PriceLevelModerate:  {},
	places.PriceLevelExpensive: {},
}

// Qualifies reports whether a raw record passes every predicate. A missing
// review count, rating or price level passes its check; an explicit value
// outside range rejects regardless of the other fields.
func (p Policy) Qualifies(place places.Place) bool {
	// No phone means no cold-call path.
	if !place.HasPhone() {
		return false
	}
	if place.Website == "" {
		return false
	}
	if place.ReviewCount != 0 && (place.ReviewCount < p.MinReviews || place.ReviewCount > p.MaxReviews) {
		return false
	}
	if place.Rating != 0 && place.Rating < p.MinRating {
		return false
	}
	if place.PriceLevel != "" {
		if _, ok := allowedPriceLevels[place.PriceLevel]; !ok {
			return false
		}
	}
	return true
}

// Select filters the records and keeps at most MaxLeads accepted ones, in
// upstream order. The cap is a workload limit, not a re-ranking.
func (p Policy) Select(records []places.Place) []places.Place {
	accepted := make([]places.Place, 0, p.MaxLeads)
	for _, record := range records {
		if !p.Qualifies(record) {
			continue
		}
		accepted = append(accepted, record)
		if len(accepted) == p.MaxLeads {
			break
		}
	}
	return accepted
}

// Project maps an accepted record to a lead draft. Contact name and email
// stay empty for manual enrichment later.
func Project(place places.Place) dto.LeadDraft {
	draft := dto.LeadDraft{
		BusinessName: place.Name,
		Phone:        place.Phone(),
		Notes:        notes(place),
		Status:       string(entity.LeadStatusCold),
		Source:       entity.SourceLeadFinder,
		PlaceID:      place.ID,
		Website:      place.Website,
		Address:      place.Address,
		PriceLevel:   NormalizePriceLevel(place.PriceLevel),
	}
	if place.Rating != 0 {
		rating := place.Rating
		draft.Rating = &rating
	}
	if place.ReviewCount != 0 {
		count := place.ReviewCount
		draft.ReviewCount = &count
	}
	return draft
}

// NormalizePriceLevel maps provider tokens to dollar-sign tiers. Unknown or
// absent levels fall back to "$$".
func NormalizePriceLevel(level string) string {
	switch level {
	case places.PriceLevelFree, places.PriceLevelInexpensive:
		return "$"
	case places.PriceLevelModerate:
		return "$$"
	case places.PriceLevelExpensive:
		return "$$$"
	case places.PriceLevelVeryExpensive:
		return "$$$$"
	default:
		return "$$"
	}
}

func notes(place places.Place) string {
	rating := "N/A"
	if place.Rating != 0 {
		rating = strconv.FormatFloat(place.Rating, 'f', -1, 64)
	}
	return fmt.Sprintf("Rating: %s (%d reviews)", rating, place.ReviewCount)
}
