// Package places wraps the Google Places text-search API behind a small
// Searcher interface. One invocation issues exactly one upstream call; the
// provider's single-page cap of 60 results is accepted as-is.
package places

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gplaces "google.golang.org/api/places/v1"
)

// MaxResultCap is the hard upper bound the upstream API imposes on a single
// text-search response.
const MaxResultCap = 60

// Price level tokens as reported by the provider.
const (
	PriceLevelFree          = "PRICE_LEVEL_FREE"
	PriceLevelInexpensive   = "PRICE_LEVEL_INEXPENSIVE"
	PriceLevelModerate      = "PRICE_LEVEL_MODERATE"
	PriceLevelExpensive     = "PRICE_LEVEL_EXPENSIVE"
	PriceLevelVeryExpensive = "PRICE_LEVEL_VERY_EXPENSIVE"
)

const fieldMask = "places.id,places.displayName,places.formattedAddress," +
	"places.nationalPhoneNumber,places.internationalPhoneNumber," +
	"places.websiteUri,places.rating,places.userRatingCount,places.priceLevel"

// ErrNotConfigured is returned when no API credential is available at call time.
var ErrNotConfigured = errors.New("places API key not configured")

// UpstreamError carries a non-success response from the search provider.
type UpstreamError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("places API error: %d - %s", e.Status, e.Body)
}

// Place is a raw business record returned by the search provider. Zero-valued
// rating and review count mean the provider did not report them.
type Place struct {
	ID                 string
	Name               string
	Address            string
	NationalPhone      string
	InternationalPhone string
	Website            string
	Rating             float64
	ReviewCount        int
	PriceLevel         string
}

// HasPhone reports whether the record carries any phone number.
func (p Place) HasPhone() bool {
	return p.NationalPhone != "" || p.InternationalPhone != ""
}

// Phone returns the national phone when present, else the international one.
func (p Place) Phone() string {
	if p.NationalPhone != "" {
		return p.NationalPhone
	}
	return p.InternationalPhone
}

// Searcher issues a single text search against the places provider.
type Searcher interface {
	SearchText(ctx context.Context, query string, maxResults int) ([]Place, error)
}

// Client implements Searcher against the Google Places API (New).
type Client struct {
	apiKey string

	initOnce sync.Once
	svc      *gplaces.Service
	initErr  error
}

// NewClient builds a client. An empty key is allowed here; SearchText reports
// ErrNotConfigured when invoked without one.
func NewClient(apiKey string) *Client {
	return &Client{apiKey: strings.TrimSpace(apiKey)}
}

var _ Searcher = (*Client)(nil)

// SearchText performs one text-search call and returns the raw records in
// upstream order. No retry, no pagination follow-up.
func (c *Client) SearchText(ctx context.Context, query string, maxResults int) ([]Place, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}
	if maxResults <= 0 || maxResults > MaxResultCap {
		maxResults = MaxResultCap
	}

	c.initOnce.Do(func() {
		c.svc, c.initErr = gplaces.NewService(context.Background(), option.WithAPIKey(c.apiKey))
	})
	if c.initErr != nil {
		return nil, fmt.Errorf("init places service: %w", c.initErr)
	}

	req := &gplaces.GoogleMapsPlacesV1SearchTextRequest{
		TextQuery:      query,
		MaxResultCount: int64(maxResults),
		LanguageCode:   "en",
		RankPreference: "RELEVANCE",
	}

	call := c.svc.Places.SearchText(req).Context(ctx)
	call.Header().Set("X-Goog-FieldMask", fieldMask)

	resp, err := call.Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return nil, &UpstreamError{Status: gerr.Code, Body: gerr.Body}
		}
		return nil, fmt.Errorf("places text search: %w", err)
	}

	results := make([]Place, 0, len(resp.Places))
	for _, p := range resp.Places {
		results = append(results, fromAPI(p))
	}
	return results, nil
}

func fromAPI(p *gplaces.GoogleMapsPlacesV1Place) Place {
	place := Place{
		ID:                 p.Id,
		Address:            p.FormattedAddress,
		NationalPhone:      p.NationalPhoneNumber,
		InternationalPhone: p.InternationalPhoneNumber,
		Website:            p.WebsiteUri,
		Rating:             p.Rating,
		ReviewCount:        int(p.UserRatingCount),
		PriceLevel:         p.PriceLevel,
	}
	if p.DisplayName != nil {
		place.Name = p.DisplayName.Text
	}
	return place
}
