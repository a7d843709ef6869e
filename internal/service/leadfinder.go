package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amplyfy/consulting-crm/api/internal/dto"
	"github.com/amplyfy/consulting-crm/api/internal/entity"
	"github.com/amplyfy/consulting-crm/api/internal/places"
	"github.com/amplyfy/consulting-crm/api/internal/repository"
	"github.com/amplyfy/consulting-crm/api/internal/service/qualify"
)

// ValidationError indicates a request rejected before any network or storage
// call was made.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

// LeadFinderService runs the lead acquisition pipeline: one places search,
// qualification, projection, and later the bulk approval commit.
type LeadFinderService struct {
	searcher places.Searcher
	leads    repository.LeadsRepository
	policy   qualify.Policy
	region   string

	now   func() time.Time
	newID func() uuid.UUID
}

// NewLeadFinderService wires the pipeline. region is the default phone
// region used when normalizing numbers for the fallback dedup key.
func NewLeadFinderService(searcher places.Searcher, leads repository.LeadsRepository, policy qualify.Policy, region string) *LeadFinderService {
	return &LeadFinderService{
		searcher: searcher,
		leads:    leads,
		policy:   policy,
		region:   region,
		now:      time.Now,
		newID:    uuid.New,
	}
}

// FindLeads issues one text search and returns the qualified drafts along
// with the total record count the provider reported. Any adapter error
// aborts the whole search; there are no partial results.
func (s *LeadFinderService) FindLeads(ctx context.Context, query string, maxResults int) (dto.FindLeadsResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return dto.FindLeadsResponse{}, ValidationError{Message: "query is required"}
	}
	if maxResults <= 0 || maxResults > places.MaxResultCap {
		maxResults = places.MaxResultCap
	}

	records, err := s.searcher.SearchText(ctx, query, maxResults)
	if err != nil {
		return dto.FindLeadsResponse{}, err
	}

	accepted := s.policy.Select(records)
	drafts := make([]dto.LeadDraft, 0, len(accepted))
	for _, record := range accepted {
		draft := qualify.Project(record)
		draft.Website = SanitizeWebsite(draft.Website)
		drafts = append(drafts, draft)
	}

	return dto.FindLeadsResponse{
		Leads:      drafts,
		TotalFound: len(records),
		Filtered:   len(drafts),
	}, nil
}

// BulkApprove commits the operator-selected drafts, skipping duplicates.
// A draft is a duplicate when a persisted lead shares its place id, or,
// when no place id is available, the same business name and phone number.
// Each draft commits independently; a storage failure aborts the rest of
// the batch but leaves earlier inserts in place.
func (s *LeadFinderService) BulkApprove(ctx context.Context, drafts []dto.LeadDraft) (dto.BulkApproveResponse, error) {
	var result dto.BulkApproveResponse
	if len(drafts) == 0 {
		return result, nil
	}

	existing, err := s.leads.List(ctx)
	if err != nil {
		return result, err
	}

	byPlaceID := make(map[string]struct{}, len(existing))
	byNamePhone := make(map[string]struct{}, len(existing))
	for _, lead := range existing {
		if lead.PlaceID != nil && *lead.PlaceID != "" {
			byPlaceID[*lead.PlaceID] = struct{}{}
		}
		byNamePhone[s.fallbackKey(lead.BusinessName, lead.Phone)] = struct{}{}
	}

	for _, draft := range drafts {
		if s.isDuplicate(draft, byPlaceID, byNamePhone) {
			result.Skipped++
			continue
		}

		lead := s.leadFromDraft(draft)
		if err := s.leads.Insert(ctx, &lead); err != nil {
			if errors.Is(err, repository.ErrDuplicateLead) {
				result.Skipped++
				continue
			}
			return result, err
		}

		if draft.PlaceID != "" {
			byPlaceID[draft.PlaceID] = struct{}{}
		}
		byNamePhone[s.fallbackKey(draft.BusinessName, draft.Phone)] = struct{}{}
		result.Added++
	}

	return result, nil
}

func (s *LeadFinderService) isDuplicate(draft dto.LeadDraft, byPlaceID, byNamePhone map[string]struct{}) bool {
	if draft.PlaceID != "" {
		_, dup := byPlaceID[draft.PlaceID]
		return dup
	}
	_, dup := byNamePhone[s.fallbackKey(draft.BusinessName, draft.Phone)]
	return dup
}

// fallbackKey identifies a business when no external place id is available.
// Phones are compared in E.164 form so the same number formatted two ways
// still collides.
func (s *LeadFinderService) fallbackKey(businessName, phone string) string {
	return strings.ToLower(strings.TrimSpace(businessName)) + "|" + NormalizePhone(phone, s.region)
}

func (s *LeadFinderService) leadFromDraft(draft dto.LeadDraft) entity.Lead {
	status := entity.LeadStatus(draft.Status)
	if !entity.ValidLeadStatus(status) {
		status = entity.LeadStatusCold
	}

	lead := entity.Lead{
		ID:           s.newID(),
		BusinessName: draft.BusinessName,
		Name:         draft.Name,
		Email:        draft.Email,
		Phone:        draft.Phone,
		Notes:        draft.Notes,
		Status:       status,
		Called:       false,
		Source:       draft.Source,
		Rating:       draft.Rating,
		ReviewCount:  draft.ReviewCount,
		CreatedAt:    s.now(),
	}
	if draft.PlaceID != "" {
		placeID := draft.PlaceID
		lead.PlaceID = &placeID
	}
	if draft.Website != "" {
		website := draft.Website
		lead.Website = &website
	}
	if draft.Address != "" {
		address := draft.Address
		lead.Address = &address
	}
	if draft.PriceLevel != "" {
		priceLevel := draft.PriceLevel
		lead.PriceLevel = &priceLevel
	}
	return lead
}
