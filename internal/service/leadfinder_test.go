package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/amplyfy/consulting-crm/api/internal/dto"
	"github.com/amplyfy/consulting-crm/api/internal/entity"
	"github.com/amplyfy/consulting-crm/api/internal/places"
	"github.com/amplyfy/consulting-crm/api/internal/repository"
	"github.com/amplyfy/consulting-crm/api/internal/service/qualify"
)

type stubSearcher struct {
	searchText func(ctx context.Context, query string, maxResults int) ([]places.Place, error)
}

func (s *stubSearcher) SearchText(ctx context.Context, query string, maxResults int) ([]places.Place, error) {
	if s.searchText != nil {
		return s.searchText(ctx, query, maxResults)
	}
	return nil, errors.New("not implemented")
}

type fakeLeadsRepo struct {
	leads     []entity.Lead
	insertErr error
}

func (f *fakeLeadsRepo) List(ctx context.Context) ([]entity.Lead, error) {
	return f.leads, nil
}

func (f *fakeLeadsRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	for i := range f.leads {
		if f.leads[i].ID == id {
			return &f.leads[i], nil
		}
	}
	return nil, repository.ErrLeadNotFound
}

func (f *fakeLeadsRepo) Insert(ctx context.Context, lead *entity.Lead) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.leads = append(f.leads, *lead)
	return nil
}

func (f *fakeLeadsRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.LeadStatus) error {
	return errors.New("not implemented")
}

func (f *fakeLeadsRepo) SetCalled(ctx context.Context, id uuid.UUID, called bool) error {
	return errors.New("not implemented")
}

func (f *fakeLeadsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return errors.New("not implemented")
}

func newFinder(searcher places.Searcher, repo repository.LeadsRepository) *LeadFinderService {
	return NewLeadFinderService(searcher, repo, qualify.DefaultPolicy(), "US")
}

func searchablePlace(id string) places.Place {
	return places.Place{
		ID:            id,
		Name:          "Acme Consulting",
		Address:       "1 Main St",
		NationalPhone: "(555) 010-0000",
		Website:       "https://acme.example.com",
		Rating:        4.2,
		ReviewCount:   120,
		PriceLevel:    places.PriceLevelModerate,
	}
}

func TestLeadFinderService_FindLeads(t *testing.T) {
	ctx := context.Background()

	t.Run("empty query is rejected before searching", func(t *testing.T) {
		called := false
		finder := newFinder(&stubSearcher{
			searchText: func(ctx context.Context, query string, maxResults int) ([]places.Place, error) {
				called = true
				return nil, nil
			},
		}, &fakeLeadsRepo{})

		_, err := finder.FindLeads(ctx, "   ", 0)
		var validationErr ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if called {
			t.Fatal("searcher should not be invoked for an empty query")
		}
	})

	t.Run("counters reflect raw and filtered totals", func(t *testing.T) {
		noWebsite := searchablePlace("p-2")
		noWebsite.Website = ""
		finder := newFinder(&stubSearcher{
			searchText: func(ctx context.Context, query string, maxResults int) ([]places.Place, error) {
				return []places.Place{searchablePlace("p-1"), noWebsite, searchablePlace("p-3")}, nil
			},
		}, &fakeLeadsRepo{})

		result, err := finder.FindLeads(ctx, "consultants in springfield", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.TotalFound != 3 {
			t.Fatalf("expected total_found 3, got %d", result.TotalFound)
		}
		if result.Filtered != 2 || len(result.Leads) != 2 {
			t.Fatalf("expected 2 drafts, got filtered=%d len=%d", result.Filtered, len(result.Leads))
		}
		if result.Leads[0].PlaceID != "p-1" || result.Leads[1].PlaceID != "p-3" {
			t.Fatalf("drafts out of order: %s, %s", result.Leads[0].PlaceID, result.Leads[1].PlaceID)
		}
	})

	t.Run("upstream errors propagate unchanged", func(t *testing.T) {
		upstream := &places.UpstreamError{Status: 429, Body: "quota exceeded"}
		finder := newFinder(&stubSearcher{
			searchText: func(ctx context.Context, query string, maxResults int) ([]places.Place, error) {
				return nil, upstream
			},
		}, &fakeLeadsRepo{})

		_, err := finder.FindLeads(ctx, "plumbers", 0)
		var gotErr *places.UpstreamError
		if !errors.As(err, &gotErr) || gotErr.Status != 429 {
			t.Fatalf("expected upstream error, got %v", err)
		}
	})

	t.Run("tracking params are stripped from websites", func(t *testing.T) {
		place := searchablePlace("p-1")
		place.Website = "https://acme.example.com/?utm_source=gmb&page=2"
		finder := newFinder(&stubSearcher{
			searchText: func(ctx context.Context, query string, maxResults int) ([]places.Place, error) {
				return []places.Place{place}, nil
			},
		}, &fakeLeadsRepo{})

		result, err := finder.FindLeads(ctx, "plumbers", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := result.Leads[0].Website; got != "https://acme.example.com/?page=2" {
			t.Fatalf("unexpected website: %s", got)
		}
	})

	t.Run("thirty qualified records cap at twenty drafts", func(t *testing.T) {
		records := make([]places.Place, 0, 30)
		for i := 0; i < 30; i++ {
			records = append(records, searchablePlace(uuid.NewString()))
		}
		finder := newFinder(&stubSearcher{
			searchText: func(ctx context.Context, query string, maxResults int) ([]places.Place, error) {
				return records, nil
			},
		}, &fakeLeadsRepo{})

		result, err := finder.FindLeads(ctx, "plumbers", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.TotalFound != 30 || result.Filtered != 20 {
			t.Fatalf("expected 30/20, got %d/%d", result.TotalFound, result.Filtered)
		}
		for i, draft := range result.Leads {
			if draft.PlaceID != records[i].ID {
				t.Fatalf("draft %d out of upstream order", i)
			}
		}
	})
}

func draftFor(placeID string) dto.LeadDraft {
	return dto.LeadDraft{
		BusinessName: "Acme Consulting",
		Phone:        "(555) 010-0000",
		Notes:        "Rating: 4.2 (120 reviews)",
		Status:       "Cold",
		Source:       "lead_finder",
		PlaceID:      placeID,
		Website:      "https://acme.example.com",
		PriceLevel:   "$$",
	}
}

func TestLeadFinderService_BulkApprove(t *testing.T) {
	ctx := context.Background()

	t.Run("empty batch is a no-op", func(t *testing.T) {
		repo := &fakeLeadsRepo{}
		finder := newFinder(&stubSearcher{}, repo)

		result, err := finder.BulkApprove(ctx, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Added != 0 || result.Skipped != 0 {
			t.Fatalf("expected 0/0, got %+v", result)
		}
	})

	t.Run("new drafts are inserted", func(t *testing.T) {
		repo := &fakeLeadsRepo{}
		finder := newFinder(&stubSearcher{}, repo)

		result, err := finder.BulkApprove(ctx, []dto.LeadDraft{draftFor("p-1"), draftFor("p-2")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Added != 2 || result.Skipped != 0 {
			t.Fatalf("expected 2 added, got %+v", result)
		}
		if len(repo.leads) != 2 {
			t.Fatalf("expected 2 persisted leads, got %d", len(repo.leads))
		}
		lead := repo.leads[0]
		if lead.ID == uuid.Nil || lead.CreatedAt.IsZero() {
			t.Fatal("persisted lead missing identity or timestamp")
		}
		if lead.Called {
			t.Fatal("new lead should start not called")
		}
		if lead.Status != entity.LeadStatusCold {
			t.Fatalf("unexpected status: %s", lead.Status)
		}
	})

	t.Run("place id duplicate is skipped", func(t *testing.T) {
		placeID := "p-1"
		repo := &fakeLeadsRepo{leads: []entity.Lead{{
			ID:           uuid.New(),
			BusinessName: "Different Name Entirely",
			Phone:        "(555) 999-9999",
			PlaceID:      &placeID,
		}}}
		finder := newFinder(&stubSearcher{}, repo)

		result, err := finder.BulkApprove(ctx, []dto.LeadDraft{draftFor("p-1"), draftFor("p-2")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Added != 1 || result.Skipped != 1 {
			t.Fatalf("expected 1 added 1 skipped, got %+v", result)
		}
	})

	t.Run("name and phone fallback catches drafts without place ids", func(t *testing.T) {
		repo := &fakeLeadsRepo{leads: []entity.Lead{{
			ID:           uuid.New(),
			BusinessName: "Acme Consulting",
			Phone:        "+15550100000",
		}}}
		finder := newFinder(&stubSearcher{}, repo)

		draft := draftFor("")
		draft.Phone = "(555) 010-0000"

		result, err := finder.BulkApprove(ctx, []dto.LeadDraft{draft})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Added != 0 || result.Skipped != 1 {
			t.Fatalf("expected the draft to be skipped, got %+v", result)
		}
	})

	t.Run("duplicates within one batch collapse", func(t *testing.T) {
		repo := &fakeLeadsRepo{}
		finder := newFinder(&stubSearcher{}, repo)

		result, err := finder.BulkApprove(ctx, []dto.LeadDraft{draftFor("p-1"), draftFor("p-1")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Added != 1 || result.Skipped != 1 {
			t.Fatalf("expected 1 added 1 skipped, got %+v", result)
		}
	})

	t.Run("storage duplicate error counts as skipped", func(t *testing.T) {
		repo := &fakeLeadsRepo{insertErr: repository.ErrDuplicateLead}
		finder := newFinder(&stubSearcher{}, repo)

		result, err := finder.BulkApprove(ctx, []dto.LeadDraft{draftFor("p-1")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Added != 0 || result.Skipped != 1 {
			t.Fatalf("expected 1 skipped, got %+v", result)
		}
	})

	t.Run("storage failure aborts the batch with partial counts", func(t *testing.T) {
		repo := &fakeLeadsRepo{insertErr: errors.New("disk full")}
		finder := newFinder(&stubSearcher{}, repo)

		result, err := finder.BulkApprove(ctx, []dto.LeadDraft{draftFor("p-1"), draftFor("p-2")})
		if err == nil {
			t.Fatal("expected an error")
		}
		if result.Added != 0 {
			t.Fatalf("expected 0 added, got %+v", result)
		}
	})

	t.Run("invalid draft status falls back to cold", func(t *testing.T) {
		repo := &fakeLeadsRepo{}
		finder := newFinder(&stubSearcher{}, repo)

		draft := draftFor("p-1")
		draft.Status = "Scorching"

		if _, err := finder.BulkApprove(ctx, []dto.LeadDraft{draft}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.leads[0].Status != entity.LeadStatusCold {
			t.Fatalf("unexpected status: %s", repo.leads[0].Status)
		}
	})
}
