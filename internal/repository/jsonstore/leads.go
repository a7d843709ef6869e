package jsonstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/amplyfy/consulting-crm/api/internal/entity"
	"github.com/amplyfy/consulting-crm/api/internal/repository"
)

// LeadsRepository implements repository.LeadsRepository on the JSON file store.
type LeadsRepository struct {
	store *Store
}

// NewLeadsRepository wires a file backed leads repository.
func NewLeadsRepository(store *Store) *LeadsRepository {
	return &LeadsRepository{store: store}
}

var _ repository.LeadsRepository = (*LeadsRepository)(nil)

// List returns all leads ordered by creation date (desc).
func (r *LeadsRepository) List(_ context.Context) ([]entity.Lead, error) {
	var leads []entity.Lead
	err := r.store.view(func(doc *document) error {
		for _, rec := range doc.Leads {
			lead, err := leadFromRecord(rec)
			if err != nil {
				return err
			}
			leads = append(leads, lead)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(leads, func(i, j int) bool { return leads[i].CreatedAt.After(leads[j].CreatedAt) })
	return leads, nil
}

// FindByID retrieves a lead by identifier.
func (r *LeadsRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Lead, error) {
	var found *entity.Lead
	err := r.store.view(func(doc *document) error {
		for _, rec := range doc.Leads {
			if rec.ID == id.String() {
				lead, err := leadFromRecord(rec)
				if err != nil {
					return err
				}
				found = &lead
				return nil
			}
		}
		return repository.ErrLeadNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Insert appends a new lead. A lead with a place id already present in the
// store is rejected with ErrDuplicateLead.
func (r *LeadsRepository) Insert(_ context.Context, lead *entity.Lead) error {
	if lead == nil {
		return fmt.Errorf("lead payload is nil")
	}
	return r.store.update(func(doc *document) error {
		if lead.PlaceID != nil {
			for _, rec := range doc.Leads {
				if rec.PlaceID != nil && *rec.PlaceID == *lead.PlaceID {
					return repository.ErrDuplicateLead
				}
			}
		}
		doc.Leads = append(doc.Leads, leadToRecord(lead))
		return nil
	})
}

// UpdateStatus sets the lead's temperature.
func (r *LeadsRepository) UpdateStatus(_ context.Context, id uuid.UUID, status entity.LeadStatus) error {
	return r.store.update(func(doc *document) error {
		for i := range doc.Leads {
			if doc.Leads[i].ID == id.String() {
				doc.Leads[i].Status = string(status)
				return nil
			}
		}
		return repository.ErrLeadNotFound
	})
}

// SetCalled flips the called flag.
func (r *LeadsRepository) SetCalled(_ context.Context, id uuid.UUID, called bool) error {
	return r.store.update(func(doc *document) error {
		for i := range doc.Leads {
			if doc.Leads[i].ID == id.String() {
				doc.Leads[i].Called = called
				return nil
			}
		}
		return repository.ErrLeadNotFound
	})
}

// Delete removes a lead by id.
func (r *LeadsRepository) Delete(_ context.Context, id uuid.UUID) error {
	return r.store.update(func(doc *document) error {
		for i, rec := range doc.Leads {
			if rec.ID == id.String() {
				doc.Leads = append(doc.Leads[:i], doc.Leads[i+1:]...)
				return nil
			}
		}
		return repository.ErrLeadNotFound
	})
}

func leadToRecord(lead *entity.Lead) leadRecord {
	return leadRecord{
		ID:           lead.ID.String(),
		BusinessName: lead.BusinessName,
		Name:         lead.Name,
		Email:        lead.Email,
		Phone:        lead.Phone,
		Notes:        lead.Notes,
		Status:       string(lead.Status),
		Called:       lead.Called,
		Source:       lead.Source,
		PlaceID:      lead.PlaceID,
		Website:      lead.Website,
		Address:      lead.Address,
		Rating:       lead.Rating,
		ReviewCount:  lead.ReviewCount,
		PriceLevel:   lead.PriceLevel,
		CreatedAt:    lead.CreatedAt,
	}
}

func leadFromRecord(rec leadRecord) (entity.Lead, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return entity.Lead{}, fmt.Errorf("parse lead id %q: %w", rec.ID, err)
	}
	return entity.Lead{
		ID:           id,
		BusinessName: rec.BusinessName,
		Name:         rec.Name,
		Email:        rec.Email,
		Phone:        rec.Phone,
		Notes:        rec.Notes,
		Status:       entity.LeadStatus(rec.Status),
		Called:       rec.Called,
		Source:       rec.Source,
		PlaceID:      rec.PlaceID,
		Website:      rec.Website,
		Address:      rec.Address,
		Rating:       rec.Rating,
		ReviewCount:  rec.ReviewCount,
		PriceLevel:   rec.PriceLevel,
		CreatedAt:    rec.CreatedAt,
	}, nil
}
