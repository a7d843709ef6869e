package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amplyfy/consulting-crm/api/internal/dto"
	"github.com/amplyfy/consulting-crm/api/internal/entity"
	"github.com/amplyfy/consulting-crm/api/internal/repository"
)

// LeadsService exposes CRUD operations over the lead book.
type LeadsService struct {
	repo repository.LeadsRepository
}

// NewLeadsService creates a new instance of LeadsService.
func NewLeadsService(repo repository.LeadsRepository) *LeadsService {
	return &LeadsService{repo: repo}
}

// List returns all leads, newest first.
func (s *LeadsService) List(ctx context.Context) ([]entity.Lead, error) {
	return s.repo.List(ctx)
}

// Create stores a manually entered lead.
func (s *LeadsService) Create(ctx context.Context, req dto.CreateLeadRequest) (*entity.Lead, error) {
	req.BusinessName = strings.TrimSpace(req.BusinessName)
	if req.BusinessName == "" {
		return nil, ValidationError{Message: "business_name is required"}
	}

	email := strings.TrimSpace(req.Email)
	if email != "" {
		email = NormalizeEmail(email)
		if email == "" {
			return nil, ValidationError{Message: "invalid email"}
		}
	}

	status := entity.LeadStatus(strings.TrimSpace(req.Status))
	if status == "" {
		status = entity.LeadStatusCold
	}
	if !entity.ValidLeadStatus(status) {
		return nil, ValidationError{Message: "status must be one of Hot, Warm, Cold"}
	}

	lead := &entity.Lead{
		ID:           uuid.New(),
		BusinessName: req.BusinessName,
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		Notes:        req.Notes,
		Status:       status,
		Called:       false,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Insert(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// UpdateStatus changes a lead's temperature. Status moves only through
// explicit operator action.
func (s *LeadsService) UpdateStatus(ctx context.Context, id string, status string) error {
	leadID, err := uuid.Parse(id)
	if err != nil {
		return ValidationError{Message: "invalid lead id"}
	}

	next := entity.LeadStatus(strings.TrimSpace(status))
	if !entity.ValidLeadStatus(next) {
		return ValidationError{Message: "status must be one of Hot, Warm, Cold"}
	}
	return s.repo.UpdateStatus(ctx, leadID, next)
}

// ToggleCalled flips the called flag and returns the new value.
func (s *LeadsService) ToggleCalled(ctx context.Context, id string) (bool, error) {
	leadID, err := uuid.Parse(id)
	if err != nil {
		return false, ValidationError{Message: "invalid lead id"}
	}

	lead, err := s.repo.FindByID(ctx, leadID)
	if err != nil {
		return false, err
	}

	called := !lead.Called
	if err := s.repo.SetCalled(ctx, leadID, called); err != nil {
		return false, err
	}
	return called, nil
}

// Delete removes a lead.
func (s *LeadsService) Delete(ctx context.Context, id string) error {
	leadID, err := uuid.Parse(id)
	if err != nil {
		return ValidationError{Message: "invalid lead id"}
	}
	return s.repo.Delete(ctx, leadID)
}

// Stats aggregates lead counts for the dashboard.
func (s *LeadsService) Stats(ctx context.Context) (dto.LeadStats, error) {
	leads, err := s.repo.List(ctx)
	if err != nil {
		return dto.LeadStats{}, err
	}

	stats := dto.LeadStats{Total: len(leads)}
	for _, lead := range leads {
		switch lead.Status {
		case entity.LeadStatusHot:
			stats.Hot++
		case entity.LeadStatusWarm:
			stats.Warm++
		case entity.LeadStatusCold:
			stats.Cold++
		}
	}
	return stats, nil
}
