package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/amplyfy/consulting-crm/api/internal/dto"
	"github.com/amplyfy/consulting-crm/api/internal/entity"
)

type stubLeadsRepo struct {
	list         func(ctx context.Context) ([]entity.Lead, error)
	findByID     func(ctx context.Context, id uuid.UUID) (*entity.Lead, error)
	insert       func(ctx context.Context, lead *entity.Lead) error
	updateStatus func(ctx context.Context, id uuid.UUID, status entity.LeadStatus) error
	setCalled    func(ctx context.Context, id uuid.UUID, called bool) error
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (s *stubLeadsRepo) List(ctx context.Context) ([]entity.Lead, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, errors.New("not implemented")
}

func (s *stubLeadsRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	if s.findByID != nil {
		return s.findByID(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (s *stubLeadsRepo) Insert(ctx context.Context, lead *entity.Lead) error {
	if s.insert != nil {
		return s.insert(ctx, lead)
	}
	return errors.New("not implemented")
}

func (s *stubLeadsRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.LeadStatus) error {
	if s.updateStatus != nil {
		return s.updateStatus(ctx, id, status)
	}
	return errors.New("not implemented")
}

func (s *stubLeadsRepo) SetCalled(ctx context.Context, id uuid.UUID, called bool) error {
	if s.setCalled != nil {
		return s.setCalled(ctx, id, called)
	}
	return errors.New("not implemented")
}

func (s *stubLeadsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if s.delete != nil {
		return s.delete(ctx, id)
	}
	return errors.New("not implemented")
}

func TestLeadsService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("business name is required", func(t *testing.T) {
		svc := NewLeadsService(&stubLeadsRepo{})
		_, err := svc.Create(ctx, dto.CreateLeadRequest{BusinessName: "  "})
		var validationErr ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		svc := NewLeadsService(&stubLeadsRepo{})
		_, err := svc.Create(ctx, dto.CreateLeadRequest{BusinessName: "Acme", Email: "nope"})
		var validationErr ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		svc := NewLeadsService(&stubLeadsRepo{})
		_, err := svc.Create(ctx, dto.CreateLeadRequest{BusinessName: "Acme", Status: "Tepid"})
		var validationErr ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("defaults to cold and not called", func(t *testing.T) {
		var inserted *entity.Lead
		svc := NewLeadsService(&stubLeadsRepo{
			insert: func(ctx context.Context, lead *entity.Lead) error {
				inserted = lead
				return nil
			},
		})

		lead, err := svc.Create(ctx, dto.CreateLeadRequest{BusinessName: " Acme ", Email: "OWNER@Acme.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inserted == nil || inserted.ID != lead.ID {
			t.Fatal("lead was not persisted")
		}
		if lead.BusinessName != "Acme" {
			t.Fatalf("name not trimmed: %q", lead.BusinessName)
		}
		if lead.Email != "owner@acme.com" {
			t.Fatalf("email not normalized: %q", lead.Email)
		}
		if lead.Status != entity.LeadStatusCold || lead.Called {
			t.Fatalf("unexpected defaults: status=%s called=%v", lead.Status, lead.Called)
		}
	})
}

func TestLeadsService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("invalid id", func(t *testing.T) {
		svc := NewLeadsService(&stubLeadsRepo{})
		err := svc.UpdateStatus(ctx, "nope", "Hot")
		var validationErr ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		svc := NewLeadsService(&stubLeadsRepo{})
		err := svc.UpdateStatus(ctx, id.String(), "Boiling")
		var validationErr ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("valid transition delegates", func(t *testing.T) {
		var gotStatus entity.LeadStatus
		svc := NewLeadsService(&stubLeadsRepo{
			updateStatus: func(ctx context.Context, target uuid.UUID, status entity.LeadStatus) error {
				gotStatus = status
				return nil
			},
		})
		if err := svc.UpdateStatus(ctx, id.String(), "Hot"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotStatus != entity.LeadStatusHot {
			t.Fatalf("unexpected status: %s", gotStatus)
		}
	})
}

func TestLeadsService_ToggleCalled(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	svc := NewLeadsService(&stubLeadsRepo{
		findByID: func(ctx context.Context, target uuid.UUID) (*entity.Lead, error) {
			return &entity.Lead{ID: target, Called: true}, nil
		},
		setCalled: func(ctx context.Context, target uuid.UUID, called bool) error {
			if called {
				t.Fatal("expected the flag to flip to false")
			}
			return nil
		},
	})

	called, err := svc.ToggleCalled(ctx, id.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatal("expected toggled value false")
	}
}

func TestLeadsService_Stats(t *testing.T) {
	svc := NewLeadsService(&stubLeadsRepo{
		list: func(ctx context.Context) ([]entity.Lead, error) {
			return []entity.Lead{
				{Status: entity.LeadStatusHot},
				{Status: entity.LeadStatusCold},
				{Status: entity.LeadStatusCold},
				{Status: entity.LeadStatusWarm},
			}, nil
		},
	})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := dto.LeadStats{Total: 4, Hot: 1, Warm: 1, Cold: 2}
	if stats != want {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
