package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/amplyfy/consulting-crm/api/internal/entity"
)

// Sentinel errors shared by every storage backend.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailDuplicate  = errors.New("email already exists")
	ErrLeadNotFound    = errors.New("lead not found")
	ErrDuplicateLead   = errors.New("lead already exists")
	ErrExpenseNotFound = errors.New("expense not found")
)

// UsersRepository declares persistence operations for employee accounts.
type UsersRepository interface {
	List(ctx context.Context) ([]entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LeadsRepository declares persistence operations for leads.
//
// List returns the full lead set; the bulk-approval committer relies on it
// for its read-then-check dedup pass.
type LeadsRepository interface {
	List(ctx context.Context) ([]entity.Lead, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error)
	Insert(ctx context.Context, lead *entity.Lead) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.LeadStatus) error
	SetCalled(ctx context.Context, id uuid.UUID, called bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExpensesRepository declares persistence operations for expenses.
type ExpensesRepository interface {
	List(ctx context.Context) ([]entity.Expense, error)
	Insert(ctx context.Context, expense *entity.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}
