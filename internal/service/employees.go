package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/amplyfy/consulting-crm/api/internal/dto"
	"github.com/amplyfy/consulting-crm/api/internal/entity"
	"github.com/amplyfy/consulting-crm/api/internal/repository"
)

// ErrSelfDelete rejects an admin deleting their own account.
var ErrSelfDelete = errors.New("cannot delete yourself")

// EmployeesService encapsulates administrative operations for employee accounts.
type EmployeesService struct {
	repo repository.UsersRepository
}

// NewEmployeesService builds a new EmployeesService instance.
func NewEmployeesService(repo repository.UsersRepository) *EmployeesService {
	return &EmployeesService{repo: repo}
}

// List returns all employees as DTOs. Password hashes never leave the service.
func (s *EmployeesService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toUserResponse(&u))
	}
	return responses, nil
}

// Create adds a new employee account with a hashed password.
func (s *EmployeesService) Create(ctx context.Context, req dto.CreateEmployeeRequest) (*dto.UserResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, ValidationError{Message: "name is required"}
	}

	email := NormalizeEmail(req.Email)
	if email == "" {
		return nil, ValidationError{Message: "a valid email is required"}
	}
	if req.Password == "" {
		return nil, ValidationError{Message: "password is required"}
	}

	role := entity.UserRole(strings.TrimSpace(req.Role))
	if role == "" {
		role = entity.RoleColdCaller
	}
	if !entity.ValidUserRole(role) {
		return nil, ValidationError{Message: fmt.Sprintf("unknown role %q", req.Role)}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// Delete removes an employee. Admins cannot delete their own account.
func (s *EmployeesService) Delete(ctx context.Context, id string, actorID string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return ValidationError{Message: "invalid user id"}
	}
	if id == actorID {
		return ErrSelfDelete
	}
	return s.repo.Delete(ctx, userID)
}

func toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}
