package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/amplyfy/consulting-crm/api/internal/auth"
	"github.com/amplyfy/consulting-crm/api/internal/entity"
	"github.com/amplyfy/consulting-crm/api/internal/repository"
)

// ErrInvalidCredentials hides whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService coordinates credential validation and session issuance.
type AuthService struct {
	users    repository.UsersRepository
	sessions *auth.SessionManager
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UsersRepository, sessions *auth.SessionManager) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Login validates credentials and returns the user plus a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(user.ID.String(), user.Name, string(user.Role))
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// CurrentUser resolves the user behind a session subject.
func (s *AuthService) CurrentUser(ctx context.Context, id string) (*entity.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, repository.ErrUserNotFound
	}
	return s.users.FindByID(ctx, userID)
}

// SeedAdmin creates the bootstrap admin account when the user store is
// empty. Credentials come from configuration, never from source.
func (s *AuthService) SeedAdmin(ctx context.Context, name, email, password string) error {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	existing, err := s.users.List(ctx)
	if err != nil {
		return fmt.Errorf("check existing users: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}
	if name == "" {
		name = "Admin"
	}

	admin := &entity.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         entity.RoleAdmin,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("create seed admin: %w", err)
	}

	log.Printf("seeded bootstrap admin account email=%s", email)
	return nil
}
