package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/amplyfy/consulting-crm/api/internal/auth"
	"github.com/amplyfy/consulting-crm/api/internal/entity"
	"github.com/amplyfy/consulting-crm/api/internal/repository"
)

type stubUsersRepo struct {
	list        func(ctx context.Context) ([]entity.User, error)
	findByID    func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	findByEmail func(ctx context.Context, email string) (*entity.User, error)
	create      func(ctx context.Context, user *entity.User) error
	delete      func(ctx context.Context, id uuid.UUID) error
}

func (s *stubUsersRepo) List(ctx context.Context) ([]entity.User, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, errors.New("not implemented")
}

func (s *stubUsersRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if s.findByID != nil {
		return s.findByID(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (s *stubUsersRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if s.findByEmail != nil {
		return s.findByEmail(ctx, email)
	}
	return nil, errors.New("not implemented")
}

func (s *stubUsersRepo) Create(ctx context.Context, user *entity.User) error {
	if s.create != nil {
		return s.create(ctx, user)
	}
	return errors.New("not implemented")
}

func (s *stubUsersRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if s.delete != nil {
		return s.delete(ctx, id)
	}
	return errors.New("not implemented")
}

func newSessionManager() *auth.SessionManager {
	return auth.NewSessionManager("test-secret", time.Hour)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	stored := &entity.User{
		ID:           uuid.New(),
		Name:         "Jordan",
		Email:        "jordan@example.com",
		PasswordHash: string(hashed),
		Role:         entity.RoleAdmin,
	}

	t.Run("missing fields", func(t *testing.T) {
		svc := NewAuthService(&stubUsersRepo{}, newSessionManager())
		if _, _, err := svc.Login(ctx, " ", ""); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := NewAuthService(&stubUsersRepo{
			findByEmail: func(ctx context.Context, email string) (*entity.User, error) {
				return nil, repository.ErrUserNotFound
			},
		}, newSessionManager())
		if _, _, err := svc.Login(ctx, "nobody@example.com", "secret"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := NewAuthService(&stubUsersRepo{
			findByEmail: func(ctx context.Context, email string) (*entity.User, error) {
				return stored, nil
			},
		}, newSessionManager())
		if _, _, err := svc.Login(ctx, stored.Email, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("storage error passes through", func(t *testing.T) {
		dbErr := errors.New("db down")
		svc := NewAuthService(&stubUsersRepo{
			findByEmail: func(ctx context.Context, email string) (*entity.User, error) {
				return nil, dbErr
			},
		}, newSessionManager())
		if _, _, err := svc.Login(ctx, stored.Email, "secret"); !errors.Is(err, dbErr) {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("success issues a parseable token", func(t *testing.T) {
		sessions := newSessionManager()
		svc := NewAuthService(&stubUsersRepo{
			findByEmail: func(ctx context.Context, email string) (*entity.User, error) {
				return stored, nil
			},
		}, sessions)

		user, token, err := svc.Login(ctx, stored.Email, "secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != stored.ID {
			t.Fatalf("unexpected user: %s", user.ID)
		}

		claims, err := sessions.Parse(token)
		if err != nil {
			t.Fatalf("token did not parse: %v", err)
		}
		if claims.Subject != stored.ID.String() || claims.Role != string(entity.RoleAdmin) {
			t.Fatalf("unexpected claims: %+v", claims)
		}
	})
}

func TestAuthService_SeedAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("no credentials configured is a no-op", func(t *testing.T) {
		svc := NewAuthService(&stubUsersRepo{}, newSessionManager())
		if err := svc.SeedAdmin(ctx, "Admin", "", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("existing users skip the seed", func(t *testing.T) {
		svc := NewAuthService(&stubUsersRepo{
			list: func(ctx context.Context) ([]entity.User, error) {
				return []entity.User{{ID: uuid.New()}}, nil
			},
		}, newSessionManager())
		if err := svc.SeedAdmin(ctx, "Admin", "admin@example.com", "secret"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("empty store creates a hashed admin", func(t *testing.T) {
		var created *entity.User
		svc := NewAuthService(&stubUsersRepo{
			list: func(ctx context.Context) ([]entity.User, error) {
				return nil, nil
			},
			create: func(ctx context.Context, user *entity.User) error {
				created = user
				return nil
			},
		}, newSessionManager())

		if err := svc.SeedAdmin(ctx, "Root", "Admin@Example.com", "secret"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created == nil {
			t.Fatal("expected an account to be created")
		}
		if created.Email != "admin@example.com" {
			t.Fatalf("email not normalized: %s", created.Email)
		}
		if created.Role != entity.RoleAdmin {
			t.Fatalf("unexpected role: %s", created.Role)
		}
		if created.PasswordHash == "secret" || created.PasswordHash == "" {
			t.Fatal("password must be stored hashed")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret")); err != nil {
			t.Fatalf("hash does not verify: %v", err)
		}
	})
}

func TestAuthService_CurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed id", func(t *testing.T) {
		svc := NewAuthService(&stubUsersRepo{}, newSessionManager())
		if _, err := svc.CurrentUser(ctx, "not-a-uuid"); !errors.Is(err, repository.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("lookup by parsed id", func(t *testing.T) {
		want := uuid.New()
		svc := NewAuthService(&stubUsersRepo{
			findByID: func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
				if id != want {
					t.Fatalf("unexpected id: %s", id)
				}
				return &entity.User{ID: id}, nil
			},
		}, newSessionManager())

		user, err := svc.CurrentUser(ctx, want.String())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != want {
			t.Fatalf("unexpected user: %s", user.ID)
		}
	})
}
