package jsonstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/amplyfy/consulting-crm/api/internal/entity"
	"github.com/amplyfy/consulting-crm/api/internal/repository"
)

// UsersRepository implements repository.UsersRepository on the JSON file store.
type UsersRepository struct {
	store *Store
}

// NewUsersRepository wires a file backed users repository.
func NewUsersRepository(store *Store) *UsersRepository {
	return &UsersRepository{store: store}
}

var _ repository.UsersRepository = (*UsersRepository)(nil)

// List returns all users ordered by creation date (desc).
func (r *UsersRepository) List(_ context.Context) ([]entity.User, error) {
	var users []entity.User
	err := r.store.view(func(doc *document) error {
		for _, rec := range doc.Users {
			user, err := userFromRecord(rec)
			if err != nil {
				return err
			}
			users = append(users, user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

// FindByID retrieves a user by identifier.
func (r *UsersRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	var found *entity.User
	err := r.store.view(func(doc *document) error {
		for _, rec := range doc.Users {
			if rec.ID == id.String() {
				user, err := userFromRecord(rec)
				if err != nil {
					return err
				}
				found = &user
				return nil
			}
		}
		return repository.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// FindByEmail fetches a user by email, case-insensitively.
func (r *UsersRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var found *entity.User
	err := r.store.view(func(doc *document) error {
		for _, rec := range doc.Users {
			if strings.EqualFold(rec.Email, email) {
				user, err := userFromRecord(rec)
				if err != nil {
					return err
				}
				found = &user
				return nil
			}
		}
		return repository.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Create appends a new user, rejecting duplicate emails.
func (r *UsersRepository) Create(_ context.Context, user *entity.User) error {
	if user == nil {
		return fmt.Errorf("user payload is nil")
	}
	return r.store.update(func(doc *document) error {
		for _, rec := range doc.Users {
			if strings.EqualFold(rec.Email, user.Email) {
				return repository.ErrEmailDuplicate
			}
		}
		doc.Users = append(doc.Users, userToRecord(user))
		return nil
	})
}

// Delete removes a user by id.
func (r *UsersRepository) Delete(_ context.Context, id uuid.UUID) error {
	return r.store.update(func(doc *document) error {
		for i, rec := range doc.Users {
			if rec.ID == id.String() {
				doc.Users = append(doc.Users[:i], doc.Users[i+1:]...)
				return nil
			}
		}
		return repository.ErrUserNotFound
	})
}

func userToRecord(user *entity.User) userRecord {
	return userRecord{
		ID:           user.ID.String(),
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt,
	}
}

func userFromRecord(rec userRecord) (entity.User, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return entity.User{}, fmt.Errorf("parse user id %q: %w", rec.ID, err)
	}
	return entity.User{
		ID:           id,
		Name:         rec.Name,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		Role:         entity.UserRole(rec.Role),
		CreatedAt:    rec.CreatedAt,
	}, nil
}
