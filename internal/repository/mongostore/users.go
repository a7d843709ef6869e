package mongostore

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/amplyfy/consulting-crm/api/internal/entity"
	"github.com/amplyfy/consulting-crm/api/internal/repository"
)

// UsersRepository implements repository.UsersRepository on MongoDB.
type UsersRepository struct {
	coll *mongo.Collection
}

// NewUsersRepository wires a Mongo backed users repository.
func NewUsersRepository(db *mongo.Database) *UsersRepository {
	return &UsersRepository{coll: collection(db, usersCollection)}
}

var _ repository.UsersRepository = (*UsersRepository)(nil)

// List returns all users ordered by creation date (desc).
func (r *UsersRepository) List(ctx context.Context) ([]entity.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]entity.User, 0, len(docs))
	for _, doc := range docs {
		user, err := userFromDoc(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// FindByID retrieves a user by identifier.
func (r *UsersRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var doc userDoc
	err := r.coll.FindOne(ctx, bson.M{"id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	user, err := userFromDoc(doc)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail fetches a user by email, case-insensitively.
func (r *UsersRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var doc userDoc
	err := r.coll.FindOne(ctx, emailFilter(email)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	user, err := userFromDoc(doc)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user document, rejecting duplicate emails.
func (r *UsersRepository) Create(ctx context.Context, user *entity.User) error {
	if user == nil {
		return fmt.Errorf("user payload is nil")
	}

	count, err := r.coll.CountDocuments(ctx, emailFilter(user.Email))
	if err != nil {
		return fmt.Errorf("check duplicate email: %w", err)
	}
	if count > 0 {
		return repository.ErrEmailDuplicate
	}

	if _, err := r.coll.InsertOne(ctx, userToDoc(user)); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Delete removes a user by id.
func (r *UsersRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id.String()})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}

func emailFilter(email string) bson.M {
	pattern := "^" + regexp.QuoteMeta(email) + "$"
	return bson.M{"email": bson.M{"$regex": pattern, "$options": "i"}}
}
