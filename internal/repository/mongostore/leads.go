package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/amplyfy/consulting-crm/api/internal/entity"
	"github.com/amplyfy/consulting-crm/api/internal/repository"
)

// LeadsRepository implements repository.LeadsRepository on MongoDB.
type LeadsRepository struct {
	coll *mongo.Collection
}

// NewLeadsRepository wires a Mongo backed leads repository.
func NewLeadsRepository(db *mongo.Database) *LeadsRepository {
	return &LeadsRepository{coll: collection(db, leadsCollection)}
}

var _ repository.LeadsRepository = (*LeadsRepository)(nil)

// List returns all leads ordered by creation date (desc).
func (r *LeadsRepository) List(ctx context.Context) ([]entity.Lead, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []leadDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}

	leads := make([]entity.Lead, 0, len(docs))
	for _, doc := range docs {
		lead, err := leadFromDoc(doc)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, nil
}

// FindByID retrieves a lead by identifier.
func (r *LeadsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	var doc leadDoc
	err := r.coll.FindOne(ctx, bson.M{"id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrLeadNotFound
		}
		return nil, fmt.Errorf("query lead by id: %w", err)
	}
	lead, err := leadFromDoc(doc)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// Insert stores a new lead. A lead with a place id already present in the
// collection is rejected with ErrDuplicateLead.
func (r *LeadsRepository) Insert(ctx context.Context, lead *entity.Lead) error {
	if lead == nil {
		return fmt.Errorf("lead payload is nil")
	}

	if lead.PlaceID != nil {
		count, err := r.coll.CountDocuments(ctx, bson.M{"place_id": *lead.PlaceID})
		if err != nil {
			return fmt.Errorf("check duplicate place id: %w", err)
		}
		if count > 0 {
			return repository.ErrDuplicateLead
		}
	}

	if _, err := r.coll.InsertOne(ctx, leadToDoc(lead)); err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// UpdateStatus sets the lead's temperature.
func (r *LeadsRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.LeadStatus) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id.String()}, bson.M{"$set": bson.M{"status": string(status)}})
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrLeadNotFound
	}
	return nil
}

// SetCalled flips the called flag.
func (r *LeadsRepository) SetCalled(ctx context.Context, id uuid.UUID, called bool) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id.String()}, bson.M{"$set": bson.M{"called": called}})
	if err != nil {
		return fmt.Errorf("update lead called flag: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrLeadNotFound
	}
	return nil
}

// Delete removes a lead by id.
func (r *LeadsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id.String()})
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrLeadNotFound
	}
	return nil
}
