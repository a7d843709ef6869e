// Package mongostore persists the dataset in a hosted MongoDB database, one
// collection per aggregate. Documents are keyed by their string "id" field
// rather than Mongo's native _id so records stay portable across backends.
package mongostore

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/amplyfy/consulting-crm/api/internal/entity"
)

const (
	usersCollection    = "users"
	leadsCollection    = "leads"
	expensesCollection = "expenses"
)

type userDoc struct {
	ID           string    `bson:"id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"role"`
	CreatedAt    time.Time `bson:"created_at"`
}

type leadDoc struct {
	ID           string    `bson:"id"`
	BusinessName string    `bson:"business_name"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	Phone        string    `bson:"phone"`
	Notes        string    `bson:"notes"`
	Status       string    `bson:"status"`
	Called       bool      `bson:"called"`
	Source       string    `bson:"source,omitempty"`
	PlaceID      *string   `bson:"place_id,omitempty"`
	Website      *string   `bson:"website,omitempty"`
	Address      *string   `bson:"address,omitempty"`
	Rating       *float64  `bson:"rating,omitempty"`
	ReviewCount  *int      `bson:"review_count,omitempty"`
	PriceLevel   *string   `bson:"price_level,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
}

type expenseDoc struct {
	ID          string    `bson:"id"`
	Description string    `bson:"description"`
	Category    string    `bson:"category"`
	Amount      float64   `bson:"amount"`
	Frequency   string    `bson:"frequency"`
	ReceiptPath *string   `bson:"receipt_path,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
}

func userToDoc(user *entity.User) userDoc {
	return userDoc{
		ID:           user.ID.String(),
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt,
	}
}

func userFromDoc(doc userDoc) (entity.User, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return entity.User{}, fmt.Errorf("parse user id %q: %w", doc.ID, err)
	}
	return entity.User{
		ID:           id,
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Role:         entity.UserRole(doc.Role),
		CreatedAt:    doc.CreatedAt,
	}, nil
}

func leadToDoc(lead *entity.Lead) leadDoc {
	return leadDoc{
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

func leadFromDoc(doc leadDoc) (entity.Lead, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return entity.Lead{}, fmt.Errorf("parse lead id %q: %w", doc.ID, err)
	}
	return entity.Lead{
		ID:           id,
		BusinessName: doc.BusinessName,
		Name:         doc.Name,
		Email:        doc.Email,
		Phone:        doc.Phone,
		Notes:        doc.Notes,
		Status:       entity.LeadStatus(doc.Status),
		Called:       doc.Called,
		Source:       doc.Source,
		PlaceID:      doc.PlaceID,
		Website:      doc.Website,
		Address:      doc.Address,
		Rating:       doc.Rating,
		ReviewCount:  doc.ReviewCount,
		PriceLevel:   doc.PriceLevel,
		CreatedAt:    doc.CreatedAt,
	}, nil
}

func expenseToDoc(expense *entity.Expense) expenseDoc {
	return expenseDoc{
		ID:          expense.ID.String(),
		Description: expense.Description,
		Category:    expense.Category,
		Amount:      expense.Amount,
		Frequency:   string(expense.Frequency),
		ReceiptPath: expense.ReceiptPath,
		CreatedAt:   expense.CreatedAt,
	}
}

func expenseFromDoc(doc expenseDoc) (entity.Expense, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return entity.Expense{}, fmt.Errorf("parse expense id %q: %w", doc.ID, err)
	}
	return entity.Expense{
		ID:          id,
		Description: doc.Description,
		Category:    doc.Category,
		Amount:      doc.Amount,
		Frequency:   entity.ExpenseFrequency(doc.Frequency),
		ReceiptPath: doc.ReceiptPath,
		CreatedAt:   doc.CreatedAt,
	}, nil
}

func collection(db *mongo.Database, name string) *mongo.Collection {
	return db.Collection(name)
}
