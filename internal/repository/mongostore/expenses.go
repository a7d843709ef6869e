package mongostore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/amplyfy/consulting-crm/api/internal/entity"
	"github.com/amplyfy/consulting-crm/api/internal/repository"
)

// ExpensesRepository implements repository.ExpensesRepository on MongoDB.
type ExpensesRepository struct {
	coll *mongo.Collection
}

// NewExpensesRepository wires a Mongo backed expenses repository.
func NewExpensesRepository(db *mongo.Database) *ExpensesRepository {
	return &ExpensesRepository{coll: collection(db, expensesCollection)}
}

var _ repository.ExpensesRepository = (*ExpensesRepository)(nil)

// List returns all expenses ordered by creation date (desc).
func (r *ExpensesRepository) List(ctx context.Context) ([]entity.Expense, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []expenseDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}

	expenses := make([]entity.Expense, 0, len(docs))
	for _, doc := range docs {
		expense, err := expenseFromDoc(doc)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, nil
}

// Insert stores a new expense document.
func (r *ExpensesRepository) Insert(ctx context.Context, expense *entity.Expense) error {
	if expense == nil {
		return fmt.Errorf("expense payload is nil")
	}
	if _, err := r.coll.InsertOne(ctx, expenseToDoc(expense)); err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// Delete removes an expense by id.
func (r *ExpensesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id.String()})
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrExpenseNotFound
	}
	return nil
}
