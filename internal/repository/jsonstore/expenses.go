package jsonstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/amplyfy/consulting-crm/api/internal/entity"
	"github.com/amplyfy/consulting-crm/api/internal/repository"
)

// ExpensesRepository implements repository.ExpensesRepository on the JSON file store.
type ExpensesRepository struct {
	store *Store
}

// NewExpensesRepository wires a file backed expenses repository.
func NewExpensesRepository(store *Store) *ExpensesRepository {
	return &ExpensesRepository{store: store}
}

var _ repository.ExpensesRepository = (*ExpensesRepository)(nil)

// List returns all expenses ordered by creation date (desc).
func (r *ExpensesRepository) List(_ context.Context) ([]entity.Expense, error) {
	var expenses []entity.Expense
	err := r.store.view(func(doc *document) error {
		for _, rec := range doc.Expenses {
			expense, err := expenseFromRecord(rec)
			if err != nil {
				return err
			}
			expenses = append(expenses, expense)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(expenses, func(i, j int) bool { return expenses[i].CreatedAt.After(expenses[j].CreatedAt) })
	return expenses, nil
}

// Insert appends a new expense.
func (r *ExpensesRepository) Insert(_ context.Context, expense *entity.Expense) error {
	if expense == nil {
		return fmt.Errorf("expense payload is nil")
	}
	return r.store.update(func(doc *document) error {
		doc.Expenses = append(doc.Expenses, expenseToRecord(expense))
		return nil
	})
}

// Delete removes an expense by id.
func (r *ExpensesRepository) Delete(_ context.Context, id uuid.UUID) error {
	return r.store.update(func(doc *document) error {
		for i, rec := range doc.Expenses {
			if rec.ID == id.String() {
				doc.Expenses = append(doc.Expenses[:i], doc.Expenses[i+1:]...)
				return nil
			}
		}
		return repository.ErrExpenseNotFound
	})
}

func expenseToRecord(expense *entity.Expense) expenseRecord {
	return expenseRecord{
		ID:          expense.ID.String(),
		Description: expense.Description,
		Category:    expense.Category,
		Amount:      expense.Amount,
		Frequency:   string(expense.Frequency),
		ReceiptPath: expense.ReceiptPath,
		CreatedAt:   expense.CreatedAt,
	}
}

func expenseFromRecord(rec expenseRecord) (entity.Expense, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return entity.Expense{}, fmt.Errorf("parse expense id %q: %w", rec.ID, err)
	}
	return entity.Expense{
		ID:          id,
		Description: rec.Description,
		Category:    rec.Category,
		Amount:      rec.Amount,
		Frequency:   entity.ExpenseFrequency(rec.Frequency),
		ReceiptPath: rec.ReceiptPath,
		CreatedAt:   rec.CreatedAt,
	}, nil
}
