package pgstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amplyfy/consulting-crm/api/internal/entity"
	"github.com/amplyfy/consulting-crm/api/internal/repository"
)

// ExpensesRepository implements repository.ExpensesRepository with pgx.
type ExpensesRepository struct {
	pool pgxPool
}

// NewExpensesRepository wires a pgx backed expenses repository.
func NewExpensesRepository(pool *pgxpool.Pool) *ExpensesRepository {
	return &ExpensesRepository{pool: pool}
}

var _ repository.ExpensesRepository = (*ExpensesRepository)(nil)

// List returns all expenses ordered by creation date (desc).
func (r *ExpensesRepository) List(ctx context.Context) ([]entity.Expense, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, description, category, amount, frequency, receipt_path, created_at
        FROM expenses ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []entity.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

// Insert stores a new expense row.
func (r *ExpensesRepository) Insert(ctx context.Context, expense *entity.Expense) error {
	if expense == nil {
		return fmt.Errorf("expense payload is nil")
	}

	_, err := r.pool.Exec(ctx, `
        INSERT INTO expenses (id, description, category, amount, frequency, receipt_path, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `,
		expense.ID,
		expense.Description,
		expense.Category,
		expense.Amount,
		string(expense.Frequency),
		stringOrNil(expense.ReceiptPath),
		expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// Delete removes an expense by id.
func (r *ExpensesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return repository.ErrExpenseNotFound
	}
	return nil
}

func scanExpense(row pgx.Row) (entity.Expense, error) {
	var (
		expense     entity.Expense
		frequency   string
		receiptPath sql.NullString
	)
	err := row.Scan(
		&expense.ID,
		&expense.Description,
		&expense.Category,
		&expense.Amount,
		&frequency,
		&receiptPath,
		&expense.CreatedAt,
	)
	if err != nil {
		return entity.Expense{}, err
	}
	expense.Frequency = entity.ExpenseFrequency(frequency)
	if receiptPath.Valid {
		expense.ReceiptPath = &receiptPath.String
	}
	return expense, nil
}
