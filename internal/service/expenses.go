package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amplyfy/consulting-crm/api/internal/dto"
	"github.com/amplyfy/consulting-crm/api/internal/entity"
	"github.com/amplyfy/consulting-crm/api/internal/repository"
)

var receiptNamePattern = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// ReceiptUpload carries an uploaded receipt file.
type ReceiptUpload struct {
	Filename string
	Content  io.Reader
}

// ExpensesService manages expense entries and their receipt uploads.
type ExpensesService struct {
	repo       repository.ExpensesRepository
	uploadsDir string

	now func() time.Time
}

// NewExpensesService builds an expenses service storing receipts under uploadsDir.
func NewExpensesService(repo repository.ExpensesRepository, uploadsDir string) *ExpensesService {
	return &ExpensesService{repo: repo, uploadsDir: uploadsDir, now: time.Now}
}

// List returns all expenses, newest first.
func (s *ExpensesService) List(ctx context.Context) ([]entity.Expense, error) {
	return s.repo.List(ctx)
}

// Create validates and stores a new expense, saving the receipt file when provided.
func (s *ExpensesService) Create(ctx context.Context, input dto.CreateExpenseInput, receipt *ReceiptUpload) (*entity.Expense, error) {
	input.Description = strings.TrimSpace(input.Description)
	input.Category = strings.TrimSpace(input.Category)
	if input.Description == "" {
		return nil, ValidationError{Message: "description is required"}
	}
	if input.Category == "" {
		return nil, ValidationError{Message: "category is required"}
	}
	if input.Amount <= 0 {
		return nil, ValidationError{Message: "amount must be positive"}
	}

	frequency := entity.ExpenseFrequency(strings.TrimSpace(input.Frequency))
	if !entity.ValidExpenseFrequency(frequency) {
		return nil, ValidationError{Message: "frequency must be one of Monthly, One-time, Yearly"}
	}

	expense := &entity.Expense{
		ID:          uuid.New(),
		Description: input.Description,
		Category:    input.Category,
		Amount:      input.Amount,
		Frequency:   frequency,
		CreatedAt:   s.now(),
	}

	if receipt != nil {
		path, err := s.saveReceipt(receipt)
		if err != nil {
			return nil, err
		}
		expense.ReceiptPath = &path
	}

	if err := s.repo.Insert(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// Delete removes an expense entry. The receipt file, if any, is kept on disk.
func (s *ExpensesService) Delete(ctx context.Context, id string) error {
	expenseID, err := uuid.Parse(id)
	if err != nil {
		return ValidationError{Message: "invalid expense id"}
	}
	return s.repo.Delete(ctx, expenseID)
}

// saveReceipt writes the upload under <uploadsDir>/receipts with a
// timestamp-prefixed, sanitized filename and returns the public path.
func (s *ExpensesService) saveReceipt(receipt *ReceiptUpload) (string, error) {
	dir := filepath.Join(s.uploadsDir, "receipts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create receipts directory: %w", err)
	}

	name := receiptNamePattern.ReplaceAllString(filepath.Base(receipt.Filename), "_")
	fileName := fmt.Sprintf("%d-%s", s.now().UnixMilli(), name)

	out, err := os.Create(filepath.Join(dir, fileName))
	if err != nil {
		return "", fmt.Errorf("create receipt file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, receipt.Content); err != nil {
		return "", fmt.Errorf("write receipt file: %w", err)
	}
	return "/uploads/receipts/" + fileName, nil
}
