package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExpenseFrequency describes how often an expense recurs.
type ExpenseFrequency string

const (
	FrequencyMonthly ExpenseFrequency = "Monthly"
	FrequencyOneTime ExpenseFrequency = "One-time"
	FrequencyYearly  ExpenseFrequency = "Yearly"
)

// ValidExpenseFrequency reports whether the given frequency is one of the known values.
func ValidExpenseFrequency(f ExpenseFrequency) bool {
	switch f {
	case FrequencyMonthly, FrequencyOneTime, FrequencyYearly:
		return true
	}
	return false
}

// Expense is a business cost entry, optionally backed by an uploaded receipt.
type Expense struct {
	ID          uuid.UUID        `json:"id"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Amount      float64          `json:"amount"`
	Frequency   ExpenseFrequency `json:"frequency"`
	ReceiptPath *string          `json:"receipt_path,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}
