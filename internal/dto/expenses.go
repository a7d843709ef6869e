package dto

// CreateExpenseInput captures the form fields of a new expense. The optional
// receipt file is handled separately by the upload path.
type CreateExpenseInput struct {
	Description string
	Category    string
	Amount      float64
	Frequency   string
}
