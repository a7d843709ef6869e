package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/amplyfy/consulting-crm/api/internal/dto"
	"github.com/amplyfy/consulting-crm/api/internal/repository"
	"github.com/amplyfy/consulting-crm/api/internal/service"
)

// ExpensesHandler exposes administrative expense tracking endpoints.
type ExpensesHandler struct {
	expenses *service.ExpensesService
}

// NewExpensesHandler constructs a handler instance.
func NewExpensesHandler(expenses *service.ExpensesService) *ExpensesHandler {
	return &ExpensesHandler{expenses: expenses}
}

// List handles GET /admin/expenses requests.
func (h *ExpensesHandler) List(c echo.Context) error {
	records, err := h.expenses.List(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list expenses")
	}
	return Success(c, http.StatusOK, "expenses retrieved", records)
}

// Create handles POST /admin/expenses requests. The payload is multipart
// form data so a receipt file can travel with the expense fields.
func (h *ExpensesHandler) Create(c echo.Context) error {
	input := dto.CreateExpenseInput{
		Description: strings.TrimSpace(c.FormValue("description")),
		Category:    strings.TrimSpace(c.FormValue("category")),
		Frequency:   strings.TrimSpace(c.FormValue("frequency")),
	}

	if amountStr := strings.TrimSpace(c.FormValue("amount")); amountStr != "" {
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			return Error(c, http.StatusBadRequest, "invalid amount")
		}
		input.Amount = amount
	}

	var receipt *service.ReceiptUpload
	if fileHeader, err := c.FormFile("receipt"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return Error(c, http.StatusBadRequest, "unable to open receipt file")
		}
		defer file.Close()
		receipt = &service.ReceiptUpload{Filename: fileHeader.Filename, Content: file}
	}

	expense, err := h.expenses.Create(c.Request().Context(), input, receipt)
	if err != nil {
		var validationErr service.ValidationError
		if errors.As(err, &validationErr) {
			return Error(c, http.StatusBadRequest, validationErr.Error())
		}
		return Error(c, http.StatusInternalServerError, "failed to create expense")
	}

	return Success(c, http.StatusCreated, "expense created", expense)
}

// Delete handles DELETE /admin/expenses/:id requests.
func (h *ExpensesHandler) Delete(c echo.Context) error {
	if err := h.expenses.Delete(c.Request().Context(), c.Param("id")); err != nil {
		var validationErr service.ValidationError
		if errors.As(err, &validationErr) {
			return Error(c, http.StatusBadRequest, validationErr.Error())
		}
		if errors.Is(err, repository.ErrExpenseNotFound) {
			return Error(c, http.StatusNotFound, "expense not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to delete expense")
	}

	return Success(c, http.StatusOK, "expense deleted", nil)
}
