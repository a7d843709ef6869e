package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amplyfy/consulting-crm/api/internal/dto"
	"github.com/amplyfy/consulting-crm/api/internal/middleware"
	"github.com/amplyfy/consulting-crm/api/internal/repository"
	"github.com/amplyfy/consulting-crm/api/internal/service"
)

// EmployeesHandler exposes administrative employee management endpoints.
type EmployeesHandler struct {
	employees *service.EmployeesService
}

// NewEmployeesHandler constructs a handler instance.
func NewEmployeesHandler(employees *service.EmployeesService) *EmployeesHandler {
	return &EmployeesHandler{employees: employees}
}

// List returns all employee accounts.
func (h *EmployeesHandler) List(c echo.Context) error {
	records, err := h.employees.List(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list employees")
	}
	return Success(c, http.StatusOK, "employees retrieved", records)
}

// Create provisions a new employee account.
func (h *EmployeesHandler) Create(c echo.Context) error {
	var req dto.CreateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	user, err := h.employees.Create(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailDuplicate):
			return Error(c, http.StatusConflict, "email already exists")
		default:
			return Error(c, http.StatusBadRequest, err.Error())
		}
	}

	return Success(c, http.StatusCreated, "employee created", user)
}

// Delete removes an employee account.
func (h *EmployeesHandler) Delete(c echo.Context) error {
	actorID := middleware.UserIDFromContext(c)
	err := h.employees.Delete(c.Request().Context(), c.Param("id"), actorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfDelete):
			return Error(c, http.StatusBadRequest, "cannot delete your own account")
		case errors.Is(err, repository.ErrUserNotFound):
			return Error(c, http.StatusNotFound, "employee not found")
		default:
			var validationErr service.ValidationError
			if errors.As(err, &validationErr) {
				return Error(c, http.StatusBadRequest, validationErr.Error())
			}
			return Error(c, http.StatusInternalServerError, "failed to delete employee")
		}
	}

	return Success(c, http.StatusOK, "employee deleted", nil)
}
