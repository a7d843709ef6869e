package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amplyfy/consulting-crm/api/internal/dto"
	"github.com/amplyfy/consulting-crm/api/internal/repository"
	"github.com/amplyfy/consulting-crm/api/internal/service"
)

// LeadsHandler exposes the lead pipeline endpoints.
type LeadsHandler struct {
	leads *service.LeadsService
}

// NewLeadsHandler constructs a handler instance.
func NewLeadsHandler(leads *service.LeadsService) *LeadsHandler {
	return &LeadsHandler{leads: leads}
}

// List handles GET /leads requests.
func (h *LeadsHandler) List(c echo.Context) error {
	leads, err := h.leads.List(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list leads")
	}
	return Success(c, http.StatusOK, "leads retrieved", leads)
}

// Create handles POST /leads requests for manually entered leads.
func (h *LeadsHandler) Create(c echo.Context) error {
	var req dto.CreateLeadRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	lead, err := h.leads.Create(c.Request().Context(), req)
	if err != nil {
		var validationErr service.ValidationError
		if errors.As(err, &validationErr) {
			return Error(c, http.StatusBadRequest, validationErr.Error())
		}
		if errors.Is(err, repository.ErrDuplicateLead) {
			return Error(c, http.StatusConflict, "lead already exists")
		}
		return Error(c, http.StatusInternalServerError, "failed to create lead")
	}

	return Success(c, http.StatusCreated, "lead created", lead)
}

// UpdateStatus handles PATCH /leads/:id/status requests.
func (h *LeadsHandler) UpdateStatus(c echo.Context) error {
	var req dto.UpdateLeadStatusRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if err := h.leads.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		var validationErr service.ValidationError
		if errors.As(err, &validationErr) {
			return Error(c, http.StatusBadRequest, validationErr.Error())
		}
		if errors.Is(err, repository.ErrLeadNotFound) {
			return Error(c, http.StatusNotFound, "lead not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to update lead")
	}

	return Success(c, http.StatusOK, "lead status updated", nil)
}

// ToggleCalled handles PATCH /leads/:id/called requests.
func (h *LeadsHandler) ToggleCalled(c echo.Context) error {
	called, err := h.leads.ToggleCalled(c.Request().Context(), c.Param("id"))
	if err != nil {
		var validationErr service.ValidationError
		if errors.As(err, &validationErr) {
			return Error(c, http.StatusBadRequest, validationErr.Error())
		}
		if errors.Is(err, repository.ErrLeadNotFound) {
			return Error(c, http.StatusNotFound, "lead not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to update lead")
	}

	return Success(c, http.StatusOK, "lead updated", map[string]bool{"called": called})
}

// Delete handles DELETE /leads/:id requests.
func (h *LeadsHandler) Delete(c echo.Context) error {
	if err := h.leads.Delete(c.Request().Context(), c.Param("id")); err != nil {
		var validationErr service.ValidationError
		if errors.As(err, &validationErr) {
			return Error(c, http.StatusBadRequest, validationErr.Error())
		}
		if errors.Is(err, repository.ErrLeadNotFound) {
			return Error(c, http.StatusNotFound, "lead not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to delete lead")
	}

	return Success(c, http.StatusOK, "lead deleted", nil)
}

// Stats handles GET /dashboard/stats requests.
func (h *LeadsHandler) Stats(c echo.Context) error {
	stats, err := h.leads.Stats(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to compute stats")
	}
	return Success(c, http.StatusOK, "stats retrieved", stats)
}
