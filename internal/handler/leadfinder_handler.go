package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amplyfy/consulting-crm/api/internal/dto"
	"github.com/amplyfy/consulting-crm/api/internal/places"
	"github.com/amplyfy/consulting-crm/api/internal/service"
)

// LeadFinderHandler exposes the search-and-approve discovery endpoints.
type LeadFinderHandler struct {
	finder *service.LeadFinderService
}

// NewLeadFinderHandler constructs a handler instance.
func NewLeadFinderHandler(finder *service.LeadFinderService) *LeadFinderHandler {
	return &LeadFinderHandler{finder: finder}
}

// Find handles POST /leads/find requests.
func (h *LeadFinderHandler) Find(c echo.Context) error {
	var req dto.FindLeadsRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	result, err := h.finder.FindLeads(c.Request().Context(), req.Query, req.MaxResults)
	if err != nil {
		var validationErr service.ValidationError
		if errors.As(err, &validationErr) {
			return Error(c, http.StatusBadRequest, validationErr.Error())
		}
		if errors.Is(err, places.ErrNotConfigured) {
			return Error(c, http.StatusInternalServerError, "lead finder is not configured, check your API credentials")
		}
		var upstreamErr *places.UpstreamError
		if errors.As(err, &upstreamErr) {
			log.Printf("places search failed: status=%d body=%s", upstreamErr.Status, upstreamErr.Body)
			return Error(c, http.StatusBadGateway, "search provider request failed")
		}
		return Error(c, http.StatusInternalServerError, "failed to search for leads")
	}

	return Success(c, http.StatusOK, "leads found", result)
}

// Approve handles POST /leads/approve requests.
func (h *LeadFinderHandler) Approve(c echo.Context) error {
	var req dto.BulkApproveRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if len(req.Leads) == 0 {
		return Error(c, http.StatusBadRequest, "no leads to approve")
	}

	result, err := h.finder.BulkApprove(c.Request().Context(), req.Leads)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to approve leads")
	}

	return Success(c, http.StatusOK, "leads approved", result)
}
