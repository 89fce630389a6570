package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/routineboard/routineboard/internal/engine"
	"github.com/routineboard/routineboard/internal/model"
	"github.com/routineboard/routineboard/internal/service"
)

// RequestHandler exposes the negotiation queue and its resolutions.
type RequestHandler struct {
	svc *service.RoutineService
}

func NewRequestHandler(svc *service.RoutineService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

// ListRequests handles GET /v1/requests. Filter with either owner=CODE
// (requests addressed to a room owner) or program_id=ID (requests a
// program has made).
func (h *RequestHandler) ListRequests(c echo.Context) error {
	owner := c.QueryParam("owner")
	programID := c.QueryParam("program_id")

	var requests []model.AssignmentRequest
	switch {
	case owner != "":
		requests = h.svc.RequestsForOwner(owner)
	case programID != "":
		requests = h.svc.RequestsForProgram(programID)
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "owner or program_id query is required"})
	}
	if requests == nil {
		requests = []model.AssignmentRequest{}
	}
	return c.JSON(http.StatusOK, requests)
}

type resolveBody struct {
	ProgramID string `json:"program_id"`
	Reason    string `json:"reason,omitempty"`
}

// Approve handles POST /v1/requests/:id/approve.
func (h *RequestHandler) Approve(c echo.Context) error {
	return h.resolve(c, true)
}

// Reject handles POST /v1/requests/:id/reject.
func (h *RequestHandler) Reject(c echo.Context) error {
	return h.resolve(c, false)
}

func (h *RequestHandler) resolve(c echo.Context, approve bool) error {
	var body resolveBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	effect, err := h.svc.ResolveRequest(c.Request().Context(), engine.Decision{
		RequestID:       c.Param("id"),
		ActingProgramID: body.ProgramID,
		Approve:         approve,
		Reason:          body.Reason,
	})
	if err != nil {
		return arbitrationError(c, err)
	}
	return c.JSON(http.StatusOK, effect)
}
