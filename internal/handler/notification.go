package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/routineboard/routineboard/internal/model"
	"github.com/routineboard/routineboard/internal/service"
)

// NotificationHandler exposes each program's notification feed.
type NotificationHandler struct {
	svc *service.RoutineService
}

func NewNotificationHandler(svc *service.RoutineService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// List handles GET /v1/notifications?program_id=ID, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
	programID := c.QueryParam("program_id")
	if programID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "program_id query is required"})
	}
	notifications := h.svc.Notifications(programID)
	if notifications == nil {
		notifications = []model.Notification{}
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkRead handles POST /v1/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	if !h.svc.MarkNotificationRead(c.Param("id")) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "notification not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

type programBody struct {
	ProgramID string `json:"program_id"`
}

// MarkAllRead handles POST /v1/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	var body programBody
	if err := c.Bind(&body); err != nil || body.ProgramID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "program_id is required"})
	}
	changed := h.svc.MarkAllNotificationsRead(body.ProgramID)
	return c.JSON(http.StatusOK, echo.Map{"marked_read": changed})
}

// Delete handles DELETE /v1/notifications/:id.
func (h *NotificationHandler) Delete(c echo.Context) error {
	if !h.svc.DeleteNotification(c.Param("id")) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "notification not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Clear handles DELETE /v1/notifications?program_id=ID.
func (h *NotificationHandler) Clear(c echo.Context) error {
	programID := c.QueryParam("program_id")
	if programID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "program_id query is required"})
	}
	dropped := h.svc.ClearNotifications(programID)
	return c.JSON(http.StatusOK, echo.Map{"deleted": dropped})
}
