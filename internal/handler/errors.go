package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/routineboard/routineboard/internal/engine"
)

// arbitrationError maps engine sentinel errors onto HTTP responses.
// Unknown errors become a 500 without leaking internals.
func arbitrationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, engine.ErrNoProgramSelected),
		errors.Is(err, engine.ErrMissingRequiredDate),
		errors.Is(err, engine.ErrPastBookingDate):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, engine.ErrRoomNotFound),
		errors.Is(err, engine.ErrRequestNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, engine.ErrNotAuthorized):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errors.Is(err, engine.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
