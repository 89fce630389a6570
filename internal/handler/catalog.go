package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/routineboard/routineboard/internal/store"
)

// CatalogHandler serves the read-only entity catalog the routine UI
// renders its grid from.
type CatalogHandler struct {
	store *store.Store
}

func NewCatalogHandler(st *store.Store) *CatalogHandler {
	return &CatalogHandler{store: st}
}

// Programs handles GET /v1/programs.
func (h *CatalogHandler) Programs(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Programs())
}

// ClassRooms handles GET /v1/classrooms.
func (h *CatalogHandler) ClassRooms(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.ClassRooms())
}

// CourseLoads handles GET /v1/course-loads.
func (h *CatalogHandler) CourseLoads(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.CourseLoads())
}
