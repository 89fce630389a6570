// Package router registers the HTTP routes of the routine service.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/routineboard/routineboard/internal/handler"
)

// RegisterRoutes wires all endpoints onto the Echo instance.
func RegisterRoutes(
	e *echo.Echo,
	routine *handler.RoutineHandler,
	requests *handler.RequestHandler,
	notifications *handler.NotificationHandler,
	catalog *handler.CatalogHandler,
) {
	e.Use(middleware.Recover())

	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")

	v1.POST("/routine/assignments", routine.SubmitAssignment)
	v1.GET("/routine/entries", routine.ListEntries)

	v1.GET("/requests", requests.ListRequests)
	v1.POST("/requests/:id/approve", requests.Approve)
	v1.POST("/requests/:id/reject", requests.Reject)

	v1.GET("/notifications", notifications.List)
	v1.POST("/notifications/:id/read", notifications.MarkRead)
	v1.POST("/notifications/read-all", notifications.MarkAllRead)
	v1.DELETE("/notifications/:id", notifications.Delete)
	v1.DELETE("/notifications", notifications.Clear)

	v1.GET("/programs", catalog.Programs)
	v1.GET("/classrooms", catalog.ClassRooms)
	v1.GET("/course-loads", catalog.CourseLoads)
}
