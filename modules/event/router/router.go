package router

import (
	"gameday-api/core/middleware"
	"gameday-api/modules/event/controller"

	"github.com/labstack/echo/v4"
)

// EventRouter handles event routes
type EventRouter struct {
	EventController *controller.EventController
}

// NewEventRouter creates a new router
func NewEventRouter(eventController *controller.EventController) *EventRouter {
	return &EventRouter{
		EventController: eventController,
	}
}

// Setup registers event routes
func (r *EventRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	api := e.Group("/api")
	events := api.Group("/events")

	// Public reads
	events.GET("", r.EventController.ListEvents)
	events.GET("/mine", r.EventController.GetMyEvents, mw.AuthMiddleware())
	events.GET("/:urlHash", r.EventController.GetEvent)

	// Creator-only lifecycle
	events.POST("", r.EventController.CreateEvent, mw.AuthMiddleware())
	events.PUT("/:urlHash", r.EventController.UpdateEvent, mw.AuthMiddleware())
	events.DELETE("/:urlHash", r.EventController.DeleteEvent, mw.AuthMiddleware())
	events.POST("/:urlHash/image", r.EventController.UploadImage, mw.AuthMiddleware())

	// Responses: anonymous or signed-in
	events.POST("/:urlHash/join", r.EventController.JoinEvent, mw.OptionalAuthMiddleware())
	events.PUT("/:urlHash/participants/:id", r.EventController.EditResponse, mw.OptionalAuthMiddleware())
	events.DELETE("/:urlHash/participants/:id", r.EventController.DeleteResponse, mw.OptionalAuthMiddleware())
}
