package router

import (
	"gameday-api/core/middleware"
	"gameday-api/modules/eventtype/controller"

	"github.com/labstack/echo/v4"
)

// EventTypeRouter handles event-type routes
type EventTypeRouter struct {
	EventTypeController *controller.EventTypeController
}

func NewEventTypeRouter(eventTypeController *controller.EventTypeController) *EventTypeRouter {
	return &EventTypeRouter{
		EventTypeController: eventTypeController,
	}
}

// Setup registers event-type routes
func (r *EventTypeRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	api := e.Group("/api")
	api.GET("/event-types", r.EventTypeController.GetEventTypes)
}
