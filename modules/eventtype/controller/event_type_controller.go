package controller

import (
	"gameday-api/core/controller"
	"gameday-api/modules/eventtype/service"

	"github.com/labstack/echo/v4"
)

// EventTypeController handles event-type HTTP requests
type EventTypeController struct {
	controller.BaseController
	EventTypeService service.EventTypeServiceInterface
}

func NewEventTypeController(svc service.EventTypeServiceInterface) *EventTypeController {
	return &EventTypeController{
		BaseController:   controller.NewBaseController(),
		EventTypeService: svc,
	}
}

// GetEventTypes handles GET /api/event-types
func (c *EventTypeController) GetEventTypes(ctx echo.Context) error {
	types, appErr := c.EventTypeService.GetAll(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, types, "Success")
}
