package controller

import (
	"gameday-api/core/constants"
	"gameday-api/core/controller"
	"gameday-api/core/errors"
	"gameday-api/core/params"
	"gameday-api/core/utils"
	"gameday-api/modules/event/dto"
	"gameday-api/modules/event/service"

	"github.com/labstack/echo/v4"
)

// EventController handles event HTTP requests
type EventController struct {
	controller.BaseController
	EventService service.EventServiceInterface
}

// NewEventController creates a new controller
func NewEventController(svc service.EventServiceInterface) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		EventService:   svc,
	}
}

// claimsFromContext returns the JWT claims, or nil for anonymous callers.
func claimsFromContext(ctx echo.Context) *utils.TokenClaims {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return nil
	}
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return nil
	}
	return claims
}

// ListEvents handles GET /api/events
func (c *EventController) ListEvents(ctx echo.Context) error {
	qp := params.FromContext(ctx)

	result, appErr := c.EventService.ListEvents(ctx.Request().Context(), qp)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// GetMyEvents handles GET /api/events/mine
func (c *EventController) GetMyEvents(ctx echo.Context) error {
	claims := claimsFromContext(ctx)
	if claims == nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.EventService.ListMyEvents(ctx.Request().Context(), claims.UserID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// GetEvent handles GET /api/events/:urlHash
func (c *EventController) GetEvent(ctx echo.Context) error {
	result, appErr := c.EventService.GetEventByURLHash(ctx.Request().Context(), ctx.Param("urlHash"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// CreateEvent handles POST /api/events
func (c *EventController) CreateEvent(ctx echo.Context) error {
	claims := claimsFromContext(ctx)
	if claims == nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.EventService.CreateEvent(ctx.Request().Context(), claims.UserID, claims.Name, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Event created successfully")
}

// UpdateEvent handles PUT /api/events/:urlHash
func (c *EventController) UpdateEvent(ctx echo.Context) error {
	claims := claimsFromContext(ctx)
	if claims == nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.UpdateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.EventService.UpdateEvent(ctx.Request().Context(), ctx.Param("urlHash"), claims.UserID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Event updated successfully")
}

// DeleteEvent handles DELETE /api/events/:urlHash
func (c *EventController) DeleteEvent(ctx echo.Context) error {
	claims := claimsFromContext(ctx)
	if claims == nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	if appErr := c.EventService.DeleteEvent(ctx.Request().Context(), ctx.Param("urlHash"), claims.UserID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Event deleted successfully")
}

// UploadImage handles POST /api/events/:urlHash/image
func (c *EventController) UploadImage(ctx echo.Context) error {
	claims := claimsFromContext(ctx)
	if claims == nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "could not read image file")
	}
	defer file.Close()

	result, appErr := c.EventService.UploadImage(
		ctx.Request().Context(),
		ctx.Param("urlHash"),
		claims.UserID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Image uploaded successfully")
}
