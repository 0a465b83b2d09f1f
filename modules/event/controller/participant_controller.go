package controller

import (
	"gameday-api/core/errors"
	"gameday-api/modules/event/dto"
	"gameday-api/modules/event/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ResponseTokenHeader carries the client-held token for anonymous
// response edits.
const ResponseTokenHeader = "X-Response-Token"

// claimFromRequest builds the authorization claim for response endpoints:
// signed-in identity when a JWT is attached, otherwise the token presented
// in the header (or query, for clients that cannot set headers).
func claimFromRequest(ctx echo.Context) entity.AuthorizationClaim {
	if claims := claimsFromContext(ctx); claims != nil {
		return entity.SignedIn(claims.UserID)
	}
	token := ctx.Request().Header.Get(ResponseTokenHeader)
	if token == "" {
		token = ctx.QueryParam("response_token")
	}
	return entity.Anonymous(token)
}

// JoinEvent handles POST /api/events/:urlHash/join
func (c *EventController) JoinEvent(ctx echo.Context) error {
	var req dto.JoinEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	claims := claimsFromContext(ctx)
	claim := entity.AuthorizationClaim{}
	joinerName := ""
	if claims != nil {
		claim = entity.SignedIn(claims.UserID)
		joinerName = claims.Name
	}

	result, appErr := c.EventService.JoinEvent(ctx.Request().Context(), ctx.Param("urlHash"), claim, joinerName, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Joined event")
}

// EditResponse handles PUT /api/events/:urlHash/participants/:id
func (c *EventController) EditResponse(ctx echo.Context) error {
	participantID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid participant ID")
	}

	var req dto.EditResponseRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.EventService.EditResponse(ctx.Request().Context(), ctx.Param("urlHash"), participantID, claimFromRequest(ctx), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Response updated")
}

// DeleteResponse handles DELETE /api/events/:urlHash/participants/:id
func (c *EventController) DeleteResponse(ctx echo.Context) error {
	participantID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid participant ID")
	}

	if appErr := c.EventService.DeleteResponse(ctx.Request().Context(), ctx.Param("urlHash"), participantID, claimFromRequest(ctx)); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Response removed")
}
