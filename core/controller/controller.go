package controller

import (
	"gameday-api/core/errors"
	"gameday-api/core/logger"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Response types
type (
	SuccessResponse struct {
		Status    int       `json:"status"`
		Message   string    `json:"message"`
		Data      any       `json:"data,omitempty"`
		Timestamp time.Time `json:"timestamp"`
	}

	ErrorResponse struct {
		Status    string              `json:"status"`
		Code      errors.ErrorCode    `json:"code"`
		Message   string              `json:"message"`
		Fields    []errors.FieldError `json:"fields,omitempty"`
		Timestamp time.Time           `json:"timestamp"`
	}
)

// Response handler interface and implementation
type BaseController interface {
	BadRequest(appErrCode errors.ErrorCode, message string, fields ...errors.FieldError) *echo.HTTPError
	InternalServerError(appErrCode errors.ErrorCode, message string) *echo.HTTPError
	NotFound(appErrCode errors.ErrorCode, message string) *echo.HTTPError
	Unauthorized(appErrCode errors.ErrorCode, message string) *echo.HTTPError
	Forbidden(appErrCode errors.ErrorCode, message string) *echo.HTTPError
	ServiceUnavailable(appErrCode errors.ErrorCode, message string) *echo.HTTPError
	SuccessResponse(c echo.Context, data any, message string) error
	ErrorResponse(c echo.Context, appErr *errors.AppError) error
}

type responseHandler struct{}

func NewBaseController() BaseController {
	return &responseHandler{}
}

func NewSuccessResponse(httpStatusCode int, data any, message string) *SuccessResponse {
	return &SuccessResponse{
		Status:    httpStatusCode,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

func NewErrorResponse(httpStatusCode int, appErrCode errors.ErrorCode, message string, fields ...errors.FieldError) *echo.HTTPError {
	err := &ErrorResponse{
		Status:    "error",
		Code:      appErrCode,
		Message:   message,
		Timestamp: time.Now(),
	}
	if len(fields) > 0 {
		err.Fields = fields
	}
	return echo.NewHTTPError(httpStatusCode, err)
}

// HTTP Error handlers
func (h *responseHandler) BadRequest(appErrCode errors.ErrorCode, message string, fields ...errors.FieldError) *echo.HTTPError {
	return NewErrorResponse(http.StatusBadRequest, appErrCode, message, fields...)
}

func (h *responseHandler) InternalServerError(appErrCode errors.ErrorCode, message string) *echo.HTTPError {
	return NewErrorResponse(http.StatusInternalServerError, appErrCode, message)
}

func (h *responseHandler) NotFound(appErrCode errors.ErrorCode, message string) *echo.HTTPError {
	return NewErrorResponse(http.StatusNotFound, appErrCode, message)
}

func (h *responseHandler) Unauthorized(appErrCode errors.ErrorCode, message string) *echo.HTTPError {
	return NewErrorResponse(http.StatusUnauthorized, appErrCode, message)
}

func (h *responseHandler) Forbidden(appErrCode errors.ErrorCode, message string) *echo.HTTPError {
	return NewErrorResponse(http.StatusForbidden, appErrCode, message)
}

func (h *responseHandler) ServiceUnavailable(appErrCode errors.ErrorCode, message string) *echo.HTTPError {
	return NewErrorResponse(http.StatusServiceUnavailable, appErrCode, message)
}

func (h *responseHandler) SuccessResponse(c echo.Context, data any, message string) error {
	return c.JSON(http.StatusOK, NewSuccessResponse(http.StatusOK, data, message))
}

// ErrorResponse maps an AppError onto the HTTP status taxonomy. Unknown
// codes become a generic 500 without leaking internals.
func (h *responseHandler) ErrorResponse(c echo.Context, appErr *errors.AppError) error {
	httpStatus := http.StatusInternalServerError
	appCode := errors.ErrInternalServer
	msg := "internal server error"
	var fields []errors.FieldError

	if appErr != nil {
		appCode = appErr.Code
		if appErr.Message != "" {
			msg = appErr.Message
		}
		fields = appErr.Fields
		switch appCode {
		case errors.ErrInvalidInput, errors.ErrInvalidRequestData, errors.ErrInvalidThreshold:
			httpStatus = http.StatusBadRequest
		case errors.ErrUnauthorized:
			httpStatus = http.StatusUnauthorized
		case errors.ErrForbidden:
			httpStatus = http.StatusForbidden
		case errors.ErrNotFound:
			httpStatus = http.StatusNotFound
		case errors.ErrAlreadyExists:
			httpStatus = http.StatusConflict
		case errors.ErrDatabaseUnavailable, errors.ErrExternalService:
			httpStatus = http.StatusServiceUnavailable
		default:
			httpStatus = http.StatusInternalServerError
			msg = "internal server error"
		}
	}

	logger.Error("BaseController:ErrorResponse",
		"status", httpStatus,
		"code", appCode,
		"message", msg,
	)
	return c.JSON(httpStatus, &ErrorResponse{
		Status:    "error",
		Code:      appCode,
		Message:   msg,
		Fields:    fields,
		Timestamp: time.Now(),
	})
}
