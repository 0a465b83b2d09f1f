package errors

import "fmt"

// ErrorCode identifies a class of application error.
type ErrorCode string

const (
	ErrInvalidInput        ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData  ErrorCode = "INVALID_REQUEST_DATA"
	ErrUnauthorized        ErrorCode = "UNAUTHORIZED"
	ErrForbidden           ErrorCode = "FORBIDDEN"
	ErrNotFound            ErrorCode = "NOT_FOUND"
	ErrAlreadyExists       ErrorCode = "ALREADY_EXISTS"
	ErrInvalidThreshold    ErrorCode = "INVALID_THRESHOLD"
	ErrExternalService     ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrDatabaseUnavailable ErrorCode = "DATABASE_UNAVAILABLE"
	ErrInternalServer      ErrorCode = "INTERNAL_SERVER_ERROR"
)

// FieldError carries a single field-level validation failure.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// AppError is the error type passed between services and controllers.
type AppError struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Err     error        `json:"-"`
	Fields  []FieldError `json:"fields,omitempty"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError aggregates field-level failures into one 400 response.
func NewValidationError(message string, fields []FieldError) *AppError {
	return &AppError{Code: ErrInvalidInput, Message: message, Fields: fields}
}
