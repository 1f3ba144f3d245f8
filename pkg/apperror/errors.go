package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Ingestion (ING) ----

func ErrUnreadableBody(err error) *AppError {
	return Wrap("ING_001", "Cannot read request body", http.StatusBadRequest, err)
}

func ErrEnvelopeParse(err error) *AppError {
	return Wrap("ING_002", "Malformed event envelope", http.StatusOK, err)
}

func ErrPersistRejected(err error) *AppError {
	return Wrap("ING_003", "Event persistence rejected", http.StatusOK, err)
}

// ---- Pipeline (PIPE) ----

func ErrEventNotFound(id string) *AppError {
	return New("PIPE_001", fmt.Sprintf("Event %s not found", id), http.StatusNotFound)
}

func ErrEventStale() *AppError {
	return New("PIPE_002", "Event is older than the processing window", http.StatusUnprocessableEntity)
}

func ErrEventQuarantined() *AppError {
	return New("PIPE_003", "Event moved to quarantine", http.StatusUnprocessableEntity)
}

// ---- Journey tracking (JRN) ----

func ErrDefinitionInvalid(name string, err error) *AppError {
	return Wrap("JRN_001", fmt.Sprintf("Journey definition %q is invalid", name), http.StatusUnprocessableEntity, err)
}

func ErrInstanceNotFound(id string) *AppError {
	return New("JRN_002", fmt.Sprintf("Journey instance %s not found", id), http.StatusNotFound)
}

func ErrInstanceTerminal() *AppError {
	return New("JRN_003", "Journey instance is in a terminal state", http.StatusConflict)
}

func ErrConcurrencyCapReached() *AppError {
	return New("JRN_004", "Active instance cap reached for resource", http.StatusConflict)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrBreakerOpen() *AppError {
	return New("SYS_002", "Circuit breaker is open", http.StatusServiceUnavailable)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a generic validation error. The pipeline's retry policy
// treats messages containing "validation" as permanent failures.
func Validation(message string) *AppError {
	return New("ING_004", "validation: "+message, http.StatusBadRequest)
}
