package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses. Details may
// carry an itemized list (per-field validation failures) safe to expose.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
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

// From extracts an AppError from err, or wraps it as an internal error.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalError(err)
}

// ---- Validation (VAL) ----

// Validation returns a request validation error with a caller-supplied message.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrMissingFields(message string) *AppError {
	return New("VAL_002", message, http.StatusBadRequest)
}

// ErrExtraFieldValidation carries the itemized per-field failure list.
func ErrExtraFieldValidation(details []string) *AppError {
	err := New("VAL_002", "Extra field validation failed", http.StatusBadRequest)
	err.Details = details
	return err
}

func ErrServiceNotAvailable() *AppError {
	return New("VAL_003", "Service is not available", http.StatusBadRequest)
}

func ErrBatchSize() *AppError {
	return New("VAL_004", "Batch must contain between 1 and 10 order ids", http.StatusBadRequest)
}

func ErrFileTooLarge(limitMB int) *AppError {
	return New("VAL_005", fmt.Sprintf("File exceeds the %d MB limit", limitMB), http.StatusRequestEntityTooLarge)
}

func ErrUnsupportedFormat(ext string) *AppError {
	return New("VAL_006", fmt.Sprintf("Unsupported file format %q", ext), http.StatusBadRequest)
}

func ErrInvalidEventType(t string) *AppError {
	return New("VAL_007", fmt.Sprintf("Unknown event type %q", t), http.StatusBadRequest)
}

// ---- Orders & resources (ORD) ----

func ErrNotFound(entity string) *AppError {
	return New("ORD_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ErrStateConflict reports an operation that is illegal for the order's
// current status.
func ErrStateConflict(message string) *AppError {
	return New("ORD_002", message, http.StatusBadRequest)
}

func ErrOrderNotPaid() *AppError {
	return ErrStateConflict("Order is not in paid status")
}

func ErrOrderNotCompleted() *AppError {
	return ErrStateConflict("Order output is not ready for download")
}

func ErrNotRefundable() *AppError {
	return ErrStateConflict("Order is not eligible for refund")
}

// ---- Processing (PRC) ----

func ErrProcessing(message string) *AppError {
	return New("PRC_001", message, http.StatusUnprocessableEntity)
}

func ErrInputFileMissing() *AppError {
	return ErrProcessing("input file not found")
}

func ErrProcessingInFlight() *AppError {
	return New("PRC_002", "Order is already being processed", http.StatusConflict)
}

// ---- External services (EXT) ----

// ErrExternalService hides upstream provider internals behind a generic
// message plus a machine-readable code.
func ErrExternalService(provider string, err error) *AppError {
	return Wrap("EXT_001", fmt.Sprintf("%s request failed", provider), http.StatusBadGateway, err)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrStorageError(err error) *AppError {
	return Wrap("SYS_002", "File storage failure", http.StatusInternalServerError, err)
}
