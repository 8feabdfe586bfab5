package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates malformed input caught at the boundary
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeSelfBooking indicates a user tried to book an appointment with themselves
	ErrorTypeSelfBooking ErrorType = "SELF_BOOKING"

	// ErrorTypeInvalidProvider indicates the target user is not a provider
	ErrorTypeInvalidProvider ErrorType = "INVALID_PROVIDER"

	// ErrorTypePastDate indicates the requested slot is already in the past
	ErrorTypePastDate ErrorType = "PAST_DATE"

	// ErrorTypeSlotUnavailable indicates the provider already has an active
	// appointment for the requested hour
	ErrorTypeSlotUnavailable ErrorType = "SLOT_UNAVAILABLE"

	// ErrorTypePermissionDenied indicates the caller may not act on the resource
	ErrorTypePermissionDenied ErrorType = "PERMISSION_DENIED"

	// ErrorTypeCancelWindow indicates the 2-hour cancellation window has expired
	ErrorTypeCancelWindow ErrorType = "CANCEL_WINDOW"

	// ErrorTypeAlreadyCanceled indicates the appointment was canceled earlier
	ErrorTypeAlreadyCanceled ErrorType = "ALREADY_CANCELED"

	// ErrorTypeStoreUnavailable indicates a primary store failure
	ErrorTypeStoreUnavailable ErrorType = "STORE_UNAVAILABLE"

	// ErrorTypeQueueUnavailable indicates the job queue rejected a write
	ErrorTypeQueueUnavailable ErrorType = "QUEUE_UNAVAILABLE"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// TypeOf returns the ErrorType carried by err, or ErrorTypeInternal when err
// is not an AppError.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// IsType reports whether err carries the given ErrorType.
func IsType(err error, t ErrorType) bool {
	return TypeOf(err) == t
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: message}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

// NewSelfBookingError creates a new self booking error
func NewSelfBookingError(message string) *AppError {
	return &AppError{Type: ErrorTypeSelfBooking, Message: message}
}

// NewInvalidProviderError creates a new invalid provider error
func NewInvalidProviderError(message string) *AppError {
	return &AppError{Type: ErrorTypeInvalidProvider, Message: message}
}

// NewPastDateError creates a new past date error
func NewPastDateError(message string) *AppError {
	return &AppError{Type: ErrorTypePastDate, Message: message}
}

// NewSlotUnavailableError creates a new slot unavailable error
func NewSlotUnavailableError(message string) *AppError {
	return &AppError{Type: ErrorTypeSlotUnavailable, Message: message}
}

// NewPermissionDeniedError creates a new permission denied error
func NewPermissionDeniedError(message string) *AppError {
	return &AppError{Type: ErrorTypePermissionDenied, Message: message}
}

// NewCancelWindowError creates a new cancellation window error
func NewCancelWindowError(message string) *AppError {
	return &AppError{Type: ErrorTypeCancelWindow, Message: message}
}

// NewAlreadyCanceledError creates a new already canceled error
func NewAlreadyCanceledError(message string) *AppError {
	return &AppError{Type: ErrorTypeAlreadyCanceled, Message: message}
}

// NewStoreUnavailableError creates a new store unavailable error
func NewStoreUnavailableError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeStoreUnavailable, Message: message, Err: err}
}

// NewQueueUnavailableError creates a new queue unavailable error
func NewQueueUnavailableError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeQueueUnavailable, Message: message, Err: err}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Message: message, Err: err}
}
