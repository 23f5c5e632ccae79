package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Event errors
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrEventFull            = errors.New("event is full")
	ErrEventNotPublished    = errors.New("event is not open for registration")
	ErrRegistrationClosed   = errors.New("registration deadline has passed")
	ErrEventInPast          = errors.New("event date is in the past")
	ErrAlreadyRegistered    = errors.New("already registered for this event")
	ErrNotRegistered        = errors.New("no active registration for this event")
	ErrEventHasAttendees    = errors.New("event has attendees")
	ErrEventDetailsImmutable = errors.New("date, time and location cannot change once attendees exist")
)

// Chat errors
var (
	ErrMessageNotFound  = errors.New("message not found")
	ErrMessageDeleted   = errors.New("message has been deleted")
	ErrEditWindowClosed = errors.New("edit window has closed")
	ErrAlreadyReacted   = errors.New("already reacted with this emoji")
)

// Mentorship errors
var (
	ErrRequestNotFound        = errors.New("mentorship request not found")
	ErrMentorNotAvailable     = errors.New("mentor has not opted into mentorship")
	ErrSelfMentorship         = errors.New("cannot request mentorship from yourself")
	ErrActiveRequestExists    = errors.New("an active request already exists for this mentor")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrFeedbackAlreadyGiven   = errors.New("feedback already submitted")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements the errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
