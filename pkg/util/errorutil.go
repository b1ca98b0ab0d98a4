package util

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnknownAchievementMetric marks an achievement definition whose threshold
// metric the evaluator does not recognize. Such definitions are skipped with
// a warning; evaluation of the remaining definitions proceeds.
var ErrUnknownAchievementMetric = errors.New("unknown achievement metric")

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewInvalidTimestamp signals an event timestamp beyond the clock skew tolerance.
func NewInvalidTimestamp(message string, details map[string]any) error {
	return NewDomainError("INVALID_TIMESTAMP", message, http.StatusUnprocessableEntity, details)
}

// NewMissingRequiredField signals malformed event metadata for the given activity type.
func NewMissingRequiredField(field string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	details["field"] = field
	return NewDomainError("MISSING_REQUIRED_FIELD", fmt.Sprintf("required field %s missing", field), http.StatusUnprocessableEntity, details)
}

// NewProfileStoreUnavailable signals a transient store failure; the caller may retry.
func NewProfileStoreUnavailable(err error) error {
	return &DomainError{
		Code:       "PROFILE_STORE_UNAVAILABLE",
		Message:    "profile store unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
