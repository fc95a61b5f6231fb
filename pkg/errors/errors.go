package errors

import (
	"errors"
	"fmt"
)

// ── error kinds ──
// Every domain failure unwraps to exactly one of these.

var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("resource not found")
	ErrAuthorization        = errors.New("not authorized to perform this action")
	ErrDuplicateReview      = errors.New("You have already reviewed this hostel")
	ErrDuplicateDailyRecord = errors.New("Daily record for this hostel and date already exists")
	ErrInvalidToken         = errors.New("not authorized to access this route")
)

// Error carries a caller-facing message on top of one of the kinds above
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error { return e.Kind }

func newf(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation malformed or missing input
func Validation(format string, args ...interface{}) error {
	return newf(ErrValidation, format, args...)
}

// NotFound referenced entity is absent, e.g. NotFound("Hostel") -> "Hostel not found"
func NotFound(entity string) error {
	return newf(ErrNotFound, "%s not found", entity)
}

// Forbidden access policy violation
func Forbidden(format string, args ...interface{}) error {
	return newf(ErrAuthorization, format, args...)
}

// InvalidToken authentication failure with a specific reason
func InvalidToken(message string) error {
	return &Error{Kind: ErrInvalidToken, Message: message}
}

// DuplicateReview second review for the same (hostel, user)
func DuplicateReview() error {
	return &Error{Kind: ErrDuplicateReview}
}

// DuplicateDailyRecord second daily record for the same (hostel, date)
func DuplicateDailyRecord(date string) error {
	return newf(ErrDuplicateDailyRecord, "Daily record for %s has already been submitted", date)
}

// IsDomain reports whether err belongs to the domain taxonomy (i.e. is safe
// to show to the caller verbatim)
func IsDomain(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return true
	}
	for _, kind := range []error{
		ErrValidation, ErrNotFound, ErrAuthorization,
		ErrDuplicateReview, ErrDuplicateDailyRecord, ErrInvalidToken,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
