// Package apperror defines the application's error taxonomy.
//
// Services return these typed errors; the HTTP layer translates them into
// status codes and response bodies with errors.Is/errors.As. Nothing below
// the handler layer knows about HTTP, and nothing above the service layer
// sees raw driver errors.
package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors. Wrap them in an *AppError (via the constructors below)
// so errors.Is can classify a failure anywhere up the call chain.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrDuplicateEmail     = errors.New("duplicate email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthorized      = errors.New("not authorized")
)

// FieldError names a single invalid request field.
// Serialized as {"field": "...", "message": "..."} in 400 responses, which
// is the shape the signup/login forms key their inline error display off.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError carries a sentinel for classification plus a human-readable
// message. Validation failures may aggregate several field errors so a form
// submission reports every problem at once instead of one per round trip.
type AppError struct {
	Err     error        // sentinel (classification)
	Message string       // human-readable error message
	Fields  []FieldError // non-nil only for validation failures
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound returns an AppError for a missing resource.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

// ValidationFailed returns an AppError for a single invalid field.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Fields:  []FieldError{{Field: field, Message: message}},
	}
}

// Validation returns an AppError aggregating every invalid field of a
// request. The caller guarantees at least one entry.
func Validation(fields []FieldError) *AppError {
	msg := "validation failed"
	if len(fields) > 0 {
		msg = fields[0].Message
	}
	return &AppError{
		Err:     ErrValidation,
		Message: msg,
		Fields:  fields,
	}
}

// DuplicateEmail returns an AppError for a signup against an email that is
// already registered. The message deliberately omits the email itself.
func DuplicateEmail() *AppError {
	return &AppError{
		Err:     ErrDuplicateEmail,
		Message: "User with this email already exists",
	}
}

// InvalidCredentials returns an AppError for a failed login.
//
// The same message is used whether the email is unknown or the password is
// wrong — responses must not reveal which accounts exist.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "Invalid email or password",
	}
}

// NotAuthorized returns an AppError for a missing, expired, or tampered
// session token.
func NotAuthorized() *AppError {
	return &AppError{
		Err:     ErrNotAuthorized,
		Message: "Not authorized",
	}
}
