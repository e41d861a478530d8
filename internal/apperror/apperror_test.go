package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("user", "abc123"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("email", "email is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Validation wraps ErrValidation",
			err:       Validation([]FieldError{{Field: "name", Message: "Name is required"}}),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "DuplicateEmail wraps ErrDuplicateEmail",
			err:       DuplicateEmail(),
			target:    ErrDuplicateEmail,
			wantMatch: true,
		},
		{
			name:      "InvalidCredentials wraps ErrInvalidCredentials",
			err:       InvalidCredentials(),
			target:    ErrInvalidCredentials,
			wantMatch: true,
		},
		{
			name:      "NotAuthorized wraps ErrNotAuthorized",
			err:       NotAuthorized(),
			target:    ErrNotAuthorized,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("user", "abc123"),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "InvalidCredentials does NOT match ErrNotAuthorized",
			err:       InvalidCredentials(),
			target:    ErrNotAuthorized,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.wantMatch {
				t.Errorf("errors.Is() = %v, want %v", got, tt.wantMatch)
			}
		})
	}
}

func TestErrorsIs_ThroughWrapping(t *testing.T) {
	// Services wrap AppErrors with fmt.Errorf("context: %w", err).
	// Classification must survive the extra layer.
	wrapped := fmt.Errorf("signing up: %w", DuplicateEmail())
	if !errors.Is(wrapped, ErrDuplicateEmail) {
		t.Error("errors.Is() should match through fmt.Errorf wrapping")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As() should extract *AppError through wrapping")
	}
	if appErr.Message != "User with this email already exists" {
		t.Errorf("Message = %q", appErr.Message)
	}
}

func TestValidation_AggregatesFields(t *testing.T) {
	err := Validation([]FieldError{
		{Field: "name", Message: "Name is required"},
		{Field: "password", Message: "Password must be at least 6 characters long"},
	})

	if len(err.Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2", len(err.Fields))
	}
	if err.Fields[1].Field != "password" {
		t.Errorf("Fields[1].Field = %q, want %q", err.Fields[1].Field, "password")
	}
	// Message falls back to the first field error for log readability
	if err.Message != "Name is required" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestInvalidCredentials_StableMessage(t *testing.T) {
	// The login endpoint relies on this exact text being identical for
	// unknown-email and wrong-password failures.
	if got := InvalidCredentials().Message; got != "Invalid email or password" {
		t.Errorf("Message = %q, want %q", got, "Invalid email or password")
	}
}
