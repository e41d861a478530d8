// Package repository declares the storage interfaces consumed by the
// service layer. The sqlite subpackage provides the real implementation;
// tests substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/sakif/campus-portal/internal/model"
)

// UserRepository persists user identities.
//
// TWO READ PATHS FOR EMAIL LOOKUPS:
// GetUserByEmail never loads the password hash — it is the default, safe
// read used anywhere a profile is needed. GetUserByEmailWithHash is the
// deliberate exception for the login flow, which has to compare the stored
// hash. Keeping them as two methods makes the dangerous capability visible
// at the call site instead of hiding it behind a flag.
type UserRepository interface {
	// CreateUser persists a new identity. The email must already be
	// normalized to lowercase. Fails with apperror.ErrDuplicateEmail when
	// the email is taken; the uniqueness check and the insert are a single
	// atomic step, so concurrent signups can never both succeed.
	CreateUser(ctx context.Context, user *model.User) error

	// GetUserByEmail returns the identity for a normalized email, without
	// its password hash. apperror.ErrNotFound when absent.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// GetUserByEmailWithHash is the login-only variant that includes the
	// password hash.
	GetUserByEmailWithHash(ctx context.Context, email string) (*model.User, error)

	// GetUserByID returns the identity for an internal ID, without its
	// password hash. apperror.ErrNotFound when absent.
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// EventRepository persists calendar events.
type EventRepository interface {
	CreateEvent(ctx context.Context, event *model.CalendarEvent) error
	ListEvents(ctx context.Context) ([]model.CalendarEvent, error)
}

// ChatRepository persists assistant exchanges.
type ChatRepository interface {
	CreateChatMessage(ctx context.Context, msg *model.ChatMessage) error
	ListChatMessagesByUser(ctx context.Context, userID string, limit int) ([]model.ChatMessage, error)
}
