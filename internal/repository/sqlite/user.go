package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/campus-portal/internal/apperror"
	"github.com/sakif/campus-portal/internal/model"
	"github.com/sakif/campus-portal/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new identity.
//
// The INSERT itself carries the uniqueness check: the UNIQUE constraint on
// email means two concurrent signups for the same address resolve to one
// success and one constraint violation inside SQLite — no pre-check
// SELECT could make that guarantee without a transaction.
//
// The caller provides the email already lowercased; ID and CreatedAt are
// filled in here. The service layer validates request shape before getting
// here, but the store still refuses records that would break its own
// invariants — an empty name or a role outside the enumerated set must not
// land in the table no matter which caller slipped.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	if strings.TrimSpace(user.Name) == "" {
		return apperror.ValidationFailed("name", "Name is required")
	}
	if !model.ValidRole(user.Role) {
		return apperror.ValidationFailed("role", "Role must be one of: student teacher admin")
	}

	user.ID = xid.New().String()
	user.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, profile_picture, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.ProfilePicture,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.DuplicateEmail()
		}
		return fmt.Errorf("sqlite: inserting user: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves an identity by normalized email, without its
// password hash.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return db.scanUserByEmail(ctx, email, false)
}

// GetUserByEmailWithHash retrieves an identity including its password hash.
// Only the login flow calls this.
func (db *DB) GetUserByEmailWithHash(ctx context.Context, email string) (*model.User, error) {
	return db.scanUserByEmail(ctx, email, true)
}

func (db *DB) scanUserByEmail(ctx context.Context, email string, withHash bool) (*model.User, error) {
	var u model.User

	// The hash column is selected only on the trusted path; the default
	// query never has it in hand to begin with.
	query := `SELECT id, name, email, role, profile_picture, created_at
	          FROM users WHERE email = ?`
	dest := []any{&u.ID, &u.Name, &u.Email, &u.Role, &u.ProfilePicture, &u.CreatedAt}
	if withHash {
		query = `SELECT id, name, email, password_hash, role, profile_picture, created_at
		         FROM users WHERE email = ?`
		dest = []any{&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.ProfilePicture, &u.CreatedAt}
	}

	err := db.conn.QueryRowContext(ctx, query, email).Scan(dest...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", email)
		}
		return nil, fmt.Errorf("sqlite: getting user by email: %w", err)
	}

	return &u, nil
}

// GetUserByID retrieves an identity by internal ID, without its password
// hash. Returns apperror.ErrNotFound if no such user exists.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, email, role, profile_picture, created_at
		 FROM users WHERE id = ?`,
		id,
	).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Role,
		&u.ProfilePicture,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}

	return &u, nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
// modernc.org/sqlite surfaces these as "UNIQUE constraint failed: <table>.<col>".
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
