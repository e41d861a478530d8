// Package service contains the business logic layer.
//
// The layering is the usual three-step:
//
//	Handler (HTTP)     → parses requests, writes responses
//	Service (business) → validates, enforces rules, orchestrates
//	Repository (data)  → reads/writes the database
//
// AuthService is the heart of the portal. It orchestrates signup and login
// over three collaborators and exposes the verification entry point every
// protected route depends on:
//
//	AuthHandler → AuthService → UserRepository (credential store)
//	                          ↘ TokenService   (session tokens)
//	                          ↘ PasswordService (bcrypt)
//
// Every failure leaving this package is one of the apperror kinds; raw
// database or hashing errors are wrapped so the handler can log them and
// surface a generic 500 without leaking internals.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/campus-portal/internal/apperror"
	"github.com/sakif/campus-portal/internal/auth"
	"github.com/sakif/campus-portal/internal/model"
	"github.com/sakif/campus-portal/internal/repository"
)

// AuthService handles signup, login, and identity resolution.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
// Called from the server's composition root.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger,
	}
}

// SignupRequest is the validated shape of a signup submission.
// The validate tags drive field-level checks; checkRequest turns tag
// failures into the {field,message} list the frontend renders inline.
type SignupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=student teacher admin"`
}

// LoginRequest is the validated shape of a login submission.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is returned by Signup and Login: the bearer token plus the public
// identity it was issued for. User never carries a password hash here.
type Session struct {
	Token string
	User  *model.User
}

// Signup registers a new identity and logs it in.
//
// Steps: normalize + validate shape, reject taken emails, hash the
// password, persist, issue a token. The email is lowercased before
// anything else so "ANN@EXAMPLE.com" and "ann@example.com" are the same
// account everywhere — validation, storage, and login.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*Session, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	// Friendly early rejection. The UNIQUE constraint inside CreateUser is
	// what actually settles concurrent signups; this check just catches the
	// common case before paying for a bcrypt hash.
	if _, err := s.users.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, apperror.DuplicateEmail()
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("service/auth: checking existing email: %w", err)
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		// Length violations come back as validation errors; anything else
		// is an internal hashing fault.
		if errors.Is(err, apperror.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleStudent
	}

	user := &model.User{
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   hash,
		Role:           role,
		ProfilePicture: model.DefaultProfilePicture,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("service/auth: creating user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("role", user.Role),
	)

	return s.issueSession(user)
}

// Login authenticates an existing identity.
//
// An unknown email and a wrong password fail identically — same error kind,
// same message — so responses don't reveal which addresses have accounts.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	// The one caller allowed to read the stored hash.
	user, err := s.users.GetUserByEmailWithHash(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.InvalidCredentials()
		}
		return nil, fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if !s.passwords.Verify(user.PasswordHash, req.Password) {
		return nil, apperror.InvalidCredentials()
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	// Drop the hash before the identity travels any further.
	user.PasswordHash = ""

	return s.issueSession(user)
}

// CurrentUser resolves the identity behind a verified token's userID.
// Used by the /me endpoint after the middleware validates the token.
// Returns apperror.ErrNotFound if the identity has since vanished.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, apperror.NotAuthorized()
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service/auth: fetching user %s: %w", userID, err)
	}

	return user, nil
}

// VerifyToken checks a raw token string and returns the userID it binds.
// Expired and invalid tokens both come back as apperror.ErrNotAuthorized;
// the distinction stays in the log line.
func (s *AuthService) VerifyToken(tokenStr string) (string, error) {
	userID, err := s.tokens.Verify(tokenStr)
	if err != nil {
		s.logger.Debug("token rejected", slog.String("reason", err.Error()))
		return "", apperror.NotAuthorized()
	}
	return userID, nil
}

// issueSession mints a token for the user and bundles the pair.
func (s *AuthService) issueSession(user *model.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing token for user %s: %w", user.ID, err)
	}
	return &Session{Token: token, User: user}, nil
}

// checkRequest runs struct-tag validation and converts failures into one
// aggregated validation error, so a form with three problems hears about
// all three in a single response.
func (s *AuthService) checkRequest(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("service/auth: validating request: %w", err)
	}

	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperror.FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: fieldMessage(fe),
		})
	}

	return apperror.Validation(fields)
}

// capitalize uppercases the first letter of a field name for messages.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// fieldMessage maps a validator tag failure to the message text the
// frontend shows next to the field.
func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", capitalize(field))
	case "email":
		return "Please provide a valid email"
	case "min":
		if field == "password" {
			return fmt.Sprintf("Password must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters long", capitalize(field), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", capitalize(field), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", capitalize(field))
	}
}
