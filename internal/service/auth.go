package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/gocamp/internal/apperror"
	"github.com/sakif/gocamp/internal/auth"
	"github.com/sakif/gocamp/internal/model"
	"github.com/sakif/gocamp/internal/repository"
)

// AuthService handles registration and login.
//
// Dependency chain: UserHandler (HTTP) → AuthService (rules) → UserRepository
// (DB), with PasswordService for bcrypt and SessionService for the signed
// session token. The service never sets cookies — that stays in the handler.
type AuthService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	sessions  *auth.SessionService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all dependencies injected.
func NewAuthService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	sessions *auth.SessionService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		passwords: passwords,
		sessions:  sessions,
		logger:    logger,
	}
}

// AuthResult bundles the user and the issued session token so the handler can
// set the cookie and redirect in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// Register creates a new account and logs it in (issues a session token).
//
// A taken username surfaces as a conflict error from the repository; the
// handler flashes it and sends the user back to the form rather than
// rendering the error page.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	var msgs []string
	if username == "" {
		msgs = append(msgs, "username is required")
	}
	if email == "" {
		msgs = append(msgs, "email is required")
	}
	if password == "" {
		msgs = append(msgs, "password is required")
	}
	if len(msgs) > 0 {
		return nil, apperror.ValidationFailed(strings.Join(msgs, ","))
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, apperror.ValidationFailed("password must be 72 bytes or fewer")
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing session for user %s: %w", user.ID, err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies the credentials and issues a session token.
//
// Both "no such user" and "wrong password" return the same unauthorized error
// with the same message, so a login attempt can't probe which usernames
// exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid username or password")
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.Unauthorized("Invalid username or password")
	}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing session for user %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return &AuthResult{User: user, Token: token}, nil
}
