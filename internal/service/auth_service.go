package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/arefin/messmate/internal/auth"
	"github.com/arefin/messmate/internal/models"
)

// AuthService handles account registration and login.
type AuthService struct {
	authenticator auth.Authenticator
	tokens        *auth.JWTManager
}

// NewAuthService creates an AuthService over the given authenticator and
// token manager.
func NewAuthService(authenticator auth.Authenticator, tokens *auth.JWTManager) *AuthService {
	return &AuthService{authenticator: authenticator, tokens: tokens}
}

// Register creates an account and returns the user with a session token.
func (s *AuthService) Register(ctx context.Context, email, displayName, password string) (*models.User, string, error) {
	if email == "" {
		return nil, "", errValidation("email is required")
	}
	if displayName == "" {
		return nil, "", errValidation("display name is required")
	}

	user, err := s.authenticator.Register(ctx, email, displayName, password)
	switch {
	case errors.Is(err, auth.ErrWeakPassword):
		return nil, "", errValidation("%v", err)
	case errors.Is(err, auth.ErrEmailExists):
		return nil, "", errConflict(err)
	case err != nil:
		slog.Error("registration failed", "email", email, "error", err)
		return nil, "", errInternal("failed to register", err)
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		slog.Error("token generation failed", "user_id", user.ID, "error", err)
		return nil, "", errInternal("failed to issue token", err)
	}

	slog.Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// Login verifies credentials and returns the user with a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		slog.Warn("login rejected", "email", email)
		return nil, "", errUnauthenticated(auth.ErrInvalidCredentials)
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		slog.Error("token generation failed", "user_id", user.ID, "error", err)
		return nil, "", errInternal("failed to issue token", err)
	}

	slog.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}
