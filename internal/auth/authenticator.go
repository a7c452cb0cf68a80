package auth

import (
	"context"

	"github.com/arefin/messmate/internal/models"
)

// Authenticator abstracts how accounts prove who they are. The service
// layer only depends on this interface, so the password scheme can be
// swapped for OAuth or passkeys without touching handlers.
type Authenticator interface {
	// Register creates a new account. The credential format depends on the
	// implementation (a plaintext password for PasswordAuthenticator).
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the matching user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks the credential against the implementation's
	// minimum requirements without touching storage.
	ValidateCredential(credential string) error
}
