package service

import (
	"context"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, token, err := env.auth.Register(ctx, "alice@example.com", "Alice", "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == "" || token == "" {
		t.Fatal("expected user ID and token")
	}

	loggedIn, token, err := env.auth.Login(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("logged-in user = %s, want %s", loggedIn.ID, user.ID)
	}
	if token == "" {
		t.Error("expected session token")
	}
}

func TestRegister_Rejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "taken@example.com", "First")

	tests := []struct {
		name        string
		email       string
		displayName string
		password    string
		kind        Kind
	}{
		{"missing email", "", "Alice", "password123", KindValidation},
		{"missing display name", "a@example.com", "", "password123", KindValidation},
		{"weak password", "a@example.com", "Alice", "short", KindValidation},
		{"duplicate email", "taken@example.com", "Second", "password123", KindConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := env.auth.Register(ctx, tt.email, tt.displayName, tt.password)
			wantKind(t, err, tt.kind)
		})
	}
}

func TestLogin_Rejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "alice@example.com", "Alice")

	if _, _, err := env.auth.Login(ctx, "alice@example.com", "wrong-password"); err == nil {
		t.Fatal("expected error for wrong password")
	} else {
		wantKind(t, err, KindUnauthenticated)
	}

	// Unknown accounts fail identically to wrong passwords.
	if _, _, err := env.auth.Login(ctx, "nobody@example.com", "password123"); err == nil {
		t.Fatal("expected error for unknown account")
	} else {
		wantKind(t, err, KindUnauthenticated)
	}
}
