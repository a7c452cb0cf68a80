package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/arefin/messmate/internal/auth"
	"github.com/arefin/messmate/internal/models"
	"github.com/arefin/messmate/internal/storage/sqlite"
)

// testEnv wires every service over one temp sqlite store, the way the
// server assembles them.
type testEnv struct {
	store  *sqlite.SQLiteStore
	auth   *AuthService
	mess   *MessService
	ledger *LedgerService
	board  *BoardService
	review *ReviewService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	authenticator := auth.NewPasswordAuthenticator(store)
	tokens := auth.NewJWTManager("test-secret-0123456789abcdef", time.Hour)

	return &testEnv{
		store:  store,
		auth:   NewAuthService(authenticator, tokens),
		mess:   NewMessService(store),
		ledger: NewLedgerService(store),
		board:  NewBoardService(store),
		review: NewReviewService(store),
	}
}

func (e *testEnv) register(t *testing.T, email, name string) *models.User {
	t.Helper()
	user, _, err := e.auth.Register(context.Background(), email, name, "password123")
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", email, err)
	}
	return user
}

// newMess registers a manager and a regular member sharing one mess.
func (e *testEnv) newMess(t *testing.T) (mess *models.Mess, manager, member *models.Member) {
	t.Helper()
	ctx := context.Background()

	mgr := e.register(t, "alice@example.com", "Alice")
	usr := e.register(t, "bob@example.com", "Bob")

	mess, manager, err := e.mess.CreateMess(ctx, mgr.ID, "Flat 4B")
	if err != nil {
		t.Fatalf("CreateMess failed: %v", err)
	}
	member, err = e.mess.JoinMess(ctx, usr.ID, mess.ID)
	if err != nil {
		t.Fatalf("JoinMess failed: %v", err)
	}
	return mess, manager, member
}

func wantKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := KindOf(err); got != kind {
		t.Fatalf("error kind = %v, want %v (err: %v)", got, kind, err)
	}
}
