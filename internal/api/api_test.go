package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/arefin/messmate/internal/auth"
	"github.com/arefin/messmate/internal/service"
	"github.com/arefin/messmate/internal/storage/sqlite"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	tokens := auth.NewJWTManager("test-secret-0123456789abcdef", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	a := &API{
		Auth:    service.NewAuthService(authenticator, tokens),
		Mess:    service.NewMessService(store),
		Ledger:  service.NewLedgerService(store),
		Board:   service.NewBoardService(store),
		Reviews: service.NewReviewService(store),
	}

	server := httptest.NewServer(a.Router(tokens))
	t.Cleanup(server.Close)
	return server
}

// call sends a JSON request with an optional Bearer token and decodes the
// response body into out (when out is non-nil).
func call(t *testing.T, server *httptest.Server, method, path, token string, body, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, server.URL+path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < http.StatusMultipleChoices {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode %s %s response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

type session struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
	Token string `json:"token"`
}

func registerUser(t *testing.T, server *httptest.Server, email, name string) session {
	t.Helper()
	var s session
	status := call(t, server, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": email, "displayName": name, "password": "password123",
	}, &s)
	if status != http.StatusCreated {
		t.Fatalf("register %s: status %d", email, status)
	}
	return s
}

func TestAuthEndpoints(t *testing.T) {
	server := setupTestServer(t)

	s := registerUser(t, server, "alice@example.com", "Alice")
	if s.Token == "" {
		t.Fatal("expected token from register")
	}

	var login session
	status := call(t, server, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "password123",
	}, &login)
	if status != http.StatusOK || login.Token == "" {
		t.Fatalf("login: status %d, token %q", status, login.Token)
	}

	status = call(t, server, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	}, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("bad login: status %d, want 401", status)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	server := setupTestServer(t)

	status := call(t, server, http.MethodPost, "/api/v1/messes", "", map[string]string{"name": "Flat 4B"}, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("no token: status %d, want 401", status)
	}

	status = call(t, server, http.MethodPost, "/api/v1/messes", "not-a-jwt", map[string]string{"name": "Flat 4B"}, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("garbage token: status %d, want 401", status)
	}
}

func TestMessAndLedgerFlow(t *testing.T) {
	server := setupTestServer(t)
	alice := registerUser(t, server, "alice@example.com", "Alice")
	bob := registerUser(t, server, "bob@example.com", "Bob")

	// Alice creates a mess and becomes its manager.
	var created struct {
		Mess struct {
			ID string `json:"ID"`
		} `json:"mess"`
	}
	status := call(t, server, http.MethodPost, "/api/v1/messes", alice.Token, map[string]string{"name": "Flat 4B"}, &created)
	if status != http.StatusCreated || created.Mess.ID == "" {
		t.Fatalf("create mess: status %d, id %q", status, created.Mess.ID)
	}
	messID := created.Mess.ID

	// Bob joins.
	status = call(t, server, http.MethodPost, fmt.Sprintf("/api/v1/messes/%s/join", messID), bob.Token, nil, nil)
	if status != http.StatusCreated {
		t.Fatalf("join mess: status %d", status)
	}

	// Manager-only write rejected for Bob.
	expense := map[string]any{"amount": 300.0, "date": "2026-01-10", "description": "groceries", "category": "food"}
	status = call(t, server, http.MethodPost, fmt.Sprintf("/api/v1/messes/%s/expenses", messID), bob.Token, expense, nil)
	if status != http.StatusForbidden {
		t.Errorf("member expense: status %d, want 403", status)
	}
	status = call(t, server, http.MethodPost, fmt.Sprintf("/api/v1/messes/%s/expenses", messID), alice.Token, expense, nil)
	if status != http.StatusCreated {
		t.Fatalf("manager expense: status %d", status)
	}

	// Bob records his meals and a deposit.
	status = call(t, server, http.MethodPost, fmt.Sprintf("/api/v1/messes/%s/meal-counts", messID), bob.Token,
		map[string]any{"date": "2026-01-10", "breakfast": 3, "lunch": 4, "dinner": 3}, nil)
	if status != http.StatusCreated {
		t.Fatalf("meal count: status %d", status)
	}
	status = call(t, server, http.MethodPost, fmt.Sprintf("/api/v1/messes/%s/deposits", messID), bob.Token,
		map[string]any{"amount": 500.0, "date": "2026-01-10"}, nil)
	if status != http.StatusCreated {
		t.Fatalf("deposit: status %d", status)
	}

	var summary struct {
		MealRate      float64 `json:"MealRate"`
		TotalDeposits float64 `json:"TotalDeposits"`
	}
	status = call(t, server, http.MethodGet, fmt.Sprintf("/api/v1/messes/%s/summary", messID), bob.Token, nil, &summary)
	if status != http.StatusOK {
		t.Fatalf("summary: status %d", status)
	}
	if summary.MealRate != 30 {
		t.Errorf("meal rate = %v, want 30 (300 / 10 meals)", summary.MealRate)
	}
	if summary.TotalDeposits != 500 {
		t.Errorf("total deposits = %v, want 500", summary.TotalDeposits)
	}

	// Outsiders get 403 even with a valid token.
	eve := registerUser(t, server, "eve@example.com", "Eve")
	status = call(t, server, http.MethodGet, fmt.Sprintf("/api/v1/messes/%s/summary", messID), eve.Token, nil, nil)
	if status != http.StatusForbidden {
		t.Errorf("outsider summary: status %d, want 403", status)
	}
}

func TestDebtRequestEndpoints(t *testing.T) {
	server := setupTestServer(t)
	alice := registerUser(t, server, "alice@example.com", "Alice")
	bob := registerUser(t, server, "bob@example.com", "Bob")

	var created struct {
		Mess struct {
			ID string `json:"ID"`
		} `json:"mess"`
	}
	call(t, server, http.MethodPost, "/api/v1/messes", alice.Token, map[string]string{"name": "Flat 4B"}, &created)
	messID := created.Mess.ID

	var bobSeat struct {
		ID string `json:"ID"`
	}
	status := call(t, server, http.MethodPost, fmt.Sprintf("/api/v1/messes/%s/join", messID), bob.Token, nil, &bobSeat)
	if status != http.StatusCreated {
		t.Fatalf("join: status %d", status)
	}

	var request struct {
		ID string `json:"ID"`
	}
	status = call(t, server, http.MethodPost, fmt.Sprintf("/api/v1/messes/%s/debt-requests", messID), alice.Token,
		map[string]any{"payerId": bobSeat.ID, "amount": 150.0, "date": "2026-01-15"}, &request)
	if status != http.StatusCreated {
		t.Fatalf("submit debt request: status %d", status)
	}

	acceptPath := fmt.Sprintf("/api/v1/messes/%s/debt-requests/%s/accept", messID, request.ID)

	// The receiver cannot accept their own request.
	if status := call(t, server, http.MethodPost, acceptPath, alice.Token, nil, nil); status != http.StatusForbidden {
		t.Errorf("receiver accept: status %d, want 403", status)
	}

	if status := call(t, server, http.MethodPost, acceptPath, bob.Token, nil, nil); status != http.StatusOK {
		t.Fatalf("payer accept: status %d", status)
	}

	// Double accept is a state conflict.
	if status := call(t, server, http.MethodPost, acceptPath, bob.Token, nil, nil); status != http.StatusConflict {
		t.Errorf("second accept: status %d, want 409", status)
	}
}

func TestReviewEndpoints(t *testing.T) {
	server := setupTestServer(t)
	alice := registerUser(t, server, "alice@example.com", "Alice")

	// The review list is public.
	if status := call(t, server, http.MethodGet, "/api/v1/reviews", "", nil, nil); status != http.StatusOK {
		t.Errorf("public review list: status %d, want 200", status)
	}

	// Posting requires a session.
	review := map[string]any{"author": "Alice", "rating": 4, "comment": "handy"}
	if status := call(t, server, http.MethodPost, "/api/v1/reviews", "", review, nil); status != http.StatusUnauthorized {
		t.Errorf("anonymous review: status %d, want 401", status)
	}
	if status := call(t, server, http.MethodPost, "/api/v1/reviews", alice.Token, review, nil); status != http.StatusCreated {
		t.Errorf("review: status %d, want 201", status)
	}
}
