package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// echoUserID is the innermost handler in middleware tests: it reports the
// userID the middleware stored in the context.
func echoUserID(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Error("handler reached without userID in context")
		}
		w.Write([]byte(userID))
	})
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	tokens := newTestTokenService(t)
	signed, err := tokens.Issue("user-42")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	handler := RequireAuth(tokens)(echoUserID(t))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "user-42" {
		t.Errorf("expected body %q, got %q", "user-42", rec.Body.String())
	}
}

func TestRequireAuthRejections(t *testing.T) {
	tokens := newTestTokenService(t)

	expired, err := tokens.IssueWithTTL("user-42", -time.Minute)
	if err != nil {
		t.Fatalf("IssueWithTTL: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantReason string
	}{
		{"no header", "", "missing_token"},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "missing_token"},
		{"bare token without scheme", "eyJhbGciOi.invalid.token", "missing_token"},
		{"garbage token", "Bearer not-a-jwt", "invalid_token"},
		{"expired token", "Bearer " + expired, "token_expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := RequireAuth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if called {
				t.Error("protected handler was called despite rejection")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
			if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
				t.Errorf("expected WWW-Authenticate: Bearer, got %q", got)
			}

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decoding error body: %v", err)
			}
			if body["error"] != tt.wantReason {
				t.Errorf("expected reason %q, got %q", tt.wantReason, body["error"])
			}
		})
	}
}

func TestBearerTokenSchemeIsCaseInsensitive(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer abc123")

	token, err := BearerToken(req)
	if err != nil {
		t.Fatalf("BearerToken: %v", err)
	}
	if token != "abc123" {
		t.Errorf("expected %q, got %q", "abc123", token)
	}
}

func TestUserIDFromContextAnonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id, ok := UserIDFromContext(req.Context()); ok || id != "" {
		t.Errorf("expected anonymous context, got (%q, %v)", id, ok)
	}
}
