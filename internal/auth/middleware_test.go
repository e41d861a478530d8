package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// okHandler records whether it ran and what userID the middleware attached.
type okHandler struct {
	called bool
	userID string
	hasID  bool
}

func (h *okHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.userID, h.hasID = UserIDFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func TestRequireAuth_ValidBearerToken(t *testing.T) {
	ts := newTestTokenService(t)
	token, _ := ts.Issue("user-42")

	inner := &okHandler{}
	handler := RequireAuth(ts)(inner)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !inner.called {
		t.Fatal("inner handler should have run")
	}
	if inner.userID != "user-42" {
		t.Errorf("userID in context = %q, want %q", inner.userID, "user-42")
	}
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	ts := newTestTokenService(t)
	inner := &okHandler{}
	handler := RequireAuth(ts)(inner)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	if inner.called {
		t.Error("inner handler should not run without a token")
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	ts := newTestTokenService(t)
	token, _ := ts.IssueWithDuration("user-42", -time.Minute)

	handler := RequireAuth(ts)(&okHandler{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	ts := newTestTokenService(t)
	token, _ := ts.Issue("user-42")

	cases := []struct {
		name   string
		header string
	}{
		{"no scheme", token},
		{"wrong scheme", "Basic " + token},
		{"bearer only", "Bearer"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := RequireAuth(ts)(&okHandler{})
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			req.Header.Set("Authorization", tc.header)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rr.Code)
			}
		})
	}
}

func TestRequireAuth_LowercaseBearerScheme(t *testing.T) {
	// RFC 6750 scheme matching is case-insensitive.
	ts := newTestTokenService(t)
	token, _ := ts.Issue("user-42")

	inner := &okHandler{}
	handler := RequireAuth(ts)(inner)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if inner.userID != "user-42" {
		t.Errorf("userID = %q, want %q", inner.userID, "user-42")
	}
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	ts := newTestTokenService(t)
	inner := &okHandler{}
	handler := OptionalAuth(ts)(inner)

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !inner.called {
		t.Fatal("inner handler should run for anonymous requests")
	}
	if inner.hasID {
		t.Error("anonymous request should have no userID in context")
	}
}

func TestOptionalAuth_ValidTokenAttachesIdentity(t *testing.T) {
	ts := newTestTokenService(t)
	token, _ := ts.Issue("user-7")

	inner := &okHandler{}
	handler := OptionalAuth(ts)(inner)

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if inner.userID != "user-7" {
		t.Errorf("userID = %q, want %q", inner.userID, "user-7")
	}
}

func TestUserIDFromContext_EmptyContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := UserIDFromContext(req.Context()); ok {
		t.Error("UserIDFromContext() should return false on a bare context")
	}
}
