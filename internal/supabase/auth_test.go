package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSignInSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("grant_type") != "password" {
			t.Errorf("missing grant_type=password")
		}
		if r.Header.Get("apikey") == "" {
			t.Errorf("missing apikey header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"access_token": "token-123",
			"token_type": "bearer",
			"expires_in": 3600,
			"refresh_token": "refresh-456",
			"user": {"id": "u1", "email": "a@b.c", "user_metadata": {"role": "admin"}}
		}`))
	}))
	defer srv.Close()

	c := NewAuthClient(srv.URL, "anon")
	session, err := c.SignIn(context.Background(), "a@b.c", "secret")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if session.AccessToken != "token-123" {
		t.Fatalf("access token = %q", session.AccessToken)
	}
	if session.User == nil || session.User.Role() != "admin" {
		t.Fatalf("expected admin user, got %+v", session.User)
	}
}

func TestSignInInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_description": "Invalid login credentials"}`))
	}))
	defer srv.Close()

	c := NewAuthClient(srv.URL, "anon")
	_, err := c.SignIn(context.Background(), "a@b.c", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	authErr, ok := err.(*AuthError)
	if !ok {
		t.Fatalf("expected *AuthError, got %T", err)
	}
	if authErr.Message != "Invalid login credentials" {
		t.Fatalf("message = %q", authErr.Message)
	}
}

func TestGetUserUnauthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewAuthClient(srv.URL, "anon")
	user, err := c.GetUser(context.Background(), "stale-token")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user, got %+v", user)
	}
}

func TestSignUpReturnsUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/signup" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"id": "u2", "email": "new@b.c", "user_metadata": {"role": "admin"}}`))
	}))
	defer srv.Close()

	c := NewAuthClient(srv.URL, "anon")
	user, err := c.SignUp(context.Background(), "new@b.c", "secret", map[string]any{"role": "admin"})
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if user.ID != "u2" || user.Role() != "admin" {
		t.Fatalf("user = %+v", user)
	}
}

func TestExtractBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := ExtractBearerToken(req); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}

	req.Header.Set("Authorization", "Bearer abc123")
	if got := ExtractBearerToken(req); got != "abc123" {
		t.Fatalf("token = %q", got)
	}

	req.Header.Set("Authorization", "Basic abc123")
	if got := ExtractBearerToken(req); got != "" {
		t.Fatalf("expected empty token for non-bearer header, got %q", got)
	}
}
