package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/http/middleware"
	"todo_webapp/internal/supabase"

	"github.com/gin-gonic/gin"
)

type mockIdentity struct {
	session    *domain.Session
	signInErr  error
	user       *domain.User
	signUpErr  error
	signedOut  []string
	getUserErr error
}

func (m *mockIdentity) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	if m.signInErr != nil {
		return nil, m.signInErr
	}
	return m.session, nil
}

func (m *mockIdentity) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*domain.User, error) {
	if m.signUpErr != nil {
		return nil, m.signUpErr
	}
	return m.user, nil
}

func (m *mockIdentity) SignOut(ctx context.Context, token string) error {
	m.signedOut = append(m.signedOut, token)
	return nil
}

func (m *mockIdentity) GetUser(ctx context.Context, token string) (*domain.User, error) {
	return m.user, m.getUserErr
}

func newAuthRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthContext())
	v1.POST("/login", h.Login)
	v1.POST("/logout", h.Logout)
	v1.POST("/register", h.Register)
	v1.GET("/user", h.Me)
	return r
}

func TestLoginSuccessSetsSessionCookie(t *testing.T) {
	ident := &mockIdentity{session: &domain.Session{
		AccessToken:  "token-123",
		RefreshToken: "refresh-456",
		ExpiresIn:    3600,
		User:         &domain.User{ID: "u1", Email: "a@b.c"},
	}}
	r := newAuthRouter(NewHandler(nil, ident, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/login",
		strings.NewReader(`{"email":"a@b.c","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Message string      `json:"message"`
		User    domain.User `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Message == "" || resp.User.ID != "u1" {
		t.Fatalf("resp = %+v", resp)
	}

	var sessionCookie bool
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName && c.Value == "token-123" {
			sessionCookie = true
			if !c.HttpOnly {
				t.Fatal("session cookie must be http-only")
			}
		}
	}
	if !sessionCookie {
		t.Fatal("session cookie not set")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	ident := &mockIdentity{signInErr: &supabase.AuthError{Status: 400, Message: "Invalid login credentials"}}
	r := newAuthRouter(NewHandler(nil, ident, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/login",
		strings.NewReader(`{"email":"a@b.c","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "Invalid login credentials" {
		t.Fatalf("error = %q", resp["error"])
	}
}

func TestLogoutClearsCookiesAndRevokes(t *testing.T) {
	ident := &mockIdentity{}
	r := newAuthRouter(NewHandler(nil, ident, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "old-token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(ident.signedOut) != 1 || ident.signedOut[0] != "old-token" {
		t.Fatalf("signed out tokens = %v", ident.signedOut)
	}

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("session cookie not cleared")
	}
}

func TestRegister(t *testing.T) {
	ident := &mockIdentity{user: &domain.User{ID: "u2", Email: "new@b.c"}}
	r := newAuthRouter(NewHandler(nil, ident, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/register",
		strings.NewReader(`{"email":"new@b.c","password":"secret","options":{"data":{"role":"admin"}}}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestMeUnauthorized(t *testing.T) {
	r := newAuthRouter(NewHandler(nil, &mockIdentity{}, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "Unauthorized" {
		t.Fatalf("error = %q", resp["error"])
	}
}

func TestMeReturnsSessionPayload(t *testing.T) {
	ident := &mockIdentity{user: &domain.User{
		ID:           "u1",
		Email:        "a@b.c",
		UserMetadata: map[string]any{"role": "admin"},
	}}
	r := newAuthRouter(NewHandler(nil, ident, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Session struct {
			AccessToken string      `json:"access_token"`
			User        domain.User `json:"user"`
		} `json:"session"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Session.AccessToken == "" || resp.Session.User.ID != "u1" {
		t.Fatalf("session = %+v", resp.Session)
	}
}

func TestMeStaleToken(t *testing.T) {
	// provider rejects the token: GetUser resolves to nil user
	ident := &mockIdentity{user: nil}
	r := newAuthRouter(NewHandler(nil, ident, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}
