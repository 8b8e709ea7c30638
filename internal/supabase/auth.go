package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"todo_webapp/internal/domain"
)

// AuthError carries the provider's failure message. Route handlers surface it
// with HTTP 400; it never propagates past the route boundary.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// AuthClient talks to the hosted identity service (password auth, sessions).
type AuthClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewAuthClient(baseURL, apiKey string) *AuthClient {
	return &AuthClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SignIn exchanges email+password for a session.
func (c *AuthClient) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	body, err := c.post(ctx, "/auth/v1/token?grant_type=password", map[string]any{
		"email":    email,
		"password": password,
	}, "")
	if err != nil {
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// SignUp registers a new account. Metadata (e.g. the role claim) is stored as
// user metadata on the provider side.
func (c *AuthClient) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*domain.User, error) {
	payload := map[string]any{
		"email":    email,
		"password": password,
	}
	if len(metadata) > 0 {
		payload["data"] = metadata
	}

	body, err := c.post(ctx, "/auth/v1/signup", payload, "")
	if err != nil {
		return nil, err
	}

	// The provider answers with a session when auto-confirm is on, and with a
	// bare user object when email confirmation is pending.
	var session struct {
		User *domain.User `json:"user"`
	}
	if err := json.Unmarshal(body, &session); err == nil && session.User != nil {
		return session.User, nil
	}

	var user domain.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

// SignOut revokes the session behind the token. Best-effort: provider errors
// are returned for logging only, the caller's logout still succeeds.
func (c *AuthClient) SignOut(ctx context.Context, token string) error {
	_, err := c.post(ctx, "/auth/v1/logout", nil, token)
	return err
}

// GetUser resolves the user behind an access token. A rejected token is
// reported as (nil, nil): unauthenticated, not an error.
func (c *AuthClient) GetUser(ctx context.Context, token string) (*domain.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &AuthError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	var user domain.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

// ExtractBearerToken strips the "Bearer " prefix from the Authorization
// header, returning "" when the header is absent or malformed.
func ExtractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func (c *AuthClient) post(ctx context.Context, path string, payload any, token string) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &AuthError{Status: resp.StatusCode, Message: errorMessageFromBody(raw)}
	}
	return raw, nil
}

func (c *AuthClient) setHeaders(req *http.Request, token string) {
	req.Header.Set("apikey", c.apiKey)
	if token == "" {
		token = c.apiKey
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

// errorMessageFromBody digs the human-readable message out of a provider
// error payload. The field name varies across provider endpoints.
func errorMessageFromBody(raw []byte) string {
	var payload struct {
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		Err              string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		for _, m := range []string{payload.ErrorDescription, payload.Msg, payload.Message, payload.Err} {
			if m != "" {
				return m
			}
		}
	}
	if len(raw) > 0 {
		return string(raw)
	}
	return "authentication failed"
}

func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "authentication failed"
	}
	return errorMessageFromBody(raw)
}
