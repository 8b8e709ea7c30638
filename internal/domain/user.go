package domain

// User is the identity provider's view of an account. The application only
// reads the id, email and the role claim from the metadata.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
	CreatedAt    string         `json:"created_at,omitempty"`
}

// Role returns the role claim from user metadata, or "" when absent.
func (u *User) Role() string {
	if u == nil || u.UserMetadata == nil {
		return ""
	}
	if role, ok := u.UserMetadata["role"].(string); ok {
		return role
	}
	return ""
}

// Session is an authenticated-identity handle issued by the provider.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}
