package service

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

// InitJWT stores the identity provider's signing secret so access tokens can
// be verified locally without a provider round-trip per request.
func InitJWT(secret string) {
	if secret == "" {
		panic("jwt secret is not set")
	}
	jwtSecret = []byte(secret)
}

// AuthContext is the per-request identity, built once at the transport
// boundary and threaded to the access guard and handlers.
type AuthContext struct {
	Token  string
	UserID string
	Email  string
	Role   string
}

func (a *AuthContext) IsAdmin() bool {
	return a != nil && a.Role == "admin"
}

// ParseAccessToken verifies a provider-issued access token (HS256) and
// extracts the subject, email and role claim.
func ParseAccessToken(tokenString string) (*AuthContext, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	auth := &AuthContext{Token: tokenString}
	if sub, ok := claims["sub"].(string); ok {
		auth.UserID = sub
	}
	if email, ok := claims["email"].(string); ok {
		auth.Email = email
	}
	if meta, ok := claims["user_metadata"].(map[string]any); ok {
		if role, ok := meta["role"].(string); ok {
			auth.Role = role
		}
	}
	return auth, nil
}
