package middleware

import (
	"net/http"

	"todo_webapp/internal/service"
	"todo_webapp/internal/supabase"

	"github.com/gin-gonic/gin"
)

const authContextKey = "auth_context"

// SessionCookieName holds the access token for browser page loads, so the
// dashboard authenticates without JS token plumbing.
const SessionCookieName = "sb_access_token"

// RefreshCookieName holds the refresh token issued at login.
const RefreshCookieName = "sb_refresh_token"

// AuthContext resolves the request's identity once at the transport boundary:
// bearer header first, session cookie second. It never aborts; unauthenticated
// requests simply carry no auth context.
func AuthContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := supabase.ExtractBearerToken(c.Request)
		if token == "" {
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				token = cookie
			}
		}

		if token != "" {
			if auth, err := service.ParseAccessToken(token); err == nil {
				c.Set(authContextKey, auth)
			}
		}

		c.Next()
	}
}

// RequireAuth aborts with 401 when the request carries no valid session.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetAuth(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// GetAuth returns the request's auth context, or nil when unauthenticated.
func GetAuth(c *gin.Context) *service.AuthContext {
	v, ok := c.Get(authContextKey)
	if !ok {
		return nil
	}
	auth, ok := v.(*service.AuthContext)
	if !ok {
		return nil
	}
	return auth
}
