package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	adminPrefix = "/admin"
	loginPath   = "/admin/login"
	adminHome   = "/admin"
)

// Decision is the access guard's verdict for one request.
type Decision struct {
	Allow       bool
	RedirectURL string
}

func redirectToLogin(originalURL string) Decision {
	q := url.Values{}
	q.Set("callbackUrl", originalURL)
	return Decision{RedirectURL: loginPath + "?" + q.Encode()}
}

// Decide is the access guard as a pure function of (path, session, role).
// originalURL is carried into the login redirect as callbackUrl. Checks run
// in a fixed order: admin area, login page, then the requires-auth prefixes.
func Decide(path, originalURL string, signedIn bool, role string, requireAuthPrefixes []string) Decision {
	isAdminArea := strings.HasPrefix(path, adminPrefix) && !strings.HasPrefix(path, loginPath)

	if isAdminArea {
		if !signedIn || role != "admin" {
			return redirectToLogin(originalURL)
		}
	}

	if path == loginPath {
		if signedIn && role == "admin" {
			return Decision{RedirectURL: adminHome}
		}
		return Decision{Allow: true}
	}

	for _, prefix := range requireAuthPrefixes {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		if !signedIn {
			return redirectToLogin(originalURL)
		}
		if strings.HasPrefix(path, adminPrefix) && role != "admin" {
			return redirectToLogin(originalURL)
		}
		break
	}

	return Decision{Allow: true}
}

// AccessGuard applies Decide to page routes. Expects AuthContext to have run.
func AccessGuard(requireAuthPrefixes []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := GetAuth(c)
		signedIn := auth != nil
		role := ""
		if auth != nil {
			role = auth.Role
		}

		decision := Decide(c.Request.URL.Path, c.Request.URL.RequestURI(), signedIn, role, requireAuthPrefixes)
		if !decision.Allow && decision.RedirectURL != "" {
			c.Redirect(http.StatusFound, decision.RedirectURL)
			c.Abort()
			return
		}
		c.Next()
	}
}
