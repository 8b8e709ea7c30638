package handlers

import (
	"errors"
	"net/http"

	"todo_webapp/internal/http/middleware"
	"todo_webapp/internal/logger"
	"todo_webapp/internal/supabase"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Options  struct {
		Data map[string]any `json:"data"`
	} `json:"options"`
}

// Login exchanges credentials for a session and sets the session cookies so
// subsequent page loads authenticate without a bearer header.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	session, err := h.Auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var authErr *supabase.AuthError
		if errors.As(err, &authErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": authErr.Message})
			return
		}
		logger.Error("sign-in failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	maxAge := session.ExpiresIn
	if maxAge <= 0 {
		maxAge = 3600
	}
	c.SetCookie(middleware.SessionCookieName, session.AccessToken, maxAge, "/", "", false, true)
	if session.RefreshToken != "" {
		c.SetCookie(middleware.RefreshCookieName, session.RefreshToken, maxAge, "/", "", false, true)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": session.User})
}

// Logout revokes the session best-effort and clears the cookies.
func (h *Handler) Logout(c *gin.Context) {
	token := supabase.ExtractBearerToken(c.Request)
	if token == "" {
		if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
			token = cookie
		}
	}

	if token != "" {
		if err := h.Auth.SignOut(c.Request.Context(), token); err != nil {
			logger.Warn("sign-out call failed", "error", err)
		}
	}

	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.SetCookie(middleware.RefreshCookieName, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// Register creates a new account; metadata in options.data (e.g. the role
// claim) is forwarded to the identity provider.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := h.Auth.SignUp(c.Request.Context(), req.Email, req.Password, req.Options.Data)
	if err != nil {
		var authErr *supabase.AuthError
		if errors.As(err, &authErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": authErr.Message})
			return
		}
		logger.Error("sign-up failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registration successful", "user": user})
}
