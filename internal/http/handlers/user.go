package handlers

import (
	"net/http"

	"todo_webapp/internal/http/middleware"
	"todo_webapp/internal/logger"

	"github.com/gin-gonic/gin"
)

// Me returns the current session payload, resolving the user fresh from the
// identity provider so revoked sessions are noticed.
func (h *Handler) Me(c *gin.Context) {
	auth := middleware.GetAuth(c)
	if auth == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.Auth.GetUser(c.Request.Context(), auth.Token)
	if err != nil {
		logger.Error("failed to resolve user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": gin.H{
			"access_token": auth.Token,
			"user":         user,
		},
	})
}
