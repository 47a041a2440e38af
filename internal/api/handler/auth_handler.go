package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mdYeasin2001/hire-vibe-server/internal/api/dto"
)

// IssueToken handles POST /jwt
// Signs the caller-supplied identity into a session token and sets it as an
// HTTP-only cookie. There is no user store; the payload is trusted as-is.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "a valid email is required",
		})
		return
	}

	token, err := h.auth.Issue(req.Email)
	if err != nil {
		h.logger.Error("Failed to sign token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "internal server error",
		})
		return
	}

	h.auth.SetCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout handles GET /logout
// Clears the session cookie. Idempotent.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.auth.ClearCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
