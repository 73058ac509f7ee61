package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/folio-works/portfolio-backend/internal/auth"
)

type loginReq struct {
	Password string `json:"password" binding:"required"`
}

// Login exchanges the shared admin password for a session token.
func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if !h.passwords.Check(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Incorrect password."})
		return
	}

	token, expiresAt, err := h.tokens.Issue()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to create session"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, int(h.tokens.TTL().Seconds()), "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token, "expires_at": expiresAt.UTC()})
}

// Logout clears the session cookie. Tokens are stateless and simply expire.
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Session reports the admin session injected by RequireAdmin.
func (h *Handler) Session(c *gin.Context) {
	s := auth.SessionFrom(c)
	if s == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing admin session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "subject": s.Subject, "expires_at": time.Unix(s.ExpiresAt, 0).UTC()})
}
