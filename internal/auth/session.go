package auth

import (
	"github.com/gin-gonic/gin"
)

const (
	// CtxSession is the gin context key holding the *Session of an authenticated admin.
	CtxSession = "admin_session"
	// CookieName carries the session token for browser clients.
	CookieName = "admin_session"
)

// Session describes an authenticated admin request. It is injected by
// middleware.RequireAdmin and read by admin handlers.
type Session struct {
	Subject   string
	ExpiresAt int64
}

// SessionFrom returns the admin session of the request, or nil when the
// request did not pass through RequireAdmin.
func SessionFrom(c *gin.Context) *Session {
	v, ok := c.Get(CtxSession)
	if !ok {
		return nil
	}
	s, _ := v.(*Session)
	return s
}
