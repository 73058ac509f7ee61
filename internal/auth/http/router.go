package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
	rg.POST("/logout", h.Logout)
}

// RegisterSession attaches GET /session to a group guarded by RequireAdmin.
func (h *Handler) RegisterSession(rg gin.IRouter) {
	rg.GET("/session", h.Session)
}
