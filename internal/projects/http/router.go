package http

import "github.com/gin-gonic/gin"

// RegisterPublicPages attaches the public page-data routes ("/", "/projects", "/projects/:id").
func (h *Handler) RegisterPublicPages(rg gin.IRouter) {
	rg.GET("/", h.home)
	rg.GET("/projects", h.list)
	rg.GET("/projects/:id", h.get)
}

// RegisterAdminPages attaches "/admin" and "/admin/edit/:id" to an authenticated group.
func (h *Handler) RegisterAdminPages(rg gin.IRouter) {
	rg.GET("", h.list)
	rg.GET("/edit/:id", h.get)
}

// RegisterAdminAPI attaches the mutating project routes to an authenticated group.
func (h *Handler) RegisterAdminAPI(rg gin.IRouter) {
	rg.POST("", h.create)
	rg.PUT("/:id", h.update)
	rg.PATCH("/:id/featured", h.setFeatured)
	rg.DELETE("/:id", h.delete)
}
