package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/folio-works/portfolio-backend/internal/contact"
)

type Handler struct {
	svc *contact.Service
}

func New(svc *contact.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(rg gin.IRouter, mw ...gin.HandlerFunc) {
	rg.POST("/contact", append(mw, h.submit)...)
}

func (h *Handler) submit(c *gin.Context) {
	var req contact.Message
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": contact.ErrInvalid.Error()})
		return
	}

	if err := h.svc.Submit(c.Request.Context(), req); err != nil {
		if errors.Is(err, contact.ErrInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not send your message. Please try again later."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
