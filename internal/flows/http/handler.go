package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/folio-works/portfolio-backend/internal/flows"
)

type Handler struct {
	svc *flows.Service
}

func New(svc *flows.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the flows under rg; callers guard rg with admin auth.
func (h *Handler) Register(rg gin.IRouter) {
	rg.POST("/summary", h.requireEnabled, h.summary)
	rg.POST("/image", h.requireEnabled, h.image)
	rg.POST("/speech", h.requireEnabled, h.speech)
}

// requireEnabled answers 503 before the body is read when no backend is configured.
func (h *Handler) requireEnabled(c *gin.Context) {
	if !h.svc.Enabled() {
		writeError(c, flows.ErrDisabled)
		c.Abort()
		return
	}
	c.Next()
}

type imageReq struct {
	Prompt string `json:"prompt" binding:"required"`
}

type speechReq struct {
	Text string `json:"text" binding:"required"`
}

func (h *Handler) summary(c *gin.Context) {
	var req flows.SummaryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, flows.ErrInvalid)
		return
	}
	out, err := h.svc.Summary(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": out})
}

func (h *Handler) image(c *gin.Context) {
	var req imageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, flows.ErrInvalid)
		return
	}
	uri, err := h.svc.Image(c.Request.Context(), req.Prompt)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": uri})
}

func (h *Handler) speech(c *gin.Context) {
	var req speechReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, flows.ErrInvalid)
		return
	}
	uri, err := h.svc.Speech(c.Request.Context(), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"audioUrl": uri})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, flows.ErrDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, flows.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "generation failed"})
	}
}
