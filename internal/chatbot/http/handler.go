package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/folio-works/portfolio-backend/internal/chatbot"
	"github.com/folio-works/portfolio-backend/internal/metrics"
)

const maxMessageLen = 1000

type Handler struct {
	bot *chatbot.Bot
}

func New(bot *chatbot.Bot) *Handler {
	return &Handler{bot: bot}
}

func (h *Handler) Register(rg gin.IRouter, mw ...gin.HandlerFunc) {
	rg.POST("/chat", append(mw, h.postMessage)...)
}

type postMsgReq struct {
	Message string `json:"message"`
}

func (h *Handler) postMessage(c *gin.Context) {
	var req postMsgReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if len(req.Message) > maxMessageLen {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "message too long"})
		return
	}

	reply, cat, err := h.bot.Reply(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			c.AbortWithStatus(http.StatusRequestTimeout)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	metrics.ChatMessages.WithLabelValues(string(cat)).Inc()
	c.JSON(http.StatusOK, gin.H{"ok": true, "reply": reply, "category": cat})
}
