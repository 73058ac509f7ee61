package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-works/portfolio-backend/internal/chatbot"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(chatbot.New(0, 0)).Register(r.Group("/api"))
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestPostMessage(t *testing.T) {
	r := setupRouter()

	rr := post(r, `{"message":"Tell me about your projects"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		OK       bool   `json:"ok"`
		Reply    string `json:"reply"`
		Category string `json:"category"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.OK)
	assert.Equal(t, "projects", body.Category)
	assert.Contains(t, chatbot.Replies(chatbot.CategoryProjects), body.Reply)
}

func TestPostMessageInvalid(t *testing.T) {
	r := setupRouter()

	assert.Equal(t, http.StatusBadRequest, post(r, `{"message":"   "}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(r, `nope`).Code)
	assert.Equal(t, http.StatusBadRequest, post(r, `{"message":"`+strings.Repeat("a", maxMessageLen+1)+`"}`).Code)
}
