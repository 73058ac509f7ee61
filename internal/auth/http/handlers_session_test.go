package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-works/portfolio-backend/internal/auth"
)

func setupHandler() (*gin.Engine, *auth.TokenService) {
	gin.SetMode(gin.TestMode)
	tokens := auth.NewTokenService([]byte("test-secret-key-32-bytes-long!!"), time.Hour)
	h := New(auth.NewPasswordChecker("open-sesame", ""), tokens, false)

	r := gin.New()
	h.Register(r.Group("/api/admin"))
	return r, tokens
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestLogin(t *testing.T) {
	r, tokens := setupHandler()

	t.Run("correct password", func(t *testing.T) {
		rr := post(r, "/api/admin/login", `{"password":"open-sesame"}`)
		require.Equal(t, http.StatusOK, rr.Code)

		var body struct {
			OK    bool   `json:"ok"`
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.True(t, body.OK)

		_, err := tokens.Validate(body.Token)
		assert.NoError(t, err)

		cookie := rr.Header().Get("Set-Cookie")
		assert.Contains(t, cookie, auth.CookieName+"=")
		assert.Contains(t, cookie, "HttpOnly")
	})

	t.Run("wrong password", func(t *testing.T) {
		rr := post(r, "/api/admin/login", `{"password":"guess"}`)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Empty(t, rr.Header().Get("Set-Cookie"))
	})

	t.Run("missing password", func(t *testing.T) {
		rr := post(r, "/api/admin/login", `{}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestLogout(t *testing.T) {
	r, _ := setupHandler()
	rr := post(r, "/api/admin/logout", ``)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := auth.NewTokenService([]byte("test-secret-key-32-bytes-long!!"), time.Hour)
	h := New(auth.NewPasswordChecker("open-sesame", ""), tokens, false)

	r := gin.New()
	h.RegisterSession(r.Group("/bare"))
	guarded := r.Group("/api/admin")
	guarded.Use(func(c *gin.Context) {
		c.Set(auth.CtxSession, &auth.Session{Subject: "admin", ExpiresAt: 1700000000})
		c.Next()
	})
	h.RegisterSession(guarded)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/session", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		OK        bool      `json:"ok"`
		Subject   string    `json:"subject"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.OK)
	assert.Equal(t, "admin", body.Subject)
	assert.Equal(t, int64(1700000000), body.ExpiresAt.Unix())

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/bare/session", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
