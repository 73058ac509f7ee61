package http

import (
	"github.com/folio-works/portfolio-backend/internal/auth"
)

type Handler struct {
	passwords    *auth.PasswordChecker
	tokens       *auth.TokenService
	secureCookie bool
}

func New(passwords *auth.PasswordChecker, tokens *auth.TokenService, secureCookie bool) *Handler {
	return &Handler{
		passwords:    passwords,
		tokens:       tokens,
		secureCookie: secureCookie,
	}
}
