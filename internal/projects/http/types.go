package http

import "github.com/folio-works/portfolio-backend/internal/projects/service"

// Handler bundles the dependencies for project HTTP endpoints.
type Handler struct {
	svc *service.ProjectService
}

func New(svc *service.ProjectService) *Handler {
	return &Handler{svc: svc}
}

type projectReq struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
	ImageURL string `json:"imageUrl"`
	Featured *bool  `json:"featured"`
}

type featuredReq struct {
	Featured *bool `json:"featured" binding:"required"`
}
