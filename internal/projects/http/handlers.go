package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/folio-works/portfolio-backend/internal/projects/domain"
	"github.com/folio-works/portfolio-backend/internal/projects/service"
)

func (h *Handler) home(c *gin.Context) {
	items, err := h.svc.ListFeatured(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "featured": items})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": domain.ErrNotFound.Error()})
		return
	}
	p, found, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": domain.ErrNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) create(c *gin.Context) {
	var req projectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeResult(c, http.StatusCreated, domain.ErrValidation)
		return
	}

	id, err := h.svc.Add(c.Request.Context(), req.input())
	if err != nil {
		writeResult(c, http.StatusCreated, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id})
}

func (h *Handler) update(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		writeResult(c, http.StatusOK, domain.ErrNotFound)
		return
	}
	var req projectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeResult(c, http.StatusOK, domain.ErrValidation)
		return
	}

	err := h.svc.Update(c.Request.Context(), id, req.input())
	writeResult(c, http.StatusOK, err)
}

func (h *Handler) setFeatured(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		writeResult(c, http.StatusOK, domain.ErrNotFound)
		return
	}
	var req featuredReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeResult(c, http.StatusOK, domain.ErrValidation)
		return
	}

	err := h.svc.SetFeatured(c.Request.Context(), id, *req.Featured)
	writeResult(c, http.StatusOK, err)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		// nothing can be stored under a blank id
		writeResult(c, http.StatusOK, nil)
		return
	}
	err := h.svc.Delete(c.Request.Context(), id)
	writeResult(c, http.StatusOK, err)
}

// projectID returns the trimmed :id param, false when it is blank.
func projectID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	return id, id != ""
}

func (r projectReq) input() domain.ProjectInput {
	return domain.ProjectInput{
		Title:    strings.TrimSpace(r.Title),
		Summary:  strings.TrimSpace(r.Summary),
		URL:      strings.TrimSpace(r.URL),
		ImageURL: strings.TrimSpace(r.ImageURL),
		Featured: r.Featured,
	}
}

// writeResult answers with exactly one of {"success": true} or {"error": msg}.
func writeResult(c *gin.Context, okStatus int, err error) {
	if err == nil {
		c.JSON(okStatus, gin.H{"success": true})
		return
	}

	status := http.StatusInternalServerError
	switch service.Outcome(err) {
	case "validation":
		status = http.StatusBadRequest
	case "capacity":
		status = http.StatusConflict
	case "not_found":
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
