package handler

import (
	"errors"
	"net/http"

	"github.com/portfolio/backend/internal/catalog"
	"github.com/portfolio/backend/internal/service"
)

// ProjectHandler はカタログ閲覧の HTTP ハンドラ
type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List handles GET /api/projects?q=&category=&status=&sort=
// status is matched case-insensitively; an unknown value is a 400 invalid_status.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.projectService.List(service.ProjectQuery{
		Search:   q.Get("q"),
		Category: q.Get("category"),
		Status:   q.Get("status"),
		Sort:     q.Get("sort"),
	})
	if err != nil {
		var sortErr *catalog.UnknownSortKeyError
		if errors.As(err, &sortErr) {
			writeError(w, http.StatusBadRequest, "invalid_sort")
			return
		}
		var statusErr *catalog.UnknownStatusError
		if errors.As(err, &statusErr) {
			writeError(w, http.StatusBadRequest, "invalid_status")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Get handles GET /api/projects/{slug}
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.projectService.GetBySlug(r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Stats handles GET /api/projects/stats
func (h *ProjectHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.projectService.Stats())
}

// Technologies handles GET /api/technologies
func (h *ProjectHandler) Technologies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"technologies": h.projectService.Technologies()})
}

// Categories handles GET /api/categories
func (h *ProjectHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": h.projectService.Categories()})
}
