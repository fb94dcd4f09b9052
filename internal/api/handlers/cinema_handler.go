package handlers

import (
	"net/http"

	"github.com/cinemamap/backend/internal/application/services"
)

// CinemaHandler serves the dashboard and table endpoints.
type CinemaHandler struct {
	service *services.CinemaFinderService
}

// NewCinemaHandler creates a new cinema handler
func NewCinemaHandler(service *services.CinemaFinderService) *CinemaHandler {
	return &CinemaHandler{service: service}
}

// Dashboard handles GET /api/dashboard?address=...
// Without an address the overview is returned.
func (h *CinemaHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context(), r.URL.Query().Get("address"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, dashboard)
}

// Nearby handles GET /api/cinemas/nearby?address=...
// An unknown address is a 200 with found=false.
func (h *CinemaHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	nearby, err := h.service.Nearby(r.Context(), r.URL.Query().Get("address"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, nearby)
}

// Overview handles GET /api/overview
func (h *CinemaHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, overview)
}

// ListDepartments handles GET /api/departments
func (h *CinemaHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments := h.service.Departments()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"departments": departments,
		"count":       len(departments),
	})
}

// DepartmentCinemas handles GET /api/departments/{code}/cinemas
func (h *CinemaHandler) DepartmentCinemas(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	cinemas, err := h.service.DepartmentCinemas(code)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"department": code,
		"cinemas":    cinemas,
		"count":      len(cinemas),
	})
}
