package handlers

import (
	"net/http"
	"strings"

	"github.com/cinemamap/backend/internal/application/services"
)

// GeolocationHandler handles geolocation endpoints.
type GeolocationHandler struct {
	service *services.CinemaFinderService
}

// NewGeolocationHandler creates a new geolocation handler.
func NewGeolocationHandler(service *services.CinemaFinderService) *GeolocationHandler {
	return &GeolocationHandler{service: service}
}

// Geocode handles GET /api/geocode?address=...
func (h *GeolocationHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		respondWithError(w, http.StatusBadRequest, "address parameter is required")
		return
	}

	point, err := h.service.Geocode(r.Context(), address)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"address":   address,
		"latitude":  point.Latitude,
		"longitude": point.Longitude,
	})
}
