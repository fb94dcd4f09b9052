package routes

import (
	"net/http"

	"github.com/cinemamap/backend/internal/api/handlers"
	"github.com/cinemamap/backend/internal/api/middleware"
	"github.com/cinemamap/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	cinemaHandler      *handlers.CinemaHandler
	geolocationHandler *handlers.GeolocationHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
	metricsHandler  http.Handler
	allowedOrigins  []string
}

// NewRouter creates a new router. cacheMiddleware and metricsHandler may be nil.
func NewRouter(
	cinemaHandler *handlers.CinemaHandler,
	geolocationHandler *handlers.GeolocationHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
	metricsHandler http.Handler,
	allowedOrigins []string,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		cinemaHandler:      cinemaHandler,
		geolocationHandler: geolocationHandler,
		cacheMiddleware:    cacheMiddleware,
		metrics:            metrics,
		metricsHandler:     metricsHandler,
		allowedOrigins:     allowedOrigins,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	if r.metricsHandler != nil {
		r.mux.Handle("GET /metrics", r.metricsHandler)
	}

	// Dashboard endpoints
	r.mux.HandleFunc("GET /api/dashboard", r.cinemaHandler.Dashboard)
	r.mux.HandleFunc("GET /api/overview", r.cinemaHandler.Overview)
	r.mux.HandleFunc("GET /api/cinemas/nearby", r.cinemaHandler.Nearby)

	// Department endpoints
	r.mux.HandleFunc("GET /api/departments", r.cinemaHandler.ListDepartments)
	r.mux.HandleFunc("GET /api/departments/{code}/cinemas", r.cinemaHandler.DepartmentCinemas)

	// Geolocation endpoints
	r.mux.HandleFunc("GET /api/geocode", r.geolocationHandler.Geocode)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics, middleware.MuxRoutes(r.mux))(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// Request ids are assigned before tracing so spans can carry them
	handler = middleware.LoggingMiddleware(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
