package server

import (
	"net/http"
	"strings"

	"github.com/admitmap/admitmap/internal/server/handlers"
	"github.com/admitmap/admitmap/internal/server/middleware"
	"github.com/admitmap/admitmap/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(s.source, s.cache, s.logger)
	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Health endpoints
	mux.HandleFunc("/health", h.HandleHealth)
	mux.HandleFunc(prefix+"/health", h.HandleHealth)
	mux.HandleFunc(prefix+"/ready", h.HandleReady)

	// Schools endpoints
	mux.HandleFunc(prefix+"/schools", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			h.HandleListSchools(w, r)
			return
		}
		response.MethodNotAllowed(w, r.Method)
	})

	mux.HandleFunc(prefix+"/schools/", func(w http.ResponseWriter, r *http.Request) {
		id := extractPathParam(r.URL.Path, prefix+"/schools/")
		if id != "" && r.Method == http.MethodGet {
			h.HandleGetSchool(w, r, id)
			return
		}
		response.NotFound(w, "Not found", "")
	})

	// States endpoint
	mux.HandleFunc(prefix+"/states", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			h.HandleStates(w, r)
			return
		}
		response.MethodNotAllowed(w, r.Method)
	})

	// Stats endpoint
	mux.HandleFunc(prefix+"/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			h.HandleStats(w, r)
			return
		}
		response.MethodNotAllowed(w, r.Method)
	})

	// Classification endpoint
	mux.HandleFunc(prefix+"/classify", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodPost {
			h.HandleClassify(w, r)
			return
		}
		response.MethodNotAllowed(w, r.Method)
	})
}

// applyMiddleware wraps the handler with the middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	if cfg.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, s.logger)
		handler = middleware.RateLimit(rateLimiter)(handler)
	}

	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
		} else {
			corsConfig.AllowAll = true
		}
		handler = middleware.CORS(corsConfig)(handler)
	}

	handler = middleware.Recovery(s.logger)(handler)
	handler = middleware.Logger(s.logger)(handler)

	return handler
}

// extractPathParam pulls the single path segment after prefix, rejecting
// deeper paths.
func extractPathParam(path, prefix string) string {
	param := strings.TrimPrefix(path, prefix)
	if param == "" || strings.Contains(param, "/") {
		return ""
	}
	return param
}
