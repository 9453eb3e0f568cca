// Package server provides the HTTP handlers and routing for the joke
// bridge: the REST surface, the SSE stream, and the MCP-over-HTTP group.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/amxkifir/italian-jokes-MCP/internal/jokes"
	"github.com/amxkifir/italian-jokes-MCP/internal/tools"
)

// Version is reported by /health, /mcp/info, and the MCP serverInfo.
const Version = "1.0.0"

// Config contains server configuration values such as auth token and
// upstream API settings.
type Config struct {
	Token          string
	BaseURL        string
	RequestTimeout time.Duration
	// RouterTimeout bounds non-streaming requests. Zero means 60s.
	RouterTimeout time.Duration
}

// Server contains the configured router, dispatcher, and health cache.
type Server struct {
	cfg        Config
	router     *chi.Mux
	dispatcher *tools.Dispatcher
	health     *statusCache
}

// New constructs a Server with middleware and routes configured.
func New(cfg Config) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.RouterTimeout <= 0 {
		cfg.RouterTimeout = 60 * time.Second
	}
	client := jokes.New(cfg.BaseURL, &http.Client{Timeout: cfg.RequestTimeout})

	s := &Server{
		cfg:        cfg,
		router:     chi.NewRouter(),
		dispatcher: tools.NewDispatcher(client),
		health:     newStatusCache(30 * time.Second),
	}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	s.router.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.RouterTimeout))

		r.Get("/health", s.handleHealth)
		r.Get("/api/joke", s.handleJoke)
		r.Get("/api/jokes", s.handleJokes)
		r.Get("/api/categories", s.handleCategories)

		r.Route("/mcp", func(r chi.Router) {
			r.Use(s.auth)
			r.Get("/info", s.handleInfo)
			r.Get("/tools", s.handleListTools)
			r.Post("/call", s.handleCall)
		})
	})

	// The stream runs up to count*interval (~190s at the limits) and
	// manages its own lifetime, so it stays outside the router timeout.
	s.router.Get("/api/stream/jokes", s.handleStreamJokes)

	return s
}

// Router exposes the root HTTP handler for the server.
func (s *Server) Router() http.Handler { return s.router }

// Dispatcher exposes the tool dispatcher, mainly for tests.
func (s *Server) Dispatcher() *tools.Dispatcher { return s.dispatcher }

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Token == "" {
			next.ServeHTTP(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+s.cfg.Token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiStatus := s.health.get(func() string {
		if err := s.dispatcher.Client().Probe(r.Context()); err != nil {
			var se *jokes.StatusError
			if errors.As(err, &se) {
				return "unhealthy"
			}
			return "unreachable"
		}
		return "healthy"
	})
	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "healthy",
		"api_status": apiStatus,
		"version":    Version,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
