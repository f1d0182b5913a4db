package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/libroready/libroready/internal/config"
	"github.com/libroready/libroready/internal/session"
)

// Server is the HTTP API server for libroready.
type Server struct {
	router   chi.Router
	sessions *session.Store
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(sessions *session.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		sessions: sessions,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Post("/api/upload", s.handleUpload)
	r.Post("/api/process", s.handleProcess)
	r.Get("/api/download/{sessionID}/{fileType}", s.handleDownload)

	r.Post("/api/premium/keywords", s.handleKeywords)
	r.Post("/api/premium/categories", s.handleCategories)
	r.Post("/api/premium/description", s.handleDescription)
	r.Post("/api/premium/cover", s.handleCover)
	r.Get("/api/premium/cover/{sessionID}", s.handleCoverImage)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
