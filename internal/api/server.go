package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tmarler/formsight/internal/analysis"
	"github.com/tmarler/formsight/internal/classify"
	"github.com/tmarler/formsight/internal/config"
)

// Server is the HTTP API server for formsight.
type Server struct {
	router     chi.Router
	analyzer   *analysis.Client
	classifier *classify.Classifier
	log        *slog.Logger
	cfg        config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(analyzer *analysis.Client, classifier *classify.Classifier, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		analyzer:   analyzer,
		classifier: classifier,
		log:        log,
		cfg:        cfg,
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

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.FormsightAPIKey != "" {
			r.Use(AuthMiddleware(s.cfg.FormsightAPIKey, s.log))
		}

		r.Post("/api/analyze", s.handleAnalyze)
		r.Post("/api/classify", s.handleClassify)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
