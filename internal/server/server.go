// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the resume backend over HTTP: authentication,
// per-user resume CRUD, and document-to-text conversion.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pdiddy/resume-server/internal/auth"
	"github.com/pdiddy/resume-server/internal/httputil"
	"github.com/pdiddy/resume-server/internal/store"
)

// Extractor produces plain text from an uploaded word-processing document.
// The production implementation is the extraction pipeline; tests use fakes.
type Extractor interface {
	ExtractText(ctx context.Context, filename string, data []byte) (string, error)
}

// Config holds the server's collaborators and settings.
type Config struct {
	Store       *store.Store
	Extractor   Extractor
	JWTSecret   []byte
	TokenExpiry time.Duration
	ClientURL   string
	Logger      *slog.Logger
}

// Server is the HTTP surface of the resume backend.
type Server struct {
	store       *store.Store
	extractor   Extractor
	secret      []byte
	tokenExpiry time.Duration
	clientURL   string
	logger      *slog.Logger
	router      chi.Router
}

// New creates a Server and mounts its routes.
func New(cfg Config) *Server {
	if cfg.TokenExpiry <= 0 {
		cfg.TokenExpiry = auth.DefaultTokenExpiry
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		store:       cfg.Store,
		extractor:   cfg.Extractor,
		secret:      cfg.JWTSecret,
		tokenExpiry: cfg.TokenExpiry,
		clientURL:   cfg.ClientURL,
		logger:      cfg.Logger,
	}
	s.routes()
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(s.cors)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteMessage(w, http.StatusOK, "Server is running")
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
	})

	r.Route("/api/convert", func(r chi.Router) {
		r.Post("/", s.handleConvert)
	})

	r.Route("/api/resumes", func(r chi.Router) {
		r.Use(auth.Middleware(s.secret))
		r.Post("/", s.handleCreateResume)
		r.Get("/", s.handleListResumes)
		r.Get("/{id}", s.handleGetResume)
		r.Put("/{id}", s.handleUpdateResume)
		r.Delete("/{id}", s.handleDeleteResume)
		r.Get("/{id}/download", s.handleDownloadResume)
	})

	s.router = r
}

// logRequests emits one structured log line per completed request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// cors allows the configured browser client origin, including credentialed
// requests and preflight.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.clientURL != "" {
			w.Header().Set("Access-Control-Allow-Origin", s.clientURL)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
