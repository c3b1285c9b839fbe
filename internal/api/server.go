// Package api exposes the parse and consult operations over HTTP for a
// browser front end. The server is stateless: the browser session owns the
// parsed tasks, the question, and the credential between calls.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/pablasso/sensei/internal/config"
	"github.com/pablasso/sensei/internal/schedule"
)

// Consulter is the slice of the AI client the server needs. It is an
// interface so handler tests can stub the round-trip.
type Consulter interface {
	Consult(ctx context.Context, tasks []schedule.Task, question string) (string, error)
}

// Server is the sensei HTTP API server.
type Server struct {
	cfg    config.Config
	apiKey string // server-side fallback credential, may be empty

	// clients builds a Consulter for a request credential. Replaced in tests.
	clients func(apiKey string) Consulter
}

// NewServer creates an API server. apiKey is the server-side fallback
// credential used when a request carries none; it may be empty, in which
// case every request must bring its own key.
func NewServer(cfg config.Config, apiKey string) *Server {
	return &Server{
		cfg:    cfg,
		apiKey: apiKey,
		clients: func(key string) Consulter {
			return cfg.Client(key)
		},
	}
}

// Handler returns the router with all routes mounted and CORS applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Post("/consult", s.handleConsult)
	})

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.Serve.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return c.Handler(r)
}

// ListenAndServe runs the server until ctx is cancelled or the listener
// fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Serve.Host, s.cfg.Serve.Port)
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Printf("sensei API listening on http://%s", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
