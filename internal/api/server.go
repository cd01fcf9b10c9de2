// Package api serves the task board as a JSON HTTP API.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/giselleandrade1/lembrafacil/internal/app"
)

const shutdownTimeout = 10 * time.Second

// Server exposes a container over HTTP.
type Server struct {
	c      *app.Container
	router *chi.Mux
}

// New creates a server for c with every route mounted.
func New(c *app.Container) *Server {
	s := &Server{c: c}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(RequestID)
	r.Use(Logger(s.c.Logger))
	r.Use(Recovery(s.c.Logger))
	r.Use(Metrics(s.c.Metrics))

	tasks := &taskHandler{c: s.c}
	reports := &analyticsHandler{c: s.c}

	r.Get("/health", s.health)
	r.Handle("/metrics", s.c.Metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", tasks.List)
			r.Post("/", tasks.Create)
			r.Get("/{id}", tasks.Get)
			r.Patch("/{id}/status", tasks.UpdateStatus)
			r.Get("/{id}/history", tasks.History)
		})
		r.Get("/analytics", reports.Analyze)
		r.Get("/schedule", reports.Schedule)
		r.Get("/matrix", reports.Matrix)
	})

	return r
}

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Tasks  int    `json:"tasks"`
}

// health reports degraded when an event could not be persisted.
func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{Status: "ok", Tasks: s.c.Store.Len()}
	status := http.StatusOK
	if err := s.c.PersistErr(); err != nil {
		resp.Status = "degraded"
		resp.Error = err.Error()
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.c.Logger.Info("server starting", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.c.Logger.Info("server stopped")
	return nil
}
