package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"kmbeta/internal/config"
	"kmbeta/internal/dashboard"
	"kmbeta/internal/handler"
	"kmbeta/web"
)

// Server is the HTTP server for the dashboard.
type Server struct {
	mux    *http.ServeMux
	cfg    *config.Config
	logger *slog.Logger
	ready  chan struct{} // closed when the route catalog is warm
}

// New creates a new Server with all routes registered.
func New(cfg *config.Config, src dashboard.Source, logger *slog.Logger) *Server {
	mux := http.NewServeMux()
	h := handler.New(src, cfg, logger)

	s := &Server{mux: mux, cfg: cfg, logger: logger, ready: make(chan struct{})}

	// Static files are served from the embedded FS. Versioned URLs get immutable caching.
	staticFS, _ := fs.Sub(web.StaticFiles, "static")
	fileServer := http.FileServer(http.FS(staticFS))
	mux.Handle("GET /static/", http.StripPrefix("/static/", staticCacheHandler(fileServer)))

	// Pages
	mux.HandleFunc("GET /", h.Dashboard)
	mux.HandleFunc("GET /panels", h.Panels)

	// SSE
	mux.HandleFunc("GET /sse/dashboard", h.SSEDashboard)

	// GTFS-Realtime
	mux.HandleFunc("GET /gtfs-rt/{route}/{stop}", h.TripUpdatesFeed)

	mux.HandleFunc("GET /manifest.json", h.Manifest)

	return s
}

// SetReady signals that the route catalog is loaded and the app can serve
// requests.
func (s *Server) SetReady() {
	select {
	case <-s.ready:
		// already closed
	default:
		close(s.ready)
	}
}

// Handler returns the routes wrapped in middleware.
func (s *Server) Handler() http.Handler {
	return withMiddleware(s.mux, s.logger, s.ready)
}

// ListenAndServe starts the HTTP server and shuts it down when ctx is
// cancelled. Open SSE streams end with ctx.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
