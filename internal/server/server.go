// Package server exposes a loaded dataset to the browser-side map renderer.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/wavemap/internal/config"
	"github.com/sells-group/wavemap/internal/dataset"
)

// Options configures the HTTP surface.
type Options struct {
	CORSOrigins  []string
	StaticDir    string
	CacheTTL     time.Duration
	CacheCleanup time.Duration
}

// OptionsFromConfig maps the server and cache sections onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		CORSOrigins:  cfg.Server.CORSOrigins,
		StaticDir:    cfg.Server.StaticDir,
		CacheTTL:     cfg.Cache.TTL,
		CacheCleanup: cfg.Cache.Cleanup,
	}
}

// Server serves one dataset. The dataset is read-only, so handlers share it
// without locking.
type Server struct {
	ds    *dataset.Dataset
	opts  Options
	cache *gocache.Cache
	log   *zap.Logger
}

// New creates a Server for ds.
func New(ds *dataset.Dataset, opts Options) *Server {
	ttl := opts.CacheTTL
	if ttl == 0 {
		ttl = gocache.NoExpiration
	}
	return &Server{
		ds:    ds,
		opts:  opts,
		cache: gocache.New(ttl, opts.CacheCleanup),
		log:   zap.L().With(zap.String("component", "server")),
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if len(s.opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/counties", s.handleCounties)
		r.Get("/lookup", s.handleLookup)
		r.Get("/autocomplete", s.handleAutocomplete)
		r.Get("/legend", s.handleLegend)
	})

	if s.opts.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.opts.StaticDir)))
	}
	return r
}

// ListenAndServe serves on port until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("server shutdown", zap.Error(err))
		}
	}()

	s.log.Info("starting server",
		zap.String("addr", addr),
		zap.String("dataset", s.ds.ID.String()),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return eris.Wrap(err, "server: listen")
	}
	<-done
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
