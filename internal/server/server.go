// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/sensei/internal/coach"
	"github.com/abhisek/sensei/internal/i18n"
	"github.com/abhisek/sensei/internal/server/middleware"
	"github.com/abhisek/sensei/internal/server/respond"
	"github.com/abhisek/sensei/internal/store"
)

// Deps are the collaborators the handlers call into.
type Deps struct {
	Analyzer *coach.Analyzer
	// Analyses may be nil, in which case history routes answer 503.
	Analyses store.AnalysisRepo
	Locale   i18n.Locale
	// ImageQuality re-encodes uploaded images; zero keeps them as sent.
	ImageQuality float64
	Logger       *slog.Logger
}

// NewRouter constructs the gin engine with middleware and routes registered.
func NewRouter(d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if !d.Locale.Valid() {
		d.Locale = i18n.Default
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(d.Logger),
		middleware.Recovery(d.Logger),
	)

	h := &handler{deps: d}

	api := r.Group("/api/v1")
	api.GET("/health", h.health)
	api.GET("/techniques", h.techniques)
	api.POST("/metrics", h.metrics)
	api.POST("/prompts", h.prompt)
	api.POST("/analyses", h.analyze)
	api.GET("/analyses", h.listAnalyses)
	api.GET("/analyses/:id", h.getAnalysis)
	api.GET("/analyses/:id/audio", h.getAudio)

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})
	return r
}

// Serve runs the API on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
