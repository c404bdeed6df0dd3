package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// Editor abstracts the alarm store commands the transport layer depends on.
type Editor interface {
	Snapshot(ctx context.Context) *domain.Snapshot
	Lookup(ctx context.Context, id string) (*domain.Alarm, bool)
	BeginCreate(ctx context.Context) *domain.Snapshot
	BeginEdit(ctx context.Context, a *domain.Alarm) *domain.Snapshot
	CancelEdit(ctx context.Context) *domain.Snapshot
	UpdateDraft(ctx context.Context, patch *domain.DraftPatch) *domain.Snapshot
	Save(ctx context.Context) *domain.Snapshot
	DeleteAlarm(ctx context.Context, id string) (*domain.Alarm, *domain.Snapshot)
	ToggleAlarm(ctx context.Context, id string) *domain.Snapshot
	SetQuery(ctx context.Context, query string) *domain.Snapshot
	ResolveFromURL(ctx context.Context) *domain.Snapshot
	Search(ctx context.Context) *domain.Snapshot
	SelectCandidate(ctx context.Context, c domain.Candidate) *domain.Snapshot
}

// Uploader abstracts the upload path the transport layer depends on.
type Uploader interface {
	SaveUpload(ctx context.Context, ownerID, filename, payload string) (string, error)
	Discard(ctx context.Context, src *domain.AudioSource) error
}

// Server exposes the alarm store and upload path over an HTTP JSON API.
type Server struct {
	// engine is the gin router serving all routes.
	engine *gin.Engine
	// editor provides the alarm store commands.
	editor Editor
	// uploader provides the audio upload path.
	uploader Uploader
}

// readHeaderTimeout bounds slow-header clients on the listener.
const readHeaderTimeout = 10 * time.Second

// shutdownTimeout bounds the graceful drain on shutdown.
const shutdownTimeout = 5 * time.Second

// NewServer wires the provided services into an HTTP handler.
func NewServer(editor Editor, uploader Uploader) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:   engine,
		editor:   editor,
		uploader: uploader,
	}
	s.setupRoutes()

	return s
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// setupRoutes registers all API routes.
func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", s.HealthCheck)

	api := s.engine.Group("/api")
	{
		api.GET("/state", s.GetState)
		api.POST("/audio/save", s.SaveAudio)
	}

	editor := api.Group("/editor")
	{
		editor.POST("", s.BeginCreate)
		editor.DELETE("", s.CancelEdit)
		editor.PATCH("", s.UpdateDraft)
		editor.POST("/save", s.SaveDraft)
		editor.PUT("/query", s.SetQuery)
		editor.POST("/resolve", s.ResolveFromURL)
		editor.POST("/search", s.Search)
		editor.POST("/select", s.SelectCandidate)
	}

	alarms := api.Group("/alarms")
	{
		alarms.POST("/:id/edit", s.BeginEdit)
		alarms.POST("/:id/toggle", s.ToggleAlarm)
		alarms.DELETE("/:id", s.DeleteAlarm)
	}
}

// Run serves the API until the context is canceled, then drains gracefully.
func (s *Server) Run(ctx context.Context, listenAddress string) error {
	//nolint:exhaustruct // Default server values are fine beyond what we set.
	srv := &http.Server{
		Addr:              listenAddress,
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Done channel is closed after Shutdown finishes to ensure we block
	// until in-flight requests are drained before returning.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorf(ctx, "HTTP server shutdown: %v", err)
		}

		close(done)
	}()

	logger.InfoKV(ctx, "Alarm clock server listening", "listen_address", listenAddress)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve HTTP: %w", err)
	}

	<-done
	logger.Info(ctx, "HTTP server stopped")

	return nil
}
