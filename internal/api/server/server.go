package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"echonote/internal/api/middleware"
	"echonote/internal/api/v1/routes"
	"echonote/internal/api/v1/services"
	"echonote/internal/app/pipeline"
)

// Config holds the HTTP server settings.
type Config struct {
	Port        int
	Development bool
}

// Server hosts the read-and-manage API over the note pipeline. Capture and
// playback stay on the CLI; the server only exposes stored notes.
type Server struct {
	config Config
	engine *gin.Engine
	logger *slog.Logger
}

func New(config Config, coordinator *pipeline.Coordinator, logger *slog.Logger) *Server {
	if !config.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.StructuredLogging(logger))
	engine.Use(middleware.ErrorHandler(logger))
	engine.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	noteService := services.NewNoteService(coordinator.Notes(), coordinator)
	routes.Setup(engine.Group("/api/v1"), noteService)

	return &Server{
		config: config,
		engine: engine,
		logger: logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("shutting down HTTP server")
	return srv.Shutdown(shutdownCtx)
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
