// Package api assembles the compute API: a stateless HTTP surface over
// the dedupe and rules engines. Persistence stays with the dashboard
// backend; every request carries the data it wants evaluated.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vishalnatekar/myfinancepal/internal/api/dto"
	"github.com/vishalnatekar/myfinancepal/internal/api/handlers"
	"github.com/vishalnatekar/myfinancepal/internal/api/middleware"
	"github.com/vishalnatekar/myfinancepal/internal/domain/dedupe"
	"github.com/vishalnatekar/myfinancepal/internal/domain/rules"
)

// Config holds server configuration.
type Config struct {
	Port           string
	AllowedOrigins []string
}

// Server is the compute API server.
type Server struct {
	config Config
	router *gin.Engine
	logger *slog.Logger
	http   *http.Server
}

// NewServer creates a server wired to the given engines.
func NewServer(config Config, detector *dedupe.Detector, engine *rules.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("handler panicked", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.InternalError())
	}))
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s := &Server{
		config: config,
		router: router,
		logger: logger,
	}
	s.registerRoutes(detector, engine)
	return s
}

func (s *Server) registerRoutes(detector *dedupe.Detector, engine *rules.Engine) {
	health := handlers.NewHealthHandler()
	dedupeHandler := handlers.NewDedupeHandler(detector, s.logger)
	rulesHandler := handlers.NewRulesHandler(engine, s.logger)

	s.router.GET("/health", health.Check)

	api := s.router.Group("/api")
	{
		dd := api.Group("/dedupe")
		{
			dd.POST("/detect", dedupeHandler.Detect)
			dd.POST("/batch", dedupeHandler.Batch)
			dd.POST("/resolve", dedupeHandler.Resolve)
		}

		rl := api.Group("/rules")
		{
			rl.POST("/match", rulesHandler.Match)
			rl.POST("/test", rulesHandler.Test)
			rl.POST("/validate", rulesHandler.Validate)
			rl.POST("/stats", rulesHandler.Stats)
		}
	}
}

// Router exposes the underlying gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start begins serving and blocks until the listener fails or the
// server is shut down.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:              ":" + s.config.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("starting compute API", "port", s.config.Port)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
