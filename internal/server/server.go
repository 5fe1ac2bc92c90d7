// Package server exposes the interactive single-page cleaning flow over
// HTTP: upload, profile, suggest, clean, export.
package server

import (
	_ "embed"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/datasweep/datasweep-cli/internal/ai"
	"github.com/datasweep/datasweep-cli/internal/clean"
	"github.com/datasweep/datasweep-cli/internal/config"
)

//go:embed index.html
var indexHTML []byte

// Server owns the echo instance and the per-session state records.
type Server struct {
	echo    *echo.Echo
	cfg     *config.Global
	client  *ai.Client
	cleaner *clean.Cleaner
	logger  *zap.SugaredLogger

	mu       sync.Mutex
	sessions map[string]*session
}

func New(cfg *config.Global, client *ai.Client, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &Server{
		echo:     echo.New(),
		cfg:      cfg,
		client:   client,
		cleaner:  clean.New(logger),
		logger:   logger,
		sessions: make(map[string]*session),
	}
	s.echo.HideBanner = true
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())
	s.echo.Use(middleware.Logger())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/", func(c echo.Context) error {
		return c.HTMLBlob(http.StatusOK, indexHTML)
	})
	s.echo.GET("/api/health", s.handleHealth)

	api := s.echo.Group("/api")
	api.POST("/upload", s.handleUpload)
	api.GET("/profile", s.handleProfile)
	api.POST("/suggest", s.handleSuggest)
	api.POST("/clean", s.handleClean)
	api.GET("/export/csv", s.handleExportCSV)
	api.GET("/export/pdf", s.handleExportPDF)
}

// Start blocks serving HTTP on the configured address.
func (s *Server) Start(addr string) error {
	s.logger.Infow("server listening", "addr", addr)
	return s.echo.Start(addr)
}

// Handler exposes the underlying http.Handler (used in tests).
func (s *Server) Handler() http.Handler { return s.echo }

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
