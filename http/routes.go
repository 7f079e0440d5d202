package http

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes sets up all routes for the server.
// All routes are defined in this single file for easy navigation.
func (s *Server) registerRoutes() {
	// Health check and metrics (public)
	s.echo.GET("/health", s.handleHealthCheck)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// File registry API
	api := s.echo.Group("/api")
	api.GET("", s.handleWelcome)
	api.POST("/upload", s.handleUploadFile)
	api.GET("/all/:category", s.handleListFiles)
	api.DELETE("/all/:category", s.handleDeleteAllFiles)
	api.GET("/:category/:filename", s.handleGetFileURL)
	api.DELETE("/:category/:filename", s.handleDeleteFile)
}
