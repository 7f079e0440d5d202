package http

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/mediakeep/mediakeep"
)

// withTimeout creates a context with a timeout for handler operations.
func withTimeout(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), DefaultTimeout)
}

// requireParam extracts a required route parameter, returning error if empty.
func requireParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if value == "" {
		return "", mediakeep.Invalid("%s is required", name)
	}
	return value, nil
}

// bind binds the request body to a struct and validates it.
func bind(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return mediakeep.Invalid("Invalid request body")
	}
	if err := c.Validate(v); err != nil {
		return mediakeep.Invalid("%s", err.Error())
	}
	return nil
}

// log returns the request-scoped logger.
func (s *Server) log(c echo.Context) *slog.Logger {
	return s.getRequestLogger(c)
}

func (s *Server) handleHealthCheck(c echo.Context) error {
	return RespondOK(c, map[string]string{"status": "ok"})
}

func (s *Server) handleWelcome(c echo.Context) error {
	return RespondOK(c, map[string]string{"message": "Welcome to the Media API using S3"})
}
