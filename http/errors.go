package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mediakeep/mediakeep"
)

// errorStatusCode maps domain error codes to HTTP status codes.
func errorStatusCode(code string) int {
	switch code {
	case mediakeep.ENOTFOUND:
		return http.StatusNotFound
	case mediakeep.EINVALID, mediakeep.EMISSINGFIELD, mediakeep.EINVALIDCATEGORY, mediakeep.ETYPENOTALLOWED:
		return http.StatusBadRequest
	case mediakeep.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case mediakeep.ECONFLICT:
		return http.StatusConflict
	case mediakeep.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse represents the JSON error response format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HandleError converts domain errors to appropriate HTTP responses.
// It logs internal errors and returns user-safe messages.
func HandleError(c echo.Context, logger *slog.Logger, err error) error {
	code := mediakeep.ErrorCode(err)
	message := mediakeep.ErrorMessage(err)
	status := errorStatusCode(code)

	// Log internal errors with full details
	if code == mediakeep.EINTERNAL {
		logger.Error("internal error",
			slog.String("error", err.Error()),
			slog.String("path", c.Path()),
			slog.String("method", c.Request().Method),
		)
		// Don't expose internal error details to clients
		message = "An internal error occurred."
	}

	return c.JSON(status, ErrorResponse{
		Error:   code,
		Message: message,
	})
}
