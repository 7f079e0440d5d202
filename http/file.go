package http

import (
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/mediakeep/mediakeep"
)

// UploadFileRequest is the request payload for uploading a file. The payload
// travels as plain base64, no data-URI prefix. Field presence is validated
// by the service so every missing field maps to the same error code.
type UploadFileRequest struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	Base64    string `json:"base64" validate:"omitempty,base64"`
	Mimetype  string `json:"mimetype"`
	Overwrite bool   `json:"overwrite"`
}

// UploadFileResponse is returned on a successful upload.
type UploadFileResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

func (s *Server) handleUploadFile(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	var req UploadFileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	payload, err := base64.StdEncoding.DecodeString(req.Base64)
	if err != nil {
		return mediakeep.Invalid("base64 payload is malformed")
	}

	record, err := s.fileService.Upload(ctx, mediakeep.UploadInput{
		Category:    req.Type,
		Name:        req.Name,
		Payload:     payload,
		ContentType: req.Mimetype,
		Overwrite:   req.Overwrite,
	})
	if err != nil {
		return err
	}

	s.log(c).Info("file uploaded",
		slog.String("key", record.Key()),
		slog.String("content_type", record.ContentType),
	)

	return RespondOK(c, UploadFileResponse{
		Message: "File uploaded successfully",
		URL:     record.URL,
	})
}

func (s *Server) handleListFiles(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	cat, err := categoryParam(c)
	if err != nil {
		return err
	}

	records, err := s.fileService.List(ctx, cat)
	if err != nil {
		return err
	}

	return RespondOK(c, records)
}

// URLResponse carries a signed read URL.
type URLResponse struct {
	URL string `json:"url"`
}

func (s *Server) handleGetFileURL(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	cat, err := categoryParam(c)
	if err != nil {
		return err
	}
	filename, err := requireParam(c, "filename")
	if err != nil {
		return err
	}

	url, err := s.fileService.SignedURL(ctx, cat, filename, s.SignedURLTTL)
	if err != nil {
		return err
	}

	return RespondOK(c, URLResponse{URL: url})
}

// MessageResponse carries a human-readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleDeleteFile(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	cat, err := categoryParam(c)
	if err != nil {
		return err
	}
	filename, err := requireParam(c, "filename")
	if err != nil {
		return err
	}

	if err := s.fileService.Delete(ctx, cat, filename); err != nil {
		return err
	}

	s.log(c).Info("file deleted",
		slog.String("category", cat.String()),
		slog.String("filename", filename),
	)

	return RespondOK(c, MessageResponse{Message: "File deleted successfully"})
}

// DeleteAllResponse reports how many files a category purge removed.
type DeleteAllResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

func (s *Server) handleDeleteAllFiles(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	cat, err := categoryParam(c)
	if err != nil {
		return err
	}

	count, err := s.fileService.DeleteAll(ctx, cat)
	if err != nil {
		// A short count still reaches the caller through the error path
		// logging; the response itself reports the failure.
		s.log(c).Error("delete all incomplete",
			slog.String("category", cat.String()),
			slog.Int("deleted", count),
			slog.String("error", err.Error()),
		)
		return err
	}

	message := fmt.Sprintf("Deleted %d files", count)
	if count == 0 {
		message = "No files found for this type"
	}

	s.log(c).Info("category purged",
		slog.String("category", cat.String()),
		slog.Int("deleted", count),
	)

	return RespondOK(c, DeleteAllResponse{Message: message, Count: count})
}

// categoryParam parses the :category route parameter.
func categoryParam(c echo.Context) (mediakeep.Category, error) {
	raw, err := requireParam(c, "category")
	if err != nil {
		return 0, err
	}
	return mediakeep.ParseCategory(raw)
}
