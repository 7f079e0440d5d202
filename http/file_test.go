package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediakeep/mediakeep"
	"github.com/mediakeep/mediakeep/mock"
)

func newTestServer(fs mediakeep.FileService) *Server {
	return NewServer(Config{
		Addr:        ":0",
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		FileService: fs,
	})
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func TestWelcome(t *testing.T) {
	s := newTestServer(&mock.FileService{})

	rec := doRequest(s, http.MethodGet, "/api", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome to the Media API")
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(&mock.FileService{})

	rec := doRequest(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUploadFile(t *testing.T) {
	var got mediakeep.UploadInput
	fs := &mock.FileService{
		UploadFn: func(ctx context.Context, in mediakeep.UploadInput) (*mediakeep.FileRecord, error) {
			got = in
			return &mediakeep.FileRecord{
				Name:     "photo.jpg",
				Category: mediakeep.CategoryImages,
				URL:      "https://bucket.s3.us-east-1.amazonaws.com/images/photo.jpg",
			}, nil
		},
	}
	s := newTestServer(fs)

	payload := base64.StdEncoding.EncodeToString([]byte("image bytes"))
	body := `{"type":"images","name":"photo.jpg","base64":"` + payload + `","mimetype":"image/jpeg"}`

	rec := doRequest(s, http.MethodPost, "/api/upload", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp UploadFileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "File uploaded successfully", resp.Message)
	assert.Contains(t, resp.URL, "images/photo.jpg")

	assert.Equal(t, "images", got.Category)
	assert.Equal(t, "photo.jpg", got.Name)
	assert.Equal(t, []byte("image bytes"), got.Payload)
	assert.Equal(t, "image/jpeg", got.ContentType)
	assert.False(t, got.Overwrite)
}

func TestUploadFileMissingField(t *testing.T) {
	fs := &mock.FileService{
		UploadFn: func(ctx context.Context, in mediakeep.UploadInput) (*mediakeep.FileRecord, error) {
			return nil, mediakeep.MissingField("name")
		},
	}
	s := newTestServer(fs)

	rec := doRequest(s, http.MethodPost, "/api/upload", `{"type":"images"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, mediakeep.EMISSINGFIELD, resp.Error)
	assert.Contains(t, resp.Message, "required")
}

func TestUploadFileMalformedBase64(t *testing.T) {
	s := newTestServer(&mock.FileService{})

	body := `{"type":"images","name":"photo.jpg","base64":"!!not base64!!","mimetype":"image/jpeg"}`
	rec := doRequest(s, http.MethodPost, "/api/upload", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, mediakeep.EINVALID, resp.Error)
}

func TestUploadFileConflict(t *testing.T) {
	fs := &mock.FileService{
		UploadFn: func(ctx context.Context, in mediakeep.UploadInput) (*mediakeep.FileRecord, error) {
			return nil, mediakeep.Conflict("file %q already exists in images", in.Name)
		},
	}
	s := newTestServer(fs)

	payload := base64.StdEncoding.EncodeToString([]byte("image bytes"))
	body := `{"type":"images","name":"photo.jpg","base64":"` + payload + `","mimetype":"image/jpeg"}`

	rec := doRequest(s, http.MethodPost, "/api/upload", body)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, mediakeep.ECONFLICT, resp.Error)
}

func TestUploadFileStorageDown(t *testing.T) {
	fs := &mock.FileService{
		UploadFn: func(ctx context.Context, in mediakeep.UploadInput) (*mediakeep.FileRecord, error) {
			return nil, mediakeep.Unavailable("storage unavailable", nil)
		},
	}
	s := newTestServer(fs)

	payload := base64.StdEncoding.EncodeToString([]byte("image bytes"))
	body := `{"type":"images","name":"photo.jpg","base64":"` + payload + `","mimetype":"image/jpeg"}`

	rec := doRequest(s, http.MethodPost, "/api/upload", body)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code,
		"outage must not look like a conflict")
}

func TestListFiles(t *testing.T) {
	size := int64(2048)
	modified := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fs := &mock.FileService{
		ListFn: func(ctx context.Context, cat mediakeep.Category) ([]*mediakeep.FileRecord, error) {
			assert.Equal(t, mediakeep.CategoryImages, cat)
			return []*mediakeep.FileRecord{
				{Name: "photo.jpg", Category: cat, Size: &size, LastModified: &modified, URL: "https://cdn/images/photo.jpg"},
				{Name: "scan.png", Category: cat, URL: "https://cdn/images/scan.png"},
			}, nil
		},
	}
	s := newTestServer(fs)

	rec := doRequest(s, http.MethodGet, "/api/all/images", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "photo.jpg", items[0]["name"])
	assert.Equal(t, float64(2048), items[0]["size"])
	_, hasSize := items[1]["size"]
	assert.False(t, hasSize, "unknown size is omitted, not zero")
}

func TestListFilesUnknownCategory(t *testing.T) {
	s := newTestServer(&mock.FileService{})

	rec := doRequest(s, http.MethodGet, "/api/all/archives", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, mediakeep.EINVALIDCATEGORY, resp.Error)
}

func TestGetFileURL(t *testing.T) {
	fs := &mock.FileService{
		SignedURLFn: func(ctx context.Context, cat mediakeep.Category, filename string, ttl time.Duration) (string, error) {
			assert.Equal(t, mediakeep.CategoryVideos, cat)
			assert.Equal(t, "clip.mp4", filename)
			assert.Equal(t, time.Hour, ttl)
			return "https://bucket.s3.amazonaws.com/videos/clip.mp4?X-Amz-Expires=3600", nil
		},
	}
	s := newTestServer(fs)

	rec := doRequest(s, http.MethodGet, "/api/videos/clip.mp4", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp URLResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.URL, "X-Amz-Expires")
}

func TestDeleteFile(t *testing.T) {
	deleted := ""
	fs := &mock.FileService{
		DeleteFn: func(ctx context.Context, cat mediakeep.Category, filename string) error {
			deleted = cat.Prefix() + filename
			return nil
		},
	}
	s := newTestServer(fs)

	rec := doRequest(s, http.MethodDelete, "/api/audio/song.mp3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/song.mp3", deleted)

	var resp MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "File deleted successfully", resp.Message)
}

func TestDeleteAllFiles(t *testing.T) {
	fs := &mock.FileService{
		DeleteAllFn: func(ctx context.Context, cat mediakeep.Category) (int, error) {
			return 3, nil
		},
	}
	s := newTestServer(fs)

	rec := doRequest(s, http.MethodDelete, "/api/all/documents", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DeleteAllResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, "Deleted 3 files", resp.Message)
}

func TestDeleteAllFilesEmpty(t *testing.T) {
	s := newTestServer(&mock.FileService{})

	rec := doRequest(s, http.MethodDelete, "/api/all/documents", "")
	require.Equal(t, http.StatusOK, rec.Code, "zero files is a normal outcome")

	var resp DeleteAllResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)
	assert.Equal(t, "No files found for this type", resp.Message)
}

func TestDeleteAllFilesPartialFailure(t *testing.T) {
	fs := &mock.FileService{
		DeleteAllFn: func(ctx context.Context, cat mediakeep.Category) (int, error) {
			return 2, mediakeep.Unavailable("storage unavailable", nil)
		},
	}
	s := newTestServer(fs)

	rec := doRequest(s, http.MethodDelete, "/api/all/documents", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
