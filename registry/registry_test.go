package registry

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediakeep/mediakeep"
	"github.com/mediakeep/mediakeep/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validUpload() mediakeep.UploadInput {
	return mediakeep.UploadInput{
		Category:    "images",
		Name:        "photo.jpg",
		Payload:     []byte("jpeg-bytes"),
		ContentType: "image/jpeg",
	}
}

func TestUpload_MissingFields(t *testing.T) {
	svc := NewService(&mock.ObjectStorage{}, testLogger())

	tests := []struct {
		name   string
		mutate func(*mediakeep.UploadInput)
	}{
		{"no category", func(in *mediakeep.UploadInput) { in.Category = "" }},
		{"no name", func(in *mediakeep.UploadInput) { in.Name = "" }},
		{"no payload", func(in *mediakeep.UploadInput) { in.Payload = nil }},
		{"no content type", func(in *mediakeep.UploadInput) { in.ContentType = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validUpload()
			tt.mutate(&in)

			_, err := svc.Upload(context.Background(), in)
			require.Error(t, err)
			assert.Equal(t, mediakeep.EMISSINGFIELD, mediakeep.ErrorCode(err))
		})
	}
}

func TestUpload_UnknownCategory(t *testing.T) {
	svc := NewService(&mock.ObjectStorage{}, testLogger())

	in := validUpload()
	in.Category = "archives"

	_, err := svc.Upload(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, mediakeep.EINVALIDCATEGORY, mediakeep.ErrorCode(err))
}

func TestUpload_CategoryIsCaseInsensitive(t *testing.T) {
	var putKey string
	storage := &mock.ObjectStorage{
		PutFn: func(ctx context.Context, key string, body io.Reader, contentType string) error {
			putKey = key
			return nil
		},
	}
	svc := NewService(storage, testLogger())

	in := validUpload()
	in.Category = "IMAGES"

	_, err := svc.Upload(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "images/photo.jpg", putKey)
}

func TestUpload_TypeNotAllowed(t *testing.T) {
	svc := NewService(&mock.ObjectStorage{}, testLogger())

	in := validUpload()
	in.ContentType = "application/pdf"

	_, err := svc.Upload(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, mediakeep.ETYPENOTALLOWED, mediakeep.ErrorCode(err))
}

func TestUpload_DocumentsAcceptMediaTypes(t *testing.T) {
	svc := NewService(&mock.ObjectStorage{}, testLogger())

	in := validUpload()
	in.Category = "documents"
	in.ContentType = "image/jpeg"

	rec, err := svc.Upload(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, mediakeep.CategoryDocuments, rec.Category)
}

func TestUpload_SanitizesName(t *testing.T) {
	var putKey, putType string
	storage := &mock.ObjectStorage{
		PutFn: func(ctx context.Context, key string, body io.Reader, contentType string) error {
			putKey = key
			putType = contentType
			return nil
		},
	}
	svc := NewService(storage, testLogger())

	in := validUpload()
	in.Name = "my photo (1).jpg"

	rec, err := svc.Upload(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "images/my_photo__1_.jpg", putKey)
	assert.Equal(t, "image/jpeg", putType)
	assert.Equal(t, "my_photo__1_.jpg", rec.Name)
	assert.Equal(t, "https://mock-storage.example.com/images/my_photo__1_.jpg", rec.URL)
}

func TestUpload_Conflict(t *testing.T) {
	putCalled := false
	storage := &mock.ObjectStorage{
		ExistsFn: func(ctx context.Context, key string) (bool, error) { return true, nil },
		PutFn: func(ctx context.Context, key string, body io.Reader, contentType string) error {
			putCalled = true
			return nil
		},
	}
	svc := NewService(storage, testLogger())

	_, err := svc.Upload(context.Background(), validUpload())
	require.Error(t, err)
	assert.Equal(t, mediakeep.ECONFLICT, mediakeep.ErrorCode(err))
	assert.False(t, putCalled, "conflicting upload must not reach the store")
}

func TestUpload_OverwriteSkipsProbe(t *testing.T) {
	probed := false
	storage := &mock.ObjectStorage{
		ExistsFn: func(ctx context.Context, key string) (bool, error) {
			probed = true
			return true, nil
		},
	}
	svc := NewService(storage, testLogger())

	in := validUpload()
	in.Overwrite = true

	_, err := svc.Upload(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, probed)
}

func TestUpload_StorageUnavailable(t *testing.T) {
	storage := &mock.ObjectStorage{
		ExistsFn: func(ctx context.Context, key string) (bool, error) {
			return false, mediakeep.Unavailable("failed to probe object", io.ErrUnexpectedEOF)
		},
	}
	svc := NewService(storage, testLogger())

	_, err := svc.Upload(context.Background(), validUpload())
	require.Error(t, err)
	// Unavailable must stay distinguishable from a duplicate so the caller
	// shows the right dialog.
	assert.Equal(t, mediakeep.EUNAVAILABLE, mediakeep.ErrorCode(err))
}

func TestList(t *testing.T) {
	size := int64(1024)
	modified := time.Date(2025, 5, 20, 8, 30, 0, 0, time.UTC)

	storage := &mock.ObjectStorage{
		ListFn: func(ctx context.Context, prefix string) ([]mediakeep.ObjectInfo, error) {
			assert.Equal(t, "images/", prefix)
			return []mediakeep.ObjectInfo{
				{Key: "images/"},
				{Key: "images/photo.jpg", Size: &size, LastModified: &modified},
				{Key: "images/logo.png"},
			}, nil
		},
	}
	svc := NewService(storage, testLogger())

	records, err := svc.List(context.Background(), mediakeep.CategoryImages)
	require.NoError(t, err)
	require.Len(t, records, 2, "folder placeholder is dropped")

	assert.Equal(t, "photo.jpg", records[0].Name)
	assert.Equal(t, "https://mock-storage.example.com/images/photo.jpg", records[0].URL)
	require.NotNil(t, records[0].Size)
	assert.Equal(t, int64(1024), *records[0].Size)

	assert.Equal(t, "logo.png", records[1].Name)
	assert.Nil(t, records[1].Size, "unknown size stays unknown")
	assert.Nil(t, records[1].LastModified)
}

func TestSignedURL(t *testing.T) {
	storage := &mock.ObjectStorage{
		SignedURLFn: func(ctx context.Context, key string, ttl time.Duration) (string, error) {
			assert.Equal(t, "documents/report.pdf", key)
			assert.Equal(t, time.Hour, ttl)
			return "https://signed.example.com/documents/report.pdf", nil
		},
	}
	svc := NewService(storage, testLogger())

	url, err := svc.SignedURL(context.Background(), mediakeep.CategoryDocuments, "report.pdf", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example.com/documents/report.pdf", url)
}

func TestDeleteAll(t *testing.T) {
	t.Run("empty category is not an error", func(t *testing.T) {
		svc := NewService(&mock.ObjectStorage{}, testLogger())

		count, err := svc.DeleteAll(context.Background(), mediakeep.CategoryDocuments)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("deletes every listed object", func(t *testing.T) {
		var deleted []string
		storage := &mock.ObjectStorage{
			ListFn: func(ctx context.Context, prefix string) ([]mediakeep.ObjectInfo, error) {
				return []mediakeep.ObjectInfo{
					{Key: "audio/a.mp3"},
					{Key: "audio/b.wav"},
				}, nil
			},
			DeleteFn: func(ctx context.Context, key string) error {
				deleted = append(deleted, key)
				return nil
			},
		}
		svc := NewService(storage, testLogger())

		count, err := svc.DeleteAll(context.Background(), mediakeep.CategoryAudio)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Equal(t, []string{"audio/a.mp3", "audio/b.wav"}, deleted)
	})

	t.Run("partial failure reports the success count", func(t *testing.T) {
		storage := &mock.ObjectStorage{
			ListFn: func(ctx context.Context, prefix string) ([]mediakeep.ObjectInfo, error) {
				return []mediakeep.ObjectInfo{
					{Key: "audio/a.mp3"},
					{Key: "audio/b.wav"},
					{Key: "audio/c.aac"},
				}, nil
			},
			DeleteFn: func(ctx context.Context, key string) error {
				if key == "audio/b.wav" {
					return mediakeep.Unavailable("failed to delete object", io.ErrClosedPipe)
				}
				return nil
			},
		}
		svc := NewService(storage, testLogger())

		count, err := svc.DeleteAll(context.Background(), mediakeep.CategoryAudio)
		require.Error(t, err)
		assert.Equal(t, mediakeep.EUNAVAILABLE, mediakeep.ErrorCode(err))
		assert.Equal(t, 2, count)
	})
}
