package mock

import (
	"context"
	"io"
	"time"

	"github.com/mediakeep/mediakeep"
)

// Compile-time interface check
var _ mediakeep.ObjectStorage = (*ObjectStorage)(nil)

// ObjectStorage is a mock implementation of mediakeep.ObjectStorage.
type ObjectStorage struct {
	PutFn       func(ctx context.Context, key string, body io.Reader, contentType string) error
	ListFn      func(ctx context.Context, prefix string) ([]mediakeep.ObjectInfo, error)
	ExistsFn    func(ctx context.Context, key string) (bool, error)
	DeleteFn    func(ctx context.Context, key string) error
	SignedURLFn func(ctx context.Context, key string, ttl time.Duration) (string, error)
	PublicURLFn func(key string) string
}

func (s *ObjectStorage) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	if s.PutFn != nil {
		return s.PutFn(ctx, key, body, contentType)
	}
	return nil
}

func (s *ObjectStorage) List(ctx context.Context, prefix string) ([]mediakeep.ObjectInfo, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, prefix)
	}
	return nil, nil
}

func (s *ObjectStorage) Exists(ctx context.Context, key string) (bool, error) {
	if s.ExistsFn != nil {
		return s.ExistsFn(ctx, key)
	}
	return false, nil
}

func (s *ObjectStorage) Delete(ctx context.Context, key string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, key)
	}
	return nil
}

func (s *ObjectStorage) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if s.SignedURLFn != nil {
		return s.SignedURLFn(ctx, key, ttl)
	}
	return "https://mock-storage.example.com/" + key + "?signed=1", nil
}

func (s *ObjectStorage) PublicURL(key string) string {
	if s.PublicURLFn != nil {
		return s.PublicURLFn(key)
	}
	return "https://mock-storage.example.com/" + key
}
