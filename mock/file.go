package mock

import (
	"context"
	"time"

	"github.com/mediakeep/mediakeep"
)

// Compile-time interface check
var _ mediakeep.FileService = (*FileService)(nil)

// FileService is a mock implementation of mediakeep.FileService.
type FileService struct {
	UploadFn    func(ctx context.Context, in mediakeep.UploadInput) (*mediakeep.FileRecord, error)
	ListFn      func(ctx context.Context, cat mediakeep.Category) ([]*mediakeep.FileRecord, error)
	SignedURLFn func(ctx context.Context, cat mediakeep.Category, filename string, ttl time.Duration) (string, error)
	DeleteFn    func(ctx context.Context, cat mediakeep.Category, filename string) error
	DeleteAllFn func(ctx context.Context, cat mediakeep.Category) (int, error)
}

func (s *FileService) Upload(ctx context.Context, in mediakeep.UploadInput) (*mediakeep.FileRecord, error) {
	if s.UploadFn != nil {
		return s.UploadFn(ctx, in)
	}
	cat, err := mediakeep.ParseCategory(in.Category)
	if err != nil {
		return nil, err
	}
	name := mediakeep.SanitizeName(in.Name)
	return &mediakeep.FileRecord{
		Name:        name,
		Category:    cat,
		ContentType: in.ContentType,
		URL:         "https://mock-storage.example.com/" + cat.Prefix() + name,
	}, nil
}

func (s *FileService) List(ctx context.Context, cat mediakeep.Category) ([]*mediakeep.FileRecord, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, cat)
	}
	return nil, nil
}

func (s *FileService) SignedURL(ctx context.Context, cat mediakeep.Category, filename string, ttl time.Duration) (string, error) {
	if s.SignedURLFn != nil {
		return s.SignedURLFn(ctx, cat, filename, ttl)
	}
	return "https://mock-storage.example.com/" + cat.Prefix() + filename + "?signed=1", nil
}

func (s *FileService) Delete(ctx context.Context, cat mediakeep.Category, filename string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, cat, filename)
	}
	return nil
}

func (s *FileService) DeleteAll(ctx context.Context, cat mediakeep.Category) (int, error) {
	if s.DeleteAllFn != nil {
		return s.DeleteAllFn(ctx, cat)
	}
	return 0, nil
}
