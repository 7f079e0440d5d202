// Package registry implements the file registry: the upload
// conflict-resolution protocol and the category-scoped listing, built on an
// object-storage gateway.
package registry

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mediakeep/mediakeep"
)

// Service implements mediakeep.FileService over an ObjectStorage.
type Service struct {
	storage mediakeep.ObjectStorage
	logger  *slog.Logger
}

var _ mediakeep.FileService = (*Service)(nil)

// NewService creates a file registry backed by the given storage gateway.
func NewService(storage mediakeep.ObjectStorage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Upload validates and stores one file. The sequence is fixed: field
// presence, category normalization, content-type policy, key derivation,
// collision probe, write. The collision probe is an explicit Exists call
// against storage rather than a client-side listing compare, so concurrent
// uploads from other sessions are caught too. With Overwrite set the probe
// is skipped and the write lands last-writer-wins.
func (s *Service) Upload(ctx context.Context, in mediakeep.UploadInput) (*mediakeep.FileRecord, error) {
	switch {
	case in.Category == "":
		return nil, mediakeep.MissingField("type")
	case in.Name == "":
		return nil, mediakeep.MissingField("name")
	case len(in.Payload) == 0:
		return nil, mediakeep.MissingField("base64")
	case in.ContentType == "":
		return nil, mediakeep.MissingField("mimetype")
	}

	cat, err := mediakeep.ParseCategory(in.Category)
	if err != nil {
		return nil, err
	}

	if !cat.Allows(in.ContentType) {
		return nil, mediakeep.TypeNotAllowed(in.ContentType, cat)
	}

	name := mediakeep.SanitizeName(in.Name)
	key := mediakeep.DeriveKey(cat, in.Name)

	if !in.Overwrite {
		exists, err := s.storage.Exists(ctx, key)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, mediakeep.Conflict("file %q already exists in %s", name, cat)
		}
	}

	if err := s.storage.Put(ctx, key, bytes.NewReader(in.Payload), in.ContentType); err != nil {
		return nil, err
	}

	s.logger.Info("file uploaded",
		slog.String("key", key),
		slog.String("content_type", in.ContentType),
		slog.Int("size", len(in.Payload)),
		slog.Bool("overwrite", in.Overwrite),
	)

	return &mediakeep.FileRecord{
		Name:        name,
		Category:    cat,
		ContentType: in.ContentType,
		URL:         s.storage.PublicURL(key),
	}, nil
}

// List maps the storage listing for a category to file records. The listing
// is a snapshot and may lag a just-completed upload.
func (s *Service) List(ctx context.Context, cat mediakeep.Category) ([]*mediakeep.FileRecord, error) {
	objects, err := s.storage.List(ctx, cat.Prefix())
	if err != nil {
		return nil, err
	}

	records := make([]*mediakeep.FileRecord, 0, len(objects))
	for _, obj := range objects {
		name := strings.TrimPrefix(obj.Key, cat.Prefix())
		if name == "" {
			// Folder placeholder objects carry the bare prefix as key.
			continue
		}
		records = append(records, &mediakeep.FileRecord{
			Name:         name,
			Category:     cat,
			Size:         obj.Size,
			LastModified: obj.LastModified,
			URL:          s.storage.PublicURL(obj.Key),
		})
	}

	return records, nil
}

// SignedURL mints a time-bounded read URL for one file.
func (s *Service) SignedURL(ctx context.Context, cat mediakeep.Category, filename string, ttl time.Duration) (string, error) {
	return s.storage.SignedURL(ctx, cat.Prefix()+filename, ttl)
}

// Delete removes one file. Deleting an absent key is not an error, which
// keeps the replace flow's cleanup idempotent.
func (s *Service) Delete(ctx context.Context, cat mediakeep.Category, filename string) error {
	key := cat.Prefix() + filename
	if err := s.storage.Delete(ctx, key); err != nil {
		return err
	}
	s.logger.Info("file deleted", slog.String("key", key))
	return nil
}

// DeleteAll lists the category and deletes each object. Partial failure is
// surfaced as the count of successful deletes alongside the first error.
func (s *Service) DeleteAll(ctx context.Context, cat mediakeep.Category) (int, error) {
	objects, err := s.storage.List(ctx, cat.Prefix())
	if err != nil {
		return 0, err
	}

	deleted := 0
	var firstErr error
	for _, obj := range objects {
		if err := s.storage.Delete(ctx, obj.Key); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			s.logger.Error("failed to delete object",
				slog.String("key", obj.Key),
				slog.String("error", err.Error()),
			)
			continue
		}
		deleted++
	}

	s.logger.Info("category cleared",
		slog.String("category", cat.String()),
		slog.Int("deleted", deleted),
		slog.Int("listed", len(objects)),
	)

	return deleted, firstErr
}
