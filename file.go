package mediakeep

import (
	"context"
	"time"
)

// FileRecord is the client-visible description of a stored file. It is
// derived from a storage listing, never persisted. Size and LastModified are
// nil when the backend listing does not supply them; callers must treat
// absence as "unknown", not zero.
type FileRecord struct {
	Name         string     `json:"name"`
	Category     Category   `json:"-"`
	ContentType  string     `json:"contentType,omitempty"`
	Size         *int64     `json:"size,omitempty"`
	LastModified *time.Time `json:"lastModified,omitempty"`
	URL          string     `json:"url"`

	// Favorite is a session-scoped client annotation. It is never stored
	// server-side and is lost on reload.
	Favorite bool `json:"favorite,omitempty"`
}

// Key returns the storage key the record corresponds to.
func (f *FileRecord) Key() string {
	return f.Category.Prefix() + f.Name
}

// UploadInput carries one upload request through the validation sequence.
// Category is the raw client-supplied name; normalization happens inside
// Upload.
type UploadInput struct {
	Category    string
	Name        string
	Payload     []byte
	ContentType string

	// Overwrite skips the collision probe. The replace flow sets it after
	// the user has confirmed the destructive intent.
	Overwrite bool
}

// FileService defines the file registry operations.
type FileService interface {
	// Upload validates and stores a file. The sequence is fixed: field
	// presence, category, content type, key derivation, collision probe,
	// write. Returns ECONFLICT when the derived key already exists and
	// Overwrite is unset.
	Upload(ctx context.Context, in UploadInput) (*FileRecord, error)

	// List returns the files of a category as seen by the most recent
	// storage listing. The listing may lag recent writes.
	List(ctx context.Context, cat Category) ([]*FileRecord, error)

	// SignedURL mints a time-bounded read URL for a single file. Expiry is
	// advisory to the caller and enforced by the backend.
	SignedURL(ctx context.Context, cat Category, filename string, ttl time.Duration) (string, error)

	// Delete removes one file. Deleting an absent key is not an error.
	Delete(ctx context.Context, cat Category, filename string) error

	// DeleteAll removes every file in a category and returns the number of
	// successful deletes. Partial failure surfaces as a short count plus
	// the error, never silently.
	DeleteAll(ctx context.Context, cat Category) (int, error)
}
