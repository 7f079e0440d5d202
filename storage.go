package mediakeep

import (
	"context"
	"io"
	"time"
)

// ObjectInfo describes one object in a storage listing. Size and
// LastModified are nil when the backend does not report them.
type ObjectInfo struct {
	Key          string
	Size         *int64
	LastModified *time.Time
}

// ObjectStorage defines the operations the registry needs from an object
// store. Implementations translate every backend failure to EUNAVAILABLE
// with the backend's message attached and never retry on their own.
type ObjectStorage interface {
	// Put writes an object, silently overwriting an existing key. The
	// store offers no create-if-absent, so collision detection is layered
	// in front of this call, not inside it.
	Put(ctx context.Context, key string, body io.Reader, contentType string) error

	// List returns a snapshot of the objects under prefix. The snapshot
	// may lag recent writes; callers must not assume a just-completed Put
	// is visible in the immediately following List.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes an object. Deleting an absent key returns nil.
	Delete(ctx context.Context, key string) error

	// SignedURL mints a time-limited read URL for the object.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)

	// PublicURL returns the direct, publicly readable URL for the object.
	PublicURL(key string) string
}
