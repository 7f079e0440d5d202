package client

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/mediakeep/mediakeep"
)

// Snapshot caches the last fetched listing per category. The cache backs the
// duplicate pre-check: the listing may lag recent writes, so a miss there is
// advisory and the server probe remains authoritative.
type Snapshot struct {
	api   Lister
	cache *cache.Cache
}

// Lister fetches a category listing. *Client satisfies it.
type Lister interface {
	List(ctx context.Context, category mediakeep.Category) ([]*mediakeep.FileRecord, error)
}

// NewSnapshot creates a listing cache. Entries expire after ttl; zero means
// 30 seconds.
func NewSnapshot(api Lister, ttl time.Duration) *Snapshot {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Snapshot{
		api:   api,
		cache: cache.New(ttl, 2*ttl),
	}
}

// Get returns the cached listing for the category, fetching on a miss.
func (s *Snapshot) Get(ctx context.Context, category mediakeep.Category) ([]*mediakeep.FileRecord, error) {
	if cached, found := s.cache.Get(category.String()); found {
		return cached.([]*mediakeep.FileRecord), nil
	}
	return s.Refresh(ctx, category)
}

// Refresh fetches the listing and replaces the cached snapshot.
func (s *Snapshot) Refresh(ctx context.Context, category mediakeep.Category) ([]*mediakeep.FileRecord, error) {
	records, err := s.api.List(ctx, category)
	if err != nil {
		return nil, err
	}
	s.cache.Set(category.String(), records, cache.DefaultExpiration)
	return records, nil
}

// Invalidate drops the cached listing for the category. Called after any
// write so the next read hits the server.
func (s *Snapshot) Invalidate(category mediakeep.Category) {
	s.cache.Delete(category.String())
}

// HasName reports whether a file with the given name appears in the last
// known listing, compared case-insensitively.
func (s *Snapshot) HasName(ctx context.Context, category mediakeep.Category, name string) (bool, error) {
	records, err := s.Get(ctx, category)
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if strings.EqualFold(rec.Name, name) {
			return true, nil
		}
	}
	return false, nil
}
