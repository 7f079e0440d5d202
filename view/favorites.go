package view

import (
	"sync"

	"github.com/mediakeep/mediakeep"
)

// Favorites is the session-scoped favorite side-table, keyed by file key.
// It lives only in client memory: nothing here is synchronized to the
// server, and the table starts empty on every reload. Annotations survive
// re-filtering and re-sorting within a session because the table outlives
// individual derivation passes.
type Favorites struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

// NewFavorites creates an empty side-table.
func NewFavorites() *Favorites {
	return &Favorites{keys: make(map[string]struct{})}
}

// Toggle flips the favorite flag for a key and returns the new state.
func (f *Favorites) Toggle(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.keys[key]; ok {
		delete(f.keys, key)
		return false
	}
	f.keys[key] = struct{}{}
	return true
}

// IsFavorite reports whether a key is marked.
func (f *Favorites) IsFavorite(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.keys[key]
	return ok
}

// Annotate merges the favorite flags into listing records. Called at
// render/query time after derivation; the flag never affects filter or sort.
func (f *Favorites) Annotate(records []*mediakeep.FileRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range records {
		_, ok := f.keys[rec.Key()]
		rec.Favorite = ok
	}
}

// Reset clears the table, mirroring a full page reload.
func (f *Favorites) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = make(map[string]struct{})
}
