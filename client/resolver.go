package client

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mediakeep/mediakeep"
)

// State is the resolver's position in the upload dialog flow.
type State string

const (
	StateIdle      State = "idle"
	StateUploading State = "uploading"
	StateDuplicate State = "duplicate_detected"
	StateRenaming  State = "renaming"
	StateReplacing State = "replacing"
)

// ConflictSession holds the pending upload between a duplicate rejection and
// the user's resolution choice. Destroyed on any resolution or cancel.
type ConflictSession struct {
	ID          uuid.UUID
	Category    mediakeep.Category
	Name        string
	Payload     []byte
	ContentType string

	// ProposedName is the machine-suggested unique name. The user may
	// edit it before confirming a rename.
	ProposedName string
}

// API is the slice of the registry client the resolver drives.
// *Client satisfies it.
type API interface {
	Lister
	Upload(ctx context.Context, in mediakeep.UploadInput) (string, error)
	Delete(ctx context.Context, category mediakeep.Category, filename string) error
}

// Resolver drives one upload at a time through the conflict dialog flow:
//
//	Idle -> Uploading -> success -> Idle
//	                  -> duplicate -> Renaming  -> Idle
//	                               -> Replacing -> Idle
//	                               -> Cancel    -> Idle
//
// A duplicate is detected either by the case-insensitive pre-check against
// the cached listing or by the server's conflict response.
type Resolver struct {
	api      API
	snapshot *Snapshot
	logger   *slog.Logger

	mu      sync.Mutex
	state   State
	session *ConflictSession
}

// NewResolver creates a resolver over the given API client.
func NewResolver(api API, snapshot *Snapshot, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		api:      api,
		snapshot: snapshot,
		logger:   logger,
		state:    StateIdle,
	}
}

// State returns the current dialog state.
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Session returns the pending conflict session, or nil outside a duplicate.
func (r *Resolver) Session() *ConflictSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session
}

// Upload sends one file. On a name collision it parks the payload in a
// conflict session, moves to StateDuplicate, and returns ECONFLICT; the
// caller then picks Rename, Replace, or Cancel.
func (r *Resolver) Upload(ctx context.Context, category mediakeep.Category, name string, payload []byte, contentType string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateIdle {
		return "", mediakeep.Invalid("an upload is already in progress")
	}
	r.state = StateUploading

	// Pre-check against the last known listing saves the round trip for
	// the common duplicate. The listing may lag, so a miss here still goes
	// through the server's own collision probe.
	if known, err := r.snapshot.HasName(ctx, category, name); err == nil && known {
		return "", r.duplicate(category, name, payload, contentType)
	}

	url, err := r.api.Upload(ctx, mediakeep.UploadInput{
		Category:    category.String(),
		Name:        name,
		Payload:     payload,
		ContentType: contentType,
	})
	if err != nil {
		if mediakeep.IsErrorCode(err, mediakeep.ECONFLICT) {
			return "", r.duplicate(category, name, payload, contentType)
		}
		r.state = StateIdle
		return "", err
	}

	r.snapshot.Invalidate(category)
	r.state = StateIdle
	return url, nil
}

// duplicate parks the payload and reports the collision. Caller holds the lock.
func (r *Resolver) duplicate(category mediakeep.Category, name string, payload []byte, contentType string) error {
	r.session = &ConflictSession{
		ID:           uuid.New(),
		Category:     category,
		Name:         name,
		Payload:      payload,
		ContentType:  contentType,
		ProposedName: mediakeep.RenameSuggestion(name, time.Now()),
	}
	r.state = StateDuplicate
	r.logger.Info("upload conflict",
		slog.String("category", category.String()),
		slog.String("name", name),
		slog.String("session_id", r.session.ID.String()),
	)
	return mediakeep.Conflict("file %q already exists in %s", name, category)
}

// Rename re-uploads the pending payload under newName; empty newName uses
// the machine suggestion. On failure the session survives so the user can
// try again.
func (r *Resolver) Rename(ctx context.Context, newName string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateDuplicate || r.session == nil {
		return "", mediakeep.Invalid("no pending upload conflict")
	}
	if newName == "" {
		newName = r.session.ProposedName
	}
	r.state = StateRenaming

	url, err := r.api.Upload(ctx, mediakeep.UploadInput{
		Category:    r.session.Category.String(),
		Name:        newName,
		Payload:     r.session.Payload,
		ContentType: r.session.ContentType,
	})
	if err != nil {
		r.state = StateDuplicate
		return "", err
	}

	r.snapshot.Invalidate(r.session.Category)
	r.session = nil
	r.state = StateIdle
	return url, nil
}

// Replace deletes the existing file and re-uploads the pending payload under
// the same name. Delete-then-put is not atomic: a failed upload after a
// successful delete loses the prior file, so confirmed must be set
// explicitly. On failure the session survives.
func (r *Resolver) Replace(ctx context.Context, confirmed bool) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateDuplicate || r.session == nil {
		return "", mediakeep.Invalid("no pending upload conflict")
	}
	if !confirmed {
		return "", mediakeep.Invalid("replace is destructive and requires confirmation")
	}
	r.state = StateReplacing

	if err := r.api.Delete(ctx, r.session.Category, r.session.Name); err != nil {
		r.state = StateDuplicate
		return "", err
	}

	url, err := r.api.Upload(ctx, mediakeep.UploadInput{
		Category:    r.session.Category.String(),
		Name:        r.session.Name,
		Payload:     r.session.Payload,
		ContentType: r.session.ContentType,
		Overwrite:   true,
	})
	if err != nil {
		// The old object is already gone. Keep the session so the user
		// can retry the upload and recover.
		r.logger.Error("replace lost prior file",
			slog.String("name", r.session.Name),
			slog.String("error", err.Error()),
		)
		r.state = StateDuplicate
		return "", err
	}

	r.snapshot.Invalidate(r.session.Category)
	r.session = nil
	r.state = StateIdle
	return url, nil
}

// Cancel discards the pending payload and returns to Idle. No partial
// writes occur on a pure cancel.
func (r *Resolver) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = nil
	r.state = StateIdle
}
