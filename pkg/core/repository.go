package core

import "context"

// Repository defines the contract for storing and retrieving notes.
// Adhering to this interface allows the core to be independent of the
// underlying storage mechanism (Filesystem, SQL, S3, etc).
//
// A Note is persisted as one value: content, comments, and the revision
// counter travel together, so a Save either lands the complete next state
// or nothing.
type Repository interface {
	// Save persists a note. It creates if not exists, or updates if it does.
	Save(ctx context.Context, n Note) error

	// Get retrieves a note by its ID.
	Get(ctx context.Context, id string) (Note, error)

	// List returns all available notes.
	List(ctx context.Context) ([]Note, error)

	// Delete removes a note by its ID, comments included.
	Delete(ctx context.Context, id string) error

	// Initialize ensures the underlying storage is ready (e.g. create
	// directories, schema migration).
	Initialize(ctx context.Context) error
}

// Watchable defines an interface for repositories that can emit change
// events (e.g. filesystem notifications).
type Watchable interface {
	// Watch observes changes matching the glob pattern until ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
