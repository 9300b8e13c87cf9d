package margin

import (
	"log/slog"

	"github.com/aretw0/margin/internal/platform"
	"github.com/aretw0/margin/pkg/anchor"
	"github.com/aretw0/margin/pkg/core"
)

// --- Types ---

// Note is a public alias for the domain note.
type Note = core.Note

// Metadata is a public alias for the note metadata map.
type Metadata = core.Metadata

// Comment is a public alias for an anchored comment.
type Comment = anchor.Comment

// Anchor is a public alias for a comment's position record.
type Anchor = anchor.Anchor

// Range is a public alias for a resolved highlight range.
type Range = anchor.Range

// CommentRequest is a public alias for the comment creation request.
type CommentRequest = core.CommentRequest

// NoteModel is a public alias for the typed note model.
type NoteModel[T any] = platform.NoteModel[T]

// TypedService is a public alias for the typed service wrapper.
type TypedService[T any] = platform.TypedService[T]

// Comment statuses.
const (
	StatusAttached = anchor.StatusAttached
	StatusStale    = anchor.StatusStale
	StatusDetached = anchor.StatusDetached
)

// --- Configuration ---

// Option defines a functional option for configuring Margin.
type Option = platform.Option

// WithAutoInit enables automatic initialization of the vault.
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist ensures the vault must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter selects the storage adapter by name ("fs" or "sqlite").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".margin").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithEventBuffer allows specifying the size of the service event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler registers a callback for watcher errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the sandbox mechanism when running via `go run`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Factory ---

// New creates a new Margin Service.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init initializes a repository explicitly.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// --- Typed Factories ---

// NewTypedService creates a type-safe wrapper around an existing service.
func NewTypedService[T any](svc *core.Service) *platform.TypedService[T] {
	return platform.NewTyped[T](svc)
}

// OpenTypedService simplifies creating a TypedService from a path.
func OpenTypedService[T any](path string, opts ...Option) (*platform.TypedService[T], error) {
	svc, err := New(path, opts...)
	if err != nil {
		return nil, err
	}
	return platform.NewTyped[T](svc), nil
}

// --- Safety & Utils ---

// ResolveVaultPath determines the actual path for the vault based on safety rules.
func ResolveVaultPath(userPath string, forceTemp bool) string {
	return platform.ResolveVaultPath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindVaultRoot recursively looks upwards for a vault root indicator.
func FindVaultRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
