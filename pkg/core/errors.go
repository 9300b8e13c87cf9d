package core

import "errors"

// Common errors.
var (
	// ErrNoteNotFound is returned when a note ID does not resolve.
	ErrNoteNotFound = errors.New("note not found")

	// ErrCommentNotFound is returned when a comment ID does not resolve
	// within its note.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrRevisionMismatch is the optimistic-concurrency conflict: the
	// revision a client declared for a new comment is not the note's
	// current revision. The caller should re-fetch and retry.
	ErrRevisionMismatch = errors.New("comment revision mismatch")

	// ErrReadOnly is returned by mutating operations when the repository
	// is in read-only mode.
	ErrReadOnly = errors.New("repository is in read-only mode")
)
