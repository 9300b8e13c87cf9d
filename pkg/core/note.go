package core

import (
	"fmt"

	"github.com/aretw0/margin/pkg/anchor"
)

// Metadata represents the flexible key-value pairs associated with a note
// (YAML frontmatter in the filesystem adapter).
type Metadata map[string]any

// Note is the central entity of the domain: a piece of plain text plus the
// comments anchored into it. It is agnostic to storage format.
//
// CommentRev is a monotonic counter over Content. It starts at 0, advances
// exactly once per content-changing edit, and arbitrates optimistic
// concurrency for new comments: a client must declare the revision it last
// observed, and the service rejects the request when it disagrees.
type Note struct {
	ID         string
	Metadata   Metadata
	Content    string
	CommentRev int
	Comments   []anchor.Comment
}

// EventType represents the type of change in the vault.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the vault.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

// String implements lifecycle.Event so repository events can be bridged
// into a lifecycle-managed pipeline.
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}

type contextKey string

// ChangeReasonKey is the context key for passing specific change reasons
// during Save/Delete operations.
const ChangeReasonKey contextKey = "change_reason"
