package anchor

import "time"

// Status is a comment's fidelity after the latest normalization pass.
// It is derived, never set directly: clients may supply an initial hint,
// but every normalize/remap recomputes it.
type Status string

const (
	// StatusAttached: the range is non-degenerate and the content under it
	// is confirmed intact (or unverifiable, treated optimistically).
	StatusAttached Status = "attached"

	// StatusStale: the range survived but the text under it changed or was
	// directly touched by an edit. Degraded, not destroyed; the user is
	// invited to re-anchor manually.
	StatusStale Status = "stale"

	// StatusDetached: the range collapsed to zero width because the
	// anchored text was deleted.
	StatusDetached Status = "detached"
)

// valid reports whether s is one of the three known statuses.
func (s Status) valid() bool {
	return s == StatusAttached || s == StatusStale || s == StatusDetached
}

// Comment is a free-text note pinned to a range of a note's content.
// An empty Author means anonymous.
type Comment struct {
	ID        string    `yaml:"id" json:"id"`
	Author    string    `yaml:"author,omitempty" json:"author,omitempty"`
	CreatedAt time.Time `yaml:"createdAt" json:"createdAt"`
	Body      string    `yaml:"body" json:"body"`
	Status    Status    `yaml:"status" json:"status"`
	Anchor    Anchor    `yaml:"anchor" json:"anchor"`
}

// classify is the single status decision point. There is no transition
// table anywhere else: status is a pure function of the remapped range,
// the touched flag, and the quote-hash check.
func classify(from, to int, touched, hashOK bool) Status {
	switch {
	case to <= from:
		return StatusDetached
	case touched:
		return StatusStale
	case !hashOK:
		return StatusStale
	default:
		return StatusAttached
	}
}
