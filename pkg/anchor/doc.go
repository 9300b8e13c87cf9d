// Package anchor implements the comment anchoring and remapping engine.
//
// A comment is bound to a note through an Anchor: a half-open rune range
// [From, To) over the note content, validated against a revision counter.
// When the content is edited out from under an anchor, Remap slides the
// range across the edit and reclassifies the comment's fidelity as
// attached, stale, or detached. The engine never mutates its inputs and
// never performs I/O; the store layer owns persistence and calls in here
// on every content write.
//
// Known limitation, by contract: any content transition is collapsed into
// a single contiguous edit region (see DeriveEdits). Callers depend on the
// conservative staleness this produces; do not replace it with a general
// multi-hunk diff.
package anchor
