package anchor

// Normalize is the one canonical defaulting pass for possibly-partial
// comments. Every entry point that reads a comment from the outside world
// (a sidecar file, a database row, a client request) runs it before
// trusting the fields:
//
//   - missing or unknown affinities fall back to the documented defaults
//     (start=after, end=before);
//   - from/to are clamped into the bounds of content, and a reversed range
//     is collapsed to its start;
//   - quote and quoteHash are backfilled from the current content slice
//     when absent;
//   - a zero/unset anchor rev is backfilled from fallbackRev (comments
//     created before revisioning existed, or with no prior edits);
//   - status is defaulted from range width only when the incoming value is
//     not one of the three valid statuses. An explicit valid status is
//     never overwritten by normalization alone.
func Normalize(content string, c Comment, fallbackRev int) Comment {
	runes := []rune(content)

	if !c.Anchor.Start.valid() {
		c.Anchor.Start = AffinityAfter
	}
	if !c.Anchor.End.valid() {
		c.Anchor.End = AffinityBefore
	}

	c.Anchor.From = clamp(c.Anchor.From, 0, len(runes))
	c.Anchor.To = clamp(c.Anchor.To, 0, len(runes))
	if c.Anchor.To < c.Anchor.From {
		c.Anchor.To = c.Anchor.From
	}

	if c.Anchor.Quote == "" && c.Anchor.To > c.Anchor.From {
		c.Anchor.Quote = string(runes[c.Anchor.From:c.Anchor.To])
	}
	if c.Anchor.QuoteHash == "" && c.Anchor.Quote != "" {
		c.Anchor.QuoteHash = Hash(c.Anchor.Quote)
	}

	if c.Anchor.Rev <= 0 {
		c.Anchor.Rev = max(0, fallbackRev)
	}

	if !c.Status.valid() {
		if c.Anchor.To > c.Anchor.From {
			c.Status = StatusAttached
		} else {
			c.Status = StatusDetached
		}
	}

	return c
}

// Remap applies one content transition to every comment and returns the
// rewritten comments along with the next revision counter.
//
// A no-op transition (before == after) normalizes the comments against the
// current content but does not advance the revision. A content-changing
// transition advances the revision exactly once, slides both anchor
// offsets across the edit honoring their affinities, and reclassifies
// every comment. Malformed comments are normalized defensively rather than
// aborting the batch; Remap never fails.
func Remap(comments []Comment, before, after string, currentRev int) ([]Comment, int) {
	if len(comments) == 0 {
		return comments, max(0, currentRev)
	}

	ops := DeriveEdits(before, after)

	if len(ops) == 0 {
		out := make([]Comment, len(comments))
		for i, c := range comments {
			out[i] = Normalize(after, c, currentRev)
		}
		return out, max(0, currentRev)
	}

	op := ops[0]
	nextRev := max(1, currentRev+1)
	afterRunes := []rune(after)

	out := make([]Comment, len(comments))
	for i, c := range comments {
		n := Normalize(before, c, currentRev)
		origFrom, origTo := n.Anchor.From, n.Anchor.To

		// An edit taints a comment when its deleted span strictly overlaps
		// the original range, or when a pure insertion lands strictly
		// inside it. Edits that merely touch a boundary are decided by
		// affinity alone; they are not tainting.
		touched := rangesOverlap(op.At, op.At+op.DeleteLen, origFrom, origTo) ||
			(op.DeleteLen == 0 && op.At > origFrom && op.At < origTo)

		from := TransformOffset(origFrom, n.Anchor.Start, op)
		to := TransformOffset(origTo, n.Anchor.End, op)
		from = clamp(from, 0, len(afterRunes))
		to = clamp(to, 0, len(afterRunes))

		// Double-check content integrity: a range can survive an edit
		// numerically while the text beneath it was swapped for different
		// text of the same length outside the detected edit window.
		hashOK := true
		if n.Anchor.QuoteHash != "" && to > from {
			hashOK = Hash(string(afterRunes[from:to])) == n.Anchor.QuoteHash
		}

		n.Anchor.From = from
		n.Anchor.To = to
		n.Anchor.Rev = nextRev
		n.Status = classify(from, to, touched, hashOK)
		out[i] = n
	}

	return out, nextRev
}
