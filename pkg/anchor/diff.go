package anchor

// EditOp describes one contiguous replacement in a content transition:
// the DeleteLen runes starting at At (an offset into the old text) are
// replaced by InsertLen new runes.
type EditOp struct {
	At        int
	DeleteLen int
	InsertLen int
}

// DeriveEdits reduces an old/new content pair to at most one EditOp,
// bounded by the longest unchanged prefix and suffix.
//
// This is deliberately not a general diff. Collapsing the whole change
// into one region is O(n) and exact for interactive typing, paste, and
// selection-replace edits; an edit that touches two unrelated regions is
// treated as one large replacement spanning both, so comments between
// them go stale even when their literal text is untouched. Callers depend
// on that conservative behavior.
func DeriveEdits(before, after string) []EditOp {
	if before == after {
		return nil
	}

	b := []rune(before)
	a := []rune(after)

	prefix := commonPrefixLen(b, a)
	suffix := commonSuffixLen(b[prefix:], a[prefix:])

	deleteLen := len(b) - prefix - suffix
	insertLen := len(a) - prefix - suffix
	if deleteLen == 0 && insertLen == 0 {
		// Unreachable given the equality check above, but guard anyway.
		return nil
	}

	return []EditOp{{At: prefix, DeleteLen: deleteLen, InsertLen: insertLen}}
}
