package anchor

// Affinity is the tie-break applied when an edit lands exactly on an
// anchor boundary: does the boundary stick to the text before the edit
// point, or to the text after it?
type Affinity string

const (
	AffinityBefore Affinity = "before"
	AffinityAfter  Affinity = "after"
)

// valid reports whether a is one of the two known affinities.
func (a Affinity) valid() bool {
	return a == AffinityBefore || a == AffinityAfter
}

// TransformOffset maps a single rune offset across one edit.
//
// Offsets strictly before the edit are untouched; offsets strictly past
// the edited region shift by the net length change. On the boundaries the
// affinity decides:
//
//   - exactly at op.At with a pure insertion: "after" hops past the
//     inserted text, "before" stays put (either way the insertion is
//     excluded from one side);
//   - exactly at op.At with a deletion: collapses to op.At regardless;
//   - exactly at the end of the deleted span: "after" includes the
//     replacement, "before" excludes it;
//   - strictly inside the deleted span: collapses to op.At.
func TransformOffset(offset int, aff Affinity, op EditOp) int {
	switch {
	case offset < op.At:
		return offset

	case offset > op.At+op.DeleteLen:
		return offset + (op.InsertLen - op.DeleteLen)

	case offset == op.At:
		if op.DeleteLen == 0 && aff == AffinityAfter {
			return offset + op.InsertLen
		}
		return op.At

	case offset == op.At+op.DeleteLen:
		if aff == AffinityAfter {
			return op.At + op.InsertLen
		}
		return op.At

	default:
		// Strictly inside the deleted span.
		return op.At
	}
}
