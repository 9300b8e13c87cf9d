package anchor

import "testing"

func TestTransformOffset(t *testing.T) {
	replace := EditOp{At: 5, DeleteLen: 3, InsertLen: 6} // replace [5,8) with 6 runes
	insert := EditOp{At: 5, DeleteLen: 0, InsertLen: 4}  // pure insertion at 5
	del := EditOp{At: 5, DeleteLen: 3, InsertLen: 0}     // pure deletion of [5,8)

	tests := []struct {
		name   string
		offset int
		aff    Affinity
		op     EditOp
		want   int
	}{
		{name: "BeforeEdit", offset: 2, aff: AffinityAfter, op: replace, want: 2},
		{name: "BeforeEditOtherAffinity", offset: 2, aff: AffinityBefore, op: replace, want: 2},

		{name: "PastEdit", offset: 10, aff: AffinityBefore, op: replace, want: 13},
		{name: "PastDeletion", offset: 10, aff: AffinityAfter, op: del, want: 7},

		// Pure insertion at the offset itself: affinity decides which side
		// of the inserted text the offset lands on.
		{name: "AtInsertionAfter", offset: 5, aff: AffinityAfter, op: insert, want: 9},
		{name: "AtInsertionBefore", offset: 5, aff: AffinityBefore, op: insert, want: 5},

		// At the start of deleted text the offset collapses regardless.
		{name: "AtDeletionStartAfter", offset: 5, aff: AffinityAfter, op: replace, want: 5},
		{name: "AtDeletionStartBefore", offset: 5, aff: AffinityBefore, op: replace, want: 5},

		// Exactly at the end of the deleted region: include or exclude the
		// replacement text.
		{name: "AtDeletionEndAfter", offset: 8, aff: AffinityAfter, op: replace, want: 11},
		{name: "AtDeletionEndBefore", offset: 8, aff: AffinityBefore, op: replace, want: 5},

		// Strictly inside the deleted span collapses to the edit point.
		{name: "InsideDeletion", offset: 6, aff: AffinityAfter, op: replace, want: 5},
		{name: "InsideDeletionBefore", offset: 7, aff: AffinityBefore, op: del, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TransformOffset(tt.offset, tt.aff, tt.op); got != tt.want {
				t.Errorf("TransformOffset(%d, %s, %+v) = %d, want %d",
					tt.offset, tt.aff, tt.op, got, tt.want)
			}
		})
	}
}
