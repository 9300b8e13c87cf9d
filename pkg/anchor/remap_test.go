package anchor

import (
	"testing"
	"time"
)

// commentOver builds an attached comment anchored to content[from:to).
func commentOver(t *testing.T, content string, from, to, rev int) Comment {
	t.Helper()
	a, err := NewAnchorFromRange(content, from, to, rev)
	if err != nil {
		t.Fatalf("failed to build anchor: %v", err)
	}
	return Comment{
		ID:        "c1",
		Author:    "ada",
		CreatedAt: time.Unix(1700000000, 0),
		Body:      "note to self",
		Status:    StatusAttached,
		Anchor:    a,
	}
}

func TestRemap_NoComments(t *testing.T) {
	out, rev := Remap(nil, "a", "b", 4)
	if len(out) != 0 {
		t.Errorf("expected no comments, got %d", len(out))
	}
	if rev != 4 {
		t.Errorf("rev = %d, want 4", rev)
	}

	if _, rev := Remap(nil, "a", "b", -3); rev != 0 {
		t.Errorf("negative rev must clamp to 0, got %d", rev)
	}
}

func TestRemap_NoOpEdit(t *testing.T) {
	content := "hello world"
	c := commentOver(t, content, 6, 11, 2)

	out, rev := Remap([]Comment{c}, content, content, 2)
	if rev != 2 {
		t.Errorf("no-op edit must not advance revision: rev = %d, want 2", rev)
	}
	if out[0].Status != StatusAttached {
		t.Errorf("status = %s, want attached", out[0].Status)
	}
	if out[0].Anchor.From != 6 || out[0].Anchor.To != 11 {
		t.Errorf("range = [%d,%d), want [6,11)", out[0].Anchor.From, out[0].Anchor.To)
	}

	// Idempotence: a second no-op pass changes nothing.
	again, rev2 := Remap(out, content, content, rev)
	if rev2 != rev || again[0] != out[0] {
		t.Error("no-op remap must be idempotent")
	}
}

func TestRemap_ShiftOnInsertionBefore(t *testing.T) {
	c := commentOver(t, "hello world", 6, 11, 1)

	out, rev := Remap([]Comment{c}, "hello world", "well hello world", 1)
	if rev != 2 {
		t.Errorf("rev = %d, want 2", rev)
	}
	got := out[0]
	if got.Anchor.From != 11 || got.Anchor.To != 16 {
		t.Errorf("range = [%d,%d), want [11,16)", got.Anchor.From, got.Anchor.To)
	}
	if got.Status != StatusAttached {
		t.Errorf("status = %s, want attached", got.Status)
	}
	if got.Anchor.Rev != 2 {
		t.Errorf("anchor rev = %d, want 2", got.Anchor.Rev)
	}
}

func TestRemap_StaleOnInPlaceOverlap(t *testing.T) {
	c := commentOver(t, "hello world", 6, 11, 1)

	out, rev := Remap([]Comment{c}, "hello world", "hello worLd", 1)
	if rev != 2 {
		t.Errorf("rev = %d, want 2", rev)
	}
	if out[0].Status != StatusStale {
		t.Errorf("status = %s, want stale", out[0].Status)
	}
}

func TestRemap_DetachedOnDeletion(t *testing.T) {
	c := commentOver(t, "hello world", 6, 11, 1)

	out, _ := Remap([]Comment{c}, "hello world", "hello ", 1)
	got := out[0]
	if got.Status != StatusDetached {
		t.Errorf("status = %s, want detached", got.Status)
	}
	if got.Anchor.From != 6 || got.Anchor.To != 6 {
		t.Errorf("range = [%d,%d), want collapsed [6,6)", got.Anchor.From, got.Anchor.To)
	}
}

func TestRemap_InteriorInsertionTaints(t *testing.T) {
	// A pure insertion strictly inside the range keeps both offsets
	// computable but still taints the comment.
	c := commentOver(t, "hello world", 6, 11, 1)

	out, _ := Remap([]Comment{c}, "hello world", "hello wormld", 1)
	got := out[0]
	if got.Status != StatusStale {
		t.Errorf("status = %s, want stale", got.Status)
	}
	if got.Anchor.From != 6 || got.Anchor.To != 12 {
		t.Errorf("range = [%d,%d), want [6,12)", got.Anchor.From, got.Anchor.To)
	}
}

func TestRemap_BoundaryInsertionDecidedByAffinity(t *testing.T) {
	// Insertions landing exactly on a boundary are not tainting; the
	// default affinities exclude the inserted text on both sides.
	c := commentOver(t, "hello world", 6, 11, 1)

	t.Run("AtStart", func(t *testing.T) {
		out, _ := Remap([]Comment{c}, "hello world", "hello big world", 1)
		got := out[0]
		if got.Status != StatusAttached {
			t.Errorf("status = %s, want attached", got.Status)
		}
		if got.Anchor.From != 10 || got.Anchor.To != 15 {
			t.Errorf("range = [%d,%d), want [10,15)", got.Anchor.From, got.Anchor.To)
		}
	})

	t.Run("AtEnd", func(t *testing.T) {
		out, _ := Remap([]Comment{c}, "hello world", "hello world!", 1)
		got := out[0]
		if got.Status != StatusAttached {
			t.Errorf("status = %s, want attached", got.Status)
		}
		if got.Anchor.From != 6 || got.Anchor.To != 11 {
			t.Errorf("range = [%d,%d), want [6,11)", got.Anchor.From, got.Anchor.To)
		}
	})
}

func TestRemap_QuoteHashMismatchGoesStale(t *testing.T) {
	// Offsets can survive an edit while the stored quote no longer matches
	// the text beneath them. The hash double-check catches it.
	c := commentOver(t, "hello world", 0, 5, 1)
	c.Anchor.QuoteHash = Hash("jello")

	out, _ := Remap([]Comment{c}, "hello world", "hello worlds", 1)
	if out[0].Status != StatusStale {
		t.Errorf("status = %s, want stale on hash mismatch", out[0].Status)
	}
}

func TestRemap_RevBackfill(t *testing.T) {
	// Comments created before revisioning existed carry rev 0; the note's
	// counter is backfilled during normalization.
	c := commentOver(t, "hello world", 0, 5, 0)
	c.Anchor.Rev = 0

	out, rev := Remap([]Comment{c}, "hello world", "hello world", 7)
	if rev != 7 {
		t.Errorf("rev = %d, want 7", rev)
	}
	if out[0].Anchor.Rev != 7 {
		t.Errorf("anchor rev = %d, want backfilled 7", out[0].Anchor.Rev)
	}
}

func TestRemap_MonotonicRevision(t *testing.T) {
	content := "the quick brown fox"
	c := commentOver(t, content, 4, 9, 0)
	comments := []Comment{c}

	rev := 0
	edits := []string{
		"the quick brown fox",   // no-op
		"the quick brown foxes", // change
		"the quick brown foxes", // no-op
		"a quick brown foxes",   // change
	}

	prev := content
	for _, next := range edits {
		var nextRev int
		comments, nextRev = Remap(comments, prev, next, rev)
		if nextRev < rev {
			t.Fatalf("revision went backwards: %d -> %d", rev, nextRev)
		}
		if prev == next && nextRev != max(0, rev) {
			t.Fatalf("no-op edit advanced revision: %d -> %d", rev, nextRev)
		}
		if prev != next && nextRev != max(1, rev+1) {
			t.Fatalf("content edit must advance revision once: %d -> %d", rev, nextRev)
		}
		rev = nextRev
		prev = next
	}
}

func TestNormalize_Defaults(t *testing.T) {
	content := "hello world"

	c := Comment{
		ID:     "raw",
		Anchor: Anchor{From: 6, To: 11},
	}
	n := Normalize(content, c, 5)

	if n.Anchor.Start != AffinityAfter || n.Anchor.End != AffinityBefore {
		t.Errorf("affinities = %s/%s, want after/before", n.Anchor.Start, n.Anchor.End)
	}
	if n.Anchor.Quote != "world" {
		t.Errorf("quote = %q, want backfilled %q", n.Anchor.Quote, "world")
	}
	if n.Anchor.QuoteHash != Hash("world") {
		t.Errorf("quoteHash = %s, want backfilled %s", n.Anchor.QuoteHash, Hash("world"))
	}
	if n.Anchor.Rev != 5 {
		t.Errorf("rev = %d, want backfilled 5", n.Anchor.Rev)
	}
	if n.Status != StatusAttached {
		t.Errorf("status = %s, want defaulted attached", n.Status)
	}
}

func TestNormalize_ClampsAndPreservesExplicitStatus(t *testing.T) {
	content := "short"

	c := Comment{
		ID:     "wild",
		Status: StatusStale, // explicit valid status survives normalization
		Anchor: Anchor{From: -4, To: 99},
	}
	n := Normalize(content, c, 1)

	if n.Anchor.From != 0 || n.Anchor.To != 5 {
		t.Errorf("range = [%d,%d), want clamped [0,5)", n.Anchor.From, n.Anchor.To)
	}
	if n.Status != StatusStale {
		t.Errorf("status = %s, normalization must not overwrite a valid status", n.Status)
	}

	reversed := Comment{Anchor: Anchor{From: 4, To: 2}}
	if r := Normalize(content, reversed, 0); r.Anchor.To != r.Anchor.From {
		t.Errorf("reversed range must collapse, got [%d,%d)", r.Anchor.From, r.Anchor.To)
	}
}
