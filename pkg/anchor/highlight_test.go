package anchor

import "testing"

func TestResolveRange(t *testing.T) {
	content := "hello world"

	t.Run("Attached", func(t *testing.T) {
		c := commentOver(t, content, 6, 11, 1)
		r, ok := ResolveRange(content, c)
		if !ok {
			t.Fatal("expected a resolved range")
		}
		if r.From != 6 || r.To != 11 {
			t.Errorf("range = [%d,%d), want [6,11)", r.From, r.To)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		// For any valid [a,b) the resolver returns exactly what the
		// builder captured.
		for a := 0; a < len(content); a++ {
			for b := a + 1; b <= len(content); b++ {
				c := commentOver(t, content, a, b, 1)
				r, ok := ResolveRange(content, c)
				if !ok || r.From != a || r.To != b {
					t.Fatalf("round trip [%d,%d) resolved to %v (ok=%v)", a, b, r, ok)
				}
			}
		}
	})

	t.Run("DetachedIsNil", func(t *testing.T) {
		c := commentOver(t, content, 6, 11, 1)
		c.Status = StatusDetached
		if _, ok := ResolveRange(content, c); ok {
			t.Error("detached comment must not resolve")
		}
	})

	t.Run("DegenerateIsNil", func(t *testing.T) {
		c := Comment{Status: StatusAttached, Anchor: Anchor{From: 3, To: 3, Rev: 1}}
		if _, ok := ResolveRange(content, c); ok {
			t.Error("degenerate range must not resolve")
		}
	})
}

func TestHighlightRanges(t *testing.T) {
	content := "abcdefghijklmnopqrstuvwxyz"

	mk := func(from, to int) Comment {
		return commentOver(t, content, from, to, 1)
	}

	tests := []struct {
		name     string
		comments []Comment
		want     []Range
	}{
		{
			name:     "Empty",
			comments: nil,
			want:     nil,
		},
		{
			name:     "Disjoint",
			comments: []Comment{mk(10, 14), mk(2, 5)},
			want:     []Range{{From: 2, To: 5}, {From: 10, To: 14}},
		},
		{
			name:     "Overlapping",
			comments: []Comment{mk(2, 8), mk(5, 12)},
			want:     []Range{{From: 2, To: 12}},
		},
		{
			name:     "AdjacentMerge",
			comments: []Comment{mk(2, 5), mk(5, 9)},
			want:     []Range{{From: 2, To: 9}},
		},
		{
			name:     "Contained",
			comments: []Comment{mk(2, 20), mk(5, 9)},
			want:     []Range{{From: 2, To: 20}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HighlightRanges(content, tt.comments)
			if len(got) != len(tt.want) {
				t.Fatalf("HighlightRanges() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("range[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestHighlightRanges_NeverOverlapOrDisorder(t *testing.T) {
	content := "abcdefghijklmnopqrstuvwxyz"
	comments := []Comment{
		commentOver(t, content, 8, 12, 1),
		commentOver(t, content, 0, 3, 1),
		commentOver(t, content, 11, 15, 1),
		commentOver(t, content, 3, 4, 1),
		commentOver(t, content, 20, 26, 1),
	}

	got := HighlightRanges(content, comments)
	for i := 1; i < len(got); i++ {
		if got[i].From <= got[i-1].To {
			t.Errorf("ranges %v and %v overlap or touch unmerged", got[i-1], got[i])
		}
		if got[i].From < got[i-1].From {
			t.Errorf("ranges out of order: %v before %v", got[i-1], got[i])
		}
	}
}
