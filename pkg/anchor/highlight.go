package anchor

import "sort"

// Range is a half-open rune range [From, To) over note content, resolved
// for display.
type Range struct {
	From int `yaml:"from" json:"from"`
	To   int `yaml:"to" json:"to"`
}

// ResolveRange resolves a comment's live range against the current
// content. It reports false for detached comments and for ranges that are
// degenerate after normalization.
func ResolveRange(content string, c Comment) (Range, bool) {
	n := Normalize(content, c, c.Anchor.Rev)
	if n.Status == StatusDetached || n.Anchor.To <= n.Anchor.From {
		return Range{}, false
	}
	return Range{From: n.Anchor.From, To: n.Anchor.To}, true
}

// HighlightRanges resolves every comment and merges the results for
// display: ranges are sorted by start, and a range that starts at or
// before the end of the previous one (adjacency counts) is folded into it.
// The output is therefore ordered and non-overlapping.
func HighlightRanges(content string, comments []Comment) []Range {
	var resolved []Range
	for _, c := range comments {
		if r, ok := ResolveRange(content, c); ok {
			resolved = append(resolved, r)
		}
	}
	if len(resolved) == 0 {
		return nil
	}

	sort.Slice(resolved, func(i, j int) bool {
		if resolved[i].From != resolved[j].From {
			return resolved[i].From < resolved[j].From
		}
		return resolved[i].To < resolved[j].To
	})

	merged := resolved[:1]
	for _, r := range resolved[1:] {
		last := &merged[len(merged)-1]
		if r.From <= last.To {
			last.To = max(last.To, r.To)
		} else {
			merged = append(merged, r)
		}
	}
	return merged
}
