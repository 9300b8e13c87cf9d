package anchor

import (
	"errors"
	"strings"
)

// Construction failures. All are returned to the immediate caller; the
// store layer is responsible for surfacing a user-facing message.
var (
	// ErrInvalidRange means from/to violate ordering or content bounds.
	ErrInvalidRange = errors.New("anchor range is invalid")

	// ErrEmptyText means the literal anchor text was empty or whitespace-only.
	ErrEmptyText = errors.New("anchor text is empty")

	// ErrTextNotFound means the literal anchor text does not occur in the content.
	ErrTextNotFound = errors.New("anchor text not found")

	// ErrTextAmbiguous means the literal anchor text occurs more than once.
	ErrTextAmbiguous = errors.New("anchor text is ambiguous")
)

// Anchor binds a comment to a rune range [From, To) of a note's content
// at a known revision. Quote and QuoteHash snapshot the covered text so
// later remaps can detect drift even when the offsets survive.
type Anchor struct {
	From      int      `yaml:"from" json:"from"`
	To        int      `yaml:"to" json:"to"`
	Rev       int      `yaml:"rev" json:"rev"`
	Start     Affinity `yaml:"startAffinity,omitempty" json:"startAffinity,omitempty"`
	End       Affinity `yaml:"endAffinity,omitempty" json:"endAffinity,omitempty"`
	Quote     string   `yaml:"quote,omitempty" json:"quote,omitempty"`
	QuoteHash string   `yaml:"quoteHash,omitempty" json:"quoteHash,omitempty"`
}

// NewAnchorFromRange builds an anchor over content[from:to).
//
// The default affinities (start=after, end=before) mean the anchor does
// not absorb text inserted exactly at either boundary; it only grows when
// the insertion point is strictly outside the boundary.
func NewAnchorFromRange(content string, from, to, rev int) (Anchor, error) {
	runes := []rune(content)
	if from < 0 || to <= from || to > len(runes) {
		return Anchor{}, ErrInvalidRange
	}

	quote := string(runes[from:to])
	return Anchor{
		From:      from,
		To:        to,
		Rev:       max(0, rev),
		Start:     AffinityAfter,
		End:       AffinityBefore,
		Quote:     quote,
		QuoteHash: Hash(quote),
	}, nil
}

// NewAnchorFromText builds an anchor over the sole occurrence of exact in
// content. Occurrences are counted without overlap: the search resumes
// after the end of each match, not one rune past its start.
func NewAnchorFromText(content, exact string, rev int) (Anchor, error) {
	if strings.TrimSpace(exact) == "" {
		return Anchor{}, ErrEmptyText
	}

	runes := []rune(content)
	needle := []rune(exact)

	matches := 0
	first := -1
	for i := 0; i+len(needle) <= len(runes); {
		if string(runes[i:i+len(needle)]) == exact {
			if first == -1 {
				first = i
			}
			matches++
			if matches > 1 {
				return Anchor{}, ErrTextAmbiguous
			}
			i += len(needle)
			continue
		}
		i++
	}

	if matches == 0 {
		return Anchor{}, ErrTextNotFound
	}

	return NewAnchorFromRange(content, first, first+len(needle), rev)
}
