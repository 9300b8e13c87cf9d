package anchor

// commonPrefixLen returns the length of the longest shared prefix of a and b,
// scanning left to right until the first mismatch or the shorter slice ends.
func commonPrefixLen(a, b []rune) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// commonSuffixLen is the symmetric scan from the right.
func commonSuffixLen(a, b []rune) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	return i
}

// rangesOverlap reports whether [aStart, aEnd) and [bStart, bEnd) strictly
// overlap. Touching endpoints do not count; the affinity contract in
// TransformOffset decides those cases instead.
func rangesOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
