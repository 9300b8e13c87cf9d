package anchor

import "fmt"

// FNV-1a 64-bit parameters.
const (
	fnvOffset uint64 = 0xcbf29ce484222325
	fnvPrime  uint64 = 0x100000001b3
)

// Hash computes the 64-bit FNV-1a hash of a text fragment, folded over
// rune code points so the result is independent of UTF-8 byte layout.
// The hash is rendered as lowercase hex, zero-padded to 16 digits.
//
// It is used to detect silent drift of an anchor's underlying text: two
// ranges can survive an edit numerically intact while the text beneath
// them changed.
func Hash(text string) string {
	h := fnvOffset
	for _, r := range text {
		h ^= uint64(r)
		h *= fnvPrime
	}
	return fmt.Sprintf("%016x", h)
}
