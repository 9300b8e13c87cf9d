package anchor

import "testing"

func TestHash(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		// Classic FNV-1a 64 test vectors (ASCII folds identically over
		// bytes and rune code points).
		{name: "Empty", in: "", want: "cbf29ce484222325"},
		{name: "SingleChar", in: "a", want: "af63dc4c8601ec8c"},
		{name: "Word", in: "foobar", want: "85944171f73967e8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hash(tt.in); got != tt.want {
				t.Errorf("Hash(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestHash_Distinguishes(t *testing.T) {
	if Hash("hello world") == Hash("hello worLd") {
		t.Error("expected different hashes for different text")
	}
	if Hash("héllo") == Hash("hello") {
		t.Error("expected multi-byte rune to change the hash")
	}
}

func TestHash_Deterministic(t *testing.T) {
	if Hash("héllo wörld") != Hash("héllo wörld") {
		t.Error("hash must be deterministic")
	}
	if len(Hash("x")) != 16 {
		t.Errorf("hash must be 16 hex digits, got %q", Hash("x"))
	}
}
