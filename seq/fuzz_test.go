package seq

import (
	"testing"
	"unicode/utf8"
)

// FuzzKey slices the same input along two different paths to one offset and
// checks that both views share a key and their elements.
func FuzzKey(f *testing.F) {
	f.Add("xxxxxxxx", 3, 2)
	f.Add("αβγδ", 1, 1)
	f.Add("", 0, 0)
	f.Add("ab", 2, 0)

	f.Fuzz(func(t *testing.T, input string, first, second int) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		s := Runes(input)
		if first < 0 || second < 0 || first > s.Len() || second > s.Len()-first {
			t.Skip("offsets out of range")
		}

		direct := s.Slice(first + second)
		chained := s.Slice(first).Slice(second)
		ranged := s.SliceRange(first, s.Len()).Slice(second)

		if direct.Key() != chained.Key() || direct.Key() != ranged.Key() {
			t.Fatalf("keys differ: %v %v %v", direct.Key(), chained.Key(), ranged.Key())
		}

		if !Equal(direct, chained) {
			t.Fatal("Equal reported false for equal positions")
		}

		if String(direct) != String(chained) {
			t.Fatalf("elements differ: %q != %q", String(direct), String(chained))
		}

		if direct.Key().Offset() != first+second {
			t.Fatalf("offset = %d, want %d", direct.Key().Offset(), first+second)
		}
	})
}
