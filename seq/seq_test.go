package seq

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestKey_DerivationPaths(t *testing.T) {
	s := Runes("abcdefgh")

	tests := []struct {
		name string
		a, b Sequence[rune]
	}{
		{"direct vs chained", s.Slice(3), s.Slice(1).Slice(2)},
		{"zero slice", s, s.Slice(0)},
		{"chain of ones", s.Slice(3), s.Slice(1).Slice(1).Slice(1)},
		{"full range", s, s.SliceRange(0, s.Len())},
		{"range then suffix", s.SliceRange(2, 6).Slice(1), s.SliceRange(3, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a.Key() != tt.b.Key() {
				t.Errorf("keys differ: %v != %v", tt.a.Key(), tt.b.Key())
			}

			if !Equal(tt.a, tt.b) {
				t.Error("Equal reported false for equal positions")
			}
		})
	}
}

func TestKey_DistinctPositions(t *testing.T) {
	s := Runes("abcdef")
	other := Runes("abcdef")

	tests := []struct {
		name string
		a, b Sequence[rune]
	}{
		{"different offsets", s.Slice(1), s.Slice(2)},
		{"different ends", s.SliceRange(1, 3), s.SliceRange(1, 4)},
		{"different roots", s.Slice(2), other.Slice(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a.Key() == tt.b.Key() {
				t.Errorf("keys should differ: %v", tt.a.Key())
			}
		})
	}
}

func TestKey_Accessors(t *testing.T) {
	s := Runes("abcdef").SliceRange(1, 5).Slice(2)
	k := s.Key()

	if k.Offset() != 3 || k.End() != 5 || k.Len() != 2 {
		t.Errorf("unexpected key bounds: %v", k)
	}

	if k.Root() == 0 {
		t.Error("root identity should be non-zero")
	}

	if !strings.HasSuffix(k.String(), "[3:5]") {
		t.Errorf("String() = %q", k.String())
	}
}

func TestSequence_ZeroSliceIsIdentity(t *testing.T) {
	s := Runes("xyz").Slice(1)

	if s.Slice(0) != s {
		t.Error("Slice(0) should return the receiver")
	}

	if s.SliceRange(0, s.Len()) != s {
		t.Error("SliceRange over the whole view should return the receiver")
	}
}

func TestSequence_At(t *testing.T) {
	s := Runes("héllo").Slice(1)

	want := []rune("éllo")
	if s.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", s.Len(), len(want))
	}

	for i, r := range want {
		if got := s.At(i); got != r {
			t.Errorf("At(%d) = %q, want %q", i, got, r)
		}
	}
}

func TestSequence_Bounds(t *testing.T) {
	s := Runes("abc")

	tests := []struct {
		name string
		fn   func()
	}{
		{"At negative", func() { s.At(-1) }},
		{"At length", func() { s.At(3) }},
		{"Slice past end", func() { s.Slice(4) }},
		{"Slice negative", func() { s.Slice(-1) }},
		{"SliceRange inverted", func() { s.SliceRange(2, 1) }},
		{"SliceRange past end", func() { s.SliceRange(0, 4) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected panic")
				}

				err, ok := r.(error)
				if !ok || !errors.Is(err, ErrOutOfBounds) {
					t.Errorf("expected ErrOutOfBounds, got %v", r)
				}
			}()

			tt.fn()
		})
	}
}

func TestSequence_EmptyBounds(t *testing.T) {
	s := Of[int](nil)

	if s.Len() != 0 {
		t.Fatalf("Len() = %d", s.Len())
	}

	if s.Slice(0) != s {
		t.Error("Slice(0) of empty sequence should be identity")
	}
}

func TestSequence_NoCopy(t *testing.T) {
	data := []int{1, 2, 3, 4}
	s := Of(data).Slice(1)

	got := Collect(s)
	if &got[0] != &data[1] {
		t.Error("Collect should share the backing array")
	}
}

func TestCollect_Generic(t *testing.T) {
	s := Of([]string{"a", "b", "c"}).Slice(1)

	var got []string
	for i, v := range All(s) {
		if v != s.At(i) {
			t.Errorf("All yielded %q at %d", v, i)
		}

		got = append(got, v)
	}

	if strings.Join(got, "") != "bc" {
		t.Errorf("All yielded %v", got)
	}
}

func TestStringAndText(t *testing.T) {
	if got := String(Runes("packrat").Slice(4)); got != "rat" {
		t.Errorf("String() = %q", got)
	}

	if got := Text(Bytes([]byte("packrat")).SliceRange(0, 4)); got != "pack" {
		t.Errorf("Text() = %q", got)
	}
}

func TestReadRunes(t *testing.T) {
	s, err := ReadRunes(strings.NewReader("ünïcode"))
	if err != nil {
		t.Fatalf("ReadRunes: %v", err)
	}

	if s.Len() != 7 || String(s) != "ünïcode" {
		t.Errorf("unexpected sequence %q", String(s))
	}

	_, err = ReadRunes(iotest.ErrReader(io.ErrUnexpectedEOF))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("expected ErrReadInput, got %v", err)
	}
}

func TestRuneReader(t *testing.T) {
	s := Runes("aé€")
	rr := RuneReader(s)

	sizes := []int{1, 2, 3}
	for i, want := range sizes {
		r, size, err := rr.ReadRune()
		if err != nil {
			t.Fatalf("ReadRune %d: %v", i, err)
		}

		if r != s.At(i) || size != want {
			t.Errorf("ReadRune %d = %q/%d, want %q/%d", i, r, size, s.At(i), want)
		}
	}

	if _, _, err := rr.ReadRune(); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}

	if n := RuneCount(s, 3); n != 2 {
		t.Errorf("RuneCount(3) = %d, want 2", n)
	}
}
