package seq

import (
	"io"
	"unicode/utf8"

	"github.com/klauspost/readahead"
)

// ReadRunes reads all of r and returns a Sequence over its runes.
// The reader is drained through an asynchronous read-ahead buffer.
func ReadRunes(r io.Reader) (Sequence[rune], error) {
	if r == nil {
		return nil, ErrNilSequence
	}

	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return Runes(string(data)), nil
}

// RuneReader returns an [io.RuneReader] over s, starting at index 0.
func RuneReader(s Sequence[rune]) io.RuneReader {
	return &runeReader{s: s}
}

type runeReader struct {
	s Sequence[rune]
	i int
}

func (r *runeReader) ReadRune() (rune, int, error) {
	if r.i >= r.s.Len() {
		return 0, 0, io.EOF
	}

	c := r.s.At(r.i)
	r.i++

	return c, RuneSize(c), nil
}

// RuneSize returns the number of bytes c occupies when UTF-8 encoded.
// Invalid runes count as [utf8.RuneError].
func RuneSize(c rune) int {
	if n := utf8.RuneLen(c); n > 0 {
		return n
	}

	return utf8.RuneLen(utf8.RuneError)
}

// RuneCount returns the number of runes of s that together occupy the first
// n bytes of its UTF-8 encoding.
func RuneCount(s Sequence[rune], n int) int {
	i := 0

	for size := 0; size < n && i < s.Len(); i++ {
		size += RuneSize(s.At(i))
	}

	return i
}
