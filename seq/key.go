package seq

import (
	"fmt"
	"log/slog"
	"sync/atomic"
)

// lastRoot is the most recently allocated root identity.
var lastRoot atomic.Uint64

func nextRoot() uint64 { return lastRoot.Add(1) }

// Key is the logical position of a [Sequence] view.
//
// Key is comparable and may be used directly as a map key. The zero Key
// belongs to no root.
type Key struct {
	root uint64
	off  int
	end  int
}

// Root returns the identity of the root buffer.
func (k Key) Root() uint64 { return k.root }

// Offset returns the start of the window within the root buffer.
func (k Key) Offset() int { return k.off }

// End returns the exclusive end of the window within the root buffer.
func (k Key) End() int { return k.end }

// Len returns the number of elements in the window.
func (k Key) Len() int { return k.end - k.off }

// String returns the key formatted as "#root[offset:end]".
func (k Key) String() string {
	return fmt.Sprintf("#%d[%d:%d]", k.root, k.off, k.end)
}

// LogValue implements slog.LogValuer.
func (k Key) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("root", k.root),
		slog.Int("offset", k.off),
		slog.Int("end", k.end),
	)
}
