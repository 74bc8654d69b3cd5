// Package profile starts optional runtime profiling through
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//	packrat --pprof-mode cpu parse -g arith -f big.txt
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a no-op.
//
// Profiles are written to [Profiler.Path] under names matching the mode
// (cpu.pprof, mem.pprof, ...) and are read with go tool pprof:
//
//	go tool pprof -http=: cpu.pprof
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`

// Profiler describes one profiling session.
type Profiler struct {
	// Mode is one of [Modes]. An empty mode disables profiling.
	Mode string
	// Path is the output directory. Empty means the working directory.
	Path string
	// Quiet suppresses the profiler's own start and stop messages.
	Quiet bool
}

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Start begins profiling as described by p. Start and the returned Stop are
// always safe to call; an empty or unknown mode, or a build without [Tag],
// yields a no-op.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
