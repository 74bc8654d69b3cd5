// Package log provides leveled structured logging on top of [log/slog].
//
// A [Logger] is a value configured once by functional options and safe for
// concurrent use. The zero Logger discards everything, which lets libraries
// accept a Logger without requiring callers to supply one.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("none"))
//	logger.Trace("memo lookup", slog.Bool("hit", true))
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and is reserved for per-position
// activity such as memo table lookups, which is far too verbose for debug
// output.
//
// # Pretty output
//
// With [WithPretty] records are colorized with lipgloss. Colors are dropped
// automatically when the output is not a terminal.
//
// # Package-level logger
//
// [Config] adjusts a process-wide logger used by [Info], [DebugContext] and
// the other package-level functions. The command-line front end configures it
// from flags before running a command.
package log
