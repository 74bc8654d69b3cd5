// Package cli contains the command line interface for packrat.
//
// # Usage
//
// Without a subcommand, packrat parses its input with the arith grammar:
//
//	packrat -e '1 + 2 * 3'
//	packrat parse -g left -e xxxx --format json
//	packrat parse -g overlap --no-memo -f input.txt
//	packrat scale -g overlap --sizes 8,64,512
//	packrat calc --check '7 / -2'
//	packrat repl -g right
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory (for example ~/.config/packrat/config.yaml). Top-level keys name
// global flags and a key naming a subcommand holds that command's flags:
//
//	log-level: debug
//	parse:
//	  grammar: left
//
// packrat init writes the current global flag values to that file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, ...)
//   - --[no-]log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize log output
//
// Trace level records every memo table hit, miss and seed growth.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o packrat .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default
//     ~/.cache/packrat/pprof)
package cli
