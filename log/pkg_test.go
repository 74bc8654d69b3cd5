package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestPackage_LogFunctions_UseDefaultLogger(t *testing.T) {
	original := Default()
	defer func() { defaultLog = original }()

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithLevel(LevelTrace), WithFormat(FormatJSON), WithPretty(false))

	ctx := context.Background()

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Trace", Trace, "TRACE"},
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
		{"DebugContext", func(m string, a ...slog.Attr) { DebugContext(ctx, m, a...) }, "DEBUG"},
		{"ErrorContext", func(m string, a ...slog.Attr) { ErrorContext(ctx, m, a...) }, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("package message", slog.String("key", "value"))

			out := buf.String()
			for _, want := range []string{"package message", tt.level, `"key":"value"`} {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in %q", want, out)
				}
			}
		})
	}
}

func TestPackage_Config_Accumulates(t *testing.T) {
	original := Default()
	defer func() { defaultLog = original }()

	Config(WithLevel(LevelWarn))
	Config(WithFormat(FormatJSON))

	if Default().Level() != LevelWarn {
		t.Errorf("expected level to persist, got %v", Default().Level())
	}

	if Default().Format() != FormatJSON {
		t.Errorf("expected JSON format, got %v", Default().Format())
	}
}
