package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	logger := Make(&bytes.Buffer{})

	if logger.Level() != DefaultLevel {
		t.Errorf("expected level %v, got %v", DefaultLevel, logger.Level())
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("expected format %v, got %v", DefaultFormat, logger.Format())
	}

	if logger.caller != DefaultCaller {
		t.Errorf("expected caller %v, got %v", DefaultCaller, logger.caller)
	}
}

func TestLogger_WithLevel_FiltersMessages(t *testing.T) {
	tests := []struct {
		name   string
		level  Level
		logFn  func(Logger, string)
		logged bool
	}{
		{"trace below debug", LevelDebug, func(l Logger, m string) { l.Trace(m) }, false},
		{"trace at trace", LevelTrace, func(l Logger, m string) { l.Trace(m) }, true},
		{"debug at debug", LevelDebug, func(l Logger, m string) { l.Debug(m) }, true},
		{"info below error", LevelError, func(l Logger, m string) { l.Info(m) }, false},
		{"warn at info", LevelInfo, func(l Logger, m string) { l.Warn(m) }, true},
		{"error at error", LevelError, func(l Logger, m string) { l.Error(m) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := Make(&buf, WithLevel(tt.level), WithPretty(false))
			tt.logFn(logger, "the message")

			if got := strings.Contains(buf.String(), "the message"); got != tt.logged {
				t.Errorf("logged = %v, want %v: %q", got, tt.logged, buf.String())
			}
		})
	}
}

func TestLogger_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithLevel(LevelTrace), WithFormat(FormatJSON), WithPretty(false))
	logger.Trace("deep")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if rec["level"] != "TRACE" {
		t.Errorf("expected level TRACE, got %v", rec["level"])
	}
}

func TestLogger_WithFormat_SetsOutputFormat(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithFormat(FormatJSON), WithPretty(false)).
		Info("json", slog.Int("n", 3))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if rec["n"] != float64(3) {
		t.Errorf("expected n=3, got %v", rec["n"])
	}

	buf.Reset()
	Make(&buf, WithFormat(FormatText), WithPretty(false)).
		Info("text", slog.Int("n", 3))

	if !strings.Contains(buf.String(), "n=3") {
		t.Errorf("expected n=3 in text output, got %q", buf.String())
	}
}

func TestLogger_WithCaller_IncludesSource(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithCaller(true), WithPretty(false)).Info("where")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("expected caller file in output, got %q", buf.String())
	}
}

func TestLogger_Pretty(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		want   []string
	}{
		{"text", FormatText, []string{"msg=hello", "rule=expr", "hit=true", "stats.hits=2"}},
		{"json", FormatJSON, []string{"{\n", "  msg: hello", "  rule: expr", "  stats.hits: 2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := Make(&buf,
				WithFormat(tt.format), WithPretty(true), WithTimeLayout("none"))
			logger.With(slog.String("rule", "expr")).Info("hello",
				slog.Bool("hit", true),
				slog.Group("stats", slog.Int("hits", 2)),
			)

			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("expected %q in %q", want, buf.String())
				}
			}
		})
	}
}

func TestLogger_Wrap_OverridesConfiguration(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelError), WithPretty(false))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if base.Level() != LevelError {
		t.Errorf("base level changed to %v", base.Level())
	}

	wrapped.Debug("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected wrapped logger to write debug, got %q", buf.String())
	}
}

func TestLogger_ZeroValue_Safety(t *testing.T) {
	var logger Logger

	logger.Trace("trace")
	logger.Info("info")
	logger.ErrorContext(context.Background(), "error")

	if logger.Enabled(context.Background(), LevelError) {
		t.Error("zero logger should not be enabled")
	}

	if logger.With(slog.String("k", "v")).Logger != nil {
		t.Error("With on zero logger should stay zero")
	}

	if logger.Level() != DefaultLevel {
		t.Errorf("expected default level, got %v", logger.Level())
	}
}

func TestLogger_ConcurrentCalls_ThreadSafe(t *testing.T) {
	var (
		buf bytes.Buffer
		wg  sync.WaitGroup
	)

	logger := Make(&syncWriter{w: &buf}, WithPretty(true))

	for i := range 16 {
		wg.Go(func() {
			logger.Info("concurrent", slog.Int("goroutine", i))
		})
	}

	wg.Wait()

	if got := strings.Count(buf.String(), "\n"); got != 16 {
		t.Errorf("expected 16 lines, got %d", got)
	}
}

type syncWriter struct {
	mu sync.Mutex
	w  *bytes.Buffer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.w.Write(p)
}

func BenchmarkLogger_Info(b *testing.B) {
	logger := Make(&bytes.Buffer{}, WithPretty(false))

	for b.Loop() {
		logger.Info("benchmark", slog.Int("n", 1))
	}
}

func BenchmarkLogger_Trace_Disabled(b *testing.B) {
	logger := Make(&bytes.Buffer{})

	for b.Loop() {
		logger.Trace("benchmark", slog.Int("n", 1))
	}
}
