package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	stringStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	numberStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	trueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	falseStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	timeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	messageStyle = lipgloss.NewStyle().Bold(true)

	levelStyles = map[Level]lipgloss.Style{
		LevelTrace: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
)

func levelStyle(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return levelStyles[LevelError]
	case l >= slog.LevelWarn:
		return levelStyles[LevelWarn]
	case l >= slog.LevelInfo:
		return levelStyles[LevelInfo]
	case l >= slog.LevelDebug:
		return levelStyles[LevelDebug]
	default:
		return levelStyles[LevelTrace]
	}
}

// prettyHandler writes colorized records for terminals. In text format each
// record is a single line of key=value pairs; in JSON format each record is
// an indented object with one field per line.
type prettyHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	opts   slog.HandlerOptions
	attrs  []slog.Attr
	groups []string
	format Format
}

func newPrettyHandler(
	w io.Writer,
	format Format,
	opts *slog.HandlerOptions,
) *prettyHandler {
	return &prettyHandler{
		mu:     &sync.Mutex{},
		w:      w,
		opts:   *opts,
		format: format,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = slices.Concat(h.attrs, h.qualify(attrs))

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(slices.Clip(h.groups), name)

	return &c
}

// qualify prefixes attribute keys with the open groups.
func (h *prettyHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if len(h.groups) == 0 {
		return attrs
	}

	prefix := ""
	for _, g := range h.groups {
		prefix += g + "."
	}

	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: prefix + a.Key, Value: a.Value}
	}

	return out
}

func (h *prettyHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		if a := h.replace(slog.Time(slog.TimeKey, r.Time)); !a.Equal(slog.Attr{}) {
			fields = append(fields, a)
		}
	}

	fields = append(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			fields = append(fields,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	var own []slog.Attr

	r.Attrs(func(a slog.Attr) bool {
		own = append(own, a)

		return true
	})

	fields = append(fields, h.qualify(own)...)

	var buf bytes.Buffer

	if h.format == FormatJSON {
		h.writeObject(&buf, fields, r.Level)
	} else {
		h.writeLine(&buf, fields, r.Level)
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) writeLine(buf *bytes.Buffer, fields []slog.Attr, l slog.Level) {
	for i, a := range flatten("", fields) {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(keyStyle.Render(a.Key))
		buf.WriteByte('=')
		buf.WriteString(h.render(a, l))
	}
}

func (h *prettyHandler) writeObject(buf *bytes.Buffer, fields []slog.Attr, l slog.Level) {
	buf.WriteString("{\n")

	for i, a := range flatten("", fields) {
		if i > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  ")
		buf.WriteString(keyStyle.Render(a.Key))
		buf.WriteString(": ")
		buf.WriteString(h.render(a, l))
	}

	buf.WriteString("\n}")
}

// flatten expands group values into dotted keys.
func flatten(prefix string, attrs []slog.Attr) []slog.Attr {
	var out []slog.Attr

	for _, a := range attrs {
		v := a.Value.Resolve()
		key := a.Key

		if prefix != "" {
			key = prefix + "." + key
		}

		if v.Kind() == slog.KindGroup {
			out = append(out, flatten(key, v.Group())...)

			continue
		}

		out = append(out, slog.Attr{Key: key, Value: v})
	}

	return out
}

func (h *prettyHandler) render(a slog.Attr, l slog.Level) string {
	v := a.Value

	switch v.Kind() {
	case slog.KindString:
		if a.Key == slog.MessageKey {
			return messageStyle.Render(v.String())
		}

		return stringStyle.Render(v.String())

	case slog.KindInt64:
		return numberStyle.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return numberStyle.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return numberStyle.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return trueStyle.Render("true")
		}

		return falseStyle.Render("false")

	case slog.KindDuration:
		return numberStyle.Render(v.Duration().String())

	case slog.KindTime:
		return timeStyle.Render(v.Time().Format(time.RFC3339))

	case slog.KindAny:
		if level, ok := v.Any().(slog.Level); ok {
			return levelStyle(l).Render(levelName(level))
		}

		if v.Any() == nil {
			return keyStyle.Render("null")
		}
	}

	return stringStyle.Render(v.String())
}
