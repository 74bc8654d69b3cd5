package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/packrat/grammar"
	"github.com/ardnew/packrat/parse"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(8)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	caretStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// writeReport encodes rep to w in the given format. The source text is used
// to point at the failure position in text output.
func writeReport(w io.Writer, rep grammar.Report, source string, format Format) error {
	switch format.normalize() {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(rep); err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		return nil

	case FormatYAML:
		out, err := yaml.Marshal(rep)
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		_, err = w.Write(out)

		return err

	case FormatText, "":
		_, err := io.WriteString(w, renderReport(rep, source))

		return err

	default:
		return ErrUnknownFormat.With(slog.String("format", string(format)))
	}
}

func line(label, value string) string {
	return labelStyle.Render(label) + value + "\n"
}

func renderReport(rep grammar.Report, source string) string {
	var sb strings.Builder

	mode := "plain"
	if rep.Memoized {
		mode = "memoized"
	}

	sb.WriteString(line("grammar", rep.Grammar+" ("+mode+")"))

	if rep.OK {
		sb.WriteString(line("result", okStyle.Render("ok")+" "+
			valueStyle.Render(fmt.Sprint(rep.Value))))
	} else {
		sb.WriteString(line("result", failStyle.Render("fail")+" "+rep.Failure.Error()))
		sb.WriteString(Caret(source, rep.Failure))
	}

	sb.WriteString(line("input",
		fmt.Sprintf("%d runes, %d consumed", rep.Length, rep.Consumed)))
	sb.WriteString(line("evals", strconv.Itoa(rep.Evaluations)))

	if s := rep.Stats; s != nil {
		sb.WriteString(line("memo", fmt.Sprintf(
			"lookups=%d hits=%d misses=%d entries=%d growths=%d",
			s.Lookups, s.Hits, s.Misses, s.Entries, s.Growths)))
	}

	return sb.String()
}

// Caret renders the line of source containing the failure offset, with a
// marker under the failing column. It returns "" when f is nil or the offset
// lies outside source.
func Caret(source string, f *parse.Failure) string {
	if f == nil {
		return ""
	}

	text, col, ok := f.Locate(source)
	if !ok {
		return ""
	}

	indent := strings.Repeat(" ", lipgloss.Width(labelStyle.Render("")))
	pad := strings.Repeat(" ", lipgloss.Width(string([]rune(text)[:col])))

	return indent + text + "\n" + indent + pad + caretStyle.Render("^") + "\n"
}
