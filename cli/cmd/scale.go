package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/packrat/grammar"
	"github.com/ardnew/packrat/log"
)

// Scale compares rule evaluation counts with and without memoization over
// inputs of increasing size.
type Scale struct {
	Grammar string `default:"overlap"           help:"Grammar to measure"           short:"g"`
	Sizes   []int  `default:"8,16,32,64,128,256" help:"Input sizes in grammar units" short:"n"`
	Format  Format `default:"text"              help:"Output format"                enum:"text,json,yaml"`
}

// ScaleRow holds the measurements for one input size. Plain is -1 when the
// grammar cannot run without memoization.
type ScaleRow struct {
	Size     int `json:"size"     yaml:"size"`
	Length   int `json:"length"   yaml:"length"`
	Memoized int `json:"memoized" yaml:"memoized"`
	Plain    int `json:"plain"    yaml:"plain"`
	Entries  int `json:"entries"  yaml:"entries"`
	Hits     int `json:"hits"     yaml:"hits"`
}

// Run executes the scale command.
func (s *Scale) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	g, err := grammar.Lookup(s.Grammar)
	if err != nil {
		return err
	}

	rows, err := measure(ctx, g, s.Sizes)
	if err != nil {
		return err
	}

	w := outputFrom(ctx)

	switch s.Format.normalize() {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(rows); err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		return nil

	case FormatYAML:
		out, err := yaml.Marshal(rows)
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		_, err = w.Write(out)

		return err
	}

	_, err = fmt.Fprintln(w, renderScale(rows))

	return err
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
)

// renderScale draws rows as a bordered table.
func renderScale(rows []ScaleRow) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("size", "length", "memoized", "plain", "entries", "hits").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})

	for _, r := range rows {
		plain := "-"
		if r.Plain >= 0 {
			plain = strconv.Itoa(r.Plain)
		}

		t.Row(
			strconv.Itoa(r.Size),
			strconv.Itoa(r.Length),
			strconv.Itoa(r.Memoized),
			plain,
			strconv.Itoa(r.Entries),
			strconv.Itoa(r.Hits),
		)
	}

	return t.String()
}

func measure(ctx context.Context, g grammar.Grammar, sizes []int) ([]ScaleRow, error) {
	rows := make([]ScaleRow, 0, len(sizes))

	for _, n := range sizes {
		input := g.Sample(n)

		memoized, err := g.Parse(ctx, input, true)
		if err != nil {
			return nil, err
		}

		row := ScaleRow{
			Size:     n,
			Length:   memoized.Length,
			Memoized: memoized.Evaluations,
			Plain:    -1,
			Entries:  memoized.Stats.Entries,
			Hits:     memoized.Stats.Hits,
		}

		if !g.LeftRecursive {
			plain, err := g.Parse(ctx, input, false)
			if err != nil {
				return nil, err
			}

			row.Plain = plain.Evaluations
		}

		log.DebugContext(ctx, "scale measured",
			slog.String("grammar", g.Name),
			slog.Int("size", n),
			slog.Int("memoized", row.Memoized),
			slog.Int("plain", row.Plain),
		)

		rows = append(rows, row)
	}

	return rows, nil
}
