package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/packrat/grammar"
)

var (
	nameStyle  = lipgloss.NewStyle().Bold(true).Width(10)
	rulesStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).PaddingLeft(10)
	tagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

// Grammars lists the registered grammars.
type Grammars struct {
	Rules bool `help:"Show grammar rules" short:"r"`
}

// Run executes the grammars command.
func (g *Grammars) Run(ctx context.Context) error {
	var sb strings.Builder

	for _, gr := range grammar.All() {
		sb.WriteString(nameStyle.Render(gr.Name))
		sb.WriteString(gr.Description)

		if gr.LeftRecursive {
			sb.WriteString(" " + tagStyle.Render("[left-recursive]"))
		}

		sb.WriteByte('\n')

		if g.Rules {
			sb.WriteString(rulesStyle.Render(gr.Rules))
			sb.WriteByte('\n')
			sb.WriteString(rulesStyle.Render("e.g. " + gr.Example))
			sb.WriteByte('\n')
		}
	}

	_, err := fmt.Fprint(outputFrom(ctx), sb.String())

	return err
}
