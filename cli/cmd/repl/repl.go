package repl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/packrat/grammar"
	"github.com/ardnew/packrat/log"
	"github.com/ardnew/packrat/memo"
)

const prompt = "➜ "

func helpMessage() string {
	return `
Commands:

  :grammar NAME   Switch to grammar NAME
  :grammars       List available grammars
  :memo on|off    Enable or disable memoization
  :rules          Print the rules of the current grammar
  :help           Print this cruft
  :clear          Clear screen
  :quit           Exit REPL

Usage:
  Type any other input to parse it with the current grammar
  Press Tab / Shift-Tab to cycle through command completions
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// Options configures a REPL session.
type Options struct {
	// Grammar names the grammar in effect at startup.
	Grammar string
	// Memoize selects whether input is parsed through a memo table.
	Memoize bool
	// CacheDir holds the history file. History is not persisted when empty.
	CacheDir string
	Logger   log.Logger
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc    func() context.Context
	input      textinput.Model
	grammar    grammar.Grammar
	memoize    bool
	logger     log.Logger
	reports    *reportCache
	history    *History
	historyIdx int
	comp       completion
	suggIdx    int    // selected candidate index
	tabActive  bool   // whether user is tab-cycling
	preTabText string // input text before tab-cycling began
	width      int
	quitting   bool
}

// Run starts an interactive session and blocks until the user exits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	g, err := grammar.Lookup(opts.Grammar)
	if err != nil {
		return err
	}

	var path string
	if opts.CacheDir != "" {
		path = filepath.Join(opts.CacheDir, baseHistory)
	}

	history := NewHistory(path)
	if err := history.Load(); err != nil {
		opts.Logger.WarnContext(ctx, "could not load history",
			slog.String("path", path), slog.String("error", err.Error()))
	}

	opts.Logger.TraceContext(
		ctx,
		"repl start",
		slog.String("grammar", g.Name),
		slog.Bool("memoize", opts.Memoize),
		slog.Int("history", history.Len()),
	)

	m := newModel(ctx, g, opts.Memoize, history, opts.Logger)

	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	g grammar.Grammar,
	memoize bool,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		grammar:    g,
		memoize:    memoize,
		logger:     logger,
		reports:    newReportCache(logger),
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(prompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(hintStyle.Render(m.status()))

	case len(m.comp.matches) > 0:
		b.WriteString(m.candidateBar())
	}

	b.WriteString("\n")

	return b.String()
}

// status summarizes the session settings.
func (m model) status() string {
	mode := "memo off"
	if m.memoize {
		mode = "memo on"
	}

	return m.grammar.Name + " (" + mode + ") · type :help for commands"
}

// candidateBar renders the completion candidates on one line, truncated to
// the terminal width.
func (m model) candidateBar() string {
	var b strings.Builder

	used := 0

	for i, match := range m.comp.matches {
		style := suggestionStyle
		if m.tabActive && i == m.suggIdx {
			style = selectedStyle
		}

		cell := style.Render(match.Str)

		w := lipgloss.Width(cell) + 1
		if used+w > m.width && i > 0 {
			b.WriteString(hintStyle.Render("…"))

			break
		}

		used += w

		b.WriteString(cell)
		b.WriteString(" ")
	}

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refresh()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive {
			m.tabActive = false
			m.refresh()

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyPrev(), nil

	case tea.KeyDown:
		return m.historyNext(), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.setInput(m.preTabText)
			m.refresh()
		}

		return m, nil
	}

	var cmd tea.Cmd

	if msg.Type == tea.KeyRunes && m.tabActive && msg.String() == " " {
		m.tabActive = false
	}

	if msg.Type != tea.KeyRunes {
		m.tabActive = false
	}

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refresh()

	return m, cmd
}

// cycle steps through completion candidates in direction dir. A lone
// candidate is accepted immediately.
func (m model) cycle(dir int) model {
	n := len(m.comp.matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		m.setInput(m.comp.apply(m.input.Value(), m.comp.matches[0].Str))
		m.tabActive = false
		m.refresh()

		return m
	}

	switch {
	case m.tabActive:
		m.suggIdx = (m.suggIdx + dir + n) % n
	case dir < 0:
		m.suggIdx = n - 1
	default:
		m.suggIdx = 0
	}

	if !m.tabActive {
		m.tabActive = true
		m.preTabText = m.input.Value()
	}

	m.setInput(m.comp.apply(m.preTabText, m.comp.matches[m.suggIdx].Str))

	return m
}

// refresh recomputes completion candidates for the current input.
func (m *model) refresh() {
	if m.tabActive {
		return
	}

	m.comp = complete(m.input.Value())
	m.suggIdx = -1
}

func (m *model) setInput(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.setInput("")
	m.comp = completion{}

	if err := m.history.Add(input); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history",
			slog.String("error", err.Error()))
	}

	m.historyIdx = m.history.Len()

	echo := tea.Println(promptStyle.Render(prompt) + inputStyle.Render(input))

	m, out := m.respond(input)

	if m.quitting {
		return m, tea.Sequence(echo, tea.Quit)
	}

	if out == "" {
		return m, echo
	}

	if out == clearScreen {
		return m, tea.ClearScreen
	}

	return m, tea.Sequence(echo, tea.Println(out))
}

// clearScreen is the response that requests the screen be cleared.
const clearScreen = "\x1b[2J"

// respond handles one line of input and returns the text to print.
func (m model) respond(input string) (model, string) {
	if rest, ok := strings.CutPrefix(input, commandPrefix); ok {
		return m.command(rest)
	}

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl parse",
		slog.String("grammar", m.grammar.Name),
		slog.String("input", input),
	)

	rep, err := m.reports.parse(m.ctxFunc(), m.grammar, input, m.memoize,
		func() (grammar.Report, error) {
			return m.grammar.Parse(m.ctxFunc(), input, m.memoize,
				memo.WithLogger(m.logger))
		})
	if err != nil {
		return m, errorStyle.Render("error: " + err.Error())
	}

	return m, renderReport(rep, input)
}

func (m model) command(input string) (model, string) {
	name, arg, _ := strings.Cut(strings.TrimSpace(input), " ")
	arg = strings.TrimSpace(arg)

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl command",
		slog.String("command", name),
		slog.String("arg", arg),
	)

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, ""

	case "h", "help":
		return m, helpMessage()

	case "c", "clear":
		return m, clearScreen

	case "grammars":
		var b strings.Builder
		for _, g := range grammar.All() {
			marker := "  "
			if g.Name == m.grammar.Name {
				marker = "* "
			}

			b.WriteString(marker + resultStyle.Render(g.Name) + " " +
				hintStyle.Render(g.Description) + "\n")
		}

		return m, strings.TrimSuffix(b.String(), "\n")

	case "rules":
		return m, m.grammar.Rules

	case "grammar":
		if arg == "" {
			return m, errorStyle.Render(
				ErrMissingArgument.With(slog.String("command", name)).Error())
		}

		g, err := grammar.Lookup(arg)
		if err != nil {
			return m, errorStyle.Render(err.Error())
		}

		m.grammar = g

		return m, hintStyle.Render(m.status())

	case "memo":
		switch arg {
		case "on":
			m.memoize = true
		case "off":
			m.memoize = false
		case "":
			m.memoize = !m.memoize
		default:
			return m, errorStyle.Render("usage: :memo on|off")
		}

		return m, hintStyle.Render(m.status())

	default:
		return m, errorStyle.Render(
			ErrUnknownCommand.With(slog.String("command", name)).Error() +
				" (try :help)")
	}
}

func renderReport(rep grammar.Report, source string) string {
	var b strings.Builder

	if rep.OK {
		b.WriteString(resultStyle.Render(fmt.Sprint(rep.Value)))
	} else {
		b.WriteString(errorStyle.Render("✗ " + rep.Failure.Error()))

		if line, col, ok := rep.Failure.Locate(source); ok {
			pad := strings.Repeat(" ", lipgloss.Width(string([]rune(line)[:col])))
			b.WriteString("\n  " + line + "\n  " + pad + errorStyle.Render("^"))
		}
	}

	stats := "evals=" + strconv.Itoa(rep.Evaluations)
	if s := rep.Stats; s != nil {
		stats += fmt.Sprintf(" hits=%d misses=%d entries=%d",
			s.Hits, s.Misses, s.Entries)
	}

	b.WriteString("\n" + hintStyle.Render(stats))

	return b.String()
}

func (m model) historyPrev() model {
	if m.historyIdx == 0 {
		return m
	}

	m.historyIdx--

	if line, err := m.history.Line(m.historyIdx); err == nil {
		m.setInput(line)
		m.tabActive = false
		m.comp = completion{}
	}

	return m
}

func (m model) historyNext() model {
	if m.historyIdx >= m.history.Len() {
		return m
	}

	m.historyIdx++

	line, err := m.history.Line(m.historyIdx)
	if err != nil {
		line = ""
	}

	m.setInput(line)
	m.tabActive = false
	m.comp = completion{}

	return m
}
