package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sty00A4/str/str"
)

var (
	accentColor = lipgloss.Color("#7C3AED")
	okColor     = lipgloss.Color("#34D399")
	badColor    = lipgloss.Color("#F87171")
	dimColor    = lipgloss.Color("#9CA3AF")
	amberColor  = lipgloss.Color("#FBBF24")

	promptStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(accentColor).Bold(true).Padding(0, 1)
	resultStyle = lipgloss.NewStyle().Foreground(okColor)
	errorStyle  = lipgloss.NewStyle().Foreground(badColor)
	dimStyle    = lipgloss.NewStyle().Foreground(dimColor)
	stackStyle  = lipgloss.NewStyle().Foreground(amberColor)
	keyStyle    = lipgloss.NewStyle().Foreground(amberColor)
	descStyle   = lipgloss.NewStyle().Foreground(dimColor)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

type keyMap struct {
	HistoryUp   key.Binding
	HistoryDown key.Binding
	Complete    key.Binding
	Submit      key.Binding
	Clear       key.Binding
	Vars        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	HistoryUp: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous line"),
	),
	HistoryDown: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next line"),
	),
	Complete: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "complete"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Vars: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "vars"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "ctrl+d"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// historyEntry is one evaluated line as shown in the scrollback: the
// line itself plus the stack or error it produced.
type historyEntry struct {
	line   string
	output string
	failed bool
}

type playModel struct {
	input       textinput.Model
	program     *str.Program
	history     []historyEntry
	entered     []string
	recallIdx   int
	width       int
	height      int
	showHelp    bool
	showVars    bool
	quitting    bool
	initialized bool
}

func newPlayModel() playModel {
	ti := textinput.New()
	ti.Placeholder = "push some values..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "str> "

	return playModel{
		input:     ti,
		program:   str.StdProgram(),
		recallIdx: -1,
	}
}

func (m playModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Clear):
			m.history = nil
			return m, nil

		case key.Matches(msg, keys.Vars):
			m.showVars = !m.showVars
			return m, nil

		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.HistoryUp):
			return m.recallHistory(-1), nil

		case key.Matches(msg, keys.HistoryDown):
			return m.recallHistory(1), nil

		case key.Matches(msg, keys.Complete):
			return m.handleAutocomplete(), nil

		case key.Matches(msg, keys.Submit):
			line := strings.TrimSpace(m.input.Value())
			if line == "" {
				return m, nil
			}
			m.input.SetValue("")
			m.recallIdx = -1
			if strings.HasPrefix(line, ":") {
				return m.handleCommand(line)
			}
			output, failed := m.evaluate(line)
			m.history = append(m.history, historyEntry{line: line, output: output, failed: failed})
			m.entered = append(m.entered, line)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// recallHistory steps through previously entered lines: -1 toward the
// oldest, +1 toward the newest. Stepping past the newest restores the
// empty input line.
func (m playModel) recallHistory(step int) playModel {
	if len(m.entered) == 0 {
		return m
	}
	switch {
	case m.recallIdx == -1 && step < 0:
		m.recallIdx = len(m.entered) - 1
	case m.recallIdx == -1:
		return m
	default:
		m.recallIdx += step
	}
	if m.recallIdx >= len(m.entered) {
		m.recallIdx = -1
		m.input.SetValue("")
		return m
	}
	if m.recallIdx < 0 {
		m.recallIdx = 0
	}
	m.input.SetValue(m.entered[m.recallIdx])
	m.input.CursorEnd()
	return m
}

func (m playModel) handleCommand(line string) (playModel, tea.Cmd) {
	cmd := strings.Fields(line)[0]
	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = nil
	case ":vars", ":v":
		m.showVars = !m.showVars
	case ":reset", ":r":
		m.program = str.StdProgram()
		m.history = append(m.history, historyEntry{line: line, output: "Session reset"})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{line: line, output: "Unknown command: " + cmd, failed: true})
	}
	return m, nil
}

// handleAutocomplete completes the word being typed. A unique match is
// filled in; several matches are listed in the scrollback instead.
func (m playModel) handleAutocomplete() playModel {
	line := m.input.Value()
	words := strings.Fields(line)
	if len(words) == 0 {
		return m
	}
	last := words[len(words)-1]

	var matches []string
	for _, candidate := range completionCandidates(m.program) {
		if strings.HasPrefix(candidate, last) {
			matches = append(matches, candidate)
		}
	}
	switch {
	case len(matches) == 1:
		m.input.SetValue(strings.TrimSuffix(line, last) + matches[0])
		m.input.CursorEnd()
	case len(matches) > 1:
		slices.Sort(matches)
		m.history = append(m.history, historyEntry{output: "Completions: " + strings.Join(matches, ", ")})
	}
	return m
}

// evaluate runs one line against the session program. The reported
// output is the stack after the line, or the rendered error; either way
// the session keeps whatever the line managed to push or bind.
func (m playModel) evaluate(line string) (string, bool) {
	if err := evalSource(m.program, line); err != nil {
		return renderedError(err, line).Error(), true
	}
	return m.stackLine(), false
}

func (m playModel) stackLine() string {
	if m.program.Stack().Len() == 0 {
		return "(empty)"
	}
	return m.program.Stack().String()
}

func (m playModel) View() string {
	if !m.initialized {
		return "Loading..."
	}
	if m.quitting {
		return dimStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("str playground") + " " + dimStyle.Render(version) + "\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", min(max(m.width-2, 0), 60))) + "\n\n")

	reservedLines := 10
	if m.showHelp {
		reservedLines += 10
	}
	if m.showVars {
		reservedLines += len(m.program.Vars()) + 3
	}
	availableHeight := max(m.height-reservedLines, 0)

	start := 0
	if len(m.history) > availableHeight {
		start = len(m.history) - availableHeight
	}
	for _, entry := range m.history[start:] {
		if entry.line != "" {
			b.WriteString(dimStyle.Render("  › ") + entry.line + "\n")
		}
		if entry.failed {
			b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n")
		} else {
			b.WriteString("  " + resultStyle.Render("→ "+entry.output) + "\n")
		}
		b.WriteString("\n")
	}

	if m.showVars {
		b.WriteString(renderVarsPanel(m.program.Vars()) + "\n")
	}
	if m.showHelp {
		b.WriteString(renderHelpPanel() + "\n")
	}

	b.WriteString(dimStyle.Render("stack: ") + stackStyle.Render(m.stackLine()) + "\n\n")
	b.WriteString(m.input.View() + "\n\n")
	b.WriteString(renderFooter())

	return b.String()
}

func renderFooter() string {
	parts := make([]string, 0, 4)
	for _, binding := range []key.Binding{keys.Help, keys.Vars, keys.Clear, keys.Quit} {
		help := binding.Help()
		parts = append(parts, keyStyle.Render(help.Key)+" "+descStyle.Render(help.Desc))
	}
	return strings.Join(parts, "  ")
}

func renderVarsPanel(vars map[string]str.Value) string {
	if len(vars) == 0 {
		return panelStyle.Render(dimStyle.Render("No variables bound"))
	}

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	slices.Sort(names)

	lines := []string{promptStyle.Render("Variables")}
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("  %s = %s", keyStyle.Render(name), vars[name].Inspect()))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Walk input history"},
		{"Tab", "Autocomplete"},
		{"Enter", "Run the line"},
		{":help", "Toggle this help"},
		{":vars", "Toggle variables panel"},
		{":clear", "Clear history"},
		{":reset", "Fresh stack and variables"},
		{":quit", "Exit the playground"},
	}

	lines := []string{promptStyle.Render("Help")}
	for _, h := range help {
		lines = append(lines, fmt.Sprintf("  %s  %s",
			keyStyle.Render(fmt.Sprintf("%-8s", h.key)),
			descStyle.Render(h.desc)))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func runPlayground() error {
	p := tea.NewProgram(newPlayModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
