package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"

	"github.com/mgomes/escopo/escopo"
)

type historyEntry struct {
	input  string
	events []escopo.Event
	note   string
	isErr  bool
}

type replModel struct {
	textInput   textinput.Model
	interp      *escopo.Interpreter
	rec         *escopo.Recorder
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showHelp    bool
	showVars    bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
	Tab   key.Binding
	CtrlV key.Binding
	CtrlH key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous line"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next line"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "execute"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "autocomplete"),
	),
	CtrlV: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "toggle scopes"),
	),
	CtrlH: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
}

func newREPLCmd(global *globalOptions) *cobra.Command {
	var load string
	cmd := &cobra.Command{
		Use:   "repl [--load FILE]",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := global.loadSettings(scriptDir(""))
			if err != nil {
				return err
			}
			m, err := newREPLModel(settings.Interpreter())
			if err != nil {
				return err
			}
			if load != "" {
				if m, err = m.loadState(load); err != nil {
					return err
				}
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
	cmd.Flags().StringVar(&load, "load", "", "restore a state file saved with :save or run --dump-state")
	return cmd
}

func newREPLModel(cfg escopo.Config) (replModel, error) {
	rec := &escopo.Recorder{}
	interp, err := escopo.NewInterpreter(cfg, rec)
	if err != nil {
		return replModel{}, err
	}

	ti := textinput.New()
	ti.Placeholder = "type a statement..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle

	m := replModel{
		textInput:  ti,
		interp:     interp,
		rec:        rec,
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
	}
	m.updatePrompt()
	return m, nil
}

func (m *replModel) updatePrompt() {
	if label, ok := m.interp.CurrentBlock(); ok {
		m.textInput.Prompt = fmt.Sprintf("escopo[%s]> ", label)
		return
	}
	m.textInput.Prompt = "escopo> "
}

func (m replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = make([]historyEntry, 0)
			return m, nil

		case key.Matches(msg, keys.CtrlV):
			m.showVars = !m.showVars
			return m, nil

		case key.Matches(msg, keys.CtrlH):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Tab):
			m = m.handleAutocomplete()
			return m, nil

		case key.Matches(msg, keys.Enter):
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, ":") {
				var cmd tea.Cmd
				m, cmd = m.handleCommand(input)
				m.textInput.SetValue("")
				m.historyIdx = -1
				return m, cmd
			}

			m.history = append(m.history, historyEntry{
				input:  input,
				events: m.execute(input),
			})
			m.cmdHistory = append(m.cmdHistory, input)
			m.textInput.SetValue("")
			m.historyIdx = -1
			m.updatePrompt()
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// execute runs one line and returns the events it produced.
func (m replModel) execute(input string) []escopo.Event {
	m.rec.Reset()
	m.interp.Exec(input)
	events := make([]escopo.Event, len(m.rec.Events))
	copy(events, m.rec.Events)
	return events
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]
	arg := ""
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
	case ":vars", ":v":
		m.showVars = !m.showVars
	case ":reset", ":r":
		m.interp.Reset()
		m.updatePrompt()
		m = m.note(input, "Session reset", false)
	case ":save", ":s":
		if arg == "" {
			return m.note(input, "usage: :save FILE", true), nil
		}
		if err := dumpState(arg, m.interp.Snapshot()); err != nil {
			return m.note(input, err.Error(), true), nil
		}
		m = m.note(input, fmt.Sprintf("Saved %d open block(s) to %s", m.interp.Depth(), arg), false)
	case ":load", ":l":
		if arg == "" {
			return m.note(input, "usage: :load FILE", true), nil
		}
		loaded, err := m.loadState(arg)
		if err != nil {
			return m.note(input, err.Error(), true), nil
		}
		m = loaded.note(input, fmt.Sprintf("Loaded %d open block(s) from %s", loaded.interp.Depth(), arg), false)
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m = m.note(input, fmt.Sprintf("Unknown command: %s", cmd), true)
	}
	return m, nil
}

func (m replModel) note(input, text string, isErr bool) replModel {
	m.history = append(m.history, historyEntry{input: input, note: text, isErr: isErr})
	return m
}

func (m replModel) loadState(path string) (replModel, error) {
	snap, err := loadState(path)
	if err != nil {
		return m, err
	}
	if err := m.interp.Restore(snap); err != nil {
		return m, err
	}
	m.updatePrompt()
	return m, nil
}

// completionCandidates lists the keywords followed by visible identifiers.
func (m replModel) completionCandidates() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(word string) {
		if _, ok := seen[word]; ok {
			return
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}
	for _, kw := range m.interp.Keywords().List() {
		add(kw)
	}
	for _, tok := range m.interp.Visible() {
		add(tok.Name)
	}
	return out
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	if input == "" {
		return m
	}

	words := strings.Fields(input)
	if len(words) == 0 || strings.HasSuffix(input, " ") {
		return m
	}
	lastWord := words[len(words)-1]

	ranks := fuzzy.RankFindFold(lastWord, m.completionCandidates())
	sort.Sort(ranks)
	completions := make([]string, 0, len(ranks))
	for _, r := range ranks {
		completions = append(completions, r.Target)
	}

	if len(completions) == 1 {
		prefix := strings.TrimSuffix(input, lastWord)
		m.textInput.SetValue(prefix + completions[0])
		m.textInput.CursorEnd()
	} else if len(completions) > 1 {
		m.history = append(m.history, historyEntry{
			note: "Completions: " + strings.Join(completions, ", "),
		})
	}

	return m
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Até logo!\n")
	}

	var b strings.Builder

	header := headerStyle.Render("escopo REPL")
	depth := mutedStyle.Render(fmt.Sprintf("depth %d", m.interp.Depth()))
	b.WriteString(header + " " + depth + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	snap := m.interp.Snapshot()
	reservedLines := 8
	if m.showHelp {
		reservedLines += 12
	}
	if m.showVars {
		reservedLines += len(snap.Blocks) + 3
		for _, blk := range snap.Blocks {
			reservedLines += len(blk.Tokens)
		}
	}
	availableHeight := m.height - reservedLines

	historyStart := 0
	if len(m.history) > availableHeight {
		historyStart = max(len(m.history)-availableHeight, 0)
	}

	for i := historyStart; i < len(m.history); i++ {
		entry := m.history[i]
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		}
		for _, ev := range entry.events {
			b.WriteString("  " + eventStyle(ev.Kind).Render(ev.Text) + "\n")
		}
		switch {
		case entry.note == "":
		case entry.isErr:
			b.WriteString("  " + errorStyle.Render("✗ "+entry.note) + "\n")
		default:
			b.WriteString("  " + resultStyle.Render("→ "+entry.note) + "\n")
		}
	}
	b.WriteString("\n")

	if m.showVars {
		b.WriteString(renderScopesPanel(snap))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := helpKeyStyle.Render("ctrl+k") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render("ctrl+v") + helpDescStyle.Render(" scopes  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

// renderScopesPanel shows every open block, outermost first, with the
// identifiers declared in it.
func renderScopesPanel(snap escopo.Snapshot) string {
	if len(snap.Blocks) == 0 {
		return borderStyle.Render(mutedStyle.Render("No open blocks"))
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Scopes"))
	labelStyle := lipgloss.NewStyle().Foreground(accentColor)
	nameStyle := lipgloss.NewStyle().Foreground(highlightColor)
	for i, blk := range snap.Blocks {
		indent := strings.Repeat("  ", i)
		lines = append(lines, indent+labelStyle.Render(blk.Label)+mutedStyle.Render(fmt.Sprintf(" (line %d)", blk.Line)))
		for _, tok := range blk.Tokens {
			lines = append(lines, fmt.Sprintf("%s  %s = %s %s", indent, nameStyle.Render(tok.Name), tok.Value, mutedStyle.Render(tok.Type.String())))
		}
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate line history"},
		{"Tab", "Autocomplete keywords and identifiers"},
		{"Enter", "Execute statement"},
		{":help", "Toggle this help"},
		{":vars", "Toggle scopes panel"},
		{":clear", "Clear history"},
		{":reset", "Close every block and start over"},
		{":save F", "Save open blocks to file F"},
		{":load F", "Restore open blocks from file F"},
		{":quit", "Exit REPL"},
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help"))
	for _, h := range help {
		line := fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-8s", h.key)),
			helpDescStyle.Render(h.desc))
		lines = append(lines, line)
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}
