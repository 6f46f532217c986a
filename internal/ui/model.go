package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const (
	// maxLogLines is the amount of log lines kept for the log panel.
	maxLogLines = 5

	// minBatch is the least amount of matches pulled from the source at once.
	minBatch = 16
)

//nolint:gochecknoglobals
var (
	// titleStyle defines the style for a panel's title.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	// borderStyle defines the style for a panel's borders.
	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	// infoStyle defines the style for a panel's text.
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	// helpStyle defines the style for the help panel's text.
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(0, 1)
)

// MatchesMsg is a [tea.Msg] containing the next batch of rendered matches.
type MatchesMsg struct {
	lines []string
	done  bool
	err   error
}

// TeaModel is the principal [tea.Model] for the command-line user interface.
type TeaModel struct {
	width  int
	height int

	cancel context.CancelFunc

	uiHandler *Handler
	title     string
	source    matchSource
	describe  Describer

	lines    []string
	logs     []string
	loading  bool
	loadAll  bool
	done     bool
	err      error
	viewport viewport.Model
	spinner  spinner.Model

	ready bool
}

// NewTeaModel returns an initial new [TeaModel].
//
//nolint:mnd
func NewTeaModel(uiHandler *Handler, title string, source matchSource, describe Describer, cancel context.CancelFunc) TeaModel {
	return TeaModel{
		uiHandler: uiHandler,
		title:     title,
		source:    source,
		describe:  describe,
		cancel:    cancel,
		viewport:  viewport.New(80, 20),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		logs:      make([]string, 0, maxLogLines),
	}
}

// Init initializes the model within a [tea.Program].
func (m TeaModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// fetchMatches produces a [tea.Cmd] for later scheduling in a [tea.Program].
// When executed, it advances the source by up to n matches and returns them
// as [MatchesMsg].
func fetchMatches(source matchSource, describe Describer, n int) tea.Cmd {
	return func() tea.Msg {
		msg := MatchesMsg{lines: make([]string, 0, n)}

		for range n {
			if !source.Next() {
				msg.done = true
				msg.err = source.Err()

				break
			}
			msg.lines = append(msg.lines, describe(source.Match()))
		}

		return msg
	}
}

// wantsMore returns true if more matches should be pulled from the source,
// which is when the viewport is not filled or scrolled to its end.
func (m TeaModel) wantsMore() bool {
	if m.done || m.loading {
		return false
	}

	return m.loadAll || len(m.lines) < m.viewport.Height || m.viewport.AtBottom()
}

func (m *TeaModel) fetch() tea.Cmd {
	if !m.wantsMore() {
		return nil
	}
	m.loading = true

	return fetchMatches(m.source, m.describe, max(minBatch, m.viewport.Height*2)) //nolint:mnd
}

// Update is the principal message handling method of the model.
// It sets the internal state of the model, for later rendering.
//
//nolint:ireturn
func (m TeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}

			return m, tea.Quit
		case "q", "esc":
			return m, tea.Quit
		case "a":
			m.loadAll = true
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.viewport.Width = max(m.width-2, 0)                         //nolint:mnd
		m.viewport.Height = max(m.height-maxLogLines-6, minBatch/4) //nolint:mnd
		m.refresh()

		if !m.ready {
			m.ready = true
			if m.uiHandler != nil {
				m.uiHandler.Ready.Store(true)
			}
		}

	case MatchesMsg:
		m.loading = false
		m.lines = append(m.lines, msg.lines...)
		m.done = msg.done
		m.err = msg.err
		m.refresh()

	case LogMsg:
		if len(m.logs) >= maxLogLines {
			m.logs = m.logs[1:]
		}
		m.logs = append(m.logs, strings.TrimSuffix(string(msg), "\n"))

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	if m.ready {
		cmds = append(cmds, m.fetch())
	}

	return m, tea.Batch(cmds...)
}

// refresh sets the viewport content to the current matches.
func (m *TeaModel) refresh() {
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
}

// View is the principal rendering function of the model.
func (m TeaModel) View() string {
	if !m.ready {
		return "Loading the GUI..."
	}

	fullWidth := max(m.width-2, 0) //nolint:mnd

	status := fmt.Sprintf("%s %s matches", m.spinner.View(), humanize.Comma(int64(len(m.lines))))
	switch {
	case m.err != nil:
		status = fmt.Sprintf("%s matches, failed: %v", humanize.Comma(int64(len(m.lines))), m.err)
	case m.done:
		status = humanize.Comma(int64(len(m.lines))) + " matches, finished"
	case !m.loading:
		status = humanize.Comma(int64(len(m.lines))) + " matches so far"
	}

	resultsSection := borderStyle.
		Width(fullWidth).
		Render(
			lipgloss.JoinVertical(
				lipgloss.Left,
				titleStyle.Width(fullWidth).Render(m.title),
				m.viewport.View(),
			),
		)

	logsSection := infoStyle.
		Width(fullWidth).
		Render(strings.Join(m.logs, "\n"))

	helpSection := helpStyle.
		Width(fullWidth).
		Render(status + " | ↑/↓/pgup/pgdn: scroll • a: load all • q: quit • ctrl+c: quit program")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		resultsSection,
		logsSection,
		helpSection,
	)
}
