// Package focus is the Bubble Tea front end for the pomodoro timer.
package focus

import (
	"fmt"
	"io"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/Yamikowu/studdy/internal/core/focus"
	"github.com/Yamikowu/studdy/internal/core/styles"
)

const tickInterval = time.Second

type tickMsg time.Time

// Completed is sent after a period runs out.
type Completed struct {
	Finished focus.Mode
	Next     focus.Mode
}

type keyMap struct {
	Toggle key.Binding
	Reset  key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Toggle: key.NewBinding(key.WithKeys("space", " "), key.WithHelp("space", "start/pause")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Quit}
}

// Options configures the model.
type Options struct {
	// Bell receives a BEL character when a period completes. Nil disables it.
	Bell io.Writer
	// OnComplete is called after each completed period.
	OnComplete func(Completed)
	Now        func() time.Time
}

// Model drives a focus.Timer from Bubble Tea ticks.
type Model struct {
	timer *focus.Timer
	keys  keyMap
	help  help.Model
	bar   progress.Model
	opts  Options

	last     time.Time
	quitting bool
}

// New creates a focus model over timer.
func New(timer *focus.Timer, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return Model{
		timer: timer,
		keys:  defaultKeys(),
		help:  help.New(),
		bar:   progress.New(progress.WithWidth(32), progress.WithoutPercentage()),
		opts:  opts,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.timer.Toggle()
			m.last = m.opts.Now()
		case key.Matches(msg, m.keys.Reset):
			m.timer.Reset()
		}
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		if !m.timer.Running() {
			return m, tick()
		}

		elapsed := now.Sub(m.last)
		m.last = now

		finished := m.timer.Mode()
		if !m.timer.Tick(elapsed) {
			return m, tick()
		}

		done := Completed{Finished: finished, Next: m.timer.Mode()}
		if m.opts.OnComplete != nil {
			m.opts.OnComplete(done)
		}
		return m, tea.Batch(tick(), ring(m.opts.Bell))
	}

	return m, nil
}

func ring(w io.Writer) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		_, _ = io.WriteString(w, "\a")
		return nil
	}
}

// View implements tea.Model.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	return tea.NewView(m.render())
}

func (m Model) render() string {
	title := styles.FocusTitleStyle
	if m.timer.Mode().IsBreak() {
		title = styles.BreakTitleStyle
	}

	state := "paused"
	if m.timer.Running() {
		state = "running"
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		title.Render(m.timer.Title()),
		styles.ClockStyle.Render(m.timer.Display()),
		m.bar.ViewAs(m.timer.Progress()),
		styles.MutedStyle.Render(fmt.Sprintf("%s · %s", state, rounds(m.timer.Completed()))),
	)

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render(m.help.ShortHelpView(m.keys.bindings())))
	return b.String()
}

func rounds(n int) string {
	if n == 1 {
		return "1 round done"
	}
	return fmt.Sprintf("%d rounds done", n)
}
