// Package tui plays a solution back in the terminal, one board per move.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pdrpinto/bestfirst/internal/driver"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	boardStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

// Model is a bubbletea model stepping through replay frames.
type Model struct {
	title    string
	frames   []driver.Frame
	index    int
	playing  bool
	interval time.Duration
}

// New returns a model that starts playing frames every interval.
func New(title string, frames []driver.Frame, interval time.Duration) Model {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return Model{
		title:    title,
		frames:   frames,
		playing:  len(frames) > 1,
		interval: interval,
	}
}

// Index is the frame on screen.
func (m Model) Index() int { return m.index }

// Playing reports whether frames advance on their own.
func (m Model) Playing() bool { return m.playing }

type TickMsg time.Time

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	if m.playing {
		return m.tickCmd()
	}
	return nil
}

func (m Model) last() int { return max(len(m.frames)-1, 0) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "n":
			m.playing = false
			m.index = min(m.index+1, m.last())
		case "left", "h", "p":
			m.playing = false
			m.index = max(m.index-1, 0)
		case "home", "g":
			m.playing = false
			m.index = 0
		case "end", "G":
			m.playing = false
			m.index = m.last()
		case " ":
			if m.index == m.last() {
				m.index = 0
			}
			m.playing = !m.playing && len(m.frames) > 1
			if m.playing {
				return m, m.tickCmd()
			}
		}
	case TickMsg:
		if !m.playing {
			return m, nil
		}
		m.index = min(m.index+1, m.last())
		if m.index == m.last() {
			m.playing = false
			return m, nil
		}
		return m, m.tickCmd()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	if len(m.frames) == 0 {
		b.WriteString("No moves.\n")
		b.WriteString(helpStyle.Render("q quit"))
		b.WriteString("\n")
		return b.String()
	}

	frame := m.frames[m.index]
	b.WriteString(boardStyle.Render(strings.TrimSuffix(frame.Board, "\n")))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Move %d/%d: %s\n", m.index+1, len(m.frames), frame.Action)
	b.WriteString(helpStyle.Render("←/→ step  space play/pause  g/G first/last  q quit"))
	b.WriteString("\n")
	return b.String()
}

// Run shows the model until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m).Run()
	return err
}
