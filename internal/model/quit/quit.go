package quit

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vinser/descent/internal/render"
	"github.com/vinser/descent/internal/style"
)

const quitPeriod = time.Second

type Model struct {
	width      int
	height     int
	termWidth  int
	termHeight int

	deepest   int
	levels    int
	quitUntil time.Time
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type TimedoutMsg struct{}

func timedoutCmd() tea.Cmd {
	return func() tea.Msg {
		return TimedoutMsg{}
	}
}

// New returns the farewell screen. deepest is the deepest depth reached
// and levels the number of layouts generated in the session.
func New(deepest, levels, width, height int) Model {
	return Model{
		width:     width,
		height:    height,
		deepest:   deepest,
		levels:    levels,
		quitUntil: time.Now().Add(quitPeriod),
	}
}

func (m *Model) SetSize(width, height int) {
	m.termWidth = width
	m.termHeight = height
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); !ok {
		return m, nil
	}
	if time.Now().After(m.quitUntil) {
		return m, timedoutCmd()
	}
	return m, tick()
}

func (m Model) View() string {
	content := style.Stats.Render(fmt.Sprintf("\nDeepest depth: %d\nLayouts dug: %d\n", m.deepest, m.levels))
	return render.Page("Back to the surface", content, "Bye!", m.width, m.height, m.termWidth, m.termHeight)
}
