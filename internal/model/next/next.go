package next

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vinser/descent/internal/render"
	"github.com/vinser/descent/internal/style"
)

const nextPeriod = 1500 * time.Millisecond

type Model struct {
	width      int
	height     int
	termWidth  int
	termHeight int

	index     int
	seed      int64
	down      bool
	nextUntil time.Time
}

// TickMsg is a tick message for periodic updates.
type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// TimedoutMsg signals the end of the transition period.
type TimedoutMsg struct{}

func timedoutCmd() tea.Cmd {
	return func() tea.Msg {
		return TimedoutMsg{}
	}
}

// New returns the transition screen shown before depth index is previewed.
// down tells whether the move goes deeper.
func New(index int, seed int64, down bool, width, height int) Model {
	width = max(width, lipgloss.Width(title(index, down)))
	return Model{
		width:  width,
		height: height,

		index:     index,
		seed:      seed,
		down:      down,
		nextUntil: time.Now().Add(nextPeriod),
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
	switch msg.(type) {
	case tea.KeyMsg:
		// Keys pressed during the transition are dropped
		return m, nil
	case TickMsg:
		if time.Now().After(m.nextUntil) {
			return m, timedoutCmd()
		}
		return m, tick()
	}
	return m, nil
}

func title(index int, down bool) string {
	if down {
		return fmt.Sprintf("Descending to depth # %d", index)
	}
	return fmt.Sprintf("Climbing to depth # %d", index)
}

func (m Model) View() string {
	flash := ""
	if (time.Now().UnixNano()/int64(time.Millisecond)/500)%2 == 0 {
		flash = title(m.index, m.down)
	}
	return render.Page(flash, m.renderContent(), "", m.width, m.height, m.termWidth, m.termHeight)
}

func (m Model) renderContent() string {
	return "\n" + style.Stats.Render(fmt.Sprintf("seed %d", m.seed)) + "\n"
}
