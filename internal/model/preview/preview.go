package preview

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vinser/descent/internal/layout"
	"github.com/vinser/descent/internal/level"
	"github.com/vinser/descent/internal/render"
	"github.com/vinser/descent/internal/sound"
	"github.com/vinser/descent/internal/style"
)

const (
	moveInterval        = 90 * time.Millisecond
	stallInterval       = 30 * time.Millisecond
	autoRepeatThreshold = 100 * time.Millisecond
	headerRows          = 3
	footerRows          = 1
)

// Viewport represents the visible block of cells.
type Viewport struct {
	StartCol, StartRow int // Top-left cell of the viewport
	Width, Height      int // Dimensions of the viewport in cells
}

// TerminalDimensions holds the terminal size information
type TerminalDimensions struct {
	Width  int
	Height int
}

var lastID atomic.Int64

// Model replays the walk of one level and shows the finished layout.
type Model struct {
	id           int64
	level        *level.Level
	soundManager *sound.Manager
	step         int // trace steps replayed so far
	shown        int // route cells uncovered
	lastKeyMsg   tea.KeyMsg
	lastKeyTime  time.Time
	terminal     TerminalDimensions
	viewport     Viewport
	errLine      string // shown above the grid, takes one row
	sb           *strings.Builder
}

// StepTickMsg advances the replay by one walk iteration.
type StepTickMsg struct {
	ID   int64
	Time time.Time
}

func (m Model) tick(d time.Duration) tea.Cmd {
	id := m.id
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return StepTickMsg{ID: id, Time: t}
	})
}

// NextLevelMsg asks to go one depth deeper.
type NextLevelMsg struct {
	Depth int
}

func nextLevelCmd(depth int) tea.Cmd {
	return func() tea.Msg {
		return NextLevelMsg{Depth: depth}
	}
}

// PrevLevelMsg asks to climb back one depth.
type PrevLevelMsg struct {
	Depth int
}

func prevLevelCmd(depth int) tea.Cmd {
	return func() tea.Msg {
		return PrevLevelMsg{Depth: depth}
	}
}

// RerollMsg asks for a new seed at the given depth.
type RerollMsg struct {
	Depth int
}

func rerollCmd(depth int) tea.Cmd {
	return func() tea.Msg {
		return RerollMsg{Depth: depth}
	}
}

type OpenSettingsMsg struct{}

func openSettingsCmd() tea.Cmd {
	return func() tea.Msg {
		return OpenSettingsMsg{}
	}
}

type OpenAboutMsg struct{}

func openAboutCmd() tea.Cmd {
	return func() tea.Msg {
		return OpenAboutMsg{}
	}
}

// WindowSizeMsg is a message sent when the terminal is resized.
type WindowSizeMsg struct {
	Width  int
	Height int
}

// New returns a preview of l. The replay starts on Init.
func New(l *level.Level, sm *sound.Manager, termWidth, termHeight int) Model {
	m := Model{
		id:           lastID.Add(1),
		level:        l,
		soundManager: sm,
		shown:        1,
		terminal:     TerminalDimensions{Width: termWidth, Height: termHeight},
		sb:           &strings.Builder{},
	}
	m.updateViewport()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.tick(moveInterval)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case WindowSizeMsg:
		m.terminal.Width = msg.Width
		m.terminal.Height = msg.Height
		m.viewport = Viewport{}
		m.updateViewport()
		return m, nil

	case StepTickMsg:
		if msg.ID != m.id || m.Finished() {
			return m, nil
		}
		cmd := m.advance()
		return m, cmd

	case tea.KeyMsg:
		isAutoRepeat := msg.String() == m.lastKeyMsg.String() &&
			time.Since(m.lastKeyTime) < autoRepeatThreshold
		m.lastKeyMsg = msg
		m.lastKeyTime = time.Now()
		if isAutoRepeat {
			return m, nil
		}

		depth := m.level.Index
		switch msg.String() {
		case "n", " ":
			return m, nextLevelCmd(depth + 1)
		case "p":
			if depth == 0 {
				m.soundManager.Play(sound.STALL)
				return m, nil
			}
			return m, prevLevelCmd(depth - 1)
		case "r":
			return m, rerollCmd(depth)
		case "f":
			if !m.Finished() {
				m.finish()
			}
			return m, nil
		case "s":
			return m, openSettingsCmd()
		case "a":
			return m, openAboutCmd()
		}
	}
	return m, nil
}

// advance replays one trace step and schedules the next one.
func (m *Model) advance() tea.Cmd {
	s := m.level.Trace[m.step]
	m.step++
	if !s.Accepted {
		m.soundManager.Play(sound.STALL)
		return m.tick(stallInterval)
	}

	m.shown++
	m.centerViewportOnHead()
	if m.Finished() {
		m.soundManager.Play(sound.EXIT)
		return nil
	}
	if s.Drawn == layout.Down {
		m.soundManager.Play(sound.STEP_DOWN)
	} else {
		m.soundManager.Play(sound.STEP_SIDE)
	}
	return m.tick(moveInterval)
}

// finish uncovers the whole route at once.
func (m *Model) finish() {
	m.step = len(m.level.Trace)
	m.shown = len(m.level.Route)
	m.centerViewportOnHead()
	m.soundManager.Play(sound.EXIT)
}

// Finished reports whether the whole walk has been replayed.
func (m Model) Finished() bool {
	return m.step >= len(m.level.Trace)
}

func (m Model) Level() *level.Level { return m.level }

// head is the last uncovered route cell.
func (m Model) head() layout.Position {
	return m.level.Route[m.shown-1].Position()
}

// SetError shows err above the grid until it is cleared with nil.
func (m *Model) SetError(err error) {
	m.errLine = ""
	if err != nil {
		m.errLine = err.Error()
	}
	m.updateViewport()
}

func (m *Model) availableRows() int {
	rows := m.terminal.Height - headerRows - footerRows - 1
	if m.errLine != "" {
		rows--
	}
	return max(rows, 1)
}

// updateViewport recalculates the viewport dimensions based on terminal size.
func (m *Model) updateViewport() {
	wChar, hRows := level.SpriteDims(m.level.Config.SpriteSize)
	gridWidth, gridHeight := m.level.Map.Width(), m.level.Map.Height()

	m.viewport.Width = gridWidth
	m.viewport.Height = gridHeight
	if m.terminal.Width > 0 {
		m.viewport.Width = min(max(m.terminal.Width/wChar, 1), gridWidth)
	}
	if m.terminal.Height > 0 {
		m.viewport.Height = min(max(m.availableRows()/hRows, 1), gridHeight)
	}
	m.centerViewportOnHead()
}

// centerViewportOnHead keeps the walk head in the middle of the viewport
// as far as the grid boundaries allow.
func (m *Model) centerViewportOnHead() {
	head := m.head()
	gridWidth, gridHeight := m.level.Map.Width(), m.level.Map.Height()

	m.viewport.StartCol = head.Col - m.viewport.Width/2
	m.viewport.StartRow = head.Row - m.viewport.Height/2
	m.viewport.StartCol = min(max(m.viewport.StartCol, 0), gridWidth-m.viewport.Width)
	m.viewport.StartRow = min(max(m.viewport.StartRow, 0), gridHeight-m.viewport.Height)
}

// render draws the header, the visible block of the grid and the footer.
func (m *Model) render() {
	wChar, hRows := level.SpriteDims(m.level.Config.SpriteSize)
	gridChars := m.viewport.Width * wChar
	gridRows := m.viewport.Height * hRows
	hPadding := max((m.terminal.Width-gridChars)/2, 0)
	vPadding := max((m.availableRows()-gridRows)/2, 0)
	pad := strings.Repeat(" ", hPadding)

	if m.errLine != "" {
		m.sb.WriteString(style.Error.Render(m.errLine))
		m.sb.WriteString("\n")
	}
	m.sb.WriteString(pad)
	m.sb.WriteString(style.TopPattern.Render(strings.Repeat("\\", gridChars)))
	m.sb.WriteString("\n")
	m.sb.WriteString(strings.Repeat("\n", vPadding))

	for _, line := range m.headerLines() {
		m.sb.WriteString(pad)
		m.sb.WriteString(line)
		m.sb.WriteString("\n")
	}

	lines := render.Window(m.level, m.shown, m.viewport.StartCol, m.viewport.StartRow, m.viewport.Width, m.viewport.Height)
	for _, line := range lines {
		m.sb.WriteString(pad)
		m.sb.WriteString(line)
		m.sb.WriteString("\n")
	}

	m.sb.WriteString(pad)
	m.sb.WriteString(style.Footer.Render(m.footerText()))
	m.sb.WriteString("\n")
}

func (m *Model) headerLines() []string {
	l := m.level
	status := "digging..."
	if m.Finished() {
		status = "done"
	}
	return []string{
		style.PreviewHeader.Render(fmt.Sprintf("Depth: %d  Seed: %d", l.Index, l.Seed)),
		style.Stats.Render(fmt.Sprintf("Grid: %dx%d  Steps: %d/%d  Stalls: %d", l.Map.Width(), l.Map.Height(), m.step, len(l.Trace), m.stalls())),
		style.Stats.Render(fmt.Sprintf("Route: %d/%d cells  %s", m.shown, len(l.Route), status)),
	}
}

// stalls counts the stalls among the replayed steps.
func (m *Model) stalls() int {
	n := 0
	for _, s := range m.level.Trace[:m.step] {
		if !s.Accepted {
			n++
		}
	}
	return n
}

func (m *Model) footerText() string {
	if m.Finished() {
		return "n next, p back, r reroll, s settings, a about, q quit"
	}
	return "f finish, n next, p back, r reroll, q quit"
}

// View returns the complete screen output.
func (m Model) View() string {
	m.sb.Reset()
	m.render()
	return m.sb.String()
}
