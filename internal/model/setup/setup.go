package setup

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vinser/descent/internal/state"
	"github.com/vinser/descent/internal/style"
)

const width = 80

const (
	selectedWidth = iota
	selectedHeight
	selectedStepsPerRow
	selectedSpriteSize
	selectedMute
	selectedVolume
	selectedReset
	numSettings
)

// stepBudgets are the walk budgets offered, 0 is the generator default.
var stepBudgets = []int{0, 16, 64, 1024, -1}

// volumes are the master volume steps offered, each one half of the previous.
var volumes = []float64{0, -1, -2, -3, -4}

type Model struct {
	width       int
	height      int
	stepsPerRow int
	spriteSize  string // small, medium or large
	mute        bool
	volume      float64
	reset       bool

	selectedSetting int
}

type SaveSettingsMsg struct {
	Width       int
	Height      int
	StepsPerRow int
	SpriteSize  string
	Mute        bool
	Volume      float64
	Reset       bool
}

func (m Model) saveSettingsCmd() tea.Cmd {
	return func() tea.Msg {
		return SaveSettingsMsg{
			Width:       m.width,
			Height:      m.height,
			StepsPerRow: m.stepsPerRow,
			SpriteSize:  m.spriteSize,
			Mute:        m.mute,
			Volume:      m.volume,
			Reset:       m.reset,
		}
	}
}

type DiscardSettingsMsg struct{}

func discardSettingsCmd() tea.Cmd {
	return func() tea.Msg {
		return DiscardSettingsMsg{}
	}
}

func New(st *state.State) Model {
	return Model{
		width:       st.Width,
		height:      st.Height,
		stepsPerRow: st.StepsPerRow,
		spriteSize:  st.SpriteSize,
		mute:        st.Mute,
		volume:      st.Volume,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "s":
		return m, m.saveSettingsCmd()
	case "esc":
		return m, discardSettingsCmd()
	case "up":
		if m.selectedSetting > 0 {
			m.selectedSetting--
		}
	case "down":
		if m.selectedSetting < numSettings-1 {
			m.selectedSetting++
		}
	case "right", "+", "enter", " ":
		m.change(1)
	case "left", "-":
		m.change(-1)
	}
	return m, nil
}

// change moves the selected setting one value forward or backward.
func (m *Model) change(delta int) {
	switch m.selectedSetting {
	case selectedWidth:
		m.width = wrap(m.width+delta, 1, state.MaxWidth)
	case selectedHeight:
		m.height = wrap(m.height+delta, 2, state.MaxHeight)
	case selectedStepsPerRow:
		m.stepsPerRow = cycle(stepBudgets, m.stepsPerRow, delta)
	case selectedSpriteSize:
		m.spriteSize = cycle([]string{state.SpriteSmall, state.SpriteMedium, state.SpriteLarge}, m.spriteSize, delta)
	case selectedMute:
		m.mute = !m.mute
	case selectedVolume:
		m.volume = cycle(volumes, m.volume, -delta)
	case selectedReset:
		m.reset = !m.reset
	}
}

// wrap keeps v within [lo, hi], wrapping around at both ends.
func wrap(v, lo, hi int) int {
	switch {
	case v > hi:
		return lo
	case v < lo:
		return hi
	}
	return v
}

// cycle returns the value delta places from current. Unknown values
// restart from the first one.
func cycle[T comparable](values []T, current T, delta int) T {
	for i, v := range values {
		if v == current {
			return values[(i+delta+len(values))%len(values)]
		}
	}
	return values[0]
}

func budgetLabel(n int) string {
	switch {
	case n == 0:
		return "auto"
	case n < 0:
		return "unlimited"
	}
	return fmt.Sprint(n)
}

func volumeLabel(v float64) string {
	return fmt.Sprintf("%d%%", int(100*math.Pow(2, v)))
}

func (m Model) View() string {
	type option struct {
		label string
		value string
	}

	options := []option{
		{"Grid width", fmt.Sprint(m.width)},
		{"Grid height", fmt.Sprint(m.height)},
		{"Steps per row", budgetLabel(m.stepsPerRow)},
		{"Sprite size", m.spriteSize},
		{"Mute all sounds", fmt.Sprintf("%v", m.mute)},
		{"Volume", volumeLabel(m.volume)},
		{"Reset seeds", fmt.Sprintf("%v", m.reset)},
	}

	var b strings.Builder
	title := style.SetupTitle.Render("Settings")
	b.WriteString("\n" + centerText(title) + "\n\n")

	for i, opt := range options {
		prefix := "  "
		if i == m.selectedSetting {
			prefix = "➤ "
		}
		line := fmt.Sprintf("%s%s: %s", prefix, opt.label, opt.value)
		if i == m.selectedSetting {
			b.WriteString(centerText(style.SetupItemSelected.Render(line)))
		} else {
			b.WriteString(centerText(style.SetupItem.Render(line)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n\n\n\n" + centerText("↑ ↓ select, ← → change, s save, esc cancel") + "\n")
	return b.String()
}

func centerText(text string) string {
	padding := max((width-lipgloss.Width(text))/2, 0)
	return strings.Repeat(" ", padding) + text
}
