package app

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vinser/descent/internal/level"
	"github.com/vinser/descent/internal/model/about"
	"github.com/vinser/descent/internal/model/next"
	"github.com/vinser/descent/internal/model/preview"
	"github.com/vinser/descent/internal/model/quit"
	"github.com/vinser/descent/internal/model/setup"
	"github.com/vinser/descent/internal/render"
	"github.com/vinser/descent/internal/sound"
	"github.com/vinser/descent/internal/state"
)

type status uint

const (
	statusPreview status = iota
	statusDoSettings
	statusAbout
	statusLevelIntro
	statusQuitting
)

// Smallest page the text screens are laid out on.
const (
	minPageWidth  = 48
	minPageHeight = 14
)

type Model struct {
	status  status
	state   *state.State
	cache   *level.Cache
	level   *level.Level
	deepest int
	err     error // last generation failure, shown over the preview
	// models
	preview preview.Model
	setup   setup.Model
	about   about.Model
	next    next.Model
	quit    quit.Model
	// terminal size cache
	termWidth  int
	termHeight int
}

// New returns the application previewing depth of the descent described by st.
func New(st *state.State, depth int) (Model, error) {
	m := Model{
		status:  statusPreview,
		state:   st,
		cache:   level.NewCache(),
		deepest: depth,
	}
	lvl, err := m.getLevel(depth)
	if err != nil {
		return Model{}, err
	}
	m.level = lvl
	m.resetPreviewModel()
	return m, nil
}

func levelConfig(st *state.State) level.Config {
	return level.Config{
		Width:       st.Width,
		Height:      st.Height,
		StepsPerRow: st.StepsPerRow,
		SpriteSize:  st.SpriteSize,
	}
}

// getLevel returns the level at depth, generating it with the seed the
// state keeps for that depth.
func (m *Model) getLevel(depth int) (*level.Level, error) {
	return m.cache.Get(depth, m.state.SeedFor(depth), levelConfig(m.state))
}

func (m Model) getWidthHeight() (int, int) {
	width, height := render.GridSize(levelConfig(m.state))
	return max(width, minPageWidth), max(height, minPageHeight)
}

func (m Model) Init() tea.Cmd {
	return m.preview.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.status == statusQuitting {
				return m, nil
			}
			cmd = m.startQuit()
			return m, cmd
		case "m": // mute/unmute
			m.state.SetMute(!m.state.Mute)
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		switch m.status {
		case statusPreview:
			m.preview, cmd = m.preview.Update(preview.WindowSizeMsg{Width: msg.Width, Height: msg.Height})
		case statusAbout:
			m.about.SetSize(msg.Width, msg.Height)
		case statusLevelIntro:
			m.next.SetSize(msg.Width, msg.Height)
		case statusQuitting:
			m.quit.SetSize(msg.Width, msg.Height)
		}
		return m, tea.Batch(cmd, tea.ClearScreen)
	}

	switch m.status {
	case statusPreview:
		switch msg := msg.(type) {
		case preview.NextLevelMsg:
			cmd = m.goToLevel(msg.Depth, true)
		case preview.PrevLevelMsg:
			cmd = m.goToLevel(msg.Depth, false)
		case preview.RerollMsg:
			old := m.state.SeedFor(msg.Depth)
			m.state.Reseed(msg.Depth)
			if cmd = m.reloadLevel(msg.Depth); m.err != nil {
				m.state.LevelSeeds[msg.Depth] = old
			}
		case preview.OpenSettingsMsg:
			m.status = statusDoSettings
			m.setup = setup.New(m.state)
		case preview.OpenAboutMsg:
			m.status = statusAbout
			width, height := m.getWidthHeight()
			m.about = about.New(width, height)
			m.about.SetSize(m.termWidth, m.termHeight)
		default:
			m.preview, cmd = m.preview.Update(msg)
		}
	case statusDoSettings:
		switch msg := msg.(type) {
		case setup.SaveSettingsMsg:
			cmd = m.applySettings(msg)
		case setup.DiscardSettingsMsg:
			m.status = statusPreview
		default:
			m.setup, cmd = m.setup.Update(msg)
		}
	case statusAbout:
		switch msg.(type) {
		case about.CloseAboutMsg:
			m.status = statusPreview
		default:
			m.about, cmd = m.about.Update(msg)
		}
	case statusLevelIntro:
		switch msg.(type) {
		case next.TimedoutMsg:
			m.status = statusPreview
			m.resetPreviewModel()
			cmd = m.preview.Init()
		default:
			m.next, cmd = m.next.Update(msg)
		}
	case statusQuitting:
		switch msg.(type) {
		case quit.TimedoutMsg:
			return m, tea.Quit
		default:
			m.quit, cmd = m.quit.Update(msg)
		}
	}
	return m, cmd
}

// goToLevel shows the transition to depth and prepares its level.
// On failure the current level stays and the error is shown.
func (m *Model) goToLevel(depth int, down bool) tea.Cmd {
	lvl, err := m.getLevel(depth)
	if err != nil {
		m.fail(depth, err)
		return nil
	}
	m.err = nil
	m.level = lvl
	m.deepest = max(m.deepest, depth)
	m.saveState()

	m.state.SoundManager.Play(sound.DESCEND)
	m.status = statusLevelIntro
	width, height := m.getWidthHeight()
	m.next = next.New(depth, lvl.Seed, down, width, height)
	m.next.SetSize(m.termWidth, m.termHeight)
	return m.next.Init()
}

// reloadLevel regenerates depth in place and restarts its preview.
func (m *Model) reloadLevel(depth int) tea.Cmd {
	lvl, err := m.getLevel(depth)
	if err != nil {
		m.fail(depth, err)
		return nil
	}
	return m.showLevel(lvl)
}

// showLevel makes lvl current and restarts its preview.
func (m *Model) showLevel(lvl *level.Level) tea.Cmd {
	m.err = nil
	m.level = lvl
	m.status = statusPreview
	m.resetPreviewModel()
	return m.preview.Init()
}

// fail keeps the current level and shows err over its preview.
func (m *Model) fail(depth int, err error) {
	log.Printf("depth %d: %v", depth, err)
	m.err = err
	m.status = statusPreview
	m.preview.SetError(err)
}

// applySettings commits new settings only when they can generate the
// depth to show, so a saved state always loads.
func (m *Model) applySettings(msg setup.SaveSettingsMsg) tea.Cmd {
	candidate := *m.state
	depth := m.level.Index
	if msg.Reset {
		candidate = *state.New()
		depth = 0
	}
	// The sound manager outlives state resets.
	candidate.SoundManager = m.state.SoundManager
	candidate.Width = msg.Width
	candidate.Height = msg.Height
	candidate.StepsPerRow = msg.StepsPerRow
	candidate.SpriteSize = msg.SpriteSize

	lvl, err := level.New(depth, candidate.SeedFor(depth), levelConfig(&candidate))
	if err != nil {
		m.fail(depth, err)
		return nil
	}

	m.state = &candidate
	m.state.SetMute(msg.Mute)
	m.state.SetVolume(msg.Volume)
	if msg.Reset {
		m.deepest = 0
	}
	m.cache.Reset()
	m.cache.Put(lvl)
	m.saveState()
	return m.showLevel(lvl)
}

func (m *Model) startQuit() tea.Cmd {
	m.saveState()
	m.state.SoundManager.StopAll()
	m.status = statusQuitting
	width, height := m.getWidthHeight()
	m.quit = quit.New(m.deepest, m.cache.Len(), width, height)
	m.quit.SetSize(m.termWidth, m.termHeight)
	return m.quit.Init()
}

func (m *Model) saveState() {
	if err := m.state.Save(); err != nil {
		log.Printf("save state: %v", err)
	}
}

func (m *Model) resetPreviewModel() {
	m.preview = preview.New(m.level, m.state.SoundManager, m.termWidth, m.termHeight)
}

func (m Model) View() string {
	switch m.status {
	case statusPreview:
		return m.preview.View()
	case statusDoSettings:
		return m.setup.View()
	case statusAbout:
		return m.about.View()
	case statusLevelIntro:
		return m.next.View()
	case statusQuitting:
		return m.quit.View()
	}
	return ""
}
