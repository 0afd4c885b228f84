// Package level builds the numbered layouts of a descent and the sprites
// that draw them.
package level

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/charmbracelet/lipgloss"
	"github.com/vinser/descent/internal/layout"
	"github.com/vinser/descent/internal/style"
)

// Config is the part of the settings a level is generated from.
type Config struct {
	Width       int
	Height      int
	StepsPerRow int
	SpriteSize  string
}

type Level struct {
	Index  int
	Seed   int64
	Config Config
	Map    *layout.Map
	Route  []layout.Tile // walk cells from entrance to exit
	Trace  []layout.Step // every walk iteration, stalls included

	order  map[layout.Position]int // position -> index in Route
	bright map[layout.Kind]lipgloss.Style
	dim    map[layout.Kind]lipgloss.Style
}

var kindColors = map[layout.Kind]string{
	layout.KindEntrance: "red",
	layout.KindExit:     "green",
	layout.KindPath:     "white",
	layout.KindEmpty:    "grey",
}

// New generates the level at depth index. A zero seed makes the layout
// depend on the index alone.
func New(index int, seed int64, cfg Config) (*Level, error) {
	if seed == 0 {
		seed = int64(index)
	}
	lvl := &Level{Index: index, Seed: seed, Config: cfg}

	m, err := layout.Generate(cfg.Width, cfg.Height, layout.Options{
		Source:      rand.New(rand.NewSource(seed)),
		StepsPerRow: cfg.StepsPerRow,
		OnStep: func(s layout.Step) {
			lvl.Trace = append(lvl.Trace, s)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", index, err)
	}
	lvl.Map = m
	lvl.Route = m.Route()
	lvl.order = make(map[layout.Position]int, len(lvl.Route))
	for i, t := range lvl.Route {
		lvl.order[t.Position()] = i
	}

	lvl.bright = make(map[layout.Kind]lipgloss.Style, len(kindColors))
	lvl.dim = make(map[layout.Kind]lipgloss.Style, len(kindColors))
	for kind, color := range kindColors {
		lvl.bright[kind], lvl.dim[kind] = style.DepthStyles(color, index)
	}

	log.Printf("level %d: %dx%d seed=%d route=%d steps=%d stalls=%d",
		index, cfg.Width, cfg.Height, seed, len(lvl.Route), m.Steps(), m.Stalls())
	return lvl, nil
}

// Shown returns how many route cells are uncovered once the first n trace
// steps have been replayed. The entrance is always uncovered.
func (l *Level) Shown(n int) int {
	n = min(max(n, 0), len(l.Trace))
	shown := 1
	for _, s := range l.Trace[:n] {
		if s.Accepted {
			shown++
		}
	}
	return shown
}

// SpriteAt returns the styled lines for the cell at (col, row) when the first
// shown cells of the route are uncovered. Covered route cells look like rock.
func (l *Level) SpriteAt(col, row, shown int) []string {
	t, ok := l.Map.At(col, row)
	if !ok {
		return nil
	}
	kind := layout.KindOf(t)
	st := l.bright[kind]
	if kind == layout.KindEmpty {
		st = l.dim[kind]
	} else if l.order[t.Position()] >= shown {
		t = layout.EmptyTile{Pos: t.Position()}
		st = l.dim[layout.KindEmpty]
	}

	lines := Sprite(t, l.Config.SpriteSize)
	for i, s := range lines {
		lines[i] = st.Render(s)
	}
	return lines
}

// Cache keeps generated levels by depth.
type Cache struct {
	levels map[int]*Level
}

func NewCache() *Cache {
	return &Cache{levels: make(map[int]*Level)}
}

// Get returns the cached level at index, regenerating it when the seed or
// the configuration it was built with differ.
func (c *Cache) Get(index int, seed int64, cfg Config) (*Level, error) {
	if seed == 0 {
		seed = int64(index)
	}
	if l, ok := c.levels[index]; ok && l.Seed == seed && l.Config == cfg {
		return l, nil
	}
	l, err := New(index, seed, cfg)
	if err != nil {
		return nil, err
	}
	c.levels[index] = l
	return l, nil
}

// Put stores l under its index, replacing any cached level.
func (c *Cache) Put(l *Level) {
	c.levels[l.Index] = l
}

// Reset drops every cached level.
func (c *Cache) Reset() {
	clear(c.levels)
}

func (c *Cache) Len() int { return len(c.levels) }
