// Package layout generates the cell layout of a descending level: a grid
// crossed top to bottom by a single random walk, each cell classified as
// entrance, exit, path or empty.
package layout

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"
)

const (
	MinWidth  = 1
	MinHeight = 2

	// DefaultStepsPerRow bounds the walk at this many iterations per row to
	// descend. A row is left with probability 1/3 on every iteration, so the
	// budget is only spent on a broken source.
	DefaultStepsPerRow = 256
)

var (
	ErrConfig        = errors.New("layout: invalid configuration")
	ErrWalkExhausted = errors.New("layout: walk step budget exhausted")
	ErrInvariant     = errors.New("layout: internal invariant violated")
)

// Options controls Generate.
type Options struct {
	// Source supplies the randomness. When nil a source seeded with Seed is used.
	Source Source
	// Seed seeds the default source. Zero picks a time based seed.
	Seed int64
	// StepsPerRow sets the walk budget per row to descend.
	// Zero means DefaultStepsPerRow, a negative value disables the budget.
	StepsPerRow int
	// OnStep is passed to the walker.
	OnStep func(Step)
}

func (o Options) maxSteps(height int) int {
	switch {
	case o.StepsPerRow < 0:
		return 0
	case o.StepsPerRow == 0:
		return DefaultStepsPerRow * (height - 1)
	default:
		return o.StepsPerRow * (height - 1)
	}
}

func (o Options) source() Source {
	if o.Source != nil {
		return o.Source
	}
	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Map is a generated level layout. It is read-only once built.
type Map struct {
	width  int
	height int
	start  Position
	end    Position
	tiles  []Tile
	steps  int
	stalls int
}

// New generates a width x height layout with default options.
func New(width, height int) (*Map, error) {
	return Generate(width, height, Options{})
}

// Generate picks a random start column on the first row, walks to the last
// row and classifies every cell of the grid.
func Generate(width, height int, opts Options) (*Map, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	src := opts.source()
	start := Position{Col: src.Intn(width), Row: 0}

	w := NewWalker(width, height, src, WalkerOptions{
		MaxSteps: opts.maxSteps(height),
		OnStep:   opts.OnStep,
	})
	walk, err := w.Walk(start)
	if err != nil {
		return nil, err
	}

	tiles, err := Classify(width, height, walk.Tiles)
	if err != nil {
		panic("generated invalid walk: " + err.Error())
	}

	return &Map{
		width:  width,
		height: height,
		start:  start,
		end:    walk.Tiles[len(walk.Tiles)-1].Position(),
		tiles:  tiles,
		steps:  walk.Steps,
		stalls: walk.Stalls,
	}, nil
}

func checkDimensions(width, height int) error {
	if width < MinWidth {
		return fmt.Errorf("%w: width must be at least %d, got %d", ErrConfig, MinWidth, width)
	}
	if height < MinHeight {
		return fmt.Errorf("%w: height must be at least %d, got %d", ErrConfig, MinHeight, height)
	}
	return nil
}

func (m *Map) Width() int      { return m.width }
func (m *Map) Height() int     { return m.height }
func (m *Map) Start() Position { return m.start }
func (m *Map) End() Position   { return m.end }

// Steps returns the number of walk iterations, stalls included.
func (m *Map) Steps() int { return m.steps }

// Stalls returns the number of walk iterations that drew an illegal move.
func (m *Map) Stalls() int { return m.stalls }

// Tiles returns a copy of the grid in row-major order.
func (m *Map) Tiles() []Tile {
	return slices.Clone(m.tiles)
}

// At returns the tile at the given cell.
func (m *Map) At(col, row int) (Tile, bool) {
	if col < 0 || col >= m.width || row < 0 || row >= m.height {
		return nil, false
	}
	return m.tiles[row*m.width+col], true
}

// Entrance returns the tile where the walk begins.
func (m *Map) Entrance() EntranceTile {
	return m.tiles[m.start.Row*m.width+m.start.Col].(EntranceTile)
}

// Exit returns the tile where the walk ends.
func (m *Map) Exit() ExitTile {
	return m.tiles[m.end.Row*m.width+m.end.Col].(ExitTile)
}

// Route returns the walk in visit order, from the entrance to the exit.
func (m *Map) Route() []Tile {
	var route []Tile
	p := m.start
	for len(route) < len(m.tiles) {
		t, ok := m.At(p.Col, p.Row)
		if !ok {
			break
		}
		route = append(route, t)
		d, ok := Outgoing(t)
		if !ok {
			break
		}
		p = p.Step(d)
	}
	return route
}
