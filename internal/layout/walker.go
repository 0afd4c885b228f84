package layout

import "fmt"

// Source is the random capability a walk draws its moves from.
// *rand.Rand from math/rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Step describes one iteration of a walk.
type Step struct {
	N        int       // iteration number, starting at 1
	Drawn    Direction // direction drawn from the source
	Accepted bool      // false for a stall
	Pos      Position  // position after the iteration
}

// WalkerOptions tunes a Walker.
type WalkerOptions struct {
	// MaxSteps caps the number of iterations, stalls included. Zero means no cap.
	MaxSteps int
	// OnStep is called after every iteration when set.
	OnStep func(Step)
}

// Walk is the outcome of a successful walk.
type Walk struct {
	// Tiles holds the visited cells in order: one EntranceTile, any number
	// of PathTiles and one ExitTile.
	Tiles  []Tile
	Steps  int // iterations run, stalls included
	Stalls int // iterations that drew an invalid direction
}

// Walker produces a random walk from a cell on the first row to some cell on
// the last row. It never leaves the grid and never turns straight back along
// a row without moving down first.
type Walker struct {
	width  int
	height int
	src    Source
	opts   WalkerOptions

	cur  Position
	prev Direction
}

// NewWalker returns a walker over a width x height grid drawing from src.
func NewWalker(width, height int, src Source, opts WalkerOptions) *Walker {
	return &Walker{
		width:  width,
		height: height,
		src:    src,
		opts:   opts,
	}
}

// Walk runs the walk from start until the last row is reached.
func (w *Walker) Walk(start Position) (*Walk, error) {
	if err := checkDimensions(w.width, w.height); err != nil {
		return nil, err
	}
	if start.Row != 0 || start.Col < 0 || start.Col >= w.width {
		return nil, fmt.Errorf("%w: start (%d,%d) is not on the first row of a %dx%d grid",
			ErrConfig, start.Col, start.Row, w.width, w.height)
	}
	if w.src == nil {
		return nil, fmt.Errorf("%w: no random source", ErrConfig)
	}

	w.cur, w.prev = start, Down
	walk := &Walk{}
	var visited []PathTile
	for w.cur.Row != w.height-1 {
		if w.opts.MaxSteps > 0 && walk.Steps >= w.opts.MaxSteps {
			return nil, fmt.Errorf("%w: %d steps spent, stuck on row %d of %d",
				ErrWalkExhausted, walk.Steps, w.cur.Row, w.height-1)
		}
		d := Direction(w.src.Intn(directionCount))
		walk.Steps++

		rec, ok := w.advance(d)
		if ok {
			visited = append(visited, rec)
		} else {
			walk.Stalls++
		}
		if w.opts.OnStep != nil {
			w.opts.OnStep(Step{N: walk.Steps, Drawn: d, Accepted: ok, Pos: w.cur})
		}
	}

	// height >= 2, so at least one move was made before the last row.
	walk.Tiles = make([]Tile, 0, len(visited)+1)
	walk.Tiles = append(walk.Tiles, EntranceTile{Pos: visited[0].Pos, To: visited[0].To})
	for _, rec := range visited[1:] {
		walk.Tiles = append(walk.Tiles, rec)
	}
	walk.Tiles = append(walk.Tiles, ExitTile{Pos: w.cur, From: w.prev})
	return walk, nil
}

// allowed reports whether d is a legal move from the current state.
func (w *Walker) allowed(d Direction) bool {
	switch d {
	case Down:
		return true
	case Right:
		return w.cur.Col < w.width-1 && !d.Reverses(w.prev)
	case Left:
		return w.cur.Col > 0 && !d.Reverses(w.prev)
	default:
		return false
	}
}

// advance moves one cell in direction d and returns the record of the cell
// it left. An illegal move is a stall: nothing changes and ok is false.
func (w *Walker) advance(d Direction) (rec PathTile, ok bool) {
	if !w.allowed(d) {
		return PathTile{}, false
	}
	rec = PathTile{Pos: w.cur, From: w.prev, To: d}
	w.cur = w.cur.Step(d)
	w.prev = d
	return rec, true
}
