package layout

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

// seqSource replays vals in a loop, reduced modulo n.
type seqSource struct {
	vals []int
	i    int
}

func (s *seqSource) Intn(n int) int {
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func TestWalker_RightDownDown(t *testing.T) {
	src := &seqSource{vals: []int{int(Right), int(Down), int(Down)}}
	walk, err := NewWalker(3, 3, src, WalkerOptions{}).Walk(Position{Col: 0, Row: 0})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	want := []Tile{
		EntranceTile{Pos: Position{Col: 0, Row: 0}, To: Right},
		PathTile{Pos: Position{Col: 1, Row: 0}, From: Right, To: Down},
		PathTile{Pos: Position{Col: 1, Row: 1}, From: Down, To: Down},
		ExitTile{Pos: Position{Col: 1, Row: 2}, From: Down},
	}
	if !reflect.DeepEqual(walk.Tiles, want) {
		t.Errorf("Walk tiles = %v, want %v", walk.Tiles, want)
	}
	if walk.Steps != 3 {
		t.Errorf("Expected 3 steps, got %d", walk.Steps)
	}
	if walk.Stalls != 0 {
		t.Errorf("Expected no stalls, got %d", walk.Stalls)
	}
}

func TestWalker_ReversalIsAStall(t *testing.T) {
	tests := []struct {
		name  string
		prev  Direction
		drawn Direction
	}{
		{name: "left after right", prev: Right, drawn: Left},
		{name: "right after left", prev: Left, drawn: Right},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWalker(5, 4, &seqSource{}, WalkerOptions{})
			w.cur = Position{Col: 2, Row: 1}
			w.prev = tt.prev

			if _, ok := w.advance(tt.drawn); ok {
				t.Fatalf("Expected %s after %s to stall", tt.drawn, tt.prev)
			}
			if w.cur != (Position{Col: 2, Row: 1}) {
				t.Errorf("Position changed on stall: %v", w.cur)
			}
			if w.prev != tt.prev {
				t.Errorf("Previous direction changed on stall: %s", w.prev)
			}
		})
	}
}

func TestWalker_EdgesStall(t *testing.T) {
	tests := []struct {
		name  string
		col   int
		drawn Direction
		ok    bool
	}{
		{name: "right at right edge", col: 3, drawn: Right, ok: false},
		{name: "left at left edge", col: 0, drawn: Left, ok: false},
		{name: "right inside", col: 2, drawn: Right, ok: true},
		{name: "left inside", col: 1, drawn: Left, ok: true},
		{name: "down at right edge", col: 3, drawn: Down, ok: true},
		{name: "down at left edge", col: 0, drawn: Down, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWalker(4, 4, &seqSource{}, WalkerOptions{})
			w.cur = Position{Col: tt.col, Row: 1}
			w.prev = Down

			rec, ok := w.advance(tt.drawn)
			if ok != tt.ok {
				t.Fatalf("advance(%s) at col %d: ok = %v, want %v", tt.drawn, tt.col, ok, tt.ok)
			}
			if !ok {
				return
			}
			if rec.Pos != (Position{Col: tt.col, Row: 1}) || rec.From != Down || rec.To != tt.drawn {
				t.Errorf("Unexpected record %+v", rec)
			}
			if w.prev != tt.drawn {
				t.Errorf("Expected previous direction %s, got %s", tt.drawn, w.prev)
			}
		})
	}
}

func TestWalker_CountsStalls(t *testing.T) {
	// Left at column 0 stalls, then two moves down.
	src := &seqSource{vals: []int{int(Left), int(Down), int(Down)}}
	walk, err := NewWalker(2, 3, src, WalkerOptions{}).Walk(Position{Col: 0, Row: 0})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if walk.Steps != 3 || walk.Stalls != 1 {
		t.Errorf("Expected 3 steps and 1 stall, got %d and %d", walk.Steps, walk.Stalls)
	}
	want := []Tile{
		EntranceTile{Pos: Position{Col: 0, Row: 0}, To: Down},
		PathTile{Pos: Position{Col: 0, Row: 1}, From: Down, To: Down},
		ExitTile{Pos: Position{Col: 0, Row: 2}, From: Down},
	}
	if !reflect.DeepEqual(walk.Tiles, want) {
		t.Errorf("Walk tiles = %v, want %v", walk.Tiles, want)
	}
}

func TestWalker_OnStep(t *testing.T) {
	var steps []Step
	src := &seqSource{vals: []int{int(Left), int(Right), int(Down)}}
	opts := WalkerOptions{OnStep: func(s Step) { steps = append(steps, s) }}

	walk, err := NewWalker(3, 2, src, opts).Walk(Position{Col: 0, Row: 0})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(steps) != walk.Steps {
		t.Fatalf("Expected %d observed steps, got %d", walk.Steps, len(steps))
	}

	want := []Step{
		{N: 1, Drawn: Left, Accepted: false, Pos: Position{Col: 0, Row: 0}},
		{N: 2, Drawn: Right, Accepted: true, Pos: Position{Col: 1, Row: 0}},
		{N: 3, Drawn: Down, Accepted: true, Pos: Position{Col: 1, Row: 1}},
	}
	if !reflect.DeepEqual(steps, want) {
		t.Errorf("Observed steps = %+v, want %+v", steps, want)
	}
}

func TestWalker_InvalidStart(t *testing.T) {
	tests := []struct {
		name  string
		start Position
	}{
		{name: "not first row", start: Position{Col: 0, Row: 1}},
		{name: "column past width", start: Position{Col: 3, Row: 0}},
		{name: "negative column", start: Position{Col: -1, Row: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWalker(3, 3, &seqSource{}, WalkerOptions{}).Walk(tt.start)
			if !errors.Is(err, ErrConfig) {
				t.Errorf("Expected ErrConfig, got %v", err)
			}
		})
	}
}

func TestWalker_MaxSteps(t *testing.T) {
	// On a single column every horizontal draw stalls.
	src := &seqSource{vals: []int{int(Right)}}
	_, err := NewWalker(1, 3, src, WalkerOptions{MaxSteps: 10}).Walk(Position{Col: 0, Row: 0})
	if !errors.Is(err, ErrWalkExhausted) {
		t.Fatalf("Expected ErrWalkExhausted, got %v", err)
	}
	if src.i != 10 {
		t.Errorf("Expected 10 draws before giving up, got %d", src.i)
	}
}

func TestWalker_NeverReverses(t *testing.T) {
	for seed := int64(1); seed <= 300; seed++ {
		src := rand.New(rand.NewSource(seed))
		width := 1 + int(seed%7)
		height := 2 + int(seed%9)
		start := Position{Col: src.Intn(width), Row: 0}

		walk, err := NewWalker(width, height, src, WalkerOptions{}).Walk(start)
		if err != nil {
			t.Fatalf("seed %d: Walk failed: %v", seed, err)
		}

		for i := 1; i < len(walk.Tiles); i++ {
			prev, _ := Outgoing(walk.Tiles[i-1])
			from, _ := Incoming(walk.Tiles[i])
			if prev != from {
				t.Fatalf("seed %d: tile %d entered %s but previous tile left %s", seed, i, from, prev)
			}
			if i+1 < len(walk.Tiles) {
				next, _ := Outgoing(walk.Tiles[i])
				if next.Reverses(from) {
					t.Fatalf("seed %d: tile %d reverses %s into %s", seed, i, from, next)
				}
			}
		}
	}
}
