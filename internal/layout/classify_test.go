package layout

import (
	"errors"
	"reflect"
	"testing"
)

func scenarioWalk() []Tile {
	return []Tile{
		EntranceTile{Pos: Position{Col: 0, Row: 0}, To: Right},
		PathTile{Pos: Position{Col: 1, Row: 0}, From: Right, To: Down},
		PathTile{Pos: Position{Col: 1, Row: 1}, From: Down, To: Down},
		ExitTile{Pos: Position{Col: 1, Row: 2}, From: Down},
	}
}

func TestClassify_PlacesWalk(t *testing.T) {
	tiles, err := Classify(3, 3, scenarioWalk())
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if len(tiles) != 9 {
		t.Fatalf("Expected 9 tiles, got %d", len(tiles))
	}

	onWalk := map[Position]Tile{}
	for _, w := range scenarioWalk() {
		onWalk[w.Position()] = w
	}
	for i, tile := range tiles {
		want := Position{Col: i % 3, Row: i / 3}
		if tile.Position() != want {
			t.Errorf("tile %d at %v, want %v", i, tile.Position(), want)
		}
		if w, ok := onWalk[want]; ok {
			if tile != w {
				t.Errorf("tile %d = %v, want %v", i, tile, w)
			}
			continue
		}
		if _, ok := tile.(EmptyTile); !ok {
			t.Errorf("tile %d = %v, want empty", i, tile)
		}
	}
}

func TestClassify_EmptyWalk(t *testing.T) {
	tiles, err := Classify(4, 2, nil)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	for i, tile := range tiles {
		if KindOf(tile) != KindEmpty {
			t.Errorf("tile %d is %s, want empty", i, KindOf(tile))
		}
	}
}

func TestClassify_Idempotent(t *testing.T) {
	first, err := Classify(3, 3, scenarioWalk())
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	second, err := Classify(3, 3, scenarioWalk())
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Classify is not repeatable:\n%v\n%v", first, second)
	}
}

func TestClassify_OutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		tile Tile
	}{
		{name: "negative column", tile: PathTile{Pos: Position{Col: -1, Row: 1}}},
		{name: "column past width", tile: PathTile{Pos: Position{Col: 3, Row: 1}}},
		{name: "row past height", tile: ExitTile{Pos: Position{Col: 1, Row: 3}}},
		{name: "nil tile", tile: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			walk := append(scenarioWalk()[:3], tt.tile)
			_, err := Classify(3, 3, walk)
			if !errors.Is(err, ErrInvariant) {
				t.Errorf("Expected ErrInvariant, got %v", err)
			}
		})
	}
}

func TestClassify_InvalidDimensions(t *testing.T) {
	if _, err := Classify(0, 3, nil); !errors.Is(err, ErrConfig) {
		t.Errorf("Expected ErrConfig for zero width, got %v", err)
	}
	if _, err := Classify(3, 1, nil); !errors.Is(err, ErrConfig) {
		t.Errorf("Expected ErrConfig for single row, got %v", err)
	}
}
