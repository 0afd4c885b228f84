package layout

import "fmt"

// Classify lays a walk onto a full width x height grid. The result is in
// row-major order (index row*width+col); cells the walk did not visit are
// EmptyTiles. Classify is a pure function of its arguments.
func Classify(width, height int, walk []Tile) ([]Tile, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	tiles := make([]Tile, width*height)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			tiles[row*width+col] = EmptyTile{Pos: Position{Col: col, Row: row}}
		}
	}

	for i, t := range walk {
		if t == nil {
			return nil, fmt.Errorf("%w: walk tile %d is nil", ErrInvariant, i)
		}
		p := t.Position()
		if p.Col < 0 || p.Col >= width || p.Row < 0 || p.Row >= height {
			return nil, fmt.Errorf("%w: walk tile %d at (%d,%d) is outside the %dx%d grid",
				ErrInvariant, i, p.Col, p.Row, width, height)
		}
		tiles[p.Row*width+p.Col] = t
	}
	return tiles, nil
}
