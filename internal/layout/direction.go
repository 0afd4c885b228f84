package layout

import "fmt"

// Direction is a single move of the walk.
type Direction int

const (
	Down Direction = iota
	Right
	Left
)

// directionCount is the number of directions the walker draws from.
const directionCount = 3

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Right:
		return "right"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// IsValid reports whether d is one of Down, Right or Left.
func (d Direction) IsValid() bool {
	return d >= Down && d <= Left
}

// Reverses reports whether moving d right after prev turns straight back
// along the same row.
func (d Direction) Reverses(prev Direction) bool {
	return (d == Left && prev == Right) || (d == Right && prev == Left)
}

// Delta returns the column and row offsets of a move in direction d.
func (d Direction) Delta() (dCol, dRow int) {
	switch d {
	case Down:
		return 0, 1
	case Right:
		return 1, 0
	case Left:
		return -1, 0
	default:
		return 0, 0
	}
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("layout: cannot marshal %s", d)
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name written by MarshalText.
func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "down":
		*d = Down
	case "right":
		*d = Right
	case "left":
		*d = Left
	default:
		return fmt.Errorf("layout: unknown direction %q", text)
	}
	return nil
}
