package level

import (
	"strings"

	"github.com/vinser/descent/internal/layout"
	"github.com/vinser/descent/internal/state"
)

// arms of a cell, one bit per side the walk passes through.
const (
	armUp = 1 << iota
	armDown
	armLeft
	armRight
)

var boxRunes = map[int]string{
	0:                                    " ",
	armUp:                                "╵",
	armDown:                              "╷",
	armLeft:                              "╴",
	armRight:                             "╶",
	armUp | armDown:                      "│",
	armLeft | armRight:                   "─",
	armUp | armLeft:                      "┘",
	armUp | armRight:                     "└",
	armDown | armLeft:                    "┐",
	armDown | armRight:                   "┌",
	armUp | armDown | armLeft:            "┤",
	armUp | armDown | armRight:           "├",
	armUp | armLeft | armRight:           "┴",
	armDown | armLeft | armRight:         "┬",
	armUp | armDown | armLeft | armRight: "┼",
}

const (
	entranceRune = "▼"
	exitRune     = "◆"
	emptyRune    = "░"
)

// SpriteDims returns the width in characters and the height in rows of one cell.
func SpriteDims(size string) (int, int) {
	switch size {
	case state.SpriteSmall:
		return 1, 1
	case state.SpriteLarge:
		return 5, 3
	default: // state.SpriteMedium
		return 3, 1
	}
}

// armIn is the side of the cell a move in direction d enters through.
func armIn(d layout.Direction) int {
	switch d {
	case layout.Right:
		return armLeft
	case layout.Left:
		return armRight
	default:
		return armUp
	}
}

// armOut is the side of the cell a move in direction d leaves through.
func armOut(d layout.Direction) int {
	switch d {
	case layout.Right:
		return armRight
	case layout.Left:
		return armLeft
	default:
		return armDown
	}
}

// arms returns the sides a tile connects and the rune drawn at its center.
func arms(t layout.Tile) (int, string) {
	switch t := t.(type) {
	case layout.EntranceTile:
		return armUp | armOut(t.To), entranceRune
	case layout.ExitTile:
		return armIn(t.From) | armDown, exitRune
	case layout.PathTile:
		mask := armIn(t.From) | armOut(t.To)
		return mask, boxRunes[mask]
	default:
		return 0, emptyRune
	}
}

// Sprite returns the unstyled lines that draw t at the given sprite size.
// Neighbouring path sprites join into a continuous line.
func Sprite(t layout.Tile, size string) []string {
	w, h := SpriteDims(size)
	if layout.KindOf(t) == layout.KindEmpty {
		lines := make([]string, h)
		for i := range lines {
			lines[i] = strings.Repeat(emptyRune, w)
		}
		return lines
	}

	mask, center := arms(t)
	side := func(bit int, fill string, n int) string {
		if mask&bit != 0 {
			return strings.Repeat(fill, n)
		}
		return strings.Repeat(" ", n)
	}

	switch size {
	case state.SpriteSmall:
		return []string{center}
	case state.SpriteLarge:
		pad := strings.Repeat(" ", 2)
		return []string{
			pad + side(armUp, "│", 1) + pad,
			side(armLeft, "─", 2) + center + side(armRight, "─", 2),
			pad + side(armDown, "│", 1) + pad,
		}
	default: // state.SpriteMedium
		return []string{side(armLeft, "─", 1) + center + side(armRight, "─", 1)}
	}
}
