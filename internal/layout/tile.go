package layout

// Position is a cell of the grid. Row 0 is the top of the level.
type Position struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Step returns the position one move away in direction d.
func (p Position) Step(d Direction) Position {
	dc, dr := d.Delta()
	return Position{Col: p.Col + dc, Row: p.Row + dr}
}

// Tile is the role of one grid cell. The set of tiles is closed: it is
// implemented only by EntranceTile, ExitTile, PathTile and EmptyTile.
type Tile interface {
	Position() Position
	tile()
}

// EntranceTile is the cell on row 0 where the walk begins.
type EntranceTile struct {
	Pos Position
	To  Direction
}

// ExitTile is the cell on the last row where the walk ends.
type ExitTile struct {
	Pos  Position
	From Direction
}

// PathTile is an interior cell of the walk.
type PathTile struct {
	Pos  Position
	From Direction
	To   Direction
}

// EmptyTile is a cell the walk never visited.
type EmptyTile struct {
	Pos Position
}

func (t EntranceTile) Position() Position { return t.Pos }
func (t ExitTile) Position() Position     { return t.Pos }
func (t PathTile) Position() Position     { return t.Pos }
func (t EmptyTile) Position() Position    { return t.Pos }

func (EntranceTile) tile() {}
func (ExitTile) tile()     {}
func (PathTile) tile()     {}
func (EmptyTile) tile()    {}

// Kind names the variant of a tile.
type Kind int

const (
	KindEmpty Kind = iota
	KindEntrance
	KindPath
	KindExit
)

func (k Kind) String() string {
	switch k {
	case KindEntrance:
		return "entrance"
	case KindPath:
		return "path"
	case KindExit:
		return "exit"
	default:
		return "empty"
	}
}

// KindOf returns the variant of t. A nil tile is reported as empty.
func KindOf(t Tile) Kind {
	switch t.(type) {
	case EntranceTile:
		return KindEntrance
	case PathTile:
		return KindPath
	case ExitTile:
		return KindExit
	default:
		return KindEmpty
	}
}

// Incoming returns the direction the walk took into t.
// Entrance and empty tiles have none.
func Incoming(t Tile) (Direction, bool) {
	switch t := t.(type) {
	case PathTile:
		return t.From, true
	case ExitTile:
		return t.From, true
	default:
		return Down, false
	}
}

// Outgoing returns the direction the walk took out of t.
// Exit and empty tiles have none.
func Outgoing(t Tile) (Direction, bool) {
	switch t := t.(type) {
	case EntranceTile:
		return t.To, true
	case PathTile:
		return t.To, true
	default:
		return Down, false
	}
}
