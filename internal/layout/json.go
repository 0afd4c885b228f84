package layout

import "encoding/json"

type tileJSON struct {
	Kind string     `json:"kind"`
	Col  int        `json:"col"`
	Row  int        `json:"row"`
	From *Direction `json:"from,omitempty"`
	To   *Direction `json:"to,omitempty"`
}

type mapJSON struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Start  Position   `json:"start"`
	End    Position   `json:"end"`
	Tiles  []tileJSON `json:"tiles"`
}

// MarshalJSON encodes the map for the placement layer. Tiles keep the
// row-major order of the grid.
func (m *Map) MarshalJSON() ([]byte, error) {
	out := mapJSON{
		Width:  m.width,
		Height: m.height,
		Start:  m.start,
		End:    m.end,
		Tiles:  make([]tileJSON, len(m.tiles)),
	}
	for i, t := range m.tiles {
		p := t.Position()
		tj := tileJSON{Kind: KindOf(t).String(), Col: p.Col, Row: p.Row}
		if d, ok := Incoming(t); ok {
			tj.From = &d
		}
		if d, ok := Outgoing(t); ok {
			tj.To = &d
		}
		out.Tiles[i] = tj
	}
	return json.Marshal(out)
}
