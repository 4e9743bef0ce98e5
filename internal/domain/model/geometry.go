// Package model defines the wire-level descriptions of compositor
// entities: views, outputs, workspace sets and input devices. The JSON
// field names are a compatibility contract with existing IPC clients
// and must not change.
package model

import (
	"math"

	"github.com/tidwall/gjson"
)

// Geometry is a rectangle in the global coordinate space.
type Geometry struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Dimensions is a width/height pair, used for size constraints.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Point is a workspace grid coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Workspace describes the active workspace of a workspace set together
// with the grid it lives on.
type Workspace struct {
	X          int `json:"x"`
	Y          int `json:"y"`
	GridWidth  int `json:"grid_width"`
	GridHeight int `json:"grid_height"`
}

// ParseGeometry decodes a geometry object from raw JSON. All four
// fields must be present and integer-valued.
func ParseGeometry(data []byte) (Geometry, bool) {
	var g Geometry
	fields := []struct {
		name string
		dst  *int
	}{
		{"x", &g.X},
		{"y", &g.Y},
		{"width", &g.Width},
		{"height", &g.Height},
	}
	for _, f := range fields {
		v := gjson.GetBytes(data, f.name)
		if v.Type != gjson.Number || v.Num != math.Trunc(v.Num) {
			return Geometry{}, false
		}
		*f.dst = int(v.Int())
	}
	return g, true
}
