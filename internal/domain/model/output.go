package model

// Output describes a display.
type Output struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Geometry  Geometry  `json:"geometry"`
	Workarea  Geometry  `json:"workarea"`
	WsetIndex int64     `json:"wset-index"`
	Workspace Workspace `json:"workspace"`
}

// Wset describes a workspace set. Workspace sets are addressed by
// their index; OutputID is -1 while the set is detached.
type Wset struct {
	Index      int64     `json:"index"`
	Name       string    `json:"name"`
	OutputID   int64     `json:"output-id"`
	OutputName string    `json:"output-name"`
	Workspace  Workspace `json:"workspace"`
}
