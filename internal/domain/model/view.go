package model

// View roles.
const (
	RoleToplevel  = "toplevel"
	RoleUnmanaged = "unmanaged"
	RoleDesktop   = "desktop-environment"
	RoleUnknown   = "unknown"
)

// Scene layers a view can be placed on.
const (
	LayerBackground = "background"
	LayerBottom     = "bottom"
	LayerWorkspace  = "workspace"
	LayerTop        = "top"
	LayerUnmanaged  = "unmanaged"
	LayerOverlay    = "overlay"
	LayerLock       = "lock"
	LayerNone       = "none"
)

// Tiled edge bitmask values.
const (
	EdgeLeft   uint32 = 1 << 0
	EdgeRight  uint32 = 1 << 1
	EdgeTop    uint32 = 1 << 2
	EdgeBottom uint32 = 1 << 3
)

// View is the full description of a window as reported to clients.
// Parent and OutputID are -1 when the view has no parent or output.
type View struct {
	ID                 int64      `json:"id"`
	PID                int        `json:"pid"`
	Title              string     `json:"title"`
	AppID              string     `json:"app-id"`
	BaseGeometry       Geometry   `json:"base-geometry"`
	Parent             int64      `json:"parent"`
	Geometry           Geometry   `json:"geometry"`
	BBox               Geometry   `json:"bbox"`
	OutputID           int64      `json:"output-id"`
	OutputName         string     `json:"output-name"`
	LastFocusTimestamp int64      `json:"last-focus-timestamp"`
	Role               string     `json:"role"`
	Mapped             bool       `json:"mapped"`
	Layer              string     `json:"layer"`
	TiledEdges         uint32     `json:"tiled-edges"`
	Fullscreen         bool       `json:"fullscreen"`
	Minimized          bool       `json:"minimized"`
	Activated          bool       `json:"activated"`
	Sticky             bool       `json:"sticky"`
	WsetIndex          int64      `json:"wset-index"`
	MinSize            Dimensions `json:"min-size"`
	MaxSize            Dimensions `json:"max-size"`
	Focusable          bool       `json:"focusable"`
	Type               string     `json:"type"`
}

// IsToplevel reports whether the view is a regular window that can be
// focused, moved and resized by clients.
func (v *View) IsToplevel() bool {
	return v.Role == RoleToplevel
}
