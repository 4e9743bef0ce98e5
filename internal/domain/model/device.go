package model

// Input device types.
const (
	DeviceKeyboard   = "keyboard"
	DevicePointer    = "pointer"
	DeviceTouch      = "touch"
	DeviceTabletTool = "tablet_tool"
	DeviceTabletPad  = "tablet_pad"
	DeviceSwitch     = "switch"
)

// InputDevice describes a physical input device.
type InputDevice struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Vendor  int    `json:"vendor"`
	Product int    `json:"product"`
	Type    string `json:"type"`
	Enabled bool   `json:"enabled"`
}
