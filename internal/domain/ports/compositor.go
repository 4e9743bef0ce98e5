// Package ports defines the interfaces between the IPC core and its
// collaborators: the compositor object model, the signal source and
// the per-connection subscribers.
package ports

import (
	"errors"

	"github.com/lumenwm/lumen-ipc/internal/domain/model"
)

// ErrNoSuchEntity is returned by mutators when the addressed entity
// does not exist (anymore).
var ErrNoSuchEntity = errors.New("no such entity")

// Compositor is the read/mutate surface of the host's object model.
// Reads return copies of the wire descriptions; nil means the entity
// does not exist.
type Compositor interface {
	Views() []model.View
	View(id int64) *model.View
	Outputs() []model.Output
	Output(id int64) *model.Output
	Wsets() []model.Wset
	Wset(index int64) *model.Wset
	InputDevices() []model.InputDevice

	FocusedView() *model.View
	FocusedOutput() *model.Output

	FocusView(id int64) error
	CloseView(id int64) error
	MoveViewToOutput(viewID, outputID int64, reposition bool) error
	SetViewGeometry(id int64, g model.Geometry) error
	SetViewSticky(id int64, sticky bool) error

	// SetDeviceEnabled reports false when no device with that id exists.
	SetDeviceEnabled(id int64, enabled bool) bool
}
