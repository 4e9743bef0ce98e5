// Package methods implements the IPC command handlers. Each service
// is a thin layer over the compositor ports; all subscription state
// lives in the hub.
package methods

import (
	"context"
	"encoding/json"

	"github.com/lumenwm/lumen-ipc/internal/rpc/handler"
	"github.com/lumenwm/lumen-ipc/internal/rpc/message"
)

// APIVersion is bumped whenever the wire contract changes in a way
// clients can observe.
const APIVersion = 1

// BuildInfo carries the build identification reported by
// host/configuration.
type BuildInfo struct {
	Version string
	Commit  string
	Branch  string
}

// HostService serves static daemon and build information.
type HostService struct {
	build BuildInfo
}

// NewHostService creates a host service.
func NewHostService(build BuildInfo) *HostService {
	return &HostService{build: build}
}

// RegisterMethods registers the host methods.
func (s *HostService) RegisterMethods(r *handler.Registry) {
	r.Register("host/configuration", s.Configuration)
}

// Configuration returns static build and configuration info.
func (s *HostService) Configuration(ctx context.Context, data json.RawMessage) (any, *message.Error) {
	resp := message.Ok()
	resp["api-version"] = APIVersion
	resp["daemon"] = "lumen-ipc"
	resp["version"] = s.build.Version
	resp["build-commit"] = s.build.Commit
	resp["build-branch"] = s.build.Branch
	return resp, nil
}
