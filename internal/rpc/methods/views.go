package methods

import (
	"context"
	"encoding/json"

	"github.com/lumenwm/lumen-ipc/internal/domain/model"
	"github.com/lumenwm/lumen-ipc/internal/domain/ports"
	"github.com/lumenwm/lumen-ipc/internal/rpc/handler"
	"github.com/lumenwm/lumen-ipc/internal/rpc/message"
)

// ViewsService serves view enumeration, introspection and mutation.
type ViewsService struct {
	comp ports.Compositor
}

// NewViewsService creates a views service.
func NewViewsService(comp ports.Compositor) *ViewsService {
	return &ViewsService{comp: comp}
}

// RegisterMethods registers the view methods.
func (s *ViewsService) RegisterMethods(r *handler.Registry) {
	r.Register("entities/list-views", s.ListViews)
	r.Register("entities/view-info", s.ViewInfo)
	r.Register("entities/get-focused-view", s.GetFocusedView)
	r.Register("entities/configure-view", s.ConfigureView)
	r.Register("entities/focus-view", s.FocusView)
	r.Register("entities/close-view", s.CloseView)
}

// ListViews enumerates all views as a bare array.
func (s *ViewsService) ListViews(ctx context.Context, data json.RawMessage) (any, *message.Error) {
	return s.comp.Views(), nil
}

// ViewInfo describes one view by id.
func (s *ViewsService) ViewInfo(ctx context.Context, data json.RawMessage) (any, *message.Error) {
	id, err := message.RequireInt(data, "id")
	if err != nil {
		return nil, err
	}

	view := s.comp.View(id)
	if view == nil {
		return nil, message.ErrNotFound("no such view")
	}
	return message.OkInfo(view), nil
}

// GetFocusedView returns the focused view, or null when nothing has
// keyboard focus.
func (s *ViewsService) GetFocusedView(ctx context.Context, data json.RawMessage) (any, *message.Error) {
	return message.OkInfo(s.comp.FocusedView()), nil
}

// FocusView requests keyboard focus for a toplevel view.
func (s *ViewsService) FocusView(ctx context.Context, data json.RawMessage) (any, *message.Error) {
	id, err := message.RequireInt(data, "id")
	if err != nil {
		return nil, err
	}

	view := s.comp.View(id)
	if view == nil {
		return nil, message.ErrNotFound("no such view")
	}
	if !view.IsToplevel() {
		return nil, message.ErrUnsupported("view is not toplevel")
	}
	if e := s.comp.FocusView(id); e != nil {
		return nil, message.ErrNotFound("no such view")
	}
	return message.Ok(), nil
}

// CloseView requests that a view be closed.
func (s *ViewsService) CloseView(ctx context.Context, data json.RawMessage) (any, *message.Error) {
	id, err := message.RequireInt(data, "id")
	if err != nil {
		return nil, err
	}

	if s.comp.View(id) == nil {
		return nil, message.ErrNotFound("no such view")
	}
	if e := s.comp.CloseView(id); e != nil {
		return nil, message.ErrNotFound("no such view")
	}
	return message.Ok(), nil
}

// ConfigureView applies the provided mutations to a toplevel view:
// move to another output, set geometry, toggle sticky. Every field is
// validated and every referenced entity resolved before the first
// mutation, so a malformed request changes nothing.
func (s *ViewsService) ConfigureView(ctx context.Context, data json.RawMessage) (any, *message.Error) {
	id, err := message.RequireInt(data, "id")
	if err != nil {
		return nil, err
	}
	outputID, hasOutput, err := message.OptionalInt(data, "output_id")
	if err != nil {
		return nil, err
	}
	geoRaw, hasGeometry, err := message.OptionalObject(data, "geometry")
	if err != nil {
		return nil, err
	}
	sticky, hasSticky, err := message.OptionalBool(data, "sticky")
	if err != nil {
		return nil, err
	}

	view := s.comp.View(id)
	if view == nil {
		return nil, message.ErrNotFound("view not found")
	}
	if !view.IsToplevel() {
		return nil, message.ErrUnsupported("view is not toplevel")
	}

	var geometry model.Geometry
	if hasGeometry {
		g, ok := model.ParseGeometry(geoRaw)
		if !ok {
			return nil, message.ErrInvalidParameter("invalid geometry")
		}
		geometry = g
	}
	if hasOutput && s.comp.Output(outputID) == nil {
		return nil, message.ErrNotFound("output not found")
	}

	if hasOutput {
		// Keep the view's relative position unless an explicit
		// geometry follows.
		if e := s.comp.MoveViewToOutput(id, outputID, !hasGeometry); e != nil {
			return nil, message.ErrNotFound("output not found")
		}
	}
	if hasGeometry {
		if e := s.comp.SetViewGeometry(id, geometry); e != nil {
			return nil, message.ErrNotFound("view not found")
		}
	}
	if hasSticky {
		if e := s.comp.SetViewSticky(id, sticky); e != nil {
			return nil, message.ErrNotFound("view not found")
		}
	}
	return message.Ok(), nil
}
