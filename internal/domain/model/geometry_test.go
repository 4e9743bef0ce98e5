package model

import "testing"

func TestParseGeometry(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Geometry
		ok   bool
	}{
		{
			name: "complete",
			data: `{"x": 10, "y": -20, "width": 800, "height": 600}`,
			want: Geometry{X: 10, Y: -20, Width: 800, Height: 600},
			ok:   true,
		},
		{name: "missing height", data: `{"x": 0, "y": 0, "width": 800}`},
		{name: "string width", data: `{"x": 0, "y": 0, "width": "800", "height": 600}`},
		{name: "float x", data: `{"x": 0.5, "y": 0, "width": 800, "height": 600}`},
		{name: "empty", data: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseGeometry([]byte(tt.data))
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestIsToplevel(t *testing.T) {
	v := &View{Role: RoleToplevel}
	if !v.IsToplevel() {
		t.Fatal("toplevel role must report toplevel")
	}
	for _, role := range []string{RoleUnmanaged, RoleDesktop, RoleUnknown, ""} {
		v := &View{Role: role}
		if v.IsToplevel() {
			t.Fatalf("role %q must not report toplevel", role)
		}
	}
}
