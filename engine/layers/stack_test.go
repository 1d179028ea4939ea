package layers

import (
	"reflect"
	"testing"
)

type namedLayer struct {
	Base
	detached *[]string
}

func newNamed(name string, detached *[]string) *namedLayer {
	return &namedLayer{Base: Base{LayerName: name}, detached: detached}
}

func (l *namedLayer) OnDetach() {
	*l.detached = append(*l.detached, l.Name())
}

func names(s *Stack) []string {
	var out []string
	for _, l := range s.Layers() {
		out = append(out, l.Name())
	}
	return out
}

func TestStack_Order(t *testing.T) {
	var detached []string
	s := NewStack()
	s.PushOverlay(newNamed("ui", &detached))
	s.PushLayer(newNamed("scene", &detached))
	s.PushLayer(newNamed("editor", &detached))
	s.PushOverlay(newNamed("console", &detached))
	s.PushLayer(newNamed("physics", &detached))

	want := []string{"scene", "editor", "physics", "ui", "console"}
	if got := names(s); !reflect.DeepEqual(got, want) {
		t.Errorf("Layers() = %v, want %v", got, want)
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
	if s.Overlays() != 2 {
		t.Errorf("Overlays() = %d, want 2", s.Overlays())
	}
}

func TestStack_DetachAll(t *testing.T) {
	var detached []string
	s := NewStack()
	s.PushLayer(newNamed("a", &detached))
	s.PushOverlay(newNamed("b", &detached))
	s.PushLayer(newNamed("c", &detached))

	s.DetachAll()
	if want := []string{"a", "c", "b"}; !reflect.DeepEqual(detached, want) {
		t.Errorf("detach order = %v, want %v", detached, want)
	}
	if s.Len() != 0 || s.Overlays() != 0 {
		t.Errorf("stack not empty after DetachAll(): len=%d overlays=%d", s.Len(), s.Overlays())
	}

	// the stack is reusable after teardown
	s.PushLayer(newNamed("d", &detached))
	if got := names(s); !reflect.DeepEqual(got, []string{"d"}) {
		t.Errorf("Layers() = %v", got)
	}
}
