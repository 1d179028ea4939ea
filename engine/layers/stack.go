package layers

// Stack orders layers as [regular layers...][overlays...]. Updates, UI draws and
// event handling all walk it front to back, so overlays always run last.
type Stack struct {
	layers []Layer
	// index of the first overlay
	insertIndex int
}

func NewStack() *Stack {
	return &Stack{}
}

// PushLayer inserts before the first overlay. It does not call OnAttach.
func (s *Stack) PushLayer(layer Layer) {
	s.layers = append(s.layers, nil)
	copy(s.layers[s.insertIndex+1:], s.layers[s.insertIndex:])
	s.layers[s.insertIndex] = layer
	s.insertIndex++
}

// PushOverlay appends after every other layer. It does not call OnAttach.
func (s *Stack) PushOverlay(overlay Layer) {
	s.layers = append(s.layers, overlay)
}

// Layers returns the layers in update and dispatch order. The slice must not be modified.
func (s *Stack) Layers() []Layer {
	return s.layers
}

func (s *Stack) Len() int {
	return len(s.layers)
}

// Overlays is the number of layers in the overlay partition.
func (s *Stack) Overlays() int {
	return len(s.layers) - s.insertIndex
}

// DetachAll calls OnDetach on every layer in stack order and empties the stack.
func (s *Stack) DetachAll() {
	for _, l := range s.layers {
		l.OnDetach()
	}
	clear(s.layers)
	s.layers = s.layers[:0]
	s.insertIndex = 0
}
