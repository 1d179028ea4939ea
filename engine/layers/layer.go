package layers

import "github.com/spaghettifunk/stratum/engine/core"

// Layer is a unit of per-frame behaviour. The run loop calls OnUpdate,
// OnImGuiRender and OnEvent on the main thread; a returned error stops the
// application.
type Layer interface {
	// Name identifies the layer in logs.
	Name() string
	// OnAttach is called once, when the layer is pushed.
	OnAttach()
	// OnDetach is called once, when the stack is torn down.
	OnDetach()
	OnUpdate(deltaTime float64) error
	OnImGuiRender() error
	OnEvent(event core.Event) error
}

// Base gives embedders no-op hooks so they only implement what they need.
type Base struct {
	LayerName string
}

func (b *Base) Name() string                   { return b.LayerName }
func (b *Base) OnAttach()                      {}
func (b *Base) OnDetach()                      {}
func (b *Base) OnUpdate(float64) error         { return nil }
func (b *Base) OnImGuiRender() error           { return nil }
func (b *Base) OnEvent(event core.Event) error { return nil }
