package ui

import (
	"fmt"

	"github.com/spaghettifunk/stratum/engine/core"
	"github.com/spaghettifunk/stratum/engine/layers"
)

// Widget is one element of an immediate mode draw list.
type Widget struct {
	Window string
	Text   string
}

// Overlay is the immediate mode UI. It is pushed as the first overlay and is
// also the frame Context handed to the run loop.
type Overlay struct {
	layers.Base

	open     bool
	window   string
	drawList []Widget
	// last committed frame
	frame  []Widget
	frames uint64

	spinnerText string
	spinners    int
}

func NewOverlay() *Overlay {
	return &Overlay{Base: layers.Base{LayerName: "ImGui overlay"}}
}

func (o *Overlay) OnAttach() {
	core.LogDebug("UI overlay attached.")
}

func (o *Overlay) OnDetach() {
	o.drawList = nil
	o.frame = nil
	core.LogDebug("UI overlay detached after %d frames.", o.frames)
}

// Begin opens a new draw list. Opening twice is a programming error.
func (o *Overlay) Begin() {
	if o.open {
		panic("ui: Begin called while a frame is open")
	}
	o.open = true
	o.window = ""
	o.drawList = o.drawList[:0]
}

// End commits the draw list as the current frame.
func (o *Overlay) End() {
	if !o.open {
		panic("ui: End called without Begin")
	}
	o.open = false
	o.frame = append(o.frame[:0], o.drawList...)
	o.frames++
}

// Window sets the window subsequent widgets belong to.
func (o *Overlay) Window(name string) {
	o.window = name
}

// Text adds a text widget to the open frame. Outside a frame it is ignored.
func (o *Overlay) Text(format string, args ...interface{}) {
	if !o.open {
		core.LogWarn("ui: Text called outside of a frame")
		return
	}
	o.drawList = append(o.drawList, Widget{Window: o.window, Text: fmt.Sprintf(format, args...)})
}

func (o *Overlay) OnImGuiRender() error {
	if o.spinners > 0 {
		o.Window("Status")
		o.Text("%s", o.spinnerText)
	}
	return nil
}

func (o *Overlay) OnEvent(event core.Event) error {
	switch ev := event.(type) {
	case core.GuiEvent:
		switch ev.GuiType {
		case core.GuiStartSpinner:
			o.spinners++
			o.spinnerText = ev.Text
		case core.GuiEndSpinner:
			if o.spinners > 0 {
				o.spinners--
			}
		}
	}
	return nil
}

// Spinning reports whether a background task is being shown.
func (o *Overlay) Spinning() bool {
	return o.spinners > 0
}

// Frame returns the widgets of the last committed frame.
func (o *Overlay) Frame() []Widget {
	return o.frame
}

func (o *Overlay) Frames() uint64 {
	return o.frames
}
