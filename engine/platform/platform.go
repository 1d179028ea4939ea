package platform

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/stratum/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

type WindowConfig struct {
	Title  string
	X      int
	Y      int
	Width  int
	Height int
	VSync  bool
}

// Window is the GLFW window and its graphics context. Its callbacks run on the
// main thread during OnUpdate and turn platform input into queued events.
type Window struct {
	handle     *glfw.Window
	input      *core.Input
	dispatcher *core.EventDispatcher
}

func NewWindow(cfg WindowConfig, input *core.Input, dispatcher *core.EventDispatcher) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	handle, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{
		handle:     handle,
		input:      input,
		dispatcher: dispatcher,
	}

	handle.SetKeyCallback(w.keyCallback)
	handle.SetCharCallback(w.charCallback)
	handle.SetMouseButtonCallback(w.mouseButtonCallback)
	handle.SetCursorPosCallback(w.cursorPosCallback)
	handle.SetScrollCallback(w.scrollCallback)
	handle.SetFramebufferSizeCallback(w.framebufferSizeCallback)
	handle.SetCloseCallback(w.closeCallback)
	handle.SetDropCallback(w.dropCallback)
	handle.SetPos(cfg.X, cfg.Y)
	handle.Show()

	core.LogInfo("Window '%s' created (%dx%d).", cfg.Title, cfg.Width, cfg.Height)
	return w, nil
}

// GetTime is the time in seconds since GLFW was initialized.
func (w *Window) GetTime() float64 {
	return glfw.GetTime()
}

// GetSize returns the framebuffer size in pixels.
func (w *Window) GetSize() (int, int) {
	return w.handle.GetFramebufferSize()
}

// OnUpdate presents the back buffer and polls platform events, which may
// queue new events for the next frame.
func (w *Window) OnUpdate() {
	w.handle.SwapBuffers()
	glfw.PollEvents()
}

func (w *Window) Close() error {
	w.handle.Destroy()
	glfw.Terminate()
	core.LogInfo("Window destroyed.")
	return nil
}

func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if key == glfw.KeyUnknown {
		return
	}
	switch action {
	case glfw.Press:
		w.input.ProcessKey(core.KeyCode(key), true, 0)
	case glfw.Repeat:
		w.input.ProcessKey(core.KeyCode(key), true, 1)
	case glfw.Release:
		w.input.ProcessKey(core.KeyCode(key), false, 0)
	}
}

func (w *Window) charCallback(_ *glfw.Window, char rune) {
	w.dispatcher.QueueEvent(core.KeyTypedEvent{Char: char})
}

func (w *Window) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	w.input.ProcessButton(core.Button(button), action == glfw.Press)
}

func (w *Window) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	w.input.ProcessMouseMove(xpos, ypos)
}

func (w *Window) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	w.input.ProcessMouseWheel(xoff, yoff)
}

func (w *Window) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	w.dispatcher.QueueEvent(core.WindowResizeEvent{Width: uint32(width), Height: uint32(height)})
}

func (w *Window) closeCallback(_ *glfw.Window) {
	w.dispatcher.QueueEvent(core.WindowCloseEvent{})
}

func (w *Window) dropCallback(_ *glfw.Window, names []string) {
	for _, name := range names {
		abs, err := filepath.Abs(name)
		if err != nil {
			abs = name
		}
		w.dispatcher.QueueEvent(core.LoadFileEvent{AbsPath: abs, FileName: filepath.Base(name)})
	}
}
