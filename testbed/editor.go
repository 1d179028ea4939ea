package testbed

import (
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/stratum/engine"
	"github.com/spaghettifunk/stratum/engine/core"
	"github.com/spaghettifunk/stratum/engine/layers"
	"github.com/spaghettifunk/stratum/engine/ui"
)

const (
	materialSuffix = ".mat.toml"
	dialogueFilter = "*.png;*.jpg;*.jpeg;*.gif;*.bmp;*.tiff;*.webp;*.mat.toml"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// Editor is the testbed layer. Dropped image and material files are loaded in
// the background, and the overlay shows the frame statistics.
type Editor struct {
	layers.Base

	app     *engine.Application
	overlay *ui.Overlay
	loaded  int
}

func NewEditor(app *engine.Application) *Editor {
	e := &Editor{
		Base: layers.Base{LayerName: "Editor"},
		app:  app,
	}
	e.overlay, _ = app.UI().(*ui.Overlay)
	return e
}

func (e *Editor) OnAttach() {
	core.LogInfo("Editor attached. Drop images or %s files on the window to load them.", materialSuffix)
}

func (e *Editor) OnDetach() {
	core.LogInfo("Editor detached after %d loads.", e.loaded)
}

func (e *Editor) OnUpdate(deltaTime float64) error {
	input := e.app.Input()
	// TODO: temp
	if input.IsKeyUp(core.KEY_P) && input.WasKeyDown(core.KEY_P) {
		x, y := input.MousePosition()
		core.LogDebug("Mouse:[%.0f, %.0f] dt=%.4f", x, y, deltaTime)
	}
	return nil
}

func (e *Editor) OnImGuiRender() error {
	if e.overlay == nil {
		return nil
	}
	input := e.app.Input()
	fps, frameTime := e.app.Metrics().Frame()
	mouseX, mouseY := input.MousePosition()

	e.overlay.Window("Stats")
	e.overlay.Text("FPS: %5.1f(%4.1fms)", fps, frameTime)
	e.overlay.Text("Mouse: X=%-5.0f Y=%-5.0f L=%t R=%t",
		mouseX, mouseY,
		input.IsButtonDown(core.BUTTON_LEFT),
		input.IsButtonDown(core.BUTTON_RIGHT),
	)
	e.overlay.Text("Textures: %d Materials: %d Pending: %d",
		e.app.Textures().Len(),
		e.app.Materials().Len(),
		e.app.Loader().Pending(),
	)
	return nil
}

func (e *Editor) OnEvent(event core.Event) error {
	switch ev := event.(type) {
	case core.KeyPressedEvent:
		e.onKeyPressed(ev)
	case core.OpenDialogueEvent:
		// There is no native dialogue, files are dropped on the window.
		core.LogInfo("Open dialogue requested (%s), drop a file on the window.", ev.ValidFiles)
	case core.LoadFileEvent:
		e.load(ev.AbsPath, ev.FileName)
	}
	return nil
}

func (e *Editor) onKeyPressed(ev core.KeyPressedEvent) {
	if ev.RepeatCount > 0 {
		return
	}
	input := e.app.Input()
	switch core.KeyCode(ev.KeyCode) {
	case core.KEY_ESCAPE:
		e.app.Dispatcher().QueueEvent(core.WindowCloseEvent{})
	case core.KEY_O:
		if input.IsKeyDown(core.KEY_LEFT_CONTROL) || input.IsKeyDown(core.KEY_RIGHT_CONTROL) {
			e.app.Dispatcher().QueueEvent(core.NewOpenDialogueEvent(core.DialogueFileOpen, dialogueFilter))
		}
	}
}

// load starts a background load for path. The asset is named after the file
// without its extension.
func (e *Editor) load(path, fileName string) {
	lower := strings.ToLower(fileName)
	var err error
	switch {
	case strings.HasSuffix(lower, materialSuffix):
		_, err = e.app.Loader().LoadMaterial(fileName[:len(fileName)-len(materialSuffix)], path)
	case imageExtensions[filepath.Ext(lower)]:
		_, err = e.app.Loader().LoadTexture(strings.TrimSuffix(fileName, filepath.Ext(fileName)), path)
	default:
		core.LogWarn("Don't know how to load '%s'.", fileName)
		return
	}
	if err != nil {
		core.LogError("failed to load '%s': %s", fileName, err)
		return
	}
	e.loaded++
}
