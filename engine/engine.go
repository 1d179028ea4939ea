package engine

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/spaghettifunk/stratum/engine/assets"
	"github.com/spaghettifunk/stratum/engine/core"
	"github.com/spaghettifunk/stratum/engine/layers"
	"github.com/spaghettifunk/stratum/engine/renderer"
	"github.com/spaghettifunk/stratum/engine/systems"
	"github.com/spaghettifunk/stratum/engine/ui"
)

type Stage uint8

const (
	// Application is building its subsystems
	ApplicationStageInitializing Stage = iota
	// Initialization is complete, the run loop has not started
	ApplicationStageInitialized
	// The run loop is executing frames
	ApplicationStageRunning
	// Application is in the process of shutting down
	ApplicationStageShuttingDown
	// Every subsystem has been released
	ApplicationStageTerminated
)

// Window is the platform window the run loop drives.
type Window interface {
	// GetTime returns seconds since an arbitrary fixed point.
	GetTime() float64
	// GetSize returns the drawable size in pixels.
	GetSize() (int, int)
	// OnUpdate presents the frame and polls platform events.
	OnUpdate()
	Close() error
}

// WindowFactory creates the window once the dispatcher and the input state
// exist, so the platform callbacks can feed them.
type WindowFactory func(cfg *ApplicationConfig, input *core.Input, dispatcher *core.EventDispatcher) (Window, error)

// Options carries the collaborators of an Application. Window is required;
// Device defaults to a software device and UI to a new ui.Overlay.
type Options struct {
	Window WindowFactory
	Device renderer.Device
	UI     ui.Context
}

// assetFinalizer is the main thread half of the asset loader.
type assetFinalizer interface {
	FinalizeTextures() int
	FinalizeMaterials() int
}

var appInstance atomic.Bool

type Application struct {
	config        *ApplicationConfig
	stage         Stage
	running       bool
	isMinimized   bool
	lastFrameTime float64

	window     Window
	dispatcher *core.EventDispatcher
	input      *core.Input
	metrics    *core.Metrics
	jobs       *systems.JobSystem
	device     renderer.Device
	ui         ui.Context
	layerStack *layers.Stack

	shaders   *assets.Manager[*renderer.Shader]
	textures  *assets.Manager[*renderer.Texture]
	materials *assets.Manager[*renderer.Material]
	loader    *assets.AsyncLoader
	finalizer assetFinalizer
	watcher   *assets.Watcher
}

// New builds the application and every subsystem it owns. Only one
// Application may be alive at a time; a second call returns
// core.ErrApplicationExists until the first one is shut down.
func New(cfg *ApplicationConfig, opts Options) (app *Application, err error) {
	if !appInstance.CompareAndSwap(false, true) {
		return nil, core.ErrApplicationExists
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	a := &Application{
		config:     cfg,
		stage:      ApplicationStageInitializing,
		layerStack: layers.NewStack(),
		metrics:    core.NewMetrics(),
		shaders:    assets.NewManager[*renderer.Shader]("shader"),
		textures:   assets.NewManager[*renderer.Texture]("texture"),
		materials:  assets.NewManager[*renderer.Material]("material"),
	}
	defer func() {
		if err != nil {
			core.LogError("application initialization failed: %s", err)
			a.release()
		}
	}()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, err := core.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	core.SetLogLevel(level)

	a.dispatcher = core.NewEventDispatcher()
	a.input = core.NewInput(a.dispatcher)

	if opts.Window == nil {
		return nil, errors.New("a window factory is required")
	}
	window, err := opts.Window(cfg, a.input, a.dispatcher)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	a.window = window

	if a.jobs, err = systems.NewJobSystem(cfg.Workers, cfg.Workers*16); err != nil {
		return nil, err
	}

	a.device = opts.Device
	if a.device == nil {
		width, height := a.window.GetSize()
		a.device = renderer.NewSoftwareDevice(width, height, cfg.Renderer.ClearColour)
	}

	if a.loader, err = assets.NewAsyncLoader(assets.AsyncLoaderOptions{
		Jobs:           a.jobs,
		Dispatcher:     a.dispatcher,
		Device:         a.device,
		Textures:       a.textures,
		Materials:      a.materials,
		Shaders:        a.shaders,
		MaxTextureSize: cfg.Renderer.MaxTextureSize,
	}); err != nil {
		return nil, err
	}
	a.finalizer = a.loader

	if err := a.preloadAssets(); err != nil {
		return nil, err
	}

	if cfg.Assets.HotReload {
		if a.watcher, err = assets.NewWatcher(a.loader); err != nil {
			return nil, fmt.Errorf("create asset watcher: %w", err)
		}
		if err := a.watcher.AddRecursive(cfg.Assets.Dir); err != nil {
			return nil, fmt.Errorf("watch %s: %w", cfg.Assets.Dir, err)
		}
	}

	a.ui = opts.UI
	if a.ui == nil {
		a.ui = ui.NewOverlay()
	}
	// a UI context that is also a layer draws on top of everything else
	if layer, ok := a.ui.(layers.Layer); ok {
		a.PushOverlay(layer)
	}

	a.lastFrameTime = a.window.GetTime()
	a.running = true
	a.stage = ApplicationStageInitialized
	core.LogInfo("Application '%s' initialized.", cfg.Name)
	return a, nil
}

// preloadAssets fills the shader cache and the default assets. Any failure
// here is fatal for the application.
func (a *Application) preloadAssets() error {
	for _, s := range a.config.Assets.Shaders {
		path := a.config.Assets.Resolve(s.Path)
		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("load shader '%s': %w", s.Name, err)
		}
		shader, err := a.device.CreateShader(s.Name, string(source))
		if err != nil {
			return fmt.Errorf("create shader '%s': %w", s.Name, err)
		}
		a.shaders.Attach(s.Name, shader)
		core.LogDebug("shader '%s' loaded from %s", s.Name, path)
	}

	// An ugly purple for missing textures, white for missing properties and a
	// flat normal map.
	defaults := []struct {
		name   string
		colour [4]float32
	}{
		{"default", [4]float32{1, 0, 1, 1}},
		{"default_white", [4]float32{1, 1, 1, 1}},
		{"default_normal", [4]float32{0.5, 0.5, 1, 1}},
	}
	for i, d := range defaults {
		tex, err := a.device.CreateTexture(&renderer.TextureData{Name: d.name, Pixels: assets.MonoColourImage(d.colour)})
		if err != nil {
			return fmt.Errorf("create texture '%s': %w", d.name, err)
		}
		if i == 0 {
			a.textures.SetDefault(tex)
		} else {
			a.textures.Attach(d.name, tex)
		}
	}

	a.materials.SetDefault(renderer.NewMaterial())
	core.LogInfo("Preloaded %d shaders.", a.shaders.Len())
	return nil
}

// PushLayer adds a regular layer and attaches it.
func (a *Application) PushLayer(layer layers.Layer) {
	a.layerStack.PushLayer(layer)
	layer.OnAttach()
	core.LogDebug("layer '%s' attached", layer.Name())
}

// PushOverlay adds a layer after every regular layer and attaches it.
func (a *Application) PushOverlay(overlay layers.Layer) {
	a.layerStack.PushOverlay(overlay)
	overlay.OnAttach()
	core.LogDebug("overlay '%s' attached", overlay.Name())
}

// Close stops the run loop once the current frame has finished.
func (a *Application) Close() {
	a.running = false
}

// Run executes frames until the application is closed or a layer fails.
func (a *Application) Run() error {
	if a.stage != ApplicationStageInitialized {
		return fmt.Errorf("application cannot run from stage %d", a.stage)
	}
	a.stage = ApplicationStageRunning
	core.LogInfo("Application '%s' running.", a.config.Name)

	for a.running {
		if err := a.frame(); err != nil {
			a.running = false
			return err
		}
	}
	core.LogInfo("Run loop exited.")
	return nil
}

// frame runs one iteration of the loop: update, UI, event drain, present,
// asset finalization. The minimized state is read once, so a resize drained
// in this frame takes effect from the next one.
func (a *Application) frame() error {
	currentTime := a.window.GetTime()
	deltaTime := currentTime - a.lastFrameTime
	a.lastFrameTime = currentTime
	a.metrics.Update(deltaTime)

	minimized := a.isMinimized

	if !minimized {
		for _, layer := range a.layerStack.Layers() {
			if err := layer.OnUpdate(deltaTime); err != nil {
				return fmt.Errorf("layer '%s' update: %w", layer.Name(), err)
			}
		}
		if err := a.renderUI(); err != nil {
			return err
		}
	}

	if err := a.dispatchEvents(); err != nil {
		return err
	}

	// NOTE: while minimized the window is not polled, so with GLFW no restore
	// resize arrives on its own and the loop spins. The platform layer needs an
	// external wake-up (or a poll-only path) to leave the minimized state.
	if !minimized {
		// NOTE: input state is snapshotted before polling so that
		// WasKeyDown reflects the previous frame.
		a.input.Update()
		a.window.OnUpdate()
		a.device.Clear(true, false, false)
	}

	// Background workers keep producing while minimized.
	a.finalizer.FinalizeTextures()
	a.finalizer.FinalizeMaterials()
	return nil
}

func (a *Application) renderUI() error {
	a.ui.Begin()
	defer a.ui.End()

	for _, layer := range a.layerStack.Layers() {
		if err := layer.OnImGuiRender(); err != nil {
			return fmt.Errorf("layer '%s' ui: %w", layer.Name(), err)
		}
	}
	return nil
}

// dispatchEvents drains the queue. Emptiness is checked on every iteration,
// so events queued by handlers are delivered in the same pass.
func (a *Application) dispatchEvents() error {
	for !a.dispatcher.IsEmpty() {
		event, err := a.dispatcher.DequeueEvent()
		if err != nil {
			return fmt.Errorf("dispatch events: %w", err)
		}

		a.onEvent(event)

		for _, layer := range a.layerStack.Layers() {
			if err := layer.OnEvent(event); err != nil {
				return fmt.Errorf("layer '%s' event %s: %w", layer.Name(), event.Kind(), err)
			}
		}
	}
	return nil
}

func (a *Application) onEvent(event core.Event) {
	switch ev := event.(type) {
	case core.WindowResizeEvent:
		a.onWindowResize(ev.Width, ev.Height)
	case core.WindowCloseEvent:
		core.LogInfo("Window close requested, shutting down.")
		a.Close()
	}
}

func (a *Application) onWindowResize(width, height uint32) {
	minimized := width == 0 || height == 0
	if minimized == a.isMinimized {
		return
	}
	a.isMinimized = minimized
	if minimized {
		core.LogInfo("Window minimized, suspending application.")
	} else {
		core.LogInfo("Window restored, resuming application.")
	}
}

// Shutdown detaches every layer and releases all subsystems. It is safe to
// call more than once.
func (a *Application) Shutdown() error {
	if a.stage == ApplicationStageTerminated {
		return nil
	}
	a.stage = ApplicationStageShuttingDown
	a.running = false

	a.layerStack.DetachAll()
	err := a.release()
	core.LogInfo("Application shut down.")
	return err
}

// release frees whatever has been created so far, in reverse creation order.
func (a *Application) release() error {
	var errs []error
	if a.watcher != nil {
		errs = append(errs, a.watcher.Close())
	}
	if a.jobs != nil {
		errs = append(errs, a.jobs.Shutdown())
	}
	if a.device != nil {
		a.materials.Clear(nil)
		a.textures.Clear(func(name string, tex *renderer.Texture) {
			if err := a.device.DestroyTexture(tex); err != nil {
				errs = append(errs, err)
			}
		})
		a.shaders.Clear(func(name string, shader *renderer.Shader) {
			if err := a.device.DestroyShader(shader); err != nil {
				errs = append(errs, err)
			}
		})
		errs = append(errs, a.device.Close())
	}
	if a.window != nil {
		errs = append(errs, a.window.Close())
	}
	if a.dispatcher != nil {
		a.dispatcher.Close()
	}
	a.stage = ApplicationStageTerminated
	appInstance.Store(false)
	return errors.Join(errs...)
}

func (a *Application) Config() *ApplicationConfig { return a.config }

func (a *Application) Stage() Stage { return a.stage }

func (a *Application) Running() bool { return a.running }

func (a *Application) Minimized() bool { return a.isMinimized }

// Dispatcher is the event queue. Its QueueEvent is safe from any goroutine.
func (a *Application) Dispatcher() *core.EventDispatcher { return a.dispatcher }

func (a *Application) Input() *core.Input { return a.input }

func (a *Application) Metrics() *core.Metrics { return a.metrics }

func (a *Application) Device() renderer.Device { return a.device }

func (a *Application) UI() ui.Context { return a.ui }

func (a *Application) Loader() *assets.AsyncLoader { return a.loader }

func (a *Application) Shaders() *assets.Manager[*renderer.Shader] { return a.shaders }

func (a *Application) Textures() *assets.Manager[*renderer.Texture] { return a.textures }

func (a *Application) Materials() *assets.Manager[*renderer.Material] { return a.materials }
