package assets

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/spaghettifunk/stratum/engine/core"
	"github.com/spaghettifunk/stratum/engine/renderer"
	"github.com/spaghettifunk/stratum/engine/systems"
)

var ErrUntrackedAsset = errors.New("asset was never loaded through the async loader")

type assetKind uint8

const (
	kindTexture assetKind = iota
	kindMaterial
)

func (k assetKind) String() string {
	if k == kindMaterial {
		return "material"
	}
	return "texture"
}

type trackedAsset struct {
	kind assetKind
	name string
}

type readyMaterial struct {
	name   string
	config *MaterialConfig
}

// AsyncLoaderOptions wires the loader to the engine. Every field but
// MaxTextureSize is required.
type AsyncLoaderOptions struct {
	Jobs       *systems.JobSystem
	Dispatcher *core.EventDispatcher
	Device     renderer.Device
	Textures   *Manager[*renderer.Texture]
	Materials  *Manager[*renderer.Material]
	Shaders    *Manager[*renderer.Shader]
	// Images larger than this on either side are scaled down. Zero keeps the source size.
	MaxTextureSize int
}

// AsyncLoader decodes assets on the job system and turns them into graphics
// objects on the main thread. Workers only ever touch the ready lists; the
// device and the caches are used from FinalizeTextures and FinalizeMaterials.
type AsyncLoader struct {
	jobs           *systems.JobSystem
	dispatcher     *core.EventDispatcher
	device         renderer.Device
	textures       *Manager[*renderer.Texture]
	materials      *Manager[*renderer.Material]
	shaders        *Manager[*renderer.Shader]
	maxTextureSize int

	mu             sync.Mutex
	readyTextures  []*renderer.TextureData
	readyMaterials []readyMaterial
	tracked        map[string]trackedAsset

	pending atomic.Int32
}

func NewAsyncLoader(opts AsyncLoaderOptions) (*AsyncLoader, error) {
	if opts.Jobs == nil || opts.Dispatcher == nil || opts.Device == nil {
		return nil, fmt.Errorf("async loader requires a job system, a dispatcher and a device")
	}
	if opts.Textures == nil || opts.Materials == nil || opts.Shaders == nil {
		return nil, fmt.Errorf("async loader requires texture, material and shader caches")
	}
	return &AsyncLoader{
		jobs:           opts.Jobs,
		dispatcher:     opts.Dispatcher,
		device:         opts.Device,
		textures:       opts.Textures,
		materials:      opts.Materials,
		shaders:        opts.Shaders,
		maxTextureSize: opts.MaxTextureSize,
		tracked:        make(map[string]trackedAsset),
	}, nil
}

func trackingKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

func (l *AsyncLoader) track(path string, kind assetKind, name string) {
	l.mu.Lock()
	l.tracked[trackingKey(path)] = trackedAsset{kind: kind, name: name}
	l.mu.Unlock()
}

// Tracks reports whether path was loaded through this loader.
func (l *AsyncLoader) Tracks(path string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.tracked[trackingKey(path)]
	return ok
}

// Pending is the number of loads submitted but not yet finalized or failed.
func (l *AsyncLoader) Pending() int {
	return int(l.pending.Load())
}

func (l *AsyncLoader) begin(text string) {
	l.pending.Add(1)
	l.dispatcher.QueueEvent(core.GuiEvent{GuiType: core.GuiStartSpinner, Text: text})
}

// done may run on a worker goroutine.
func (l *AsyncLoader) done() {
	l.pending.Add(-1)
	l.dispatcher.QueueEvent(core.GuiEvent{GuiType: core.GuiEndSpinner})
}

func (l *AsyncLoader) submit(name string, run func() error) (uuid.UUID, error) {
	id, err := l.jobs.Submit(systems.Job{
		Name:      name,
		Run:       run,
		OnFailure: func(error) { l.done() },
	})
	if err != nil {
		l.done()
		return uuid.Nil, fmt.Errorf("submit %s: %w", name, err)
	}
	return id, nil
}

// LoadTexture decodes the image at path in the background. The texture is
// attached to the texture cache under name by a later FinalizeTextures.
func (l *AsyncLoader) LoadTexture(name, path string) (uuid.UUID, error) {
	l.track(path, kindTexture, name)
	l.begin(fmt.Sprintf("Loading texture %s", name))
	return l.submit("texture:"+name, func() error {
		img, err := LoadImage(path, l.maxTextureSize)
		if err != nil {
			return err
		}
		l.mu.Lock()
		l.readyTextures = append(l.readyTextures, &renderer.TextureData{Name: name, Path: path, Pixels: img})
		l.mu.Unlock()
		return nil
	})
}

// LoadMaterial parses the material file at path in the background. The
// material is attached by a later FinalizeMaterials, under the name set in the
// file or under name when the file has none.
func (l *AsyncLoader) LoadMaterial(name, path string) (uuid.UUID, error) {
	l.track(path, kindMaterial, name)
	l.begin(fmt.Sprintf("Loading material %s", name))
	return l.submit("material:"+name, func() error {
		cfg, err := LoadMaterial(path)
		if err != nil {
			return err
		}
		l.mu.Lock()
		l.readyMaterials = append(l.readyMaterials, readyMaterial{name: name, config: cfg})
		l.mu.Unlock()
		return nil
	})
}

// Reload loads path again under the name it was first loaded with.
func (l *AsyncLoader) Reload(path string) error {
	l.mu.Lock()
	asset, ok := l.tracked[trackingKey(path)]
	l.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUntrackedAsset, path)
	}

	core.LogInfo("Reloading %s '%s'.", asset.kind, asset.name)
	var err error
	switch asset.kind {
	case kindTexture:
		_, err = l.LoadTexture(asset.name, path)
	case kindMaterial:
		_, err = l.LoadMaterial(asset.name, path)
	}
	return err
}

// FinalizeTextures creates a texture for every decoded image and attaches it
// to the cache. Main thread only. Returns how many textures were attached.
func (l *AsyncLoader) FinalizeTextures() int {
	l.mu.Lock()
	batch := l.readyTextures
	l.readyTextures = nil
	l.mu.Unlock()

	attached := 0
	for _, data := range batch {
		tex, err := l.device.CreateTexture(data)
		l.done()
		if err != nil {
			core.LogError("failed to create texture '%s' from %s: %s", data.Name, data.Path, err)
			continue
		}
		// A reload swaps the new handle into the cached texture, so materials
		// built against it keep a live reference.
		if existing, found := l.textures.Get(data.Name); found && existing != nil {
			stale := *existing
			*existing = *tex
			tex = existing
			if err := l.device.DestroyTexture(&stale); err != nil {
				core.LogWarn("failed to destroy replaced texture '%s': %s", data.Name, err)
			}
		} else {
			l.textures.Attach(data.Name, tex)
		}
		attached++
		core.LogInfo("Texture '%s' loaded (%dx%d).", data.Name, tex.Width, tex.Height)
	}
	return attached
}

// FinalizeMaterials builds every parsed material against the current shader
// and texture caches. Main thread only. Returns how many materials were attached.
func (l *AsyncLoader) FinalizeMaterials() int {
	l.mu.Lock()
	batch := l.readyMaterials
	l.readyMaterials = nil
	l.mu.Unlock()

	for _, ready := range batch {
		name := ready.name
		// a name inside the file wins over the one the load was requested with
		if ready.config.Name != "" {
			name = ready.config.Name
		}
		l.materials.Attach(name, l.buildMaterial(name, ready.config))
		l.done()
		core.LogInfo("Material '%s' loaded.", name)
	}
	return len(batch)
}

func (l *AsyncLoader) buildMaterial(name string, cfg *MaterialConfig) *renderer.Material {
	m := &renderer.Material{
		Name:      name,
		Albedo:    cfg.Albedo,
		Metallic:  cfg.Metallic,
		Roughness: cfg.Roughness,
	}
	shader, ok := l.shaders.Get(cfg.Shader)
	if !ok {
		core.LogWarn("material '%s': shader '%s' not found, using the default", name, cfg.Shader)
	}
	m.Shader = shader
	if cfg.AlbedoMap != "" {
		m.AlbedoMap = l.texture(name, cfg.AlbedoMap)
	}
	if cfg.NormalMap != "" {
		m.NormalMap = l.texture(name, cfg.NormalMap)
	}
	return m
}

func (l *AsyncLoader) texture(material, name string) *renderer.Texture {
	tex, ok := l.textures.Get(name)
	if !ok {
		core.LogWarn("material '%s': texture '%s' not found, using the default", material, name)
	}
	return tex
}
