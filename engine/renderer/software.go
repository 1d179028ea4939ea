package renderer

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"

	"github.com/spaghettifunk/stratum/engine/core"
)

// SoftwareDevice keeps every object in system memory. It backs headless runs
// and tests, and stands in until a GPU backend is plugged in.
type SoftwareDevice struct {
	nextHandle  Handle
	textures    map[Handle]*image.RGBA
	shaders     map[Handle]string
	backBuffer  *image.RGBA
	depthBuffer []float32
	clearColour color.RGBA
	clears      int
	closed      bool
}

func NewSoftwareDevice(width, height int, clearColour [4]float32) *SoftwareDevice {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	d := &SoftwareDevice{
		textures:    make(map[Handle]*image.RGBA),
		shaders:     make(map[Handle]string),
		backBuffer:  image.NewRGBA(image.Rect(0, 0, width, height)),
		depthBuffer: make([]float32, width*height),
		clearColour: toRGBA(clearColour),
	}
	core.LogInfo("Software device created with a %dx%d back buffer.", width, height)
	return d
}

func toRGBA(c [4]float32) color.RGBA {
	channel := func(v float32) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return color.RGBA{R: channel(c[0]), G: channel(c[1]), B: channel(c[2]), A: channel(c[3])}
}

func (d *SoftwareDevice) handle() Handle {
	d.nextHandle++
	return d.nextHandle
}

func (d *SoftwareDevice) CreateTexture(data *TextureData) (*Texture, error) {
	if d.closed {
		return nil, ErrDeviceClosed
	}
	if data == nil || data.Pixels == nil || data.Pixels.Bounds().Empty() {
		return nil, ErrNoPixels
	}
	src := data.Pixels
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	h := d.handle()
	d.textures[h] = dst
	core.LogDebug("texture '%s' created (%dx%d, handle %d)", data.Name, b.Dx(), b.Dy(), h)
	return &Texture{
		Handle: h,
		Name:   data.Name,
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

func (d *SoftwareDevice) DestroyTexture(texture *Texture) error {
	if texture == nil {
		return nil
	}
	if _, ok := d.textures[texture.Handle]; !ok {
		return fmt.Errorf("destroy texture '%s': %w", texture.Name, ErrUnknownHandle)
	}
	delete(d.textures, texture.Handle)
	texture.Handle = InvalidHandle
	return nil
}

func (d *SoftwareDevice) CreateShader(name string, source string) (*Shader, error) {
	if d.closed {
		return nil, ErrDeviceClosed
	}
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("shader '%s': %w", name, ErrEmptyShader)
	}
	h := d.handle()
	d.shaders[h] = source
	return &Shader{Handle: h, Name: name, Source: source}, nil
}

func (d *SoftwareDevice) DestroyShader(shader *Shader) error {
	if shader == nil {
		return nil
	}
	if _, ok := d.shaders[shader.Handle]; !ok {
		return fmt.Errorf("destroy shader '%s': %w", shader.Name, ErrUnknownHandle)
	}
	delete(d.shaders, shader.Handle)
	shader.Handle = InvalidHandle
	return nil
}

func (d *SoftwareDevice) Clear(colour, depth, stencil bool) {
	if colour {
		draw.Draw(d.backBuffer, d.backBuffer.Bounds(), image.NewUniform(d.clearColour), image.Point{}, draw.Src)
	}
	if depth {
		for i := range d.depthBuffer {
			d.depthBuffer[i] = 1
		}
	}
	// no stencil buffer
	d.clears++
}

// Texture returns the pixels stored for a handle.
func (d *SoftwareDevice) Texture(h Handle) (*image.RGBA, bool) {
	img, ok := d.textures[h]
	return img, ok
}

func (d *SoftwareDevice) TextureCount() int {
	return len(d.textures)
}

func (d *SoftwareDevice) ShaderCount() int {
	return len(d.shaders)
}

func (d *SoftwareDevice) BackBuffer() *image.RGBA {
	return d.backBuffer
}

// Clears reports how many times Clear was called.
func (d *SoftwareDevice) Clears() int {
	return d.clears
}

func (d *SoftwareDevice) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if n := len(d.textures) + len(d.shaders); n > 0 {
		core.LogDebug("software device released %d objects", n)
	}
	clear(d.textures)
	clear(d.shaders)
	return nil
}
