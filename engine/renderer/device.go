package renderer

import (
	"errors"
	"image"
)

// Handle names a GPU object owned by a Device. Zero is never a valid handle.
type Handle uint32

const InvalidHandle Handle = 0

var (
	ErrNoPixels       = errors.New("texture data has no pixels")
	ErrEmptyShader    = errors.New("shader source is empty")
	ErrUnknownHandle  = errors.New("unknown handle")
	ErrDeviceClosed   = errors.New("device is closed")
	DefaultClearColor = [4]float32{0.1, 0.1, 0.1, 1.0}
)

// TextureData is decoded image data waiting for a GPU texture. It is produced
// off the main thread.
type TextureData struct {
	Name   string
	Path   string
	Pixels *image.RGBA
}

type Texture struct {
	Handle Handle
	Name   string
	Width  int
	Height int
}

type Shader struct {
	Handle Handle
	Name   string
	Source string
}

type Material struct {
	Name      string
	Shader    *Shader
	Albedo    [4]float32
	Metallic  float32
	Roughness float32
	AlbedoMap *Texture
	NormalMap *Texture
}

// NewMaterial returns the default material properties.
func NewMaterial() *Material {
	return &Material{
		Name:      "default",
		Albedo:    [4]float32{1, 1, 1, 1},
		Metallic:  0,
		Roughness: 0.5,
	}
}

// Device creates and destroys graphics objects. Implementations are bound to
// the thread owning the graphics context; call them from the main thread only.
type Device interface {
	CreateTexture(data *TextureData) (*Texture, error)
	DestroyTexture(texture *Texture) error
	CreateShader(name string, source string) (*Shader, error)
	DestroyShader(shader *Shader) error
	// Clear resets the selected buffers of the default render target.
	Clear(colour, depth, stencil bool)
	Close() error
}
