package renderer

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestSoftwareDevice_Textures(t *testing.T) {
	d := NewSoftwareDevice(4, 4, DefaultClearColor)
	defer d.Close()

	src := image.NewRGBA(image.Rect(2, 2, 4, 5))
	src.Set(2, 2, color.RGBA{R: 255, A: 255})

	tex, err := d.CreateTexture(&TextureData{Name: "red", Pixels: src})
	if err != nil {
		t.Fatalf("CreateTexture() failed: %v", err)
	}
	if tex.Handle == InvalidHandle {
		t.Fatal("expected a valid handle")
	}
	if tex.Width != 2 || tex.Height != 3 {
		t.Errorf("size = %dx%d, want 2x3", tex.Width, tex.Height)
	}
	img, ok := d.Texture(tex.Handle)
	if !ok {
		t.Fatal("texture not stored")
	}
	// the copy is rebased to the origin
	if got := img.RGBAAt(0, 0); got.R != 255 {
		t.Errorf("pixel (0,0) = %v", got)
	}

	if err := d.DestroyTexture(tex); err != nil {
		t.Fatalf("DestroyTexture() failed: %v", err)
	}
	if d.TextureCount() != 0 {
		t.Errorf("TextureCount() = %d, want 0", d.TextureCount())
	}
	if err := d.DestroyTexture(&Texture{Handle: 42}); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("expected ErrUnknownHandle, got %v", err)
	}
}

func TestSoftwareDevice_TextureErrors(t *testing.T) {
	d := NewSoftwareDevice(1, 1, DefaultClearColor)
	if _, err := d.CreateTexture(nil); !errors.Is(err, ErrNoPixels) {
		t.Errorf("expected ErrNoPixels, got %v", err)
	}
	if _, err := d.CreateTexture(&TextureData{Name: "empty", Pixels: image.NewRGBA(image.Rect(0, 0, 0, 0))}); !errors.Is(err, ErrNoPixels) {
		t.Errorf("expected ErrNoPixels, got %v", err)
	}
	d.Close()
	if _, err := d.CreateShader("s", "void main() {}"); !errors.Is(err, ErrDeviceClosed) {
		t.Errorf("expected ErrDeviceClosed, got %v", err)
	}
}

func TestSoftwareDevice_Shaders(t *testing.T) {
	d := NewSoftwareDevice(1, 1, DefaultClearColor)
	defer d.Close()

	if _, err := d.CreateShader("blank", "  \n"); !errors.Is(err, ErrEmptyShader) {
		t.Errorf("expected ErrEmptyShader, got %v", err)
	}
	s, err := d.CreateShader("grid", "void main() {}")
	if err != nil {
		t.Fatalf("CreateShader() failed: %v", err)
	}
	if d.ShaderCount() != 1 {
		t.Errorf("ShaderCount() = %d, want 1", d.ShaderCount())
	}
	if err := d.DestroyShader(s); err != nil {
		t.Fatalf("DestroyShader() failed: %v", err)
	}
	if s.Handle != InvalidHandle {
		t.Error("expected handle to be invalidated")
	}
}

func TestSoftwareDevice_Clear(t *testing.T) {
	d := NewSoftwareDevice(2, 2, [4]float32{1, 0, 0, 1})
	d.Clear(true, false, false)
	if got := d.BackBuffer().RGBAAt(1, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("back buffer pixel = %v", got)
	}
	if d.Clears() != 1 {
		t.Errorf("Clears() = %d, want 1", d.Clears())
	}
}
