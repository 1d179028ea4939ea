package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() failed: %v", err)
	}
	return buf.Bytes()
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, encodePNG(t, w, h, color.NRGBA{G: 255, A: 255}), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestDecodeImage(t *testing.T) {
	img, format, err := DecodeImage(bytes.NewReader(encodePNG(t, 3, 2, color.NRGBA{R: 255, A: 255})), 0)
	if err != nil {
		t.Fatalf("DecodeImage() failed: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(2, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestDecodeImage_ScalesDown(t *testing.T) {
	img, _, err := DecodeImage(bytes.NewReader(encodePNG(t, 64, 16, color.White)), 32)
	if err != nil {
		t.Fatalf("DecodeImage() failed: %v", err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 8 {
		t.Errorf("bounds = %v, want 32x8", img.Bounds())
	}
}

func TestDecodeImage_Invalid(t *testing.T) {
	if _, _, err := DecodeImage(strings.NewReader("not an image"), 0); err == nil {
		t.Error("expected an error")
	}
}

func TestMonoColourImage(t *testing.T) {
	img := MonoColourImage([4]float32{1, 0, 1, 1})
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 255, B: 255, A: 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestParseMaterial(t *testing.T) {
	cfg, err := ParseMaterial([]byte(`
name = "brick"
shader = "geometry_pass_shader"
albedo = [0.5, 0.25, 1.0, 1.0]
metallic = 0.2
albedo_map = "brick_albedo"
`))
	if err != nil {
		t.Fatalf("ParseMaterial() failed: %v", err)
	}
	if cfg.Name != "brick" || cfg.Shader != "geometry_pass_shader" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Albedo != [4]float32{0.5, 0.25, 1.0, 1.0} {
		t.Errorf("Albedo = %v", cfg.Albedo)
	}
	// defaults survive for keys not in the file
	if cfg.Roughness != 0.5 {
		t.Errorf("Roughness = %v, want 0.5", cfg.Roughness)
	}
	if cfg.AlbedoMap != "brick_albedo" || cfg.NormalMap != "" {
		t.Errorf("maps = %q, %q", cfg.AlbedoMap, cfg.NormalMap)
	}
}

func TestParseMaterial_Invalid(t *testing.T) {
	tests := map[string]string{
		"no shader":     `name = "x"`,
		"albedo range":  "shader = \"s\"\nalbedo = [2.0, 0.0, 0.0, 1.0]",
		"metallic":      "shader = \"s\"\nmetallic = 1.5",
		"roughness":     "shader = \"s\"\nroughness = -1.0",
		"unknown field": "shader = \"s\"\nshininess = 3.0",
		"syntax":        "shader = ",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseMaterial([]byte(doc)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
