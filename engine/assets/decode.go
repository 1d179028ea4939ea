package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeImage decodes any registered image format into RGBA. Images larger
// than maxSize on either side are scaled down keeping the aspect ratio; a
// maxSize of zero disables scaling.
func DecodeImage(r io.Reader, maxSize int) (*image.RGBA, string, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, format, fmt.Errorf("image has no pixels (%dx%d)", w, h)
	}

	if maxSize > 0 && (w > maxSize || h > maxSize) {
		if w >= h {
			h = max(1, h*maxSize/w)
			w = maxSize
		} else {
			w = max(1, w*maxSize/h)
			h = maxSize
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
		return dst, format, nil
	}

	if rgba, ok := src.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba, format, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst, format, nil
}

// LoadImage opens and decodes the image at path.
func LoadImage(path string, maxSize int) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := DecodeImage(file, maxSize)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// MonoColourImage returns a 1x1 image of the given colour.
func MonoColourImage(c [4]float32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{
		R: uint8(clamp01(c[0])*255 + 0.5),
		G: uint8(clamp01(c[1])*255 + 0.5),
		B: uint8(clamp01(c[2])*255 + 0.5),
		A: uint8(clamp01(c[3])*255 + 0.5),
	})
	return img
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// MaterialConfig is the on-disk description of a material.
type MaterialConfig struct {
	Name      string     `toml:"name"`
	Shader    string     `toml:"shader"`
	Albedo    [4]float32 `toml:"albedo"`
	Metallic  float32    `toml:"metallic"`
	Roughness float32    `toml:"roughness"`
	AlbedoMap string     `toml:"albedo_map"`
	NormalMap string     `toml:"normal_map"`
}

// ParseMaterial decodes a material file. Keys left out keep the default material values.
func ParseMaterial(data []byte) (*MaterialConfig, error) {
	cfg := &MaterialConfig{
		Albedo:    [4]float32{1, 1, 1, 1},
		Roughness: 0.5,
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	if err := validateMaterial(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadMaterial reads and parses the material file at path.
func LoadMaterial(path string) (*MaterialConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseMaterial(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func validateMaterial(material *MaterialConfig) error {
	if material.Shader == "" {
		return fmt.Errorf("shader name is required")
	}
	for _, v := range material.Albedo {
		if v < 0 || v > 1 {
			return fmt.Errorf("albedo values must be between 0.0 and 1.0")
		}
	}
	if material.Metallic < 0 || material.Metallic > 1 {
		return fmt.Errorf("metallic must be between 0.0 and 1.0")
	}
	if material.Roughness < 0 {
		return fmt.Errorf("roughness must be a non-negative value")
	}
	return nil
}
