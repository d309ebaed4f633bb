package image

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Format is an image file format an image can be exported as.
type Format int

const (
	// PNG keeps blank tiles transparent
	PNG Format = iota
	// JPEG flattens blank tiles onto white
	JPEG
	// BMP writes blank tiles as white
	BMP
)

var formatExtensions = [...]string{
	PNG:  ".png",
	JPEG: ".jpg",
	BMP:  ".bmp",
}

// Extension returns the file extension, including the leading dot, used
// for f.
func (f Format) Extension() string {
	if f >= 0 && int(f) < len(formatExtensions) {
		return formatExtensions[f]
	}
	return ""
}

func (f Format) String() string {
	return strings.TrimPrefix(f.Extension(), ".")
}

// ParseFormat returns the format with the given name, "png", "jpg", "jpeg"
// or "bmp".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	}
	return 0, fmt.Errorf("image: unknown format %q", s)
}

// Scale returns m enlarged by an integer factor using nearest neighbour
// sampling so every printed pixel stays a sharp square.
func Scale(m *image.Paletted, factor int) *image.Paletted {
	if factor <= 1 {
		return m
	}
	b := m.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor), m.Palette)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), m, b, draw.Src, nil)
	return dst
}

func flatten(m image.Image) *image.RGBA {
	b := m.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, b, m, b.Min, draw.Over)
	return dst
}

// Encode writes m to w in format f after scaling it by factor.
func Encode(w io.Writer, m *image.Paletted, f Format, factor int) error {
	if m.Bounds().Empty() {
		return errors.New("image: refusing to encode an empty image")
	}

	m = Scale(m, factor)

	switch f {
	case PNG:
		return png.Encode(w, m)
	case JPEG:
		return jpeg.Encode(w, flatten(m), &jpeg.Options{Quality: 100})
	case BMP:
		return bmp.Encode(w, flatten(m))
	}
	return fmt.Errorf("image: unknown format %d", int(f))
}
