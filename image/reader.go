package image

import (
	"image"
	"image/color"
	"io"

	"github.com/bodgit/gbprinter/capture"
)

// Decode reads a capture from r and returns one raster per printed image
// using the Game Boy Printer layout and the default palette.
func Decode(r io.Reader) ([]*image.Paletted, error) {
	return DecodeWithConfig(r, capture.DefaultConfig(), Default())
}

// DecodeWithConfig is like Decode but reassembles the capture with cfg and
// lays it out with palette p. Diagnostics are discarded.
func DecodeWithConfig(r io.Reader, cfg capture.Config, p color.Palette) ([]*image.Paletted, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	result, err := capture.Reassemble(string(b), cfg)
	if err != nil {
		return nil, err
	}

	return LayoutAll(result, cfg.TilesPerRow, p), nil
}
