/*
Package image lays out the tiles of a printed Game Boy Printer image as a
raster and exports it.

Tiles are placed left to right, top to bottom, wrapping after a fixed number
of tiles per row; 20 for the Game Boy Printer which gives an image 160 pixels
wide. The result is an image.Paletted where the four tones index the first
four palette entries and blank tiles index a fifth, transparent, entry.
*/
package image

import (
	"image"
	"image/color"

	"github.com/bodgit/gbprinter/capture"
	"github.com/bodgit/gbprinter/tile"
)

const (
	// TilesPerRow is the width in tiles of a Game Boy Printer image
	TilesPerRow = 20
	// PixelWidth is the width in pixels of a Game Boy Printer image
	PixelWidth = TilesPerRow * tile.Width

	paletteSize = tile.Colors + 1
)

// Bounds returns the size of the raster for n tiles wrapped at tilesPerRow.
func Bounds(n, tilesPerRow int) image.Rectangle {
	rows := (n + tilesPerRow - 1) / tilesPerRow
	return image.Rect(0, 0, tilesPerRow*tile.Width, rows*tile.Height)
}

// Layout returns m as an image tilesPerRow tiles wide, using p for the four
// tones. Blank tiles and any unused space after the last tile are left
// transparent.
func Layout(m capture.Image, tilesPerRow int, p color.Palette) *image.Paletted {
	if tilesPerRow <= 0 {
		tilesPerRow = TilesPerRow
	}

	dst := image.NewPaletted(Bounds(m.Len(), tilesPerRow), withTransparent(p))
	for i := range dst.Pix {
		dst.Pix[i] = tile.Transparent
	}

	for k, t := range m.Tiles {
		if t.IsBlank() {
			continue
		}
		tx, ty := k%tilesPerRow, k/tilesPerRow
		for y := 0; y < tile.Height; y++ {
			for x := 0; x < tile.Width; x++ {
				dst.SetColorIndex(tx*tile.Width+x, ty*tile.Height+y, t.At(x, y))
			}
		}
	}

	return dst
}

// LayoutAll lays out every image in r.
func LayoutAll(r *capture.Result, tilesPerRow int, p color.Palette) []*image.Paletted {
	out := make([]*image.Paletted, 0, len(r.Images))
	for _, m := range r.Images {
		out = append(out, Layout(m, tilesPerRow, p))
	}
	return out
}

// withTransparent returns the first four colors of p followed by the
// transparent color, padding with the default palette if p is short.
func withTransparent(p color.Palette) color.Palette {
	out := make(color.Palette, paletteSize)
	def := Default()
	for i := 0; i < tile.Colors; i++ {
		if i < len(p) {
			out[i] = p[i]
		} else {
			out[i] = def[i]
		}
	}
	out[tile.Transparent] = Transparent
	return out
}
