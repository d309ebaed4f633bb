/*
Package tile implements a Game Boy Printer tile decoder and encoder.

Each tile is 8 by 8 pixels stored as 16 bytes in the planar 2 bits per pixel
format used by the Game Boy. Every row of the tile is two consecutive bytes,
the first holding the low bit of each pixel and the second the high bit, most
significant bit first. Captured tiles are exchanged as a line of 32 hex
digits.
*/
package tile

const (
	// Width is the width of a tile in pixels
	Width = 8
	// Height is the height of a tile in pixels
	Height = Width
	// Pixels is the number of pixels in a tile
	Pixels = Width * Height
	// Size is the number of bytes in an encoded tile
	Size = Pixels * bitsPerPixel / 8
	// Colors is the number of color indices a pixel can take
	Colors = 1 << bitsPerPixel
	// Transparent is the pixel value used by blank tiles. It is outside
	// the range of real color indices.
	Transparent = Colors

	bitsPerPixel = 2
	hexDigits    = Size << 1
)

// Tile is a decoded tile, one color index per pixel in row-major order.
type Tile [Pixels]uint8

// Blank returns a tile used to pad margin feeds where every pixel is
// Transparent.
func Blank() Tile {
	var t Tile
	for i := range t {
		t[i] = Transparent
	}
	return t
}

// IsBlank reports whether every pixel of t is Transparent.
func (t Tile) IsBlank() bool {
	for _, p := range t {
		if p != Transparent {
			return false
		}
	}
	return true
}

// At returns the color index of the pixel at column x and row y.
func (t Tile) At(x, y int) uint8 {
	return t[y*Width+x]
}
