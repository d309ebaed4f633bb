/*
Package capture reassembles the text captured from a Game Boy Printer
emulator into images.

A capture is line oriented. Each line is one of a comment, a blank line, a
JSON control directive or a tile record of 32 hex digits:

	# comment
	{"command":"INIT"}
	FF 00 7E FF 85 81 89 83 93 85 A5 8B C9 97 7E FF
	{"command":"PRNT","margin_lower":3}

An INIT directive opens an image, tile records are appended to it in print
order and a PRNT directive either finalizes it or feeds blank tiles to pad
the margin.
*/
package capture

import (
	"fmt"

	"github.com/bodgit/gbprinter/tile"
)

// Image is a printed image as the sequence of tiles in the order they were
// printed, both real tiles and blank padding.
type Image struct {
	Tiles []tile.Tile
}

// Len returns the number of tiles in the image.
func (m Image) Len() int {
	return len(m.Tiles)
}

// Rows returns the number of tile rows the image occupies when wrapped at
// tilesPerRow tiles.
func (m Image) Rows(tilesPerRow int) int {
	return (len(m.Tiles) + tilesPerRow - 1) / tilesPerRow
}

// Diagnostic is a problem with a single line that did not stop the
// capture from being reassembled.
type Diagnostic struct {
	Line int
	Err  error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %v", d.Line, d.Err)
}

// Result holds the images reassembled from a capture along with any
// diagnostics.
type Result struct {
	Images      []Image
	Diagnostics []Diagnostic
}

// Failed reports whether any tile record failed to decode.
func (r *Result) Failed() bool {
	for _, d := range r.Diagnostics {
		if isDecodeFailure(d.Err) {
			return true
		}
	}
	return false
}
