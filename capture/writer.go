package capture

import (
	"fmt"
	"image"
	"io"

	"github.com/bodgit/gbprinter/tile"
)

// WriteInit writes an INIT directive line to w.
func WriteInit(w io.Writer) error {
	_, err := fmt.Fprintf(w, "{\"command\":\"%s\"}\n", CommandInit)
	return err
}

// WriteFeed writes a PRNT directive line with the given lower margin to w.
func WriteFeed(w io.Writer, marginLower int) error {
	_, err := fmt.Fprintf(w, "{\"command\":\"%s\",\"margin_lower\":%d}\n", CommandPrint, marginLower)
	return err
}

// WriteTile writes t to w as a tile record line.
func WriteTile(w io.Writer, t tile.Tile) error {
	_, err := fmt.Fprintln(w, t.String())
	return err
}

// Encode writes m to w as a complete capture of a single image, finished
// with a lower margin of finalizeMargin.
func Encode(w io.Writer, m image.Image, finalizeMargin int) error {
	if err := WriteInit(w); err != nil {
		return err
	}
	if err := tile.Encode(w, m); err != nil {
		return err
	}
	return WriteFeed(w, finalizeMargin)
}
