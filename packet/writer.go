package packet

import (
	"encoding/hex"
	"io"
	"strings"

	"github.com/bodgit/gbprinter/capture"
	"github.com/bodgit/gbprinter/tile"
)

type encoder struct {
	w       io.Writer
	pending [][]byte
}

func (e *encoder) data(p Packet) error {
	b, err := p.Payload()
	if err != nil {
		return err
	}
	for len(b) > 0 {
		n := tile.Size
		if len(b) < n {
			n = len(b)
		}
		e.pending = append(e.pending, b[:n])
		b = b[n:]
	}
	return nil
}

func (e *encoder) print(p Packet) error {
	pp, err := ParsePrint(p)
	if err != nil {
		return err
	}

	tones := pp.Tones()
	for _, b := range e.pending {
		t, err := tile.DecodeBytes(b)
		if err != nil {
			// Let the reassembler report the short record
			if _, err := io.WriteString(e.w, strings.ToUpper(hex.EncodeToString(b))+"\n"); err != nil {
				return err
			}
			continue
		}
		for i, v := range t {
			t[i] = tones[v]
		}
		if err := capture.WriteTile(e.w, t); err != nil {
			return err
		}
	}
	e.pending = e.pending[:0]

	return capture.WriteFeed(e.w, pp.MarginLower)
}

// WriteLines converts packets into the capture line format, writing an INIT
// directive for each INIT packet, a tile record for every tile of every
// DATA packet and a PRNT directive with the lower margin of each PRINT
// packet. A BREAK packet discards tiles not yet printed. Tiles are remapped
// through the palette of the PRINT packet that follows them; tiles never
// followed by a PRINT packet are not written.
func WriteLines(w io.Writer, packets []Packet) error {
	e := encoder{w: w}
	for _, p := range packets {
		var err error
		switch p.Command {
		case Init:
			err = capture.WriteInit(w)
		case Data:
			err = e.data(p)
		case Print:
			err = e.print(p)
		case Break:
			e.pending = e.pending[:0]
		}
		if err != nil {
			return err
		}
	}
	return nil
}
