package tile

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
)

// Bytes encodes t back into its 16 byte planar form. Transparent pixels are
// written as color index 0.
func (t Tile) Bytes() [Size]byte {
	var b [Size]byte
	for y := 0; y < Height; y++ {
		var lo, hi byte
		for x := 0; x < Width; x++ {
			p := t[y*Width+x]
			if p == Transparent {
				p = 0
			}
			lo |= (p & 1) << (7 - x)
			hi |= (p >> 1 & 1) << (7 - x)
		}
		b[y<<1], b[y<<1+1] = lo, hi
	}
	return b
}

// String returns t as a tile record, 16 space separated pairs of upper case
// hex digits.
func (t Tile) String() string {
	b := t.Bytes()
	var sb strings.Builder
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", v)
	}
	return sb.String()
}

// shade maps a color onto the nearest of the four printer tones, 0 being
// the lightest.
func shade(c color.Color) uint8 {
	y := color.Gray16Model.Convert(c).(color.Gray16).Y
	s := (uint32(0xffff-y) + 0x2aaa) / 0x5555
	if s > Colors-1 {
		s = Colors - 1
	}
	return uint8(s)
}

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(m *image.Paletted) error {
	shades := make([]uint8, len(m.Palette))
	for i, c := range m.Palette {
		shades[i] = shade(c)
	}

	b := m.Bounds()
	tileX, tileY := b.Dx()/Width, b.Dy()/Height

	for ty := 0; ty < tileY; ty++ {
		for tx := 0; tx < tileX; tx++ {
			var t Tile
			for y := 0; y < Height; y++ {
				for x := 0; x < Width; x++ {
					dx := b.Min.X + tx*Width + x
					dy := b.Min.Y + ty*Height + y
					t[y*Width+x] = shades[m.ColorIndexAt(dx, dy)]
				}
			}
			if _, err := fmt.Fprintln(e.w, t.String()); err != nil {
				return err
			}
		}
	}

	return nil
}

// Encode writes the Image m to w as tile records, one per line, in print
// order. The image is reduced to four tones first if necessary.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || b.Dx()%Width != 0 || b.Dy()%Height != 0 {
		return errors.New("tile: image dimensions are not a multiple of the tile size")
	}

	pm, _ := m.(*image.Paletted)
	if pm == nil {
		if cp, ok := m.ColorModel().(color.Palette); ok && len(cp) <= Colors {
			pm = image.NewPaletted(b, cp)
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					pm.Set(x, y, cp.Convert(m.At(x, y)))
				}
			}
		}
	}
	if pm == nil || len(pm.Palette) > Colors {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, Colors), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	e := encoder{w: w}

	return e.encode(pm)
}
