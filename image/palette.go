package image

import (
	"fmt"
	"image/color"
	"io"
	"sort"

	"github.com/bodgit/gbprinter/tile"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPalette is the name of the palette used when none is chosen.
const DefaultPalette = "grayscale"

// Transparent is the color used for blank tiles.
var Transparent color.Color = color.NRGBA{0xff, 0xff, 0xff, 0x00}

var palettes = map[string][tile.Colors]string{
	"grayscale":        {"#ffffff", "#aaaaaa", "#555555", "#000000"},
	"dmg":              {"#9bbc0f", "#77a112", "#306230", "#0f380f"},
	"gameboypocket":    {"#c4cfa1", "#8b956d", "#4d533c", "#1f1f1f"},
	"gameboycoloreuus": {"#ffffff", "#7bff30", "#0163c6", "#000000"},
	"gameboycolorjp":   {"#ffffff", "#ffad63", "#833100", "#000000"},
	"bgb":              {"#e0f8d0", "#88c070", "#346856", "#081820"},
	"grafixkidgray":    {"#e0dbcd", "#a89f94", "#706b66", "#2b2b26"},
	"grafixkidgreen":   {"#dbf4b4", "#abc396", "#7b9278", "#4c625a"},
	"blackzero":        {"#7e8416", "#577b46", "#385d49", "#2e463d"},
}

func parseColors(hex []string) (color.Palette, error) {
	if len(hex) != tile.Colors {
		return nil, fmt.Errorf("image: palette needs %d colors, got %d", tile.Colors, len(hex))
	}
	p := make(color.Palette, len(hex))
	for i, s := range hex {
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, fmt.Errorf("image: bad color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		p[i] = color.RGBA{r, g, b, 0xff}
	}
	return p, nil
}

// Palette returns the built-in palette with the given name.
func Palette(name string) (color.Palette, bool) {
	hex, ok := palettes[name]
	if !ok {
		return nil, false
	}
	p, err := parseColors(hex[:])
	if err != nil {
		panic(err)
	}
	return p, true
}

// Default returns the default grayscale palette.
func Default() color.Palette {
	p, _ := Palette(DefaultPalette)
	return p
}

// Names returns the names of the built-in palettes in sorted order.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type paletteFile struct {
	Palettes map[string]struct {
		Colors []string `toml:"colors"`
	} `toml:"palettes"`
}

// LoadPalettes reads additional palettes from r, a TOML document of the
// form:
//
//	[palettes.sepia]
//	colors = ["#f4e9d8", "#c8a97e", "#7a5c3e", "#2b1d0e"]
//
// Colors are listed lightest first.
func LoadPalettes(r io.Reader) (map[string]color.Palette, error) {
	var f paletteFile
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&f); err != nil {
		return nil, fmt.Errorf("image: reading palettes: %w", err)
	}

	out := make(map[string]color.Palette, len(f.Palettes))
	for name, def := range f.Palettes {
		p, err := parseColors(def.Colors)
		if err != nil {
			return nil, fmt.Errorf("%w in palette %q", err, name)
		}
		out[name] = p
	}
	return out, nil
}
