package capture

import (
	"strings"

	"github.com/bodgit/gbprinter/tile"
)

type entryKind int

const (
	entryInit entryKind = iota
	entryFeed
	entryTile
	entryBadTile
)

type entry struct {
	kind   entryKind
	line   int
	margin int
	tile   tile.Tile
	err    error
}

// parse classifies every line and decodes the directives and tile records,
// skipping everything else.
func parse(text string, cfg Config) ([]entry, error) {
	var entries []entry
	for i, line := range strings.Split(text, "\n") {
		n := i + 1
		switch Classify(line) {
		case Directive:
			d, err := parseDirective(line)
			if err != nil {
				return nil, &ParseError{Line: n, Err: err}
			}
			switch d.kind {
			case directiveInit:
				entries = append(entries, entry{kind: entryInit, line: n})
			case directivePrint:
				entries = append(entries, entry{kind: entryFeed, line: n, margin: d.marginLower})
			}
		case TileData:
			t, err := tile.Decode(line)
			if err != nil {
				if cfg.DecodeFailure == FailReassembly {
					return nil, &DecodeError{Line: n, Err: err}
				}
				entries = append(entries, entry{kind: entryBadTile, line: n, err: err})
				continue
			}
			entries = append(entries, entry{kind: entryTile, line: n, tile: t})
		}
	}
	return entries, nil
}

type assembler struct {
	cfg     Config
	current *Image
	result  Result
}

func (a *assembler) warn(line int, err error) {
	a.result.Diagnostics = append(a.result.Diagnostics, Diagnostic{Line: line, Err: err})
}

func (a *assembler) orphan(line int) {
	if a.cfg.Orphans == WarnOrphans {
		a.warn(line, ErrNoOpenImage)
	}
}

func (a *assembler) push(m *Image) {
	if m.Len() == 0 && a.cfg.DropEmpty {
		return
	}
	a.result.Images = append(a.result.Images, *m)
}

func (a *assembler) add(line int, t ...tile.Tile) {
	if a.current == nil {
		a.orphan(line)
		return
	}
	a.current.Tiles = append(a.current.Tiles, t...)
}

func (a *assembler) feed(line, margin int) {
	if margin == a.cfg.FinalizeMargin {
		if a.current == nil {
			a.orphan(line)
			return
		}
		a.push(a.current)
		a.current = &Image{}
		return
	}

	if margin < 0 {
		margin = 0
	}

	blank := tile.Blank()
	pad := make([]tile.Tile, margin*a.cfg.BlankTilesPerMargin)
	for i := range pad {
		pad[i] = blank
	}
	a.add(line, pad...)
}

func (a *assembler) assemble(entries []entry) {
	for _, e := range entries {
		switch e.kind {
		case entryInit:
			// An INIT while an image is still printing is ignored
			if a.current == nil {
				a.current = &Image{}
			}
		case entryFeed:
			a.feed(e.line, e.margin)
		case entryTile:
			a.add(e.line, e.tile)
		case entryBadTile:
			a.warn(e.line, e.err)
			if a.cfg.DecodeFailure == SubstituteBlank {
				a.add(e.line, tile.Blank())
			}
		}
	}

	// The image opened by the last finishing PRNT has nothing in it yet
	if a.current != nil && a.current.Len() > 0 && a.cfg.EmitUnterminated {
		a.push(a.current)
	}
}

// Reassemble splits text into lines and rebuilds the images it describes.
//
// A malformed directive aborts with a *ParseError, no images are returned
// in that case. Tile records that fail to decode and tiles seen before any
// INIT are handled according to cfg and reported in the Diagnostics of the
// result. Only images finished with a PRNT directive are returned unless
// cfg.EmitUnterminated is set.
func Reassemble(text string, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	entries, err := parse(text, cfg)
	if err != nil {
		return nil, err
	}

	a := assembler{cfg: cfg}
	a.assemble(entries)

	return &a.result, nil
}
