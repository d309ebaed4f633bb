package capture

import (
	"fmt"
	"strings"
)

// Kind is the classification of a single capture line.
type Kind int

const (
	// Blank is an empty line or one containing only whitespace
	Blank Kind = iota
	// Comment is a line starting with '#'
	Comment
	// Directive is a JSON control line starting with '{', or "!{" as
	// written by the Arduino emulator
	Directive
	// TileData is a line that should hold a tile record
	TileData
	// Inert is any other line, including "//" comments
	Inert
)

var kindNames = [...]string{
	Blank:     "blank",
	Comment:   "comment",
	Directive: "directive",
	TileData:  "tile",
	Inert:     "inert",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Classify returns the kind of line. The checks are applied in order, so a
// comment is never mistaken for a directive and a directive is never
// decoded as a tile.
func Classify(line string) Kind {
	s := strings.TrimSpace(line)
	switch {
	case s == "":
		return Blank
	case s[0] == '#':
		return Comment
	case s[0] == '/':
		return Inert
	case s[0] == '{', strings.HasPrefix(s, "!{"):
		return Directive
	case strings.IndexFunc(s, isHexRune) >= 0:
		return TileData
	}
	return Inert
}

func isHexRune(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F'
}
