package capture

import (
	"errors"
	"fmt"
)

// DecodePolicy decides what happens to a tile record that fails to decode.
type DecodePolicy int

const (
	// SkipTile drops the tile and records a diagnostic
	SkipTile DecodePolicy = iota
	// SubstituteBlank appends a blank tile in its place and records a
	// diagnostic
	SubstituteBlank
	// FailReassembly aborts with a *DecodeError
	FailReassembly
)

var decodePolicyNames = map[DecodePolicy]string{
	SkipTile:        "skip",
	SubstituteBlank: "blank",
	FailReassembly:  "fail",
}

func (p DecodePolicy) String() string {
	if s, ok := decodePolicyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("DecodePolicy(%d)", int(p))
}

// ParseDecodePolicy returns the policy with the given name as returned by
// String.
func ParseDecodePolicy(s string) (DecodePolicy, error) {
	for p, name := range decodePolicyNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("capture: unknown decode policy %q", s)
}

// OrphanPolicy decides what happens to tiles and margin feeds seen before
// any image was started.
type OrphanPolicy int

const (
	// WarnOrphans drops them and records ErrNoOpenImage as a diagnostic
	WarnOrphans OrphanPolicy = iota
	// DropOrphans drops them silently
	DropOrphans
)

// Config controls how a capture is reassembled. The zero value is not
// usable, start from DefaultConfig.
type Config struct {
	// TilesPerRow is the width of a printed image in tiles
	TilesPerRow int
	// BlankTilesPerMargin is the number of blank tiles fed for each unit
	// of lower margin
	BlankTilesPerMargin int
	// FinalizeMargin is the lower margin that finishes an image rather
	// than feeding blank tiles
	FinalizeMargin int
	// EmitUnterminated includes an image still open at the end of the
	// capture in the result
	EmitUnterminated bool
	// DropEmpty leaves out images that finished without any tiles
	DropEmpty bool

	DecodeFailure DecodePolicy
	Orphans       OrphanPolicy
}

// DefaultConfig returns the configuration matching the Game Boy Printer;
// 20 tiles per row, 40 blank tiles (two rows) per unit of margin and a lower
// margin of 3 finishing the image.
func DefaultConfig() Config {
	return Config{
		TilesPerRow:         20,
		BlankTilesPerMargin: 40,
		FinalizeMargin:      3,
		DecodeFailure:       SkipTile,
		Orphans:             WarnOrphans,
	}
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	switch {
	case c.TilesPerRow <= 0:
		return errors.New("capture: tiles per row must be positive")
	case c.BlankTilesPerMargin < 0:
		return errors.New("capture: blank tiles per margin must not be negative")
	case c.FinalizeMargin < 0:
		return errors.New("capture: finalize margin must not be negative")
	}
	if _, ok := decodePolicyNames[c.DecodeFailure]; !ok {
		return fmt.Errorf("capture: invalid decode policy %d", int(c.DecodeFailure))
	}
	if c.Orphans != WarnOrphans && c.Orphans != DropOrphans {
		return fmt.Errorf("capture: invalid orphan policy %d", int(c.Orphans))
	}
	return nil
}
