package tile

import (
	"errors"
	"fmt"
)

var (
	// ErrLength is returned when a tile record does not contain exactly
	// 32 hex digits
	ErrLength = errors.New("tile: record is not 16 bytes")
)

func isHex(c byte) bool {
	switch {
	case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		return true
	}
	return false
}

func hexValue(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	}
	return c - '0'
}

// Decode parses a line of text holding one tile record. Any character that
// isn't a hex digit is ignored, what remains must be exactly 32 digits.
func Decode(raw string) (Tile, error) {
	var digits [hexDigits]byte
	n := 0
	for i := 0; i < len(raw); i++ {
		if !isHex(raw[i]) {
			continue
		}
		if n < hexDigits {
			digits[n] = raw[i]
		}
		n++
	}
	if n != hexDigits {
		return Tile{}, fmt.Errorf("%w: got %d hex digits", ErrLength, n)
	}

	var b [Size]byte
	for i := range b {
		b[i] = hexValue(digits[i<<1])<<4 | hexValue(digits[i<<1+1])
	}

	return decode(b[:]), nil
}

// DecodeBytes decodes a tile from its 16 raw bytes.
func DecodeBytes(b []byte) (Tile, error) {
	if len(b) != Size {
		return Tile{}, fmt.Errorf("%w: got %d bytes", ErrLength, len(b))
	}
	return decode(b), nil
}

func decode(b []byte) Tile {
	var t Tile
	for y := 0; y < Height; y++ {
		lo, hi := b[y<<1], b[y<<1+1]
		for x := 0; x < Width; x++ {
			hiBit := hi >> (7 - x) & 1
			loBit := lo >> (7 - x) & 1
			t[y*Width+x] = hiBit<<1 | loBit
		}
	}
	return t
}
