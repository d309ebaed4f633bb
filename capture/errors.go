package capture

import (
	"errors"
	"fmt"

	"github.com/bodgit/gbprinter/tile"
)

var (
	// ErrNoOpenImage is reported for a tile or a margin feed seen before
	// any image was started
	ErrNoOpenImage = errors.New("capture: no image start found, missing {\"command\":\"INIT\"}?")

	errMalformed = errors.New("capture: malformed JSON directive")
	errNotObject = errors.New("capture: directive is not an object")
)

// ParseError is returned when a directive line cannot be parsed. It aborts
// the whole reassembly.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("capture: error parsing directive on line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a tile record fails to decode and the
// configuration asks for that to abort the reassembly.
type DecodeError struct {
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("capture: error decoding tile on line %d: %v", e.Line, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func isDecodeFailure(err error) bool {
	return errors.Is(err, tile.ErrLength)
}
