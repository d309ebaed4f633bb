package capture

import (
	"math"
	"strings"

	"github.com/tidwall/gjson"
)

// Command names used in directives.
const (
	CommandInit  = "INIT"
	CommandPrint = "PRNT"
)

type directiveKind int

const (
	directiveNone directiveKind = iota
	directiveInit
	directivePrint
)

type directive struct {
	kind        directiveKind
	marginLower int
}

// parseDirective parses the JSON payload of a directive line. Commands
// other than INIT and PRNT, a missing command, or a PRNT without an integer
// margin_lower are not an error and yield directiveNone.
func parseDirective(line string) (directive, error) {
	payload := strings.TrimPrefix(strings.TrimSpace(line), "!")

	if !gjson.Valid(payload) {
		return directive{}, errMalformed
	}

	r := gjson.Parse(payload)
	if !r.IsObject() {
		return directive{}, errNotObject
	}

	command := r.Get("command")
	if command.Type != gjson.String {
		return directive{}, nil
	}

	switch command.Str {
	case CommandInit:
		return directive{kind: directiveInit}, nil
	case CommandPrint:
		m := r.Get("margin_lower")
		if m.Type != gjson.Number || m.Num != math.Trunc(m.Num) {
			return directive{}, nil
		}
		return directive{kind: directivePrint, marginLower: int(m.Int())}, nil
	}

	return directive{}, nil
}
