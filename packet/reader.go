package packet

import (
	"fmt"
	"strconv"
	"strings"
)

func isSeparator(r rune) bool {
	switch r {
	case ' ', ',', '\t', '\r':
		return true
	}
	return false
}

// ToBytes converts a hex dump into bytes. Lines starting with "//" or '#'
// are comments, as are directive lines starting with '{' or '!'. Bytes are
// separated by whitespace or commas and may carry a 0x prefix.
func ToBytes(text string) ([]byte, error) {
	var b []byte
	for i, line := range strings.Split(text, "\n") {
		s := strings.TrimSpace(line)
		if s == "" || strings.HasPrefix(s, "//") || strings.HasPrefix(s, "#") || s[0] == '{' || s[0] == '!' {
			continue
		}
		for _, tok := range strings.FieldsFunc(s, isSeparator) {
			tok = strings.TrimPrefix(strings.TrimPrefix(tok, "0x"), "0X")
			v, err := strconv.ParseUint(tok, 16, 8)
			if err != nil {
				return nil, fmt.Errorf("packet: line %d: %w", i+1, err)
			}
			b = append(b, byte(v))
		}
	}
	return b, nil
}

// ParseHex parses packets from a hex dump.
func ParseHex(text string) ([]Packet, error) {
	b, err := ToBytes(text)
	if err != nil {
		return nil, err
	}
	return Parse(b), nil
}
