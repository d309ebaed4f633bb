/*
Package packet decodes the raw serial packets sent from a Game Boy to the
Game Boy Printer.

Every packet has the following layout:

	| 0x88 | 0x33 | command | compression | length (LE) | data | checksum (LE) | keepalive | status |

The image is sent as a series of DATA packets, optionally run length
encoded, each holding up to 40 tiles and followed by a PRINT packet holding
the margins and palette. Packets can be converted into the line oriented
capture format understood by the capture package.
*/
package packet

import (
	"errors"
	"fmt"

	"github.com/bodgit/gbprinter/checksum"
)

const (
	sync0      = 0x88
	sync1      = 0x33
	headerSize = 6
	// Packets are never larger than a full DATA packet of 40 tiles
	maxDataLength = 0x280
)

// Command is the command byte of a packet.
type Command byte

// Commands understood by the printer.
const (
	Init    Command = 0x01
	Print   Command = 0x02
	Data    Command = 0x04
	Break   Command = 0x08
	Inquiry Command = 0x0f
)

func (c Command) String() string {
	switch c {
	case Init:
		return "INIT"
	case Print:
		return "PRNT"
	case Data:
		return "DATA"
	case Break:
		return "BREK"
	case Inquiry:
		return "INQY"
	}
	return fmt.Sprintf("Command(0x%02X)", byte(c))
}

var (
	errTruncated = errors.New("packet: truncated compressed data")
	errPrint     = errors.New("packet: print packet needs 4 bytes of data")
)

// Packet is a single packet sent to the printer.
type Packet struct {
	Command    Command
	Compressed bool
	Data       []byte
	Checksum   uint16
	ChecksumOK bool
}

// Payload returns the packet data, decompressed if necessary.
func (p Packet) Payload() ([]byte, error) {
	if !p.Compressed {
		return p.Data, nil
	}
	return Decompress(p.Data)
}

// Parse scans b for packets, skipping any bytes between them. A packet cut
// short by the end of b is ignored.
func Parse(b []byte) []Packet {
	var packets []Packet
	for i := 0; i+headerSize <= len(b); {
		if b[i] != sync0 || b[i+1] != sync1 {
			i++
			continue
		}

		header := b[i+2 : i+headerSize]
		length := int(header[2]) | int(header[3])<<8
		if length > maxDataLength {
			i++
			continue
		}

		end := i + headerSize + length + checksum.Size
		if end > len(b) {
			break
		}
		data := b[i+headerSize : i+headerSize+length]

		h := checksum.New()
		h.Write(header)
		h.Write(data)
		sum := uint16(b[end-2]) | uint16(b[end-1])<<8

		packets = append(packets, Packet{
			Command:    Command(header[0]),
			Compressed: header[1] != 0,
			Data:       append([]byte(nil), data...),
			Checksum:   sum,
			ChecksumOK: sum == h.Sum16(),
		})

		i = end
	}
	return packets
}

// Decompress expands run length encoded DATA. A control byte with the high
// bit set repeats the following byte (n & 0x7f) + 2 times, otherwise the
// next n + 1 bytes are copied as is.
func Decompress(data []byte) ([]byte, error) {
	var out []byte
	for i := 0; i < len(data); {
		c := data[i]
		i++
		if c&0x80 != 0 {
			if i >= len(data) {
				return nil, errTruncated
			}
			for n := int(c&0x7f) + 2; n > 0; n-- {
				out = append(out, data[i])
			}
			i++
			continue
		}
		n := int(c) + 1
		if i+n > len(data) {
			return nil, errTruncated
		}
		out = append(out, data[i:i+n]...)
		i += n
	}
	return out, nil
}

// PrintParams are the settings sent with a PRINT packet.
type PrintParams struct {
	Sheets      int
	MarginUpper int
	MarginLower int
	Palette     byte
	Exposure    byte
}

// ParsePrint decodes the data of a PRINT packet.
func ParsePrint(p Packet) (PrintParams, error) {
	if p.Command != Print || len(p.Data) < 4 {
		return PrintParams{}, errPrint
	}
	return PrintParams{
		Sheets:      int(p.Data[0]),
		MarginUpper: int(p.Data[1] >> 4),
		MarginLower: int(p.Data[1] & 0x0f),
		Palette:     p.Data[2],
		Exposure:    p.Data[3],
	}, nil
}

// Tones returns the tone printed for each of the four color indices. A
// palette of 0x00 behaves the same as the usual 0xE4.
func (pp PrintParams) Tones() [4]uint8 {
	palette := pp.Palette
	if palette == 0x00 {
		palette = 0xe4
	}
	var tones [4]uint8
	for i := range tones {
		tones[i] = palette >> (2 * i) & 0x03
	}
	return tones
}
