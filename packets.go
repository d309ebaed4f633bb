package gbprinter

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/gbprinter/packet"
)

// ConvertPackets reads a hex dump of raw printer packets from file and
// returns it converted into a capture.
func (p *Printer) ConvertPackets(file string) (string, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}

	packets, err := packet.ParseHex(string(b))
	if err != nil {
		return "", err
	}
	p.logger.Printf("%s: %d packets\n", file, len(packets))

	for i, pkt := range packets {
		if !pkt.ChecksumOK {
			p.logger.Printf("%s: packet %d (%s) checksum 0x%04X does not match data\n", file, i+1, pkt.Command, pkt.Checksum)
		}
	}

	sb := new(strings.Builder)
	if err := packet.WriteLines(sb, packets); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// DecodePacketFile converts the packets in file and writes the images into
// dir, or alongside file if dir is empty.
func (p *Printer) DecodePacketFile(file, dir string) ([]string, error) {
	text, err := p.ConvertPackets(file)
	if err != nil {
		return nil, err
	}

	ms, err := p.Decode(file, text)
	if err != nil {
		return nil, err
	}

	if dir == "" {
		dir = filepath.Dir(file)
	}
	return p.writeImages(baseName(file), dir, ms)
}
