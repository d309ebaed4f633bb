package packet

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/bodgit/gbprinter/capture"
	"github.com/bodgit/gbprinter/checksum"
	"github.com/bodgit/gbprinter/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var goldenBytes = []byte{0xff, 0x00, 0x7e, 0xff, 0x85, 0x81, 0x89, 0x83, 0x93, 0x85, 0xa5, 0x8b, 0xc9, 0x97, 0x7e, 0xff}

func build(c Command, compressed bool, data []byte) []byte {
	var comp byte
	if compressed {
		comp = 1
	}
	header := []byte{byte(c), comp, byte(len(data)), byte(len(data) >> 8)}
	h := checksum.New()
	h.Write(header)
	h.Write(data)

	b := []byte{sync0, sync1}
	b = append(b, header...)
	b = append(b, data...)
	b = h.Sum(b)
	return append(b, 0x81, 0x00)
}

func hexDump(b []byte) string {
	var sb strings.Builder
	for i, v := range b {
		if i > 0 && i%16 == 0 {
			sb.WriteByte('\n')
		} else if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", v)
	}
	return sb.String()
}

func TestParse(t *testing.T) {
	var b []byte
	b = append(b, 0x00, 0x12)
	b = append(b, build(Init, false, nil)...)
	b = append(b, build(Data, false, goldenBytes)...)
	b = append(b, build(Print, false, []byte{0x01, 0x13, 0xe4, 0x40})...)
	b = append(b, build(Inquiry, false, nil)...)

	packets := Parse(b)
	require.Len(t, packets, 4)
	assert.Equal(t, []Command{Init, Data, Print, Inquiry}, []Command{packets[0].Command, packets[1].Command, packets[2].Command, packets[3].Command})
	for _, p := range packets {
		assert.True(t, p.ChecksumOK, p.Command.String())
	}
	assert.Equal(t, goldenBytes, packets[1].Data)
	assert.Empty(t, packets[0].Data)
}

func TestParseBadChecksum(t *testing.T) {
	b := build(Data, false, goldenBytes)
	b[len(b)-4]++

	packets := Parse(b)
	require.Len(t, packets, 1)
	assert.False(t, packets[0].ChecksumOK)
}

func TestParseTruncated(t *testing.T) {
	b := build(Init, false, nil)
	d := build(Data, false, goldenBytes)
	b = append(b, d[:10]...)

	packets := Parse(b)
	require.Len(t, packets, 1)
	assert.Equal(t, Init, packets[0].Command)
}

func TestDecompress(t *testing.T) {
	out, err := Decompress([]byte{0x83, 0xaa, 0x02, 0x01, 0x02, 0x03, 0x80, 0xff})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0x01, 0x02, 0x03, 0xff, 0xff}, out)

	for _, bad := range [][]byte{{0x85}, {0x03, 0x01}} {
		_, err := Decompress(bad)
		assert.ErrorIs(t, err, errTruncated)
	}
}

func TestPayload(t *testing.T) {
	p := Packet{Command: Data, Compressed: true, Data: []byte{0x8e, 0x00}}
	b, err := p.Payload()
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 16), b)

	p = Packet{Command: Data, Data: goldenBytes}
	b, err = p.Payload()
	require.NoError(t, err)
	assert.Equal(t, goldenBytes, b)
}

func TestParsePrint(t *testing.T) {
	pp, err := ParsePrint(Packet{Command: Print, Data: []byte{0x01, 0x13, 0x1b, 0x40}})
	require.NoError(t, err)
	assert.Equal(t, PrintParams{Sheets: 1, MarginUpper: 1, MarginLower: 3, Palette: 0x1b, Exposure: 0x40}, pp)
	assert.Equal(t, [4]uint8{3, 2, 1, 0}, pp.Tones())

	pp.Palette = 0x00
	assert.Equal(t, [4]uint8{0, 1, 2, 3}, pp.Tones())

	_, err = ParsePrint(Packet{Command: Data, Data: []byte{1, 2, 3, 4}})
	assert.Error(t, err)
	_, err = ParsePrint(Packet{Command: Print, Data: []byte{1}})
	assert.Error(t, err)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "PRNT", Print.String())
	assert.Equal(t, "Command(0x42)", Command(0x42).String())
}

func TestToBytes(t *testing.T) {
	b, err := ToBytes("// INIT | compression: 0\n# comment\n{\"command\":\"INIT\"}\n88 33 0x01,00\r\n\n  00 00 ")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x88, 0x33, 0x01, 0x00, 0x00, 0x00}, b)

	_, err = ToBytes("88 33\nzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestWriteLines(t *testing.T) {
	var b []byte
	b = append(b, build(Init, false, nil)...)
	b = append(b, build(Data, false, bytes.Repeat(goldenBytes, 20))...)
	// Compressed: 20 tiles of zero
	b = append(b, build(Data, true, []byte{0xff, 0x00, 0xff, 0x00, 0xbc, 0x00})...)
	b = append(b, build(Data, false, nil)...)
	b = append(b, build(Print, false, []byte{0x01, 0x00, 0xe4, 0x40})...)
	b = append(b, build(Init, false, nil)...)
	b = append(b, build(Data, false, goldenBytes)...)
	b = append(b, build(Print, false, []byte{0x01, 0x03, 0x1b, 0x40})...)

	packets, err := ParseHex("// captured\n" + hexDump(b))
	require.NoError(t, err)
	require.Len(t, packets, 8)

	out := new(bytes.Buffer)
	require.NoError(t, WriteLines(out, packets))

	r, err := capture.Reassemble(out.String(), capture.DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, r.Diagnostics)
	require.Len(t, r.Images, 1)

	m := r.Images[0]
	require.Len(t, m.Tiles, 41)

	golden, err := tile.DecodeBytes(goldenBytes)
	require.NoError(t, err)
	assert.Equal(t, golden, m.Tiles[0])
	assert.Equal(t, golden, m.Tiles[19])
	assert.Equal(t, tile.Tile{}, m.Tiles[20])
	assert.Equal(t, tile.Tile{}, m.Tiles[39])

	// Palette 0x1b inverts the tones
	for i, v := range m.Tiles[40] {
		assert.Equal(t, 3-golden[i], v)
	}
}

func TestWriteLinesBreak(t *testing.T) {
	packets := []Packet{
		{Command: Init},
		{Command: Data, Data: goldenBytes},
		{Command: Break},
		{Command: Data, Data: goldenBytes[:8]},
		{Command: Print, Data: []byte{0x01, 0x03, 0xe4, 0x40}},
	}
	out := new(bytes.Buffer)
	require.NoError(t, WriteLines(out, packets))

	r, err := capture.Reassemble(out.String(), capture.DefaultConfig())
	require.NoError(t, err)
	// The short record is skipped, leaving the print with no tiles
	require.Len(t, r.Images, 1)
	assert.Equal(t, 0, r.Images[0].Len())
	require.Len(t, r.Diagnostics, 1)
	assert.ErrorIs(t, r.Diagnostics[0].Err, tile.ErrLength)
}
