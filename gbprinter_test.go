package gbprinter

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/gbprinter/image"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const golden = "FF 00 7E FF 85 81 89 83 93 85 A5 8B C9 97 7E FF"

func testCapture(images ...int) string {
	var sb strings.Builder
	sb.WriteString("# test capture\n{\"command\":\"INIT\"}\n")
	for _, n := range images {
		for i := 0; i < n; i++ {
			sb.WriteString(golden + "\n")
		}
		sb.WriteString("{\"command\":\"PRNT\",\"margin_lower\":3}\n")
	}
	return sb.String()
}

func writeFile(t *testing.T, file, data string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o755))
	require.NoError(t, os.WriteFile(file, []byte(data), 0o644))
	return file
}

func newPrinter(db *CaptureDB) *Printer {
	return New(db, log.New(io.Discard, "", 0), DefaultOptions())
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, filepath.Join(dir, "camera.txt"), testCapture(40, 20))

	files, err := newPrinter(nil).DecodeFile(file, "")
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "camera-1.png"), filepath.Join(dir, "camera-2.png")}, files)

	f, err := os.Open(files[0])
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 160, cfg.Width)
	assert.Equal(t, 16, cfg.Height)
}

func TestDecodeFileOptions(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, filepath.Join(dir, "in", "camera.log"), testCapture(20))
	out := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(out, 0o755))

	opts := DefaultOptions()
	opts.Format = image.BMP
	opts.Scale = 2
	p := New(nil, log.New(io.Discard, "", 0), opts)

	files, err := p.DecodeFile(file, out)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(out, "camera-1.bmp")}, files)
}

func TestDecodeFileErrors(t *testing.T) {
	dir := t.TempDir()
	p := newPrinter(nil)

	_, err := p.DecodeFile(filepath.Join(dir, "missing.txt"), "")
	assert.Error(t, err)

	bad := writeFile(t, filepath.Join(dir, "bad.txt"), "{\"command\":\"INIT\"\n")
	_, err = p.DecodeFile(bad, "")
	assert.Error(t, err)

	empty := writeFile(t, filepath.Join(dir, "empty.txt"), "# nothing\n")
	files, err := p.DecodeFile(empty, "")
	assert.NoError(t, err)
	assert.Empty(t, files)
}

func TestDecodeFileEmptyImage(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, filepath.Join(dir, "camera.txt"), testCapture(0, 20, 0))

	buf := new(bytes.Buffer)
	p := New(nil, log.New(buf, "", 0), DefaultOptions())

	files, err := p.DecodeFile(file, "")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "camera-2.png")}, files)
	assert.Contains(t, buf.String(), "Skipping empty image 1 of \"camera\"")
	assert.Contains(t, buf.String(), "Skipping empty image 3 of \"camera\"")
	assert.NoFileExists(t, filepath.Join(dir, "camera-1.png"))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 15; i++ {
		writeFile(t, filepath.Join(dir, fmt.Sprintf("d%d", i%3), fmt.Sprintf("c%02d.txt", i)), testCapture(20))
	}
	writeFile(t, filepath.Join(dir, "broken.txt"), "{oops\n")
	writeFile(t, filepath.Join(dir, "notes.md"), testCapture(20))
	writeFile(t, filepath.Join(dir, ".hidden", "c.txt"), testCapture(20))

	out := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(out, 0o755))

	require.NoError(t, newPrinter(nil).Scan(dir, out))

	matches, err := filepath.Glob(filepath.Join(out, "*.png"))
	require.NoError(t, err)
	assert.Len(t, matches, 15)
}

func TestScanMissing(t *testing.T) {
	assert.Error(t, newPrinter(nil).Scan(filepath.Join(t.TempDir(), "nope"), ""))
}

func TestCaptureDB(t *testing.T) {
	dir := t.TempDir()
	db, err := NewCaptureDB(filepath.Join(dir, "gbprinter.db"))
	require.NoError(t, err)
	defer db.Close()

	p := newPrinter(db)

	file := writeFile(t, filepath.Join(dir, "camera.txt"), testCapture(20, 40))
	sha, err := p.Import(file)
	require.NoError(t, err)
	assert.Len(t, sha, 40)

	again, err := db.Add("copy.txt", testCapture(20, 40))
	require.NoError(t, err)
	assert.Equal(t, sha, again)

	_, err = db.Add("other.txt", testCapture(1))
	require.NoError(t, err)

	captures, err := db.List()
	require.NoError(t, err)
	require.Len(t, captures, 2)
	assert.Equal(t, "camera.txt", captures[0].Name)
	assert.Empty(t, captures[0].Data)

	c, err := db.Find(sha)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, testCapture(20, 40), c.Data)

	c, err = db.Find("0000")
	assert.NoError(t, err)
	assert.Nil(t, c)

	out := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(out, 0o755))
	files, err := p.Export(sha, out)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(out, "camera-1.png"), filepath.Join(out, "camera-2.png")}, files)

	_, err = p.Export("0000", out)
	assert.Error(t, err)
}

func TestNoDB(t *testing.T) {
	p := newPrinter(nil)
	_, err := p.Import("x.txt")
	assert.ErrorIs(t, err, errNoDB)
	_, err = p.Export("x", "")
	assert.ErrorIs(t, err, errNoDB)
}

func TestDecodePacketFile(t *testing.T) {
	dir := t.TempDir()
	// INIT, one DATA packet of 20 blank tiles, empty DATA, PRINT with a
	// lower margin of 3
	dump := strings.Join([]string{
		"// INIT",
		"88 33 01 00 00 00 01 00 81 00",
		"// DATA compressed",
		"88 33 04 01 06 00 FF 00 FF 00 BC 00 C5 02 81 00",
		"88 33 04 00 00 00 04 00 81 00",
		"// PRNT",
		"88 33 02 00 04 00 01 03 E4 40 2E 01 81 00",
	}, "\n")
	file := writeFile(t, filepath.Join(dir, "packets.txt"), dump)

	p := newPrinter(nil)
	text, err := p.ConvertPackets(file)
	require.NoError(t, err)
	assert.Equal(t, 22, strings.Count(text, "\n"))

	files, err := p.DecodePacketFile(file, "")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "packets-1.png")}, files)
}
