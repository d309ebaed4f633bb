/*
Package gbprinter is a library for turning captures of Game Boy Printer
output into image files.

A capture is the text logged by a printer emulator, see the capture package
for the format. Captures can be decoded directly, in bulk from a directory
tree, or imported into a database first and exported later.
*/
package gbprinter

import (
	"errors"
	stdimage "image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bodgit/gbprinter/capture"
	"github.com/bodgit/gbprinter/image"
)

// Options control how captures are decoded and written.
type Options struct {
	Config  capture.Config
	Palette color.Palette
	Format  image.Format
	Scale   int
}

// DefaultOptions returns options producing PNG files at their original size
// using the grayscale palette.
func DefaultOptions() Options {
	return Options{
		Config:  capture.DefaultConfig(),
		Palette: image.Default(),
		Format:  image.PNG,
		Scale:   1,
	}
}

type Printer struct {
	db     *CaptureDB
	logger *log.Logger
	opts   Options
}

// New returns a Printer. db may be nil if captures are only decoded from
// files.
func New(db *CaptureDB, logger *log.Logger, opts Options) *Printer {
	return &Printer{
		db:     db,
		logger: logger,
		opts:   opts,
	}
}

// Decode reassembles the capture in text and lays out each image.
func (p *Printer) Decode(name, text string) ([]*stdimage.Paletted, error) {
	r, err := capture.Reassemble(text, p.opts.Config)
	if err != nil {
		return nil, err
	}
	for _, d := range r.Diagnostics {
		p.logger.Printf("%s: %s\n", name, d)
	}
	if r.Failed() {
		p.logger.Printf("%s: some tiles could not be decoded\n", name)
	}
	return image.LayoutAll(r, p.opts.Config.TilesPerRow, p.opts.Palette), nil
}

func (p *Printer) writeImages(base, dir string, ms []*stdimage.Paletted) ([]string, error) {
	var files []string
	for i, m := range ms {
		if m.Bounds().Empty() {
			p.logger.Printf("Skipping empty image %d of \"%s\"\n", i+1, base)
			continue
		}

		file := filepath.Join(dir, base+"-"+strconv.Itoa(i+1)+p.opts.Format.Extension())

		f, err := os.Create(file)
		if err != nil {
			return files, err
		}

		if err := image.Encode(f, m, p.opts.Format, p.opts.Scale); err != nil {
			f.Close()
			return files, err
		}

		if err := f.Close(); err != nil {
			return files, err
		}

		p.logger.Printf("Wrote \"%s\"\n", file)
		files = append(files, file)
	}
	return files, nil
}

func baseName(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}

// DecodeFile decodes the capture in file and writes one image file per
// printed image into dir, or alongside file if dir is empty. The written
// files are returned.
func (p *Printer) DecodeFile(file, dir string) ([]string, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	ms, err := p.Decode(file, string(b))
	if err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		p.logger.Printf("No images in \"%s\"\n", file)
		return nil, nil
	}

	if dir == "" {
		dir = filepath.Dir(file)
	}

	return p.writeImages(baseName(file), dir, ms)
}

var errNoDB = errors.New("gbprinter: no capture database")

// Import stores the capture in file in the database and returns its SHA1.
func (p *Printer) Import(file string) (string, error) {
	if p.db == nil {
		return "", errNoDB
	}
	sha, err := p.db.Import(file)
	if err != nil {
		return "", err
	}
	p.logger.Printf("Imported \"%s\" as %s\n", file, sha)
	return sha, nil
}

// Export decodes the stored capture with the given SHA1 and writes its
// images into dir.
func (p *Printer) Export(sha, dir string) ([]string, error) {
	if p.db == nil {
		return nil, errNoDB
	}

	c, err := p.db.Find(sha)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.New("gbprinter: no such capture")
	}

	ms, err := p.Decode(c.Name, c.Data)
	if err != nil {
		return nil, err
	}

	return p.writeImages(baseName(c.Name), dir, ms)
}
