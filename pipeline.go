package gbprinter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/gbprinter/capture"
)

const numWorkers = 10

// Extensions of files treated as captures when scanning.
var captureExtensions = map[string]struct{}{
	".txt": {},
	".log": {},
}

func isCapture(file string) bool {
	_, ok := captureExtensions[strings.ToLower(filepath.Ext(file))]
	return ok
}

func (p *Printer) findCaptures(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !isCapture(file) {
				return nil
			}

			// Ignore any file greater than 16 MB
			if info.Size() > 16<<(10*2) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (p *Printer) captureWorker(ctx context.Context, in <-chan string, dir string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if _, err := p.DecodeFile(file, dir); err != nil {
				// A bad capture shouldn't stop the rest being decoded
				var pe *capture.ParseError
				var de *capture.DecodeError
				if errors.As(err, &pe) || errors.As(err, &de) {
					p.logger.Printf("Skipping \"%s\": %s\n", file, err)
					continue
				}
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path looking for captures and decodes each one, writing the
// images into dir, or alongside each capture if dir is empty.
func (p *Printer) Scan(path, dir string) error {
	base, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := p.findCaptures(ctx, base)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < numWorkers; i++ {
		errc, err := p.captureWorker(ctx, files, dir)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
