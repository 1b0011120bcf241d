package signboard

import (
	"context"
	"errors"
	"image"
	_ "image/gif"  // GIF artwork
	_ "image/jpeg" // JPEG artwork
	_ "image/png"  // PNG artwork
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/signboard/convert"
)

const workers = 10

var artwork = map[string]bool{
	".bmp":  true,
	".gif":  true,
	".jpeg": true,
	".jpg":  true,
	".png":  true,
}

// ConvertFile decodes the image in src, reduces it to colors colors if that
// is positive, and writes it to dst as a 24-bit bitmap.
func ConvertFile(src, dst string, colors int) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return err
	}

	if colors > 0 {
		m = convert.Reduce(m, colors)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := convert.WriteBMP(out, m); err != nil {
		return err
	}

	return out.Close()
}

func findArtwork(ctx context.Context, base string) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Skip hidden files and directories, editors and file managers litter them everywhere
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !artwork[strings.ToLower(filepath.Ext(file))] {
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
	return out, errc
}

func convertWorker(base, dst string, colors int, in <-chan string, logger *log.Logger) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			rel, err := filepath.Rel(base, file)
			if err != nil {
				errc <- err
				return
			}
			target := filepath.Join(dst, strings.TrimSuffix(rel, filepath.Ext(rel))+".bmp")

			if err := ConvertFile(file, target, colors); err != nil {
				logger.Printf("Unable to convert \"%s\": %v\n", file, err)
				errc <- err
				return
			}
			logger.Printf("Converted \"%s\" to \"%s\"\n", file, target)
		}
	}()
	return errc
}

func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			defer wg.Done()
			for err := range c {
				out <- err
			}
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// ConvertDir converts all artwork found under src into bitmaps at the same
// relative paths under dst.
func ConvertDir(src, dst string, colors int, logger *log.Logger) error {
	base, err := filepath.Abs(src)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	files, errc := findArtwork(ctx, base)
	errcList := []<-chan error{errc}

	for i := 0; i < workers; i++ {
		errcList = append(errcList, convertWorker(base, dst, colors, files, logger))
	}

	return waitForPipeline(cancel, errcList...)
}
