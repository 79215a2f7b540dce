// Command annotate paints a JSON annotation list onto an image file.
//
// Usage:
//
//	annotate -in shot.png -annotations marks.json -out marked.png
//	cat marks.json | annotate -in shot.png -annotations - -crop
//
// Without -out the result is saved as ~/Pictures/Fotos/fotos-<time>.png.
package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fotoshot/annotate"
	"github.com/fotoshot/annotate/export"
)

func main() {
	var (
		input       = flag.String("in", "", "input image (png, jpeg, bmp, tiff)")
		annotations = flag.String("annotations", "", "annotation list as JSON; - reads stdin")
		output      = flag.String("out", "", "output file (default ~/Pictures/Fotos/fotos-<time>.png)")
		format      = flag.String("format", "", "output format: png, jpeg, bmp, tiff or pdf")
		maxDim      = flag.Int("max-dim", 0, "downscale so neither side exceeds this many pixels")
		crop        = flag.Bool("crop", false, "crop the result to the annotated area")
		stroke      = flag.String("stroke", annotate.DefaultStrokeColor, "default stroke color")
		verbose     = flag.Bool("v", false, "log skipped annotations")
	)
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		annotate.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	anns, err := readAnnotations(*annotations)
	if err != nil {
		log.Fatalf("Failed to read annotations: %v", err)
	}

	src, _, err := export.Load(*input)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *input, err)
	}

	c, err := annotate.NewCompositor(annotate.WithDefaultStrokeColor(*stroke))
	if err != nil {
		log.Fatalf("Invalid -stroke: %v", err)
	}
	base := annotate.FromImage(src)
	out, err := c.Composite(base, anns)
	if err != nil {
		log.Fatalf("Failed to composite: %v", err)
	}
	if *crop {
		if r := c.Damage(base, anns); !r.Empty() {
			out = out.Crop(r)
		}
	}

	path, userChosen, err := outputPath(*output, *format)
	if err != nil {
		log.Fatalf("Invalid output: %v", err)
	}
	final := export.Downscale(out, *maxDim)
	written, err := export.Save(path, final, userChosen)
	if err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Println(savedMessage(len(anns), written, final))
}

// savedMessage reports what was written, with the size of the saved image.
func savedMessage(n int, path string, img image.Image) string {
	b := img.Bounds()
	return fmt.Sprintf("Saved %d annotations to %s (%dx%d)", n, path, b.Dx(), b.Dy())
}

func readAnnotations(name string) ([]annotate.Annotation, error) {
	var r io.Reader
	switch name {
	case "":
		return nil, nil
	case "-":
		r = os.Stdin
	default:
		f, err := os.Open(name) //nolint:gosec // path comes from the command line
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = f.Close()
		}()
		r = f
	}
	return annotate.DecodeAnnotations(r)
}

// outputPath picks the save path and reports whether the user chose it.
// -format replaces the extension of a generated path and must agree with
// an explicit one.
func outputPath(out, format string) (string, bool, error) {
	var f export.Format
	if format != "" {
		var err error
		if f, err = export.ParseFormat(format); err != nil {
			return "", false, err
		}
	}

	if out != "" {
		if format != "" {
			if got, err := export.FormatFromPath(out); err != nil || got != f {
				return "", false, &formatMismatchError{path: out, format: f}
			}
		}
		return out, true, nil
	}

	path, err := export.DefaultPath(time.Now())
	if err != nil {
		return "", false, err
	}
	if format != "" {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + f.Extension()
	}
	return path, false, nil
}

type formatMismatchError struct {
	path   string
	format export.Format
}

func (e *formatMismatchError) Error() string {
	return "extension of " + e.path + " does not match -format " + e.format.String()
}
