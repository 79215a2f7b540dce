// Package workspace implements the capture commands of the desktop app on
// top of the image store: save, composite, copy, crop and PDF export.
//
// Every command names a stored image by its ID string and, where it
// renders, takes the annotation list to composite onto it. The stored image
// itself is never modified; crop results are stored under a new ID.
package workspace

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/fotoshot/annotate"
	"github.com/fotoshot/annotate/export"
	"github.com/fotoshot/annotate/store"
)

// ErrNotPDF is returned by ExportPDF for a path without a .pdf extension.
var ErrNotPDF = errors.New("workspace: PDF export needs a .pdf path")

// Capture describes a stored image as returned to the UI.
type Capture struct {
	ID      string `json:"id"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	DataURL string `json:"dataUrl"`
}

// Clipboard holds a composited image as raw straight-alpha RGBA bytes,
// row-major with stride 4*Width.
type Clipboard struct {
	Width  int
	Height int
	RGBA   []byte
}

// Workspace runs commands against a Store.
type Workspace struct {
	store      *store.Store
	compositor *annotate.Compositor
	now        func() time.Time
}

// New returns a Workspace over s. A nil compositor uses the defaults.
func New(s *store.Store, c *annotate.Compositor) *Workspace {
	if c == nil {
		// Cannot fail without options.
		c, _ = annotate.NewCompositor()
	}
	return &Workspace{store: s, compositor: c, now: time.Now}
}

// Store returns the underlying image store.
func (w *Workspace) Store() *store.Store { return w.store }

// Add stores img under a new ID.
func (w *Workspace) Add(img image.Image) (Capture, error) {
	if img == nil {
		return Capture{}, annotate.ErrNilImage
	}
	pm := annotate.FromImage(img)
	id := w.store.Insert(pm)
	return describe(id.String(), pm)
}

// Discard removes the image with the given ID.
func (w *Workspace) Discard(id string) error {
	uid, err := store.ParseID(id)
	if err != nil {
		return err
	}
	if _, ok := w.store.Remove(uid); !ok {
		return fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return nil
}

func (w *Workspace) composite(id string, annotations []annotate.Annotation) (*annotate.Pixmap, error) {
	base, err := w.store.Lookup(id)
	if err != nil {
		return nil, err
	}
	return w.compositor.Composite(base, annotations)
}

// SaveImage composites annotations onto the image and writes it to path in
// the format its extension names. An empty path saves a PNG under
// export.DefaultPath, which must stay inside the home directory. It returns
// the path written.
func (w *Workspace) SaveImage(id string, annotations []annotate.Annotation, path string) (string, error) {
	out, err := w.composite(id, annotations)
	if err != nil {
		return "", err
	}
	path, userChosen, err := w.target(path)
	if err != nil {
		return "", err
	}
	return export.Save(path, out, userChosen)
}

// CompositeImage composites annotations onto the image and returns it as
// a base64 PNG.
func (w *Workspace) CompositeImage(id string, annotations []annotate.Annotation) (string, error) {
	out, err := w.composite(id, annotations)
	if err != nil {
		return "", err
	}
	return export.EncodeBase64PNG(out)
}

// ClipboardImage composites annotations onto the image and returns the raw
// pixels for a clipboard.
func (w *Workspace) ClipboardImage(id string, annotations []annotate.Annotation) (Clipboard, error) {
	out, err := w.composite(id, annotations)
	if err != nil {
		return Clipboard{}, err
	}
	return Clipboard{Width: out.Width(), Height: out.Height(), RGBA: out.Data()}, nil
}

// CropImage stores the given region of the image under a new ID.
//
// The origin is clamped to the last row and column and the size to what
// remains of the image, so any request on a non-empty image yields a valid
// crop unless width or height is zero.
func (w *Workspace) CropImage(id string, x, y, width, height int) (Capture, error) {
	base, err := w.store.Lookup(id)
	if err != nil {
		return Capture{}, err
	}
	r := clampCrop(base.Width(), base.Height(), x, y, width, height)
	if r.Empty() {
		return Capture{}, fmt.Errorf("workspace: empty crop %dx%d at (%d,%d)", r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
	}
	cropped := base.Crop(r)
	newID := w.store.Insert(cropped)
	return describe(newID.String(), cropped)
}

func clampCrop(imgW, imgH, x, y, width, height int) image.Rectangle {
	x = min(max(x, 0), max(imgW-1, 0))
	y = min(max(y, 0), max(imgH-1, 0))
	width = min(max(width, 0), imgW-x)
	height = min(max(height, 0), imgH-y)
	return image.Rect(x, y, x+width, y+height)
}

// ExportPDF composites annotations onto the image and writes it as a
// one-page PDF. An empty path uses export.DefaultPath with a .pdf
// extension. It returns the path written.
func (w *Workspace) ExportPDF(id string, annotations []annotate.Annotation, path string) (string, error) {
	if path != "" {
		if f, err := export.FormatFromPath(path); err != nil || f != export.PDF {
			return "", fmt.Errorf("%w: %s", ErrNotPDF, path)
		}
	}
	out, err := w.composite(id, annotations)
	if err != nil {
		return "", err
	}
	path, userChosen, err := w.target(path)
	if err != nil {
		return "", err
	}
	if !userChosen {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + export.PDF.Extension()
	}
	return export.Save(path, out, userChosen)
}

// target returns the save path and whether the user chose it.
func (w *Workspace) target(path string) (string, bool, error) {
	if path != "" {
		return path, true, nil
	}
	p, err := export.DefaultPath(w.now())
	if err != nil {
		return "", false, err
	}
	return p, false, nil
}

func describe(id string, pm *annotate.Pixmap) (Capture, error) {
	url, err := export.DataURL(pm)
	if err != nil {
		return Capture{}, err
	}
	return Capture{ID: id, Width: pm.Width(), Height: pm.Height(), DataURL: url}, nil
}
