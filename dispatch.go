package annotate

import (
	"image"
	"log/slog"

	"github.com/fotoshot/annotate/internal/blend"
	"github.com/fotoshot/annotate/internal/raster"
	"github.com/fotoshot/annotate/text"
)

// renderFunc paints one annotation onto the canvas.
type renderFunc func(cv *canvas, a *Annotation)

// renderers maps each kind to its renderer.
var renderers = map[Kind]renderFunc{
	KindRect:       renderRect,
	KindArrow:      renderArrow,
	KindEllipse:    renderEllipse,
	KindFreehand:   renderFreehand,
	KindHighlight:  renderHighlight,
	KindPixelate:   renderPixelate,
	KindStepMarker: renderStepMarker,
	KindText:       renderText,
}

// canvas is the per-call render state: the working copy plus resources
// shared by the annotations of one Composite call.
type canvas struct {
	pm     *Pixmap
	log    *slog.Logger
	stroke Color

	font  *text.Font
	faces map[float64]*text.Face
}

func (c *Compositor) newCanvas(pm *Pixmap, annotations []Annotation) (*canvas, error) {
	cv := &canvas{
		pm:     pm,
		log:    c.log(),
		stroke: c.stroke,
	}
	if needsFont(annotations) {
		f, err := loadFont()
		if err != nil {
			return nil, err
		}
		cv.font = f
	}
	return cv, nil
}

func (cv *canvas) close() {
	for _, f := range cv.faces {
		_ = f.Close()
	}
	cv.faces = nil
}

// render dispatches a to its renderer. Unknown kinds are skipped.
func (cv *canvas) render(a *Annotation) {
	fn, ok := renderers[a.Kind]
	if !ok {
		cv.log.Debug("annotate: unknown annotation type", "id", a.ID, "type", string(a.Kind))
		return
	}
	fn(cv, a)
}

// color resolves an optional color field. A nil field yields def. An
// unparsable field is logged and reported as not ok, which callers treat as
// "skip this paint".
func (cv *canvas) color(a *Annotation, field string, spec *string, def Color) (Color, bool) {
	if spec == nil {
		return def, true
	}
	c, err := ParseColor(*spec)
	if err != nil {
		cv.log.Debug("annotate: skipping paint", "id", a.ID, "type", string(a.Kind), "field", field, "err", err)
		return Color{}, false
	}
	return c, true
}

// mask returns an empty coverage mask over r clipped to the image.
func (cv *canvas) mask(r image.Rectangle) *raster.Mask {
	return raster.NewMask(r.Intersect(cv.pm.Bounds()))
}

// paint blends c, with its alpha scaled by opacity, through m.
func (cv *canvas) paint(m *raster.Mask, c Color, opacity float64) {
	c = fromNRGBA(blend.ScaleAlpha(c.NRGBA(), opacity))
	if c.A == 0 || m.Empty() {
		return
	}
	cv.pm.blendMask(m, c)
}

// face returns a glyph face of the embedded font at size, cached for the
// rest of the call.
func (cv *canvas) face(size float64) (*text.Face, bool) {
	if cv.font == nil {
		return nil, false
	}
	if f, ok := cv.faces[size]; ok {
		return f, true
	}
	f, err := cv.font.NewFace(size)
	if err != nil {
		cv.log.Debug("annotate: skipping label", "size", size, "err", err)
		return nil, false
	}
	if cv.faces == nil {
		cv.faces = make(map[float64]*text.Face)
	}
	cv.faces[size] = f
	return f, true
}
