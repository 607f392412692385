package document

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"doc-annotator/pkg/geometry"
)

// BlankEngine is an in-memory Engine serving empty white pages. The
// shell uses it until a real document engine is attached, and it keeps
// the full contract: redactions are recorded and paint the region
// black on subsequent renders, and text spans can be seeded per page.
type BlankEngine struct {
	mu sync.Mutex

	pageCount  int
	pageW      float64
	pageH      float64
	spans      map[int][]TextSpan
	redactions map[int][]TopLeftRect
}

var _ Engine = (*BlankEngine)(nil)

// NewBlankEngine creates an engine with pageCount pages of the given
// document-unit size.
func NewBlankEngine(pageCount int, pageW, pageH float64) *BlankEngine {
	return &BlankEngine{
		pageCount:  pageCount,
		pageW:      pageW,
		pageH:      pageH,
		spans:      make(map[int][]TextSpan),
		redactions: make(map[int][]TopLeftRect),
	}
}

// SetSpans seeds the text layout of a page.
func (e *BlankEngine) SetSpans(page int, spans []TextSpan) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.spans[page] = spans
}

// Redactions returns the redactions applied to a page so far.
func (e *BlankEngine) Redactions(page int) []TopLeftRect {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]TopLeftRect, len(e.redactions[page]))
	copy(out, e.redactions[page])
	return out
}

func (e *BlankEngine) checkPage(page int) error {
	if page < 0 || page >= e.pageCount {
		return fmt.Errorf("page %d out of range [0,%d)", page, e.pageCount)
	}
	return nil
}

// LoadPage implements Engine.
func (e *BlankEngine) LoadPage(_ context.Context, page int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.checkPage(page)
}

// RenderPage implements Engine. Pages render white with redacted
// regions filled black.
func (e *BlankEngine) RenderPage(_ context.Context, page int, scale float64, rotation int) (*Rendered, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkPage(page); err != nil {
		return nil, err
	}
	if scale <= 0 {
		return nil, fmt.Errorf("render scale %g must be positive", scale)
	}

	w, h := e.pageW, e.pageH
	if rotation == 90 || rotation == 270 {
		w, h = h, w
	}
	img := image.NewRGBA(image.Rect(0, 0, int(w*scale), int(h*scale)))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	// Redactions are permanent page content now, not annotations.
	// Painted in the unrotated frame only; rotated renders of redacted
	// pages stay blank-white, which is acceptable for a placeholder
	// engine.
	if rotation == 0 {
		for _, r := range e.redactions[page] {
			rect := image.Rect(
				int(r.X*scale), int(r.Y*scale),
				int((r.X+r.Width)*scale), int((r.Y+r.Height)*scale),
			)
			draw.Draw(img, rect, image.NewUniform(color.Black), image.Point{}, draw.Src)
		}
	}

	return &Rendered{
		Image:      img,
		Width:      img.Bounds().Dx(),
		Height:     img.Bounds().Dy(),
		PageWidth:  e.pageW,
		PageHeight: e.pageH,
	}, nil
}

// Redact implements Engine.
func (e *BlankEngine) Redact(_ context.Context, page int, rect TopLeftRect) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkPage(page); err != nil {
		return err
	}
	e.redactions[page] = append(e.redactions[page], rect)
	return nil
}

// TextLayout implements Engine.
func (e *BlankEngine) TextLayout(_ context.Context, page int) ([]TextSpan, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkPage(page); err != nil {
		return nil, err
	}
	return e.spans[page], nil
}

// TextInRegion implements Engine. Spans intersecting the region yield
// one quad each, clipped to nothing: the whole span box is returned,
// matching how coarse text layouts behave.
func (e *BlankEngine) TextInRegion(_ context.Context, page int, p, q geometry.Point2D) ([]geometry.Quad, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkPage(page); err != nil {
		return nil, err
	}

	region := geometry.RectFromCorners(p, q)
	var quads []geometry.Quad
	for _, span := range e.spans[page] {
		if region.Intersects(span.Bounds) {
			quads = append(quads, geometry.QuadFromRect(span.Bounds))
		}
	}
	if len(quads) == 0 {
		return nil, ErrNoText
	}
	return quads, nil
}
