// Package document defines the contract with the external document
// engine (page rasterization, destructive redaction, text layout) and
// the render cache layered in front of it. The engine itself is a
// black box supplied by the surrounding editor shell.
package document

import (
	"context"
	"errors"
	"image"

	"doc-annotator/pkg/geometry"
)

// ErrNoText is returned by text queries when the region carries no
// underlying text layout. Tools treat it as a fallback signal, not a
// failure.
var ErrNoText = errors.New("document: no text in region")

// TextSpan is a run of text with its bounding box in document space.
type TextSpan struct {
	Text   string        `json:"text"`
	Bounds geometry.Rect `json:"bounds"`
}

// Rendered is one rasterized page.
type Rendered struct {
	// Image is the raster buffer.
	Image *image.RGBA
	// Width and Height are the buffer dimensions in buffer pixels.
	Width, Height int
	// PageWidth and PageHeight are the unrotated page dimensions in
	// document units, as reported by the engine.
	PageWidth, PageHeight float64
}

// TopLeftRect is a rectangle in the engine's coordinate convention:
// Y measured downward from the page top.
type TopLeftRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FlipToEngine converts a document-space rectangle (bottom-left origin,
// Y up) to the engine's top-left convention for the given unrotated
// page height.
func FlipToEngine(r geometry.Rect, pageHeight float64) TopLeftRect {
	return TopLeftRect{
		X:      r.X,
		Y:      pageHeight - (r.Y + r.Height),
		Width:  r.Width,
		Height: r.Height,
	}
}

// Engine is the external document-processing engine. All calls may
// fail; callers must leave annotation state unchanged on failure.
type Engine interface {
	// LoadPage prepares a page for rendering and queries.
	LoadPage(ctx context.Context, page int) error

	// RenderPage rasterizes a page at the given scale and rotation.
	RenderPage(ctx context.Context, page int, scale float64, rotation int) (*Rendered, error)

	// Redact destructively removes the content under rect. Once it
	// succeeds the underlying document has changed and every cached
	// render of it is stale.
	Redact(ctx context.Context, page int, rect TopLeftRect) error

	// TextLayout returns the text spans of a page with their bounds.
	TextLayout(ctx context.Context, page int) ([]TextSpan, error)

	// TextInRegion returns the quads of the text between two document
	// points, or ErrNoText when the region has none.
	TextInRegion(ctx context.Context, page int, p, q geometry.Point2D) ([]geometry.Quad, error)
}
