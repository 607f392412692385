// Package tools implements the per-tool interactive state machines
// that turn pointer events into annotation records. Each tool owns its
// gesture state; releasing the pointer or switching tools abandons an
// in-flight gesture without committing anything.
package tools

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/google/uuid"

	"doc-annotator/internal/annotation"
	"doc-annotator/internal/document"
	"doc-annotator/internal/viewport"
	"doc-annotator/pkg/geometry"
)

// Interaction thresholds shared by the tools. These define tool
// semantics and are deliberately not configurable.
const (
	// minShapeSize is the smallest shape or redaction box that commits.
	minShapeSize = 10.0
	// minCalloutSize is the smallest callout seed box that commits.
	minCalloutSize = 20.0
	// minFieldSize is the smallest form field that commits; checkboxes
	// and radios are created at exactly this size.
	minFieldSize = 20.0
	// drawSampleInterval throttles freehand samples.
	drawSampleInterval = 5 * time.Millisecond
	// simplifyPointThreshold is the path length above which freehand
	// strokes are simplified before smoothing.
	simplifyPointThreshold = 100
	// dragThreshold separates a click from a drag, in document units.
	dragThreshold = 2.0
	// regionExpand widens a text query region on the final fallback
	// attempt, in document units.
	regionExpand = 2.0
	// textQueryInterval throttles live text-span queries to roughly
	// display rate.
	textQueryInterval = 16 * time.Millisecond
	// stampMinFootprint is the smallest stamp placement on the page.
	stampMinFootprint = 16.0
)

// Kind identifies the active tool.
type Kind int

const (
	KindSelect Kind = iota
	KindDraw
	KindShape
	KindHighlight
	KindRedact
	KindTextBox
	KindCallout
	KindFormField
	KindStamp
	KindTextSelect
)

// String returns the tool name.
func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "select"
	case KindDraw:
		return "draw"
	case KindShape:
		return "shape"
	case KindHighlight:
		return "highlight"
	case KindRedact:
		return "redact"
	case KindTextBox:
		return "textBox"
	case KindCallout:
		return "callout"
	case KindFormField:
		return "formField"
	case KindStamp:
		return "stamp"
	case KindTextSelect:
		return "textSelect"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Modifiers is the keyboard modifier state accompanying a pointer
// event. Constrain activates snapping (square, 45 degree); Secondary
// activates a tool's alternate mode (fixed-radius circle reposition).
type Modifiers struct {
	Constrain bool
	Secondary bool
}

// PointerEvent is one pointer sample, already converted to document
// space by the session. DocOK is false when the conversion was
// impossible (surface not laid out); Doc then holds the last known
// good position supplied by the session.
type PointerEvent struct {
	Screen geometry.Point2D
	Doc    geometry.Point2D
	DocOK  bool
	Time   time.Time
	Mod    Modifiers
}

// Defaults carries the visual defaults a tool stamps onto new
// annotations.
type Defaults struct {
	StrokeColor    color.RGBA
	FillColor      color.RGBA
	StrokeWidth    float64
	StrokeOpacity  float64
	FillOpacity    float64
	HighlightColor color.RGBA
	HighlightWidth float64
	FontSize       float64
	TextColor      color.RGBA
	StampScale     float64
}

// Context is everything a tool needs to turn a gesture into a record.
// The viewport is the snapshot taken at gesture start, so zoom or
// rotation changes mid-gesture cannot tear a conversion.
type Context struct {
	Ctx        context.Context
	Page       int
	Viewport   viewport.State
	Collection *annotation.Collection
	Engine     document.Engine
	Cache      *document.RenderCache
	Defaults   Defaults

	// OnCommit is called after an annotation was appended.
	OnCommit func(annotation.Annotation)
	// OnUpdate is called after an existing annotation was replaced.
	OnUpdate func(annotation.Annotation)
	// OnSelect is called when a tool selects an annotation (a freshly
	// created provisional text box, or a hit-test match).
	OnSelect func(uuid.UUID)
	// OnHover is called when the hovered annotation changes; uuid.Nil
	// means nothing is hovered.
	OnHover func(uuid.UUID)
	// Notify surfaces a user-visible message.
	Notify func(msg string)
}

func (c *Context) commit(a annotation.Annotation) error {
	if err := c.Collection.Append(a); err != nil {
		return err
	}
	if c.OnCommit != nil {
		c.OnCommit(a)
	}
	return nil
}

func (c *Context) notify(msg string) {
	if c.Notify != nil {
		c.Notify(msg)
	}
}

// PreviewShape tells the overlay renderer what to draw for a live
// gesture.
type PreviewShape int

const (
	PreviewNone PreviewShape = iota
	PreviewPath
	PreviewRect
	PreviewEllipse
	PreviewArrow
	PreviewStampGhost
)

// Preview is the live gesture geometry a tool exposes for overlay
// rendering. Coordinates are document space.
type Preview struct {
	Shape PreviewShape
	Path  []geometry.Point2D
	Rect  geometry.Rect
	// Width is the stroke width for path previews.
	Width float64
}

// Tool is one interactive state machine. PointerUp returns an error
// only for external-engine failures that the shell should surface;
// rejected gestures (too small, too few points) are silently
// discarded.
type Tool interface {
	PointerDown(ev PointerEvent, ctx *Context)
	PointerMove(ev PointerEvent, ctx *Context)
	PointerUp(ev PointerEvent, ctx *Context) error
	// Cancel abandons any in-flight gesture without side effects.
	Cancel()
	// Preview exposes the live gesture geometry, or Shape ==
	// PreviewNone outside a gesture.
	Preview() Preview
}
