// Package annotation defines the annotation records produced by the
// editing tools and the per-page collection that stores them.
package annotation

import (
	"fmt"
	"image/color"
	"math"

	"github.com/google/uuid"

	"doc-annotator/pkg/geometry"
)

// Kind identifies what an annotation is.
type Kind int

const (
	KindDraw Kind = iota
	KindShape
	KindHighlight
	KindRedact
	KindTextBox
	KindCallout
	KindFormField
	KindStamp
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
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
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ShapeType selects the geometric primitive of a shape annotation.
type ShapeType int

const (
	ShapeRectangle ShapeType = iota
	ShapeCircle
	ShapeArrow
)

func (t ShapeType) String() string {
	switch t {
	case ShapeRectangle:
		return "rectangle"
	case ShapeCircle:
		return "circle"
	case ShapeArrow:
		return "arrow"
	default:
		return fmt.Sprintf("ShapeType(%d)", int(t))
	}
}

// HighlightMode distinguishes text-derived highlights from freehand
// overlay highlights.
type HighlightMode int

const (
	// HighlightText covers quads derived from the underlying text layout.
	HighlightText HighlightMode = iota
	// HighlightOverlay covers quads derived from a drawn stroke path.
	HighlightOverlay
)

// FieldType selects a form-field flavor.
type FieldType int

const (
	FieldText FieldType = iota
	FieldCheckbox
	FieldRadio
	FieldDropdown
	FieldDate
)

// Draw is the payload of a freehand stroke annotation.
type Draw struct {
	Path     []geometry.Point2D `json:"path"`
	Color    color.RGBA         `json:"color"`
	Width    float64            `json:"width"`
	Opacity  float64            `json:"opacity"`
	Smoothed bool               `json:"smoothed"`
}

// Shape is the payload of a rectangle, circle, or arrow annotation.
// Arrows keep their two raw drag endpoints in Points.
type Shape struct {
	Type          ShapeType          `json:"shapeType"`
	StrokeColor   color.RGBA         `json:"strokeColor"`
	StrokeWidth   float64            `json:"strokeWidth"`
	StrokeOpacity float64            `json:"strokeOpacity"`
	FillColor     color.RGBA         `json:"fillColor"`
	FillOpacity   float64            `json:"fillOpacity"`
	Points        []geometry.Point2D `json:"points,omitempty"`
}

// Highlight is the payload of a highlight annotation. Text mode carries
// quads from the text layout; overlay mode carries the swept path plus
// the quads derived from it.
type Highlight struct {
	Mode    HighlightMode      `json:"highlightMode"`
	Quads   []geometry.Quad    `json:"quads"`
	Path    []geometry.Point2D `json:"path,omitempty"`
	Width   float64            `json:"width,omitempty"`
	Color   color.RGBA         `json:"color"`
	Opacity float64            `json:"opacity"`
}

// Redact is the payload of a redaction region. Committed redactions
// carry no visual state: the content is destructively removed by the
// document engine and the region only marks where that happened.
type Redact struct{}

// TextBox is the payload of a free text annotation. A provisional box
// is still being edited and is removed if committed empty.
type TextBox struct {
	Content     string     `json:"content"`
	FontSize    float64    `json:"fontSize"`
	Color       color.RGBA `json:"color"`
	Provisional bool       `json:"provisional,omitempty"`
}

// Callout is a text box with an arrow anchored to a point of interest.
type Callout struct {
	Content  string           `json:"content"`
	FontSize float64          `json:"fontSize"`
	Color    color.RGBA       `json:"color"`
	Anchor   geometry.Point2D `json:"anchor"`
}

// FormField is the payload of an interactive form field.
type FormField struct {
	Type    FieldType `json:"fieldType"`
	Value   string    `json:"value"`
	Options []string  `json:"options,omitempty"`
	Group   string    `json:"group,omitempty"`
}

// Stamp references a stamp template placed on the page.
type Stamp struct {
	TemplateID string  `json:"templateId"`
	Scale      float64 `json:"scale"`
}

// Annotation is a tagged union over the annotation kinds. Exactly one
// payload pointer matching Kind is non-nil.
type Annotation struct {
	ID       uuid.UUID     `json:"id"`
	Page     int           `json:"page"`
	Rect     geometry.Rect `json:"rect"`
	Rotation float64       `json:"rotation,omitempty"`
	Kind     Kind          `json:"kind"`

	Draw      *Draw      `json:"draw,omitempty"`
	Shape     *Shape     `json:"shape,omitempty"`
	Highlight *Highlight `json:"highlight,omitempty"`
	Redact    *Redact    `json:"redact,omitempty"`
	TextBox   *TextBox   `json:"textBox,omitempty"`
	Callout   *Callout   `json:"callout,omitempty"`
	FormField *FormField `json:"formField,omitempty"`
	Stamp     *Stamp     `json:"stamp,omitempty"`
}

// New creates an annotation of the given kind with a fresh id. The
// caller fills the matching payload.
func New(kind Kind, page int, rect geometry.Rect) Annotation {
	return Annotation{
		ID:   uuid.New(),
		Page: page,
		Rect: rect,
		Kind: kind,
	}
}

// Validate checks the structural invariants of the record: a non-nil
// payload matching the kind, non-negative finite bounds, and the
// per-kind geometry rules.
func (a Annotation) Validate() error {
	if a.ID == uuid.Nil {
		return fmt.Errorf("annotation has no id")
	}
	if a.Page < 0 {
		return fmt.Errorf("annotation page %d is negative", a.Page)
	}
	if !a.Rect.IsFinite() {
		return fmt.Errorf("annotation bounds are not finite")
	}
	if a.Rect.Width < 0 || a.Rect.Height < 0 {
		return fmt.Errorf("annotation has negative size %gx%g", a.Rect.Width, a.Rect.Height)
	}
	if math.IsNaN(a.Rotation) || math.IsInf(a.Rotation, 0) {
		return fmt.Errorf("annotation rotation is not finite")
	}

	switch a.Kind {
	case KindDraw:
		if a.Draw == nil {
			return missingPayload(a.Kind)
		}
		if len(a.Draw.Path) < 2 {
			return fmt.Errorf("draw path has %d points, need at least 2", len(a.Draw.Path))
		}
		for _, p := range a.Draw.Path {
			if !p.IsFinite() {
				return fmt.Errorf("draw path contains a non-finite point")
			}
		}
	case KindShape:
		if a.Shape == nil {
			return missingPayload(a.Kind)
		}
		if a.Shape.Type == ShapeArrow && len(a.Shape.Points) != 2 {
			return fmt.Errorf("arrow shape has %d points, need exactly 2", len(a.Shape.Points))
		}
	case KindHighlight:
		if a.Highlight == nil {
			return missingPayload(a.Kind)
		}
		if len(a.Highlight.Quads) == 0 {
			return fmt.Errorf("highlight has no quads")
		}
		for _, q := range a.Highlight.Quads {
			if !q.IsFinite() {
				return fmt.Errorf("highlight contains a non-finite quad")
			}
		}
		if a.Highlight.Mode == HighlightOverlay && len(a.Highlight.Path) < 2 {
			return fmt.Errorf("overlay highlight path has %d points, need at least 2", len(a.Highlight.Path))
		}
	case KindRedact:
		if a.Redact == nil {
			return missingPayload(a.Kind)
		}
	case KindTextBox:
		if a.TextBox == nil {
			return missingPayload(a.Kind)
		}
	case KindCallout:
		if a.Callout == nil {
			return missingPayload(a.Kind)
		}
		if !a.Callout.Anchor.IsFinite() {
			return fmt.Errorf("callout anchor is not finite")
		}
	case KindFormField:
		if a.FormField == nil {
			return missingPayload(a.Kind)
		}
	case KindStamp:
		if a.Stamp == nil {
			return missingPayload(a.Kind)
		}
		if a.Stamp.TemplateID == "" {
			return fmt.Errorf("stamp has no template id")
		}
	default:
		return fmt.Errorf("unknown annotation kind %d", int(a.Kind))
	}
	return nil
}

func missingPayload(k Kind) error {
	return fmt.Errorf("%s annotation is missing its payload", k)
}

// Translate moves the annotation by (dx, dy) in document space.
// Payload geometry is replaced, never mutated in place, so copies of
// the old record stay valid.
func (a *Annotation) Translate(dx, dy float64) {
	a.Rect.X += dx
	a.Rect.Y += dy

	switch {
	case a.Draw != nil:
		d := *a.Draw
		d.Path = translatePoints(a.Draw.Path, dx, dy)
		a.Draw = &d
	case a.Shape != nil:
		s := *a.Shape
		s.Points = translatePoints(a.Shape.Points, dx, dy)
		a.Shape = &s
	case a.Highlight != nil:
		h := *a.Highlight
		h.Path = translatePoints(a.Highlight.Path, dx, dy)
		h.Quads = make([]geometry.Quad, len(a.Highlight.Quads))
		for i, q := range a.Highlight.Quads {
			for j, p := range q {
				h.Quads[i][j] = geometry.Point2D{X: p.X + dx, Y: p.Y + dy}
			}
		}
		a.Highlight = &h
	case a.Callout != nil:
		c := *a.Callout
		c.Anchor = geometry.Point2D{X: c.Anchor.X + dx, Y: c.Anchor.Y + dy}
		a.Callout = &c
	}
}

func translatePoints(pts []geometry.Point2D, dx, dy float64) []geometry.Point2D {
	if pts == nil {
		return nil
	}
	out := make([]geometry.Point2D, len(pts))
	for i, p := range pts {
		out[i] = geometry.Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return out
}
