package tools

import (
	"image"
	"log/slog"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"doc-annotator/internal/annotation"
	"doc-annotator/pkg/geometry"
)

// stampTextPadding surrounds a text stamp's measured content, in
// document units.
const stampTextPadding = 6.0

// StampTemplate is a placeable stamp: either a raster thumbnail or a
// styled text block.
type StampTemplate struct {
	ID       string
	Name     string
	Image    image.Image
	Text     string
	FontSize float64
}

// Footprint returns the template's placement size in document units at
// scale 1: raster templates keep their aspect ratio at a fixed base
// height, text templates use measured text metrics.
func (t StampTemplate) Footprint() geometry.Size {
	const baseHeight = 48.0

	if t.Image != nil {
		b := t.Image.Bounds()
		if b.Dy() == 0 {
			return geometry.NewSize(baseHeight, baseHeight)
		}
		aspect := float64(b.Dx()) / float64(b.Dy())
		return geometry.NewSize(baseHeight*aspect, baseHeight)
	}

	face := basicfont.Face7x13
	advance := font.MeasureString(face, t.Text)
	// Scale the face-pixel measurement to the template's font size.
	factor := t.FontSize / float64(face.Metrics().Height.Ceil())
	width := float64(advance.Ceil())*factor + 2*stampTextPadding
	height := t.FontSize + 2*stampTextPadding
	return geometry.NewSize(width, height)
}

// StampLibrary holds the available stamp templates in display order.
type StampLibrary struct {
	order     []string
	templates map[string]StampTemplate
}

// NewStampLibrary creates an empty library.
func NewStampLibrary() *StampLibrary {
	return &StampLibrary{templates: make(map[string]StampTemplate)}
}

// DefaultStampLibrary returns the built-in text stamps.
func DefaultStampLibrary() *StampLibrary {
	lib := NewStampLibrary()
	for _, t := range []StampTemplate{
		{ID: "approved", Name: "Approved", Text: "APPROVED", FontSize: 18},
		{ID: "draft", Name: "Draft", Text: "DRAFT", FontSize: 18},
		{ID: "confidential", Name: "Confidential", Text: "CONFIDENTIAL", FontSize: 14},
		{ID: "rejected", Name: "Rejected", Text: "REJECTED", FontSize: 18},
	} {
		lib.Add(t)
	}
	return lib
}

// Add registers a template, replacing any template with the same id.
func (l *StampLibrary) Add(t StampTemplate) {
	if _, exists := l.templates[t.ID]; !exists {
		l.order = append(l.order, t.ID)
	}
	l.templates[t.ID] = t
}

// Get returns a template by id.
func (l *StampLibrary) Get(id string) (StampTemplate, bool) {
	t, ok := l.templates[id]
	return t, ok
}

// Templates returns the templates in display order.
func (l *StampLibrary) Templates() []StampTemplate {
	out := make([]StampTemplate, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.templates[id])
	}
	return out
}

// StampTool places the selected template at the pointer. The stamp
// commits immediately on pointer down; there is no drag phase, only a
// floating preview that follows the pointer.
type StampTool struct {
	library  *StampLibrary
	selected string

	hover   geometry.Point2D
	hoverOK bool
}

// NewStampTool creates a stamp tool over a library, selecting its
// first template.
func NewStampTool(library *StampLibrary) *StampTool {
	t := &StampTool{library: library}
	if templates := library.Templates(); len(templates) > 0 {
		t.selected = templates[0].ID
	}
	return t
}

// Select chooses the template placed by subsequent clicks.
func (t *StampTool) Select(id string) {
	if _, ok := t.library.Get(id); ok {
		t.selected = id
	}
}

// Selected returns the selected template id.
func (t *StampTool) Selected() string {
	return t.selected
}

// Library returns the template library the tool places from.
func (t *StampTool) Library() *StampLibrary {
	return t.library
}

// placementRect returns the stamp footprint centered on p, scaled by
// the user multiplier and clamped to the minimum footprint.
func (t *StampTool) placementRect(p geometry.Point2D, scale float64) (geometry.Rect, bool) {
	template, ok := t.library.Get(t.selected)
	if !ok {
		return geometry.Rect{}, false
	}
	if scale <= 0 {
		scale = 1
	}
	size := template.Footprint()
	w := size.Width * scale
	h := size.Height * scale
	if w < stampMinFootprint {
		h *= stampMinFootprint / w
		w = stampMinFootprint
	}
	if h < stampMinFootprint {
		w *= stampMinFootprint / h
		h = stampMinFootprint
	}
	return geometry.NewRect(p.X-w/2, p.Y-h/2, w, h), true
}

// PointerDown commits the stamp at the pointer.
func (t *StampTool) PointerDown(ev PointerEvent, ctx *Context) {
	if !ev.DocOK {
		return
	}
	box, ok := t.placementRect(ev.Doc, ctx.Defaults.StampScale)
	if !ok {
		return
	}

	a := annotation.New(annotation.KindStamp, ctx.Page, box)
	a.Stamp = &annotation.Stamp{
		TemplateID: t.selected,
		Scale:      ctx.Defaults.StampScale,
	}
	if err := ctx.commit(a); err != nil {
		slog.Warn("stamp commit rejected", "error", err)
	}
}

// PointerMove updates the floating preview position.
func (t *StampTool) PointerMove(ev PointerEvent, _ *Context) {
	if !ev.Doc.IsFinite() {
		return
	}
	t.hover = ev.Doc
	t.hoverOK = ev.DocOK
}

// PointerUp implements Tool; stamps have no drag phase.
func (t *StampTool) PointerUp(_ PointerEvent, _ *Context) error {
	return nil
}

// Cancel implements Tool.
func (t *StampTool) Cancel() {
	t.hoverOK = false
}

// Preview implements Tool: a ghost of the stamp footprint at the
// hover position.
func (t *StampTool) Preview() Preview {
	if !t.hoverOK {
		return Preview{}
	}
	box, ok := t.placementRect(t.hover, 1)
	if !ok {
		return Preview{}
	}
	return Preview{Shape: PreviewStampGhost, Rect: box}
}
