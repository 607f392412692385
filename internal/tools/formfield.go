package tools

import (
	"log/slog"

	"doc-annotator/internal/annotation"
	"doc-annotator/pkg/geometry"
)

// fieldMinSize returns the minimum committed footprint per field type.
func fieldMinSize(ft annotation.FieldType) geometry.Size {
	switch ft {
	case annotation.FieldText:
		return geometry.NewSize(100, 30)
	case annotation.FieldDropdown:
		return geometry.NewSize(150, 30)
	case annotation.FieldDate:
		return geometry.NewSize(120, 30)
	default:
		return geometry.NewSize(minFieldSize, minFieldSize)
	}
}

// FormFieldTool places interactive form fields. Checkboxes and radio
// buttons commit immediately at a fixed size on pointer down; the
// other field types are dragged to size and then grown to their
// per-type minimum.
type FormFieldTool struct {
	fieldType annotation.FieldType
	group     string

	active bool
	anchor geometry.Point2D
	cursor geometry.Point2D
}

// NewFormFieldTool creates an idle form field tool placing text fields.
func NewFormFieldTool() *FormFieldTool {
	return &FormFieldTool{}
}

// SetFieldType selects the field type for subsequent gestures.
func (t *FormFieldTool) SetFieldType(ft annotation.FieldType) {
	t.fieldType = ft
}

// SetGroup sets the radio group id stamped onto radio fields.
func (t *FormFieldTool) SetGroup(group string) {
	t.group = group
}

// FieldType returns the current field type.
func (t *FormFieldTool) FieldType() annotation.FieldType {
	return t.fieldType
}

func (t *FormFieldTool) fixedSize() bool {
	return t.fieldType == annotation.FieldCheckbox || t.fieldType == annotation.FieldRadio
}

// PointerDown commits fixed-size fields immediately, otherwise anchors
// the drag rectangle.
func (t *FormFieldTool) PointerDown(ev PointerEvent, ctx *Context) {
	if !ev.DocOK {
		return
	}
	if t.fixedSize() {
		box := geometry.NewRect(
			ev.Doc.X-minFieldSize/2, ev.Doc.Y-minFieldSize/2,
			minFieldSize, minFieldSize,
		)
		t.commitField(box, ctx)
		return
	}
	t.active = true
	t.anchor = ev.Doc
	t.cursor = ev.Doc
}

// PointerMove updates the drag rectangle.
func (t *FormFieldTool) PointerMove(ev PointerEvent, _ *Context) {
	if !t.active || !ev.Doc.IsFinite() {
		return
	}
	t.cursor = ev.Doc
}

// PointerUp commits the dragged field, enforcing the per-type minimum
// size and rejecting anything below the overall floor.
func (t *FormFieldTool) PointerUp(_ PointerEvent, ctx *Context) error {
	if !t.active {
		return nil
	}
	box := geometry.RectFromCorners(t.anchor, t.cursor)
	t.Cancel()

	if box.Width < minFieldSize || box.Height < minFieldSize {
		return nil
	}
	min := fieldMinSize(t.fieldType)
	if box.Width < min.Width {
		box.Width = min.Width
	}
	if box.Height < min.Height {
		box.Height = min.Height
	}
	t.commitField(box, ctx)
	return nil
}

func (t *FormFieldTool) commitField(box geometry.Rect, ctx *Context) {
	a := annotation.New(annotation.KindFormField, ctx.Page, box)
	a.FormField = &annotation.FormField{Type: t.fieldType}
	if t.fieldType == annotation.FieldRadio {
		a.FormField.Group = t.group
	}
	if err := ctx.commit(a); err != nil {
		slog.Warn("form field commit rejected", "error", err)
	}
}

// Cancel implements Tool.
func (t *FormFieldTool) Cancel() {
	t.active = false
}

// Preview implements Tool.
func (t *FormFieldTool) Preview() Preview {
	if !t.active {
		return Preview{}
	}
	return Preview{Shape: PreviewRect, Rect: geometry.RectFromCorners(t.anchor, t.cursor)}
}
