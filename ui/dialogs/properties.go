// Package dialogs provides application dialogs.
package dialogs

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"doc-annotator/internal/annotation"
	"doc-annotator/internal/editor"
	"doc-annotator/pkg/colorutil"
)

// AnnotationPropertiesDialog edits the mutable properties of an
// existing annotation.
type AnnotationPropertiesDialog struct {
	session *editor.Session
	annot   annotation.Annotation
	window  fyne.Window

	contentEntry *widget.Entry
	colorEntry   *widget.Entry
	widthEntry   *widget.Entry
	optionsEntry *widget.Entry
}

// NewAnnotationPropertiesDialog creates a dialog over a stored annotation.
func NewAnnotationPropertiesDialog(session *editor.Session, annot annotation.Annotation, window fyne.Window) *AnnotationPropertiesDialog {
	return &AnnotationPropertiesDialog{
		session: session,
		annot:   annot,
		window:  window,
	}
}

// Show displays the dialog.
func (d *AnnotationPropertiesDialog) Show() {
	items := d.createFormItems()
	if len(items) == 0 {
		dialog.ShowInformation("Properties", "This annotation has no editable properties.", d.window)
		return
	}

	dialog.ShowForm("Properties: "+d.annot.Kind.String(), "Apply", "Cancel", items,
		func(ok bool) {
			if !ok {
				return
			}
			d.apply()
		}, d.window)
}

func (d *AnnotationPropertiesDialog) createFormItems() []*widget.FormItem {
	var items []*widget.FormItem

	switch d.annot.Kind {
	case annotation.KindTextBox:
		if d.annot.TextBox != nil {
			d.contentEntry = widget.NewMultiLineEntry()
			d.contentEntry.SetText(d.annot.TextBox.Content)
			items = append(items, widget.NewFormItem("Text", d.contentEntry))
		}

	case annotation.KindCallout:
		if d.annot.Callout != nil {
			d.contentEntry = widget.NewMultiLineEntry()
			d.contentEntry.SetText(d.annot.Callout.Content)
			items = append(items, widget.NewFormItem("Text", d.contentEntry))
		}

	case annotation.KindDraw:
		if d.annot.Draw != nil {
			items = append(items,
				d.colorItem(colorutil.FormatHex(d.annot.Draw.Color)),
				d.widthItem(d.annot.Draw.Width))
		}

	case annotation.KindShape:
		if d.annot.Shape != nil {
			items = append(items,
				d.colorItem(colorutil.FormatHex(d.annot.Shape.StrokeColor)),
				d.widthItem(d.annot.Shape.StrokeWidth))
		}

	case annotation.KindHighlight:
		if d.annot.Highlight != nil {
			items = append(items, d.colorItem(colorutil.FormatHex(d.annot.Highlight.Color)))
		}

	case annotation.KindFormField:
		if d.annot.FormField != nil {
			d.contentEntry = widget.NewEntry()
			d.contentEntry.SetText(d.annot.FormField.Value)
			items = append(items, widget.NewFormItem("Value", d.contentEntry))
			if d.annot.FormField.Type == annotation.FieldDropdown || d.annot.FormField.Type == annotation.FieldRadio {
				d.optionsEntry = widget.NewEntry()
				d.optionsEntry.SetText(strings.Join(d.annot.FormField.Options, ", "))
				items = append(items, widget.NewFormItem("Options", d.optionsEntry))
			}
		}
	}

	return items
}

func (d *AnnotationPropertiesDialog) colorItem(hex string) *widget.FormItem {
	d.colorEntry = widget.NewEntry()
	d.colorEntry.SetText(hex)
	return widget.NewFormItem("Color", d.colorEntry)
}

func (d *AnnotationPropertiesDialog) widthItem(width float64) *widget.FormItem {
	d.widthEntry = widget.NewEntry()
	d.widthEntry.SetText(strconv.FormatFloat(width, 'f', -1, 64))
	return widget.NewFormItem("Width", d.widthEntry)
}

func (d *AnnotationPropertiesDialog) apply() {
	// Text boxes route through CommitText so emptying one removes it.
	if d.annot.Kind == annotation.KindTextBox && d.contentEntry != nil {
		if err := d.session.CommitText(d.annot.Page, d.annot.ID, d.contentEntry.Text); err != nil {
			dialog.ShowError(err, d.window)
		}
		return
	}

	err := d.session.UpdateAnnotation(d.annot.Page, d.annot.ID, func(a *annotation.Annotation) {
		switch a.Kind {
		case annotation.KindCallout:
			if a.Callout != nil && d.contentEntry != nil {
				a.Callout.Content = d.contentEntry.Text
			}
		case annotation.KindDraw:
			if a.Draw != nil {
				if c, err := colorutil.ParseHex(d.colorEntry.Text); err == nil {
					a.Draw.Color = c
				}
				if w, err := strconv.ParseFloat(d.widthEntry.Text, 64); err == nil && w > 0 {
					a.Draw.Width = w
				}
			}
		case annotation.KindShape:
			if a.Shape != nil {
				if c, err := colorutil.ParseHex(d.colorEntry.Text); err == nil {
					a.Shape.StrokeColor = c
				}
				if w, err := strconv.ParseFloat(d.widthEntry.Text, 64); err == nil && w > 0 {
					a.Shape.StrokeWidth = w
				}
			}
		case annotation.KindHighlight:
			if a.Highlight != nil {
				if c, err := colorutil.ParseHex(d.colorEntry.Text); err == nil {
					a.Highlight.Color = c
				}
			}
		case annotation.KindFormField:
			if a.FormField != nil {
				if d.contentEntry != nil {
					a.FormField.Value = d.contentEntry.Text
				}
				if d.optionsEntry != nil {
					a.FormField.Options = splitOptions(d.optionsEntry.Text)
				}
			}
		}
	})
	if err != nil {
		dialog.ShowError(err, d.window)
	}
}

func splitOptions(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
