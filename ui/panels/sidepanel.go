// Package panels provides UI panels for the application.
package panels

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"

	"doc-annotator/internal/annotation"
	"doc-annotator/internal/editor"
	"doc-annotator/internal/tools"
	"doc-annotator/pkg/colorutil"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	session   *editor.Session
	container *container.AppTabs

	defaultsPanel    *DefaultsPanel
	annotationsPanel *AnnotationsPanel
	stampsPanel      *StampsPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(session *editor.Session) *SidePanel {
	sp := &SidePanel{session: session}

	sp.defaultsPanel = NewDefaultsPanel(session)
	sp.annotationsPanel = NewAnnotationsPanel(session)
	sp.stampsPanel = NewStampsPanel(session)

	sp.container = container.NewAppTabs(
		container.NewTabItem("Tool", sp.defaultsPanel.Container()),
		container.NewTabItem("Annotations", sp.annotationsPanel.Container()),
		container.NewTabItem("Stamps", sp.stampsPanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// DefaultsPanel edits the colors and sizes new annotations are created with.
type DefaultsPanel struct {
	session   *editor.Session
	container fyne.CanvasObject

	strokeColorEntry    *widget.Entry
	highlightColorEntry *widget.Entry
	strokeWidthSlider   *widget.Slider
	strokeWidthLabel    *widget.Label
	fontSizeEntry       *widget.Entry
}

// NewDefaultsPanel creates the tool defaults panel.
func NewDefaultsPanel(session *editor.Session) *DefaultsPanel {
	dp := &DefaultsPanel{session: session}
	d := session.Defaults()

	dp.strokeColorEntry = widget.NewEntry()
	dp.strokeColorEntry.SetText(colorutil.FormatHex(d.StrokeColor))
	dp.strokeColorEntry.OnSubmitted = func(s string) {
		if c, err := colorutil.ParseHex(s); err == nil {
			dp.apply(func(d *tools.Defaults) { d.StrokeColor = c })
		}
	}

	dp.highlightColorEntry = widget.NewEntry()
	dp.highlightColorEntry.SetText(colorutil.FormatHex(d.HighlightColor))
	dp.highlightColorEntry.OnSubmitted = func(s string) {
		if c, err := colorutil.ParseHex(s); err == nil {
			dp.apply(func(d *tools.Defaults) { d.HighlightColor = c })
		}
	}

	dp.strokeWidthLabel = widget.NewLabel(fmt.Sprintf("%.0f", d.StrokeWidth))
	dp.strokeWidthSlider = widget.NewSlider(1, 12)
	dp.strokeWidthSlider.SetValue(d.StrokeWidth)
	dp.strokeWidthSlider.OnChanged = func(v float64) {
		dp.strokeWidthLabel.SetText(fmt.Sprintf("%.0f", v))
		dp.apply(func(d *tools.Defaults) { d.StrokeWidth = v })
	}

	dp.fontSizeEntry = widget.NewEntry()
	dp.fontSizeEntry.SetText(fmt.Sprintf("%.0f", d.FontSize))
	dp.fontSizeEntry.OnSubmitted = func(s string) {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 {
			dp.apply(func(d *tools.Defaults) { d.FontSize = v })
		}
	}

	dp.container = container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Stroke", dp.strokeColorEntry),
			widget.NewFormItem("Highlight", dp.highlightColorEntry),
			widget.NewFormItem("Font size", dp.fontSizeEntry),
		),
		widget.NewLabel("Stroke width"),
		container.NewBorder(nil, nil, nil, dp.strokeWidthLabel, dp.strokeWidthSlider),
	)
	return dp
}

func (dp *DefaultsPanel) apply(mutate func(*tools.Defaults)) {
	d := dp.session.Defaults()
	mutate(&d)
	dp.session.SetDefaults(d)
}

// Container returns the panel container.
func (dp *DefaultsPanel) Container() fyne.CanvasObject {
	return dp.container
}

// AnnotationsPanel lists the current page's annotations and lets the
// user select or delete them.
type AnnotationsPanel struct {
	session   *editor.Session
	container fyne.CanvasObject
	list      *widget.List
	items     []annotation.Annotation
}

// NewAnnotationsPanel creates the annotation list panel.
func NewAnnotationsPanel(session *editor.Session) *AnnotationsPanel {
	ap := &AnnotationsPanel{session: session}
	ap.reload()

	ap.list = widget.NewList(
		func() int { return len(ap.items) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i < 0 || i >= len(ap.items) {
				return
			}
			o.(*widget.Label).SetText(describe(ap.items[i]))
		},
	)
	ap.list.OnSelected = func(i widget.ListItemID) {
		if i >= 0 && i < len(ap.items) {
			session.Select(ap.items[i].ID)
		}
	}

	deleteBtn := widget.NewButton("Delete", func() {
		session.RemoveSelected()
	})

	refresh := func(interface{}) {
		ap.reload()
		ap.list.Refresh()
	}
	session.On(editor.EventAnnotationAdded, refresh)
	session.On(editor.EventAnnotationUpdated, refresh)
	session.On(editor.EventAnnotationRemoved, refresh)
	session.On(editor.EventPageChanged, refresh)
	session.On(editor.EventSelectionChanged, func(data interface{}) {
		id, ok := data.(uuid.UUID)
		if !ok || id == uuid.Nil {
			ap.list.UnselectAll()
			return
		}
		for i, a := range ap.items {
			if a.ID == id {
				ap.list.Select(i)
				return
			}
		}
	})

	ap.container = container.NewBorder(nil, deleteBtn, nil, nil, ap.list)
	return ap
}

func (ap *AnnotationsPanel) reload() {
	ap.items = ap.session.Collection().Page(ap.session.Page())
}

// Container returns the panel container.
func (ap *AnnotationsPanel) Container() fyne.CanvasObject {
	return ap.container
}

// describe produces a short list label for an annotation.
func describe(a annotation.Annotation) string {
	switch {
	case a.Kind == annotation.KindTextBox && a.TextBox != nil && a.TextBox.Content != "":
		return fmt.Sprintf("Text: %s", truncate(a.TextBox.Content, 24))
	case a.Kind == annotation.KindCallout && a.Callout != nil && a.Callout.Content != "":
		return fmt.Sprintf("Callout: %s", truncate(a.Callout.Content, 20))
	case a.Kind == annotation.KindStamp && a.Stamp != nil:
		return fmt.Sprintf("Stamp: %s", a.Stamp.TemplateID)
	case a.Kind == annotation.KindShape && a.Shape != nil:
		return fmt.Sprintf("Shape: %s", a.Shape.Type)
	default:
		return a.Kind.String()
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

// StampsPanel lists stamp templates and picks the one the stamp tool places.
type StampsPanel struct {
	session   *editor.Session
	container fyne.CanvasObject
}

// NewStampsPanel creates the stamp template picker.
func NewStampsPanel(session *editor.Session) *StampsPanel {
	sp := &StampsPanel{session: session}

	stamp, _ := session.Registry().Get(tools.KindStamp).(*tools.StampTool)
	templates := stamp.Library().Templates()

	list := widget.NewList(
		func() int { return len(templates) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= 0 && i < len(templates) {
				o.(*widget.Label).SetText(templates[i].Name)
			}
		},
	)
	list.OnSelected = func(i widget.ListItemID) {
		if i >= 0 && i < len(templates) {
			stamp.Select(templates[i].ID)
			session.SetTool(tools.KindStamp)
		}
	}

	// Preselect the tool's current template.
	for i, t := range templates {
		if t.ID == stamp.Selected() {
			list.Select(i)
			break
		}
	}

	sp.container = list
	return sp
}

// Container returns the panel container.
func (sp *StampsPanel) Container() fyne.CanvasObject {
	return sp.container
}
