// Package canvas provides the interactive page canvas: it renders the
// document raster with the annotation overlay and routes pointer input
// to the editing session.
package canvas

import (
	"context"
	"image"
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"

	"doc-annotator/internal/config"
	"doc-annotator/internal/editor"
	"doc-annotator/internal/tools"
	"doc-annotator/internal/viewport"
	"doc-annotator/pkg/geometry"
)

const zoomStep = 1.25

// background behind the page surface.
var background = color.RGBA{R: 0x3A, G: 0x3A, B: 0x3A, A: 0xFF}

// PageCanvas displays one document page with its annotations and feeds
// pointer events into the session.
type PageCanvas struct {
	widget.BaseWidget

	session *editor.Session
	cfg     config.Config
	raster  *fynecanvas.Raster

	zoom float64
	pan  geometry.Point2D

	// Page metrics from the last successful render.
	pageW, pageH     float64
	bufferW, bufferH int
}

// NewPageCanvas creates a canvas over a session. The canvas refreshes
// itself on every session event that changes what is drawn.
func NewPageCanvas(session *editor.Session, cfg config.Config) *PageCanvas {
	pc := &PageCanvas{
		session: session,
		cfg:     cfg,
		zoom:    1.0,
	}
	pc.raster = fynecanvas.NewRaster(pc.draw)
	pc.raster.ScaleMode = fynecanvas.ImageScalePixels
	pc.ExtendBaseWidget(pc)

	redraw := func(interface{}) { pc.Refresh() }
	for _, ev := range []editor.EventType{
		editor.EventAnnotationAdded,
		editor.EventAnnotationUpdated,
		editor.EventAnnotationRemoved,
		editor.EventSelectionChanged,
		editor.EventHoverChanged,
		editor.EventPageChanged,
		editor.EventTextQuadsChanged,
	} {
		session.On(ev, redraw)
	}
	return pc
}

// CreateRenderer implements fyne.Widget.
func (pc *PageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(pc.raster)
}

// Refresh redraws the canvas.
func (pc *PageCanvas) Refresh() {
	pc.raster.Refresh()
	pc.BaseWidget.Refresh()
}

// Zoom returns the current zoom factor.
func (pc *PageCanvas) Zoom() float64 {
	return pc.zoom
}

// SetZoom sets the zoom factor clamped to the configured range.
func (pc *PageCanvas) SetZoom(zoom float64) {
	if zoom < pc.cfg.MinZoom {
		zoom = pc.cfg.MinZoom
	}
	if zoom > pc.cfg.MaxZoom {
		zoom = pc.cfg.MaxZoom
	}
	pc.zoom = zoom
	pc.Refresh()
}

// ZoomIn increases the zoom by one step.
func (pc *PageCanvas) ZoomIn() { pc.SetZoom(pc.zoom * zoomStep) }

// ZoomOut decreases the zoom by one step.
func (pc *PageCanvas) ZoomOut() { pc.SetZoom(pc.zoom / zoomStep) }

// SetPan sets the pan offset in display pixels.
func (pc *PageCanvas) SetPan(p geometry.Point2D) {
	pc.pan = p
	pc.Refresh()
}

// Pan returns the pan offset.
func (pc *PageCanvas) Pan() geometry.Point2D {
	return pc.pan
}

// Scrolled zooms on wheel input, matching the pan-free navigation of
// the canvas.
func (pc *PageCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		pc.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		pc.ZoomOut()
	}
}

func toModifiers(m fyne.KeyModifier) tools.Modifiers {
	return tools.Modifiers{
		Constrain: m&fyne.KeyModifierShift != 0,
		Secondary: m&fyne.KeyModifierAlt != 0,
	}
}

// MouseDown implements desktop.Mouseable.
func (pc *PageCanvas) MouseDown(ev *desktop.MouseEvent) {
	pc.syncViewport()
	pc.session.HandlePointerDown(float64(ev.Position.X), float64(ev.Position.Y), toModifiers(ev.Modifier))
	pc.Refresh()
}

// MouseUp implements desktop.Mouseable.
func (pc *PageCanvas) MouseUp(ev *desktop.MouseEvent) {
	if err := pc.session.HandlePointerUp(float64(ev.Position.X), float64(ev.Position.Y), toModifiers(ev.Modifier)); err != nil {
		slog.Error("gesture failed", "error", err)
	}
	pc.Refresh()
}

// MouseIn implements desktop.Hoverable.
func (pc *PageCanvas) MouseIn(*desktop.MouseEvent) {}

// MouseMoved implements desktop.Hoverable.
func (pc *PageCanvas) MouseMoved(ev *desktop.MouseEvent) {
	pc.session.HandlePointerMove(float64(ev.Position.X), float64(ev.Position.Y), toModifiers(ev.Modifier))
	pc.Refresh()
}

// MouseOut implements desktop.Hoverable.
func (pc *PageCanvas) MouseOut() {}

// viewportFor builds the viewport state for the given widget size from
// the current zoom, pan, rotation, and page metrics.
func (pc *PageCanvas) viewportFor(w, h float64) viewport.State {
	vp := pc.session.Viewport()
	vp.Zoom = pc.zoom
	vp.Pan = pc.pan
	vp.DevicePixelRatio = 1
	vp.RenderScale = pc.cfg.RenderScale
	vp.PageWidth = pc.pageW
	vp.PageHeight = pc.pageH
	vp.BufferSize = geometry.NewSize(float64(pc.bufferW), float64(pc.bufferH))

	rot := vp.RotatedPageSize()
	vp.SurfaceSize = geometry.NewSize(rot.Width*pc.zoom, rot.Height*pc.zoom)
	vp.SurfaceOrigin = geometry.Point2D{
		X: (w-vp.SurfaceSize.Width)/2 + pc.pan.X,
		Y: (h-vp.SurfaceSize.Height)/2 + pc.pan.Y,
	}
	return vp
}

// syncViewport renders the page if needed and pushes the viewport
// derived from the widget's current size into the session.
func (pc *PageCanvas) syncViewport() {
	rendered, err := pc.session.Render(context.Background())
	if err != nil {
		slog.Warn("page render failed", "page", pc.session.Page(), "error", err)
		return
	}
	pc.pageW = rendered.PageWidth
	pc.pageH = rendered.PageHeight
	pc.bufferW = rendered.Width
	pc.bufferH = rendered.Height

	size := pc.Size()
	pc.session.SetViewport(pc.viewportFor(float64(size.Width), float64(size.Height)))
}

// draw renders the widget: background, scaled page raster, committed
// annotations, live preview, and text selection quads.
func (pc *PageCanvas) draw(w, h int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(out, out.Bounds(), image.NewUniform(background), image.Point{}, xdraw.Src)

	rendered, err := pc.session.Render(context.Background())
	if err != nil {
		slog.Warn("page render failed", "page", pc.session.Page(), "error", err)
		return out
	}
	pc.pageW = rendered.PageWidth
	pc.pageH = rendered.PageHeight
	pc.bufferW = rendered.Width
	pc.bufferH = rendered.Height

	vp := pc.viewportFor(float64(w), float64(h))
	if cur := pc.session.Viewport(); cur != vp {
		pc.session.SetViewport(vp)
	}
	if !vp.Laid() {
		return out
	}

	dst := image.Rect(
		int(vp.SurfaceOrigin.X), int(vp.SurfaceOrigin.Y),
		int(vp.SurfaceOrigin.X+vp.SurfaceSize.Width), int(vp.SurfaceOrigin.Y+vp.SurfaceSize.Height),
	)
	xdraw.ApproxBiLinear.Scale(out, dst, rendered.Image, rendered.Image.Bounds(), xdraw.Over, nil)

	page := pc.session.Page()
	annots := pc.session.Collection().Page(page)
	renderAnnotations(out, annots, vp, pc.session.Tracker())
	renderTextQuads(out, pc.session.TextQuads(), vp)
	renderPreview(out, pc.session.Preview(), vp, pc.session.Defaults())

	return out
}
