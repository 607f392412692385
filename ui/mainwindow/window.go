// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"doc-annotator/internal/annotation"
	"doc-annotator/internal/app"
	"doc-annotator/internal/config"
	"doc-annotator/internal/editor"
	"doc-annotator/internal/project"
	"doc-annotator/internal/tools"
	"doc-annotator/internal/version"
	"doc-annotator/ui/canvas"
	"doc-annotator/ui/dialogs"
	"doc-annotator/ui/panels"
	"doc-annotator/ui/prefs"
)

// toolButtons defines the toolbar in display order.
var toolButtons = []struct {
	label string
	kind  tools.Kind
}{
	{"Select", tools.KindSelect},
	{"Draw", tools.KindDraw},
	{"Shape", tools.KindShape},
	{"Highlight", tools.KindHighlight},
	{"Redact", tools.KindRedact},
	{"Text", tools.KindTextBox},
	{"Callout", tools.KindCallout},
	{"Field", tools.KindFormField},
	{"Stamp", tools.KindStamp},
	{"Select Text", tools.KindTextSelect},
}

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	session   *editor.Session
	prefs     *prefs.Prefs
	canvas    *canvas.PageCanvas
	sidePanel *panels.SidePanel

	statusBar    *widget.Label
	pageLabel    *widget.Label
	documentPath string
	pageCount    int
	watcher      *app.FileWatcher
}

// New creates the main window over a session.
func New(fyneApp fyne.App, session *editor.Session, cfg config.Config, p *prefs.Prefs, pageCount int) *MainWindow {
	win := fyneApp.NewWindow(fmt.Sprintf("Annotator %s", version.String()))

	mw := &MainWindow{
		Window:    win,
		app:       fyneApp,
		session:   session,
		prefs:     p,
		pageCount: pageCount,
	}
	mw.canvas = canvas.NewPageCanvas(session, cfg)
	mw.sidePanel = panels.NewSidePanel(session)
	mw.statusBar = widget.NewLabel("Ready")
	mw.pageLabel = widget.NewLabel("")

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.restorePrefs()
	mw.updatePageLabel()

	win.Resize(fyne.NewSize(1100, 850))
	return mw
}

func (mw *MainWindow) setupUI() {
	toolbar := mw.createToolbar()

	split := container.NewHSplit(mw.canvas, mw.sidePanel.Container())
	split.SetOffset(0.75)

	content := container.NewBorder(
		toolbar,
		container.NewPadded(container.NewHBox(mw.pageLabel, mw.statusBar)),
		nil,
		nil,
		split,
	)
	mw.SetContent(content)
}

func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	items := make([]fyne.CanvasObject, 0, len(toolButtons)+4)
	for _, tb := range toolButtons {
		kind := tb.kind
		items = append(items, widget.NewButton(tb.label, func() {
			mw.session.SetTool(kind)
		}))
	}
	items = append(items,
		widget.NewSeparator(),
		widget.NewButton("-", mw.canvas.ZoomOut),
		widget.NewButton("+", mw.canvas.ZoomIn),
		widget.NewButton("1:1", func() { mw.canvas.SetZoom(1) }),
	)
	return container.NewHBox(items...)
}

func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Save Annotations", mw.onSave),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)
	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Properties...", mw.onProperties),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Delete Selected", func() {
			if !mw.session.RemoveSelected() {
				mw.setStatus("Nothing selected")
			}
		}),
	)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Actual Size", func() { mw.canvas.SetZoom(1) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Next Page", func() { mw.setPage(mw.session.Page() + 1) }),
		fyne.NewMenuItem("Previous Page", func() { mw.setPage(mw.session.Page() - 1) }),
	)
	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu))
}

func (mw *MainWindow) setupEventHandlers() {
	mw.session.On(editor.EventToolChanged, func(data interface{}) {
		if kind, ok := data.(tools.Kind); ok {
			mw.setStatus(fmt.Sprintf("Tool: %s", kind))
			mw.prefs.SetString(prefs.KeyLastTool, kind.String())
		}
	})
	mw.session.On(editor.EventNotice, func(data interface{}) {
		if msg, ok := data.(string); ok {
			mw.setStatus(msg)
		}
	})
	mw.session.On(editor.EventPageChanged, func(interface{}) {
		mw.updatePageLabel()
	})
	mw.session.On(editor.EventAnnotationAdded, func(data interface{}) {
		a, ok := data.(annotation.Annotation)
		if !ok {
			return
		}
		if a.Kind == annotation.KindTextBox && a.TextBox != nil && a.TextBox.Provisional {
			mw.promptTextContent(a)
		}
	})
}

// promptTextContent asks for the content of a freshly placed text box.
// Cancelling or submitting empty text discards the provisional box.
func (mw *MainWindow) promptTextContent(a annotation.Annotation) {
	entry := widget.NewMultiLineEntry()
	dialog.ShowForm("Text", "OK", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Content", entry)},
		func(ok bool) {
			content := entry.Text
			if !ok {
				content = ""
			}
			if err := mw.session.CommitText(a.Page, a.ID, content); err != nil {
				slog.Error("text commit failed", "id", a.ID, "error", err)
			}
		}, mw.Window)
}

func (mw *MainWindow) onProperties() {
	id := mw.session.Tracker().Selected()
	page := mw.session.Page()
	a, ok := mw.session.Collection().Get(page, id)
	if !ok {
		mw.setStatus("Nothing selected")
		return
	}
	dialogs.NewAnnotationPropertiesDialog(mw.session, a, mw.Window).Show()
}

func (mw *MainWindow) setStatus(msg string) {
	mw.statusBar.SetText(msg)
}

func (mw *MainWindow) updatePageLabel() {
	mw.pageLabel.SetText(fmt.Sprintf("Page %d / %d", mw.session.Page()+1, mw.pageCount))
}

func (mw *MainWindow) setPage(page int) {
	if page < 0 || page >= mw.pageCount {
		return
	}
	mw.session.SetPage(page)
	mw.prefs.SetInt(prefs.KeyLastPage, page)
	mw.canvas.Refresh()
}

// SetDocumentPath records where annotation sidecars are saved.
func (mw *MainWindow) SetDocumentPath(path string) {
	mw.documentPath = path
	mw.prefs.SetString(prefs.KeyLastDocument, path)
}

func (mw *MainWindow) onSave() {
	if mw.documentPath == "" {
		mw.setStatus("No document open")
		return
	}
	f := project.New(mw.documentPath)
	f.Capture(mw.session.Collection(), mw.pageCount)
	path := project.SidecarPath(mw.documentPath)
	if err := f.Save(path); err != nil {
		slog.Error("save annotations failed", "path", path, "error", err)
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.prefs.StoreDefaults(mw.session.Defaults())
	mw.prefs.SetFloat(prefs.KeyZoom, mw.canvas.Zoom())
	if stamp, ok := mw.session.Registry().Get(tools.KindStamp).(*tools.StampTool); ok {
		mw.prefs.SetString(prefs.KeyStampTemplate, stamp.Selected())
	}
	if err := mw.prefs.Save(); err != nil {
		slog.Warn("preference save failed", "error", err)
	}
	if mw.watcher != nil {
		mw.watcher.ResetBaseline()
	}
	mw.setStatus(fmt.Sprintf("Saved %s", path))
}

// watchSidecar notices external edits to the sidecar so the user can reload.
func (mw *MainWindow) watchSidecar(path string) {
	if mw.watcher != nil {
		mw.watcher.Stop()
	}
	mw.watcher = app.NewFileWatcher(path, 2*time.Second)
	if mw.watcher == nil {
		return
	}
	mw.watcher.OnChange(func() {
		mw.setStatus("Annotations changed on disk, reopen to reload")
	})
	mw.watcher.Start()
}

// restorePrefs applies the stored tool, page, and defaults.
func (mw *MainWindow) restorePrefs() {
	mw.session.SetDefaults(mw.prefs.ApplyDefaults(mw.session.Defaults()))

	last := mw.prefs.String(prefs.KeyLastTool, "")
	for _, tb := range toolButtons {
		if tb.kind.String() == last {
			mw.session.SetTool(tb.kind)
			break
		}
	}
	if page := mw.prefs.Int(prefs.KeyLastPage, 0); page > 0 && page < mw.pageCount {
		mw.session.SetPage(page)
	}
	if zoom := mw.prefs.Float(prefs.KeyZoom, 1); zoom != 1 {
		mw.canvas.SetZoom(zoom)
	}
	if stamp, ok := mw.session.Registry().Get(tools.KindStamp).(*tools.StampTool); ok {
		if id := mw.prefs.String(prefs.KeyStampTemplate, ""); id != "" {
			stamp.Select(id)
		}
	}
}

// LoadSidecar restores saved annotations for the open document.
func (mw *MainWindow) LoadSidecar() {
	if mw.documentPath == "" {
		return
	}
	path := project.SidecarPath(mw.documentPath)
	f, err := project.Load(path)
	if err != nil {
		// Missing sidecar is the common case for a fresh document.
		return
	}
	if err := f.Restore(mw.session.Collection()); err != nil {
		slog.Warn("sidecar restore failed", "path", path, "error", err)
		mw.setStatus("Some annotations could not be restored")
		return
	}
	mw.canvas.Refresh()
	mw.watchSidecar(path)
	mw.setStatus(fmt.Sprintf("Loaded %s", path))
}
