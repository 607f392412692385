// Package main provides the entry point for the document annotator.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	fyneapp "fyne.io/fyne/v2/app"

	"doc-annotator/internal/app"
	"doc-annotator/internal/config"
	"doc-annotator/internal/document"
	"doc-annotator/internal/editor"
	annotimage "doc-annotator/internal/image"
	"doc-annotator/internal/tools"
	"doc-annotator/internal/version"
	"doc-annotator/ui/mainwindow"
	"doc-annotator/ui/prefs"
)

const blankPageCount = 10

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	slog.Info("starting annotator", "version", version.String())

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("config load failed, using defaults", "error", err)
		def := config.Default()
		cfg = &def
	}

	fyneApp := fyneapp.NewWithID("doc-annotator")
	fyneApp.Settings().SetTheme(&app.AnnotatorTheme{})

	// A blank US Letter document stands in until a real engine is attached.
	engine := document.NewBlankEngine(blankPageCount, 612, 792)
	stamps := tools.DefaultStampLibrary()
	loadCustomStamps(stamps)
	session := editor.NewSession(engine, *cfg, stamps)

	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, session, *cfg, appPrefs, blankPageCount)

	if len(os.Args) > 1 {
		win.SetDocumentPath(os.Args[1])
		win.LoadSidecar()
	} else if last := appPrefs.String(prefs.KeyLastDocument, ""); last != "" {
		win.SetDocumentPath(last)
		win.LoadSidecar()
	}

	win.ShowAndRun()
}

// loadCustomStamps adds user-provided stamp images from the config
// directory to the library.
func loadCustomStamps(library *tools.StampLibrary) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return
	}
	dir := filepath.Join(configDir, "doc-annotator", "stamps")
	custom, err := annotimage.LoadStampDir(dir)
	if err != nil {
		slog.Warn("custom stamp load failed", "dir", dir, "error", err)
		return
	}
	for _, s := range custom {
		library.Add(tools.StampTemplate{
			ID:    "custom-" + s.Name,
			Name:  s.Name,
			Image: s.Image,
		})
	}
}
