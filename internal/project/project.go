// Package project provides annotation sidecar files: the annotations
// of a document, saved as JSON next to it. The document itself is
// never rewritten here; destructive changes (redaction) go through the
// document engine.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"doc-annotator/internal/annotation"
)

// Version is the sidecar format version.
const Version = 1

// sidecarSuffix is appended to the document's base name.
const sidecarSuffix = ".annot.json"

// File is one annotation sidecar.
type File struct {
	Version  int       `json:"version"`
	Document string    `json:"document,omitempty"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	// Pages maps page index to its annotations in insertion order.
	Pages map[int][]annotation.Annotation `json:"pages"`
}

// New creates an empty sidecar for a document path.
func New(document string) *File {
	now := time.Now()
	return &File{
		Version:  Version,
		Document: filepath.Base(document),
		Created:  now,
		Modified: now,
		Pages:    make(map[int][]annotation.Annotation),
	}
}

// SidecarPath returns the sidecar path for a document path.
func SidecarPath(document string) string {
	base := document[:len(document)-len(filepath.Ext(document))]
	return base + sidecarSuffix
}

// Load reads a sidecar file and validates every annotation in it.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if f.Version > Version {
		return nil, fmt.Errorf("%s: unsupported version %d", path, f.Version)
	}
	for page, annots := range f.Pages {
		for _, a := range annots {
			if err := a.Validate(); err != nil {
				return nil, fmt.Errorf("%s: page %d: %w", path, page, err)
			}
		}
	}
	return &f, nil
}

// Save writes the sidecar to a file.
func (f *File) Save(path string) error {
	f.Modified = time.Now()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Capture snapshots the collection's pages into the sidecar.
func (f *File) Capture(c *annotation.Collection, pageCount int) {
	f.Pages = make(map[int][]annotation.Annotation)
	for page := 0; page < pageCount; page++ {
		if annots := c.Page(page); len(annots) > 0 {
			f.Pages[page] = annots
		}
	}
}

// Restore appends the sidecar's annotations into a collection.
func (f *File) Restore(c *annotation.Collection) error {
	for page, annots := range f.Pages {
		for _, a := range annots {
			a.Page = page
			if err := c.Append(a); err != nil {
				return fmt.Errorf("page %d: %w", page, err)
			}
		}
	}
	return nil
}
