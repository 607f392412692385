// Package image provides raster loading and scaling for stamp artwork.
package image

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// Load reads and decodes an image file. PNG, JPEG, and TIFF are supported.
func Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// Scale resamples an image to the given pixel dimensions.
func Scale(img image.Image, w, h int) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// Stamp pairs a decoded stamp image with the name derived from its file.
type Stamp struct {
	Name  string
	Image image.Image
}

// LoadStampDir loads every decodable image in dir, sorted by file name.
// Files that fail to decode are skipped. A missing directory is not an
// error, it simply yields no stamps.
func LoadStampDir(dir string) ([]Stamp, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var stamps []Stamp
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".tif", ".tiff":
		default:
			continue
		}
		img, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		stamps = append(stamps, Stamp{Name: name, Image: img})
	}

	sort.Slice(stamps, func(i, j int) bool { return stamps[i].Name < stamps[j].Name })
	return stamps, nil
}
