// Package colorutil provides shared color utilities for the annotator.
package colorutil

import (
	"fmt"
	"image"
	"image/color"
)

// Common overlay colors used throughout the application.
var (
	Black      = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red        = color.RGBA{R: 0xE5, G: 0x3E, B: 0x3E, A: 255}
	Yellow     = color.RGBA{R: 0xFF, G: 0xE0, B: 0x3E, A: 255}
	Blue       = color.RGBA{R: 0x2B, G: 0x6C, B: 0xB0, A: 255}
	SelectBlue = color.RGBA{R: 0x33, G: 0x99, B: 0xFF, A: 255}
	HoverGray  = color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 255}
)

// WithOpacity scales a color's alpha by opacity in [0, 1].
func WithOpacity(c color.RGBA, opacity float64) color.RGBA {
	if opacity >= 1 {
		return c
	}
	if opacity < 0 {
		opacity = 0
	}
	c.A = uint8(float64(c.A) * opacity)
	return c
}

// BlendPixel alpha-blends src over the pixel at (x, y), treating the
// src alpha channel as coverage. Out-of-bounds coordinates are
// ignored.
func BlendPixel(dst *image.RGBA, x, y int, src color.RGBA) {
	b := dst.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	if src.A == 0xFF {
		dst.SetRGBA(x, y, src)
		return
	}
	base := dst.RGBAAt(x, y)
	a := uint32(src.A)
	inv := 255 - a
	dst.SetRGBA(x, y, color.RGBA{
		R: uint8((uint32(src.R)*a + uint32(base.R)*inv) / 255),
		G: uint8((uint32(src.G)*a + uint32(base.G)*inv) / 255),
		B: uint8((uint32(src.B)*a + uint32(base.B)*inv) / 255),
		A: 0xFF,
	})
}

// FormatHex renders a color as "#rrggbb" for preference storage; the
// alpha channel is not stored.
func FormatHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses "#rrggbb" into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}
