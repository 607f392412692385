// Package config loads user-tunable editor defaults from the
// environment. Interaction thresholds that define tool semantics live
// as constants next to the tools, not here.
package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds the editor defaults.
type Config struct {
	RenderScale    float64 `envconfig:"RENDER_SCALE" default:"2"`
	MinZoom        float64 `envconfig:"MIN_ZOOM" default:"0.25"`
	MaxZoom        float64 `envconfig:"MAX_ZOOM" default:"5"`
	StrokeWidth    float64 `envconfig:"STROKE_WIDTH" default:"2"`
	StrokeOpacity  float64 `envconfig:"STROKE_OPACITY" default:"1"`
	HighlightWidth float64 `envconfig:"HIGHLIGHT_WIDTH" default:"12"`
	FontSize       float64 `envconfig:"FONT_SIZE" default:"14"`
	StampScale     float64 `envconfig:"STAMP_SCALE" default:"1"`
}

// Default returns the built-in defaults without consulting the
// environment.
func Default() Config {
	return Config{
		RenderScale:    2,
		MinZoom:        0.25,
		MaxZoom:        5,
		StrokeWidth:    2,
		StrokeOpacity:  1,
		HighlightWidth: 12,
		FontSize:       14,
		StampScale:     1,
	}
}

// Load reads the configuration from ANNOTATOR_* environment variables,
// falling back to the defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("annotator", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
