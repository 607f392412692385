// Package prefs provides JSON-based application preferences.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"doc-annotator/internal/tools"
	"doc-annotator/pkg/colorutil"
)

const prefsFile = "preferences.json"

// Preference keys.
const (
	KeyLastDocument   = "lastDocument"
	KeyLastPage       = "lastPage"
	KeyLastTool       = "lastTool"
	KeyZoom           = "zoom"
	KeyStrokeColor    = "strokeColor"
	KeyStrokeWidth    = "strokeWidth"
	KeyHighlightColor = "highlightColor"
	KeyFontSize       = "fontSize"
	KeyStampTemplate  = "stampTemplate"
)

// Prefs stores application preferences as a key-value map.
type Prefs struct {
	mu     sync.RWMutex
	values map[string]interface{}
	path   string
}

// Load reads preferences from ~/.config/doc-annotator/preferences.json.
// Returns a Prefs with defaults if the file doesn't exist.
func Load() *Prefs {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return LoadFrom(filepath.Join(configDir, "doc-annotator", prefsFile))
}

// LoadFrom reads preferences from an explicit path.
func LoadFrom(path string) *Prefs {
	p := &Prefs{
		values: make(map[string]interface{}),
		path:   path,
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return p
	}
	_ = json.Unmarshal(data, &p.values)
	return p
}

// Save writes preferences to disk.
func (p *Prefs) Save() error {
	p.mu.RLock()
	data, err := json.MarshalIndent(p.values, "", "  ")
	p.mu.RUnlock()
	if err != nil {
		return err
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}

// Float returns a float64 preference, or fallback if not set.
func (p *Prefs) Float(key string, fallback float64) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		}
	}
	return fallback
}

// SetFloat stores a float64 preference.
func (p *Prefs) SetFloat(key string, val float64) {
	p.mu.Lock()
	p.values[key] = val
	p.mu.Unlock()
}

// String returns a string preference, or fallback if not set.
func (p *Prefs) String(key, fallback string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// SetString stores a string preference.
func (p *Prefs) SetString(key string, val string) {
	p.mu.Lock()
	p.values[key] = val
	p.mu.Unlock()
}

// Int returns an int preference, or fallback if not set. JSON numbers
// decode as float64, so both forms are accepted.
func (p *Prefs) Int(key string, fallback int) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return fallback
}

// SetInt stores an int preference.
func (p *Prefs) SetInt(key string, val int) {
	p.mu.Lock()
	p.values[key] = val
	p.mu.Unlock()
}

// ApplyDefaults overlays stored tool defaults onto d, leaving fields
// without a stored preference untouched.
func (p *Prefs) ApplyDefaults(d tools.Defaults) tools.Defaults {
	if s := p.String(KeyStrokeColor, ""); s != "" {
		if c, err := colorutil.ParseHex(s); err == nil {
			d.StrokeColor = c
		}
	}
	if s := p.String(KeyHighlightColor, ""); s != "" {
		if c, err := colorutil.ParseHex(s); err == nil {
			d.HighlightColor = c
		}
	}
	d.StrokeWidth = p.Float(KeyStrokeWidth, d.StrokeWidth)
	d.FontSize = p.Float(KeyFontSize, d.FontSize)
	return d
}

// StoreDefaults persists the tool defaults for the next run.
func (p *Prefs) StoreDefaults(d tools.Defaults) {
	p.SetString(KeyStrokeColor, colorutil.FormatHex(d.StrokeColor))
	p.SetString(KeyHighlightColor, colorutil.FormatHex(d.HighlightColor))
	p.SetFloat(KeyStrokeWidth, d.StrokeWidth)
	p.SetFloat(KeyFontSize, d.FontSize)
}
