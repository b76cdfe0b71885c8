// Package prefs keeps the viewer settings a user toggles at runtime (theme and
// line-number gutter) in a small TOML file next to the main config.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/qsoview/internal/config"
)

// Prefs holds settings the viewer changes at runtime.
type Prefs struct {
	Theme       string `toml:"theme"`
	LineNumbers bool   `toml:"line_numbers"`
}

const (
	defaultPrefsPath = "~/.config/qsoview/prefs.toml"
	defaultTheme     = "Nightfox"
)

// Default returns the preferences used when nothing has been saved yet.
func Default() Prefs {
	return Prefs{Theme: defaultTheme, LineNumbers: true}
}

// DefaultPath returns the unexpanded default preferences location.
func DefaultPath() string {
	return defaultPrefsPath
}

// Path resolves path, or the default location when it is blank, to an
// absolute file name.
func Path(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	return config.ExpandPath(path)
}

// Load reads preferences from path. It always returns usable preferences: a
// missing file gives Default with a nil error, while an unreadable or
// malformed file gives Default together with the error so callers can report
// it without failing startup.
func Load(path string) (Prefs, error) {
	resolved, err := Path(path)
	if err != nil {
		return Default(), err
	}

	file, err := os.Open(resolved)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("open prefs: %w", err)
	}
	defer file.Close()

	p := Default()
	if err := toml.NewDecoder(file).Decode(&p); err != nil {
		return Default(), fmt.Errorf("parse prefs %s: %w", resolved, err)
	}
	return p.normalize(), nil
}

// Save writes p to path, creating parent directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := Path(path)
	if err != nil {
		return fmt.Errorf("resolve prefs path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	file, err := os.Create(resolved)
	if err != nil {
		return fmt.Errorf("create prefs: %w", err)
	}
	if err := toml.NewEncoder(file).Encode(p.normalize()); err != nil {
		_ = file.Close()
		return fmt.Errorf("encode prefs: %w", err)
	}
	return file.Close()
}

func (p Prefs) normalize() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	return p
}
