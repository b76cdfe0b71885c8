package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/qsoview/internal/viewer"
)

// ErrNoCallsign is returned by Validate when no callsign is configured.
var ErrNoCallsign = errors.New("no callsign configured (set callsign in config or pass --callsign)")

// Config captures everything qsoview needs for one run.
type Config struct {
	Callsign      string
	InputPath     string
	OutputPath    string
	InputEncoding string
	WindowSize    int
	AnchorOffset  int
	Terminator    string
	MarkSuffix    string
	ClampWindow   bool
	DebugLog      string
}

const (
	defaultConfigPath = "~/.config/qsoview/config.toml"
	defaultInputPath  = "~/.local/share/WSJT-X/ALL.TXT"
	defaultOutputPath = "filtered_lines.txt"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		InputPath:    mustExpand(defaultInputPath),
		OutputPath:   mustExpand(defaultOutputPath),
		WindowSize:   viewer.DefaultWindowSize,
		AnchorOffset: viewer.DefaultAnchorOffset(viewer.DefaultWindowSize),
		Terminator:   viewer.DefaultTerminator,
		MarkSuffix:   viewer.DefaultMarkSuffix,
	}
}

type fileConfig struct {
	Callsign      string  `toml:"callsign"`
	Input         string  `toml:"input"`
	Output        string  `toml:"output"`
	InputEncoding string  `toml:"input_encoding"`
	WindowSize    int     `toml:"window_size"`
	AnchorOffset  *int    `toml:"anchor_offset"`
	Terminator    string  `toml:"terminator"`
	MarkSuffix    *string `toml:"mark_suffix"`
	ClampWindow   bool    `toml:"clamp_window"`
	DebugLog      string  `toml:"debug_log"`
}

// Load locates and parses the qsoview config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Callsign = strings.TrimSpace(raw.Callsign)
	if input := strings.TrimSpace(raw.Input); input != "" {
		cfg.InputPath = mustExpand(input)
	}
	if output := strings.TrimSpace(raw.Output); output != "" {
		cfg.OutputPath = mustExpand(output)
	}
	cfg.InputEncoding = strings.TrimSpace(raw.InputEncoding)
	if raw.WindowSize > 0 {
		cfg.WindowSize = raw.WindowSize
		cfg.AnchorOffset = viewer.DefaultAnchorOffset(raw.WindowSize)
	}
	if raw.AnchorOffset != nil {
		cfg.AnchorOffset = *raw.AnchorOffset
	}
	if term := strings.TrimSpace(raw.Terminator); term != "" {
		cfg.Terminator = term
	}
	if raw.MarkSuffix != nil {
		cfg.MarkSuffix = *raw.MarkSuffix
	}
	cfg.ClampWindow = raw.ClampWindow
	if debugLog := strings.TrimSpace(raw.DebugLog); debugLog != "" {
		cfg.DebugLog = mustExpand(debugLog)
	}

	return cfg, nil
}

// Validate reports configuration that cannot drive a run.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Callsign) == "" {
		return ErrNoCallsign
	}
	if strings.ContainsAny(c.Callsign, " \t") {
		return fmt.Errorf("callsign %q contains whitespace", c.Callsign)
	}
	if strings.TrimSpace(c.InputPath) == "" {
		return fmt.Errorf("input path is empty")
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return fmt.Errorf("output path is empty")
	}
	if c.WindowSize <= 0 {
		return fmt.Errorf("window_size must be positive, got %d", c.WindowSize)
	}
	if c.AnchorOffset < 0 || c.AnchorOffset >= c.WindowSize {
		return fmt.Errorf("anchor_offset must be within [0, %d), got %d", c.WindowSize, c.AnchorOffset)
	}
	return nil
}

// Viewer returns the display controller settings.
func (c Config) Viewer() viewer.Config {
	return viewer.Config{
		Callsign:     c.Callsign,
		WindowSize:   c.WindowSize,
		AnchorOffset: c.AnchorOffset,
		Terminator:   c.Terminator,
		MarkSuffix:   c.MarkSuffix,
		ClampWindow:  c.ClampWindow,
	}
}

// ExpandPath resolves "~" and relative paths to an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
