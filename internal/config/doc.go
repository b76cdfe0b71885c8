// Package config loads qsoview settings from a TOML file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/qsoview/config.toml (default)
//  3. If the config file doesn't exist, fall back to built-in defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Command-line flags are applied on top of the loaded Config by the app
// package; Validate runs last.
//
// # Default Values
//
//   - Config file: ~/.config/qsoview/config.toml
//   - Input: ~/.local/share/WSJT-X/ALL.TXT
//   - Output: ./filtered_lines.txt
//   - Window size: 20 rows, anchor row 15 (window_size - 5)
//   - Terminator: RR73
//   - Mark suffix: five spaces and "***"
//
// There is no default callsign; Validate fails with ErrNoCallsign until one
// is configured.
//
// # TOML Format
//
//	callsign = "HB9EVT"
//	input = "~/.local/share/WSJT-X/ALL.TXT"
//	output = "~/qso/filtered_lines.txt"
//	input_encoding = "utf-8"
//	window_size = 20
//	anchor_offset = 15
//	terminator = "RR73"
//	mark_suffix = "     ***"
//	clamp_window = false
//	debug_log = "~/.cache/qsoview/debug.log"
//
// Setting window_size without anchor_offset moves the anchor to five rows
// above the new window bottom. Paths get tilde expansion and are made
// absolute.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than a
// missing file, and TOML parse errors. Missing config files are not an error.
package config
