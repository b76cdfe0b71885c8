// Package app is the composition root for qsoview.
//
// # Overview
//
// Run wires configuration, the log filter, debug logging, preferences and
// the UI into one session. Filter performs only the filter pass for the
// headless "filter" command.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> Resolve()              config.Load + flag overrides + Validate
//	       ├─────> logging.Setup()        debug log file, or discard
//	       ├─────> logfilter.FilterFile() read input, write output, keep lines
//	       ├─────> prefs.Load()           theme and line numbers
//	       └─────> ui.Run()               viewer (blocks)
//
// # Error Handling
//
// Fatal errors (returned from Run and Filter):
//   - Config file unreadable or invalid TOML
//   - No callsign after applying overrides (config.ErrNoCallsign)
//   - Input file missing or unreadable, output file not writable
//   - Unknown input encoding label
//
// Preference load failures fall back to defaults. Nothing is retried.
package app
