// Package ui provides the terminal viewer for a filtered WSJT-X log.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. All window logic lives in the viewer
// package; this package translates key presses into viewer Actions, keeps
// the returned Frame, and draws it with Lipgloss:
//
//	key press → keyMap → viewer.Controller.Reduce → Frame → View()
//
// A navigator.Navigator follows the anchor row of the current window so the
// header can show the cursor line and "Y" can copy it.
//
// # Package Structure
//
//   - app.go: Model, Update loop, key handling and Run
//   - keys.go: bubbles/key bindings and help.KeyMap implementation
//   - view.go: header, bordered window, counters and command bar
//   - help.go: full-help overlay
//   - notice.go: transient notices cleared by a sequenced timer
//   - clipboard.go: clipboard writes as tea.Cmd
//   - theme.go, style_helpers.go: palettes and background-safe rendering
//
// # Display
//
// The window always has WindowSize rows. Rows outside the sequence are blank.
// Occurrences of the counterpart callsign are drawn in the theme's danger
// color, rows containing it end with the mark suffix, and "▲ n"/"▼ n" beside
// the window count counterpart rows above and below. Long lines are clipped
// to the terminal width by display cells.
//
// # Key Bindings
//
//   - g/home, G/end: first or last window
//   - ':': show from a 1-based line (enter applies, esc cancels)
//   - k/up, j/down: shift by one line while shifting is allowed
//   - n, N/p: next or previous RR73 line
//   - y, Y: copy counterpart or anchor line
//   - #: toggle line numbers, T: cycle theme (both saved to prefs)
//   - ?: help, q or Ctrl+C: quit
package ui
