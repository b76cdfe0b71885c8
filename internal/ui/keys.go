package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the viewer.
type keyMap struct {
	// Window
	First     key.Binding
	Last      key.Binding
	GoTo      key.Binding
	ShiftUp   key.Binding
	ShiftDown key.Binding
	NextQSO   key.Binding
	PrevQSO   key.Binding

	// Clipboard
	YankCall key.Binding
	YankLine key.Binding

	// Display
	LineNumbers key.Binding
	CycleTheme  key.Binding
	Help        key.Binding
	Quit        key.Binding

	// Prompt
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		First: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First lines"),
		),
		Last: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Last lines"),
		),
		GoTo: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "Show from line"),
		),
		ShiftUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Shift -1 line"),
		),
		ShiftDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Shift +1 line"),
		),
		NextQSO: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Next RR73"),
		),
		PrevQSO: key.NewBinding(
			key.WithKeys("N", "p"),
			key.WithHelp("N/p", "Previous RR73"),
		),

		YankCall: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy counterpart"),
		),
		YankLine: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "Copy anchor line"),
		),

		LineNumbers: key.NewBinding(
			key.WithKeys("#"),
			key.WithHelp("#", "Toggle line numbers"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextQSO, k.PrevQSO, k.GoTo, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.First, k.Last, k.GoTo},
		{k.ShiftUp, k.ShiftDown},
		{k.NextQSO, k.PrevQSO},
		{k.YankCall, k.YankLine},
		{k.LineNumbers, k.CycleTheme, k.Help, k.Quit},
	}
}

// promptHelp returns the bindings shown while the line prompt is open.
func (k keyMap) promptHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}
