package ui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

type clipboardMsg struct {
	label string
	err   error
}

func writeClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// copyCmd writes text off the update loop; xclip and friends may block.
func copyCmd(write func(string) error, text, label string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{label: label, err: write(text)}
	}
}
