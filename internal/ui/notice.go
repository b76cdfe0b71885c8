package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeSuccess
	noticeWarn
	noticeError
)

const noticeDuration = 2 * time.Second

type clearNoticeMsg struct{ id int }

func (k noticeKind) icon() string {
	switch k {
	case noticeSuccess:
		return "✓"
	case noticeWarn:
		return "!"
	case noticeError:
		return "×"
	default:
		return "ℹ"
	}
}

// startNotice shows msg until noticeDuration passes or a newer notice replaces it.
func (m *Model) startNotice(msg string, kind noticeKind) tea.Cmd {
	m.notice = msg
	m.noticeKind = kind

	// bump sequence to invalidate older timers
	m.noticeSeq++
	id := m.noticeSeq

	return tea.Tick(noticeDuration, func(time.Time) tea.Msg { return clearNoticeMsg{id: id} })
}
