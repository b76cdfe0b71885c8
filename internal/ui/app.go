package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/qsoview/internal/logging"
	"github.com/five82/qsoview/internal/navigator"
	"github.com/five82/qsoview/internal/prefs"
	"github.com/five82/qsoview/internal/viewer"
)

// Options configures the UI.
type Options struct {
	Lines     []string
	Viewer    viewer.Config
	InputPath string
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    *logrus.Logger

	// Clipboard writes text to the system clipboard. Nil uses atotto/clipboard.
	Clipboard func(string) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctrl      *viewer.Controller
	nav       *navigator.Navigator
	inputPath string
	prefs     prefs.Prefs
	prefsPath string
	log       *logrus.Logger
	copyText  func(string) error

	// Window state
	state viewer.State
	frame viewer.Frame

	// UI state
	keys     keyMap
	help     help.Model
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool

	// Line prompt
	prompt    textinput.Model
	prompting bool

	// Transient notice
	notice     string
	noticeKind noticeKind
	noticeSeq  int
}

// New creates a new Bubble Tea model showing the first window.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	copyText := opts.Clipboard
	if copyText == nil {
		copyText = writeClipboard
	}

	p := opts.Prefs
	if p.Theme == "" {
		p = prefs.Default()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	prompt := textinput.New()
	prompt.Prompt = "line: "
	prompt.Placeholder = "1"
	prompt.CharLimit = 9

	m := Model{
		ctrl:      viewer.New(opts.Lines, opts.Viewer),
		nav:       navigator.New(opts.Lines),
		inputPath: opts.InputPath,
		prefs:     p,
		prefsPath: prefsPath,
		log:       logger,
		copyText:  copyText,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     GetTheme(p.Theme),
		prompt:    prompt,
	}
	m.apply(viewer.ShowFirst{})
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case clearNoticeMsg:
		if msg.id == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("clipboard write failed")
			cmd := m.startNotice("Clipboard unavailable: "+msg.err.Error(), noticeError)
			return m, cmd
		}
		cmd := m.startNotice("Copied "+msg.label, noticeSuccess)
		return m, cmd

	case prefsSavedMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("save prefs failed")
			cmd := m.startNotice("Could not save preferences", noticeWarn)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompting {
		return m.handlePromptKey(msg)
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	term := m.ctrl.Config().Terminator

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.First):
		m.apply(viewer.ShowFirst{})

	case key.Matches(msg, m.keys.Last):
		m.apply(viewer.ShowLast{})

	case key.Matches(msg, m.keys.GoTo):
		m.prompting = true
		m.prompt.Reset()
		cmd := m.prompt.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.ShiftUp):
		if m.frame.CanShiftBack {
			m.apply(viewer.Shift{Delta: -1})
		}

	case key.Matches(msg, m.keys.ShiftDown):
		if m.frame.CanShiftForward {
			m.apply(viewer.Shift{Delta: 1})
		}

	case key.Matches(msg, m.keys.NextQSO):
		if !m.apply(viewer.Jump{Direction: viewer.Forward}) {
			cmd := m.startNotice("No further "+term, noticeInfo)
			return m, cmd
		}

	case key.Matches(msg, m.keys.PrevQSO):
		if !m.apply(viewer.Jump{Direction: viewer.Backward}) {
			cmd := m.startNotice("No earlier "+term, noticeInfo)
			return m, cmd
		}

	case key.Matches(msg, m.keys.YankCall):
		if m.state.Counterpart == "" {
			cmd := m.startNotice("No counterpart yet; jump to an "+term+" line first", noticeWarn)
			return m, cmd
		}
		return m, copyCmd(m.copyText, m.state.Counterpart, m.state.Counterpart)

	case key.Matches(msg, m.keys.YankLine):
		line, ok := m.anchorLine()
		if !ok {
			cmd := m.startNotice("Nothing to copy", noticeWarn)
			return m, cmd
		}
		return m, copyCmd(m.copyText, line, "line")

	case key.Matches(msg, m.keys.LineNumbers):
		m.prefs.LineNumbers = !m.prefs.LineNumbers
		return m, savePrefsCmd(m.prefsPath, m.prefs)

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		return m, savePrefsCmd(m.prefsPath, m.prefs)
	}

	return m, nil
}

// handlePromptKey processes keyboard input while the line prompt is open.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		value := m.prompt.Value()
		m.closePrompt()
		if !m.apply(viewer.ShowFrom{Input: value}) {
			cmd := m.startNotice(fmt.Sprintf("Not a line number: %q", value), noticeWarn)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.prompt.Blur()
	m.prompt.Reset()
}

// apply runs a through the controller and reports whether the display changed.
func (m *Model) apply(a viewer.Action) bool {
	next, frame, ok := m.ctrl.Reduce(m.state, a)
	if !ok {
		m.log.WithField("action", fmt.Sprintf("%T", a)).Debug("action left window unchanged")
		return false
	}
	m.state = next
	m.frame = frame
	m.syncCursor()
	m.log.WithFields(logrus.Fields{
		"action":      fmt.Sprintf("%T", a),
		"start":       next.WindowStart,
		"counterpart": next.Counterpart,
	}).Debug("window updated")
	return true
}

// syncCursor moves the navigator to the anchor row of the current window.
func (m *Model) syncCursor() {
	total := m.nav.Len()
	if total == 0 {
		return
	}
	idx := m.frame.WindowStart + m.ctrl.Config().AnchorOffset
	idx = min(max(idx, 0), total-1)
	m.nav.At(idx)
}

func (m Model) anchorLine() (string, bool) {
	idx, ok := m.nav.Cursor()
	if !ok {
		return "", false
	}
	return m.nav.At(idx)
}

type prefsSavedMsg struct{ err error }

func savePrefsCmd(path string, p prefs.Prefs) tea.Cmd {
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, p)}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
