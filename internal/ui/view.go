package ui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/five82/qsoview/internal/viewer"
)

const (
	minGutterWidth = 3
	counterWidth   = 8
)

// renderMain renders header, window and command bar.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderWindow())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	return b.String()
}

// renderHeader renders the status line.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	cfg := m.ctrl.Config()

	parts := []string{
		bg.Render("qsoview", styles.Logo),
		bg.Render(cfg.Callsign, styles.AccentText.Bold(true)),
	}

	if m.frame.Counterpart != "" {
		parts = append(parts,
			bg.Render("QSO", styles.MutedText)+bg.Space()+
				bg.Render(m.frame.Counterpart, styles.DangerText))
	} else {
		parts = append(parts, bg.Render("no "+cfg.Terminator+" yet", styles.FaintText))
	}

	parts = append(parts,
		bg.Render("Lines", styles.MutedText)+bg.Space()+
			bg.Render(m.windowRange(), styles.Text))

	if idx, ok := m.nav.Cursor(); ok {
		parts = append(parts,
			bg.Render("@", styles.MutedText)+bg.Space()+
				bg.Render(strconv.Itoa(idx+1), styles.InfoText))
	}

	if m.inputPath != "" && m.width >= 100 {
		parts = append(parts, bg.Render(truncate(filepath.Base(m.inputPath), 30), styles.FaintText))
	}

	return styles.Header.Width(max(m.width, 1)).Render(bg.Join(parts, "  "))
}

// windowRange describes the visible slice as 1-based "from-to/total".
func (m Model) windowRange() string {
	total := m.frame.Total
	if total == 0 {
		return "0/0"
	}
	start, size := m.frame.WindowStart, len(m.frame.Rows)
	if start >= total || start <= -size {
		return fmt.Sprintf("-/%d", total)
	}
	from := max(start, 0) + 1
	to := min(start+size, total)
	return fmt.Sprintf("%d-%d/%d", from, to, total)
}

// renderWindow draws the bordered window with the counter column beside it.
func (m Model) renderWindow() string {
	styles := m.theme.Styles()
	cfg := m.ctrl.Config()

	windowStyle := styles.Window
	if m.prompting {
		windowStyle = windowStyle.BorderForeground(lipgloss.Color(m.theme.BorderFocus))
	}

	// border (2) + padding (2) + counter column
	textWidth := max(m.width-4-counterWidth, 10)

	lines := make([]string, len(m.frame.Rows))
	for i, row := range m.frame.Rows {
		lines[i] = m.renderRow(row, textWidth, cfg.MarkSuffix, styles)
	}
	box := windowStyle.Render(strings.Join(lines, "\n"))

	return lipgloss.JoinHorizontal(lipgloss.Top, box, m.renderCounters(len(m.frame.Rows), styles))
}

// renderRow renders one window row clipped to width cells. Marked rows sit on
// the theme's SurfaceAlt background across the full text width.
func (m Model) renderRow(row viewer.Row, width int, suffix string, styles Styles) string {
	var b strings.Builder

	styles = m.theme.rowStyles(styles, row)

	if m.prefs.LineNumbers {
		gw := gutterWidth(m.frame.Total)
		label := strings.Repeat(" ", gw)
		if !row.Blank {
			label = fmt.Sprintf("%*d", gw, row.Index+1)
		}
		b.WriteString(styles.Gutter.Render(label + " "))
		width -= gw + 1
	}

	if row.Blank {
		return b.String()
	}

	if row.Marked {
		width -= runewidth.StringWidth(suffix)
	}

	texts := make([]string, len(row.Segments))
	for i, seg := range row.Segments {
		texts[i] = seg.Text
	}
	used := 0
	for i, text := range clipSegments(texts, width) {
		used += runewidth.StringWidth(text)
		if row.Segments[i].Emphasis {
			b.WriteString(styles.DangerText.Render(text))
		} else {
			b.WriteString(styles.Text.Render(text))
		}
	}

	if row.Marked {
		b.WriteString(styles.DangerText.Render(suffix))
		b.WriteString(NewBgStyle(m.theme.SurfaceAlt).Spaces(width - used))
	}
	return b.String()
}

// renderCounters draws "▲ n" level with the first row and "▼ n" level with
// the last, matching the window's border offset.
func (m Model) renderCounters(rows int, styles Styles) string {
	col := make([]string, rows+2)
	if m.frame.Above > 0 {
		col[1] = styles.DangerText.Render(fmt.Sprintf(" ▲ %d", m.frame.Above))
	}
	if m.frame.Below > 0 {
		col[rows] = styles.DangerText.Render(fmt.Sprintf(" ▼ %d", m.frame.Below))
	}
	return lipgloss.NewStyle().Width(counterWidth).Render(strings.Join(col, "\n"))
}

// renderCommandBar renders the prompt, the active notice, or key hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	width := max(m.width, 1)

	if m.prompting {
		hints := m.help.ShortHelpView(m.keys.promptHelp())
		return bg.FillLine(m.prompt.View()+bg.Spaces(2)+hints, width)
	}

	if m.notice != "" {
		style := styles.InfoText
		switch m.noticeKind {
		case noticeSuccess:
			style = styles.SuccessText
		case noticeWarn:
			style = styles.WarningText
		case noticeError:
			style = styles.DangerText
		}
		return styles.Footer.Width(width).Render(bg.Render(m.noticeKind.icon()+" "+m.notice, style))
	}

	var shift []string
	if m.frame.CanShiftBack {
		shift = append(shift, "k")
	}
	if m.frame.CanShiftForward {
		shift = append(shift, "j")
	}
	shiftHint := bg.Render("shift off", styles.FaintText)
	if len(shift) > 0 {
		shiftHint = bg.Render("shift "+strings.Join(shift, "/"), styles.MutedText)
	}

	return styles.Footer.Width(width).Render(m.help.ShortHelpView(m.keys.ShortHelp()) + bg.Spaces(2) + shiftHint)
}

func gutterWidth(total int) int {
	return max(len(strconv.Itoa(total)), minGutterWidth)
}
