// Package navigator provides a positional cursor over filtered log lines.
package navigator

// Navigator walks an immutable sequence of lines. The cursor starts at the
// first line, or is undefined when the sequence is empty.
type Navigator struct {
	lines  []string
	index  int
	active bool
}

// New returns a Navigator over a private copy of lines.
func New(lines []string) *Navigator {
	dup := make([]string, len(lines))
	copy(dup, lines)
	return &Navigator{lines: dup, active: len(dup) > 0}
}

// Len returns the number of lines.
func (n *Navigator) Len() int {
	return len(n.lines)
}

// Cursor returns the current index, or false when it is undefined.
func (n *Navigator) Cursor() (int, bool) {
	return n.index, n.active
}

// Lines returns a copy of the sequence.
func (n *Navigator) Lines() []string {
	dup := make([]string, len(n.lines))
	copy(dup, n.lines)
	return dup
}

// First moves the cursor to the first line.
func (n *Navigator) First() (string, bool) {
	if len(n.lines) == 0 {
		n.active = false
		return "", false
	}
	n.index, n.active = 0, true
	return n.lines[0], true
}

// Last moves the cursor to the last line.
func (n *Navigator) Last() (string, bool) {
	if len(n.lines) == 0 {
		n.active = false
		return "", false
	}
	n.index, n.active = len(n.lines)-1, true
	return n.lines[n.index], true
}

// StepForward advances the cursor by one line. At the end, or with an
// undefined cursor, it reports false and leaves the cursor alone.
func (n *Navigator) StepForward() (string, bool) {
	if !n.active || n.index+1 >= len(n.lines) {
		return "", false
	}
	n.index++
	return n.lines[n.index], true
}

// StepBackward moves the cursor back by one line.
func (n *Navigator) StepBackward() (string, bool) {
	if !n.active || n.index-1 < 0 {
		return "", false
	}
	n.index--
	return n.lines[n.index], true
}

// At returns the line at the 0-based index i and moves the cursor there.
// Out-of-range indexes report false without touching the cursor.
func (n *Navigator) At(i int) (string, bool) {
	if i < 0 || i >= len(n.lines) {
		return "", false
	}
	n.index, n.active = i, true
	return n.lines[i], true
}
