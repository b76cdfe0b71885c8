package viewer

import (
	"math"
	"strconv"
	"strings"
)

// Defaults used when a Config leaves a field unset or invalid.
const (
	DefaultWindowSize = 20
	DefaultTerminator = "RR73"
	DefaultMarkSuffix = "     ***"

	anchorFromBottom = 5
)

// Direction selects the scan direction for terminator jumps.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Config holds the controller's constants. Nothing is read from globals.
type Config struct {
	Callsign     string
	WindowSize   int
	AnchorOffset int    // row within the window where a jumped-to terminator lands
	Terminator   string // marks a completed exchange
	MarkSuffix   string // appended to rows mentioning the counterpart
	ClampWindow  bool   // keep ShowFrom and Jump windows inside the sequence
}

// DefaultConfig returns the stock configuration for callsign.
func DefaultConfig(callsign string) Config {
	return Config{
		Callsign:     callsign,
		WindowSize:   DefaultWindowSize,
		AnchorOffset: DefaultAnchorOffset(DefaultWindowSize),
		Terminator:   DefaultTerminator,
		MarkSuffix:   DefaultMarkSuffix,
	}
}

// DefaultAnchorOffset places the anchor five rows above the window bottom.
func DefaultAnchorOffset(windowSize int) int {
	return max(windowSize-anchorFromBottom, 0)
}

func (c Config) normalized() Config {
	if c.WindowSize <= 0 {
		c.WindowSize = DefaultWindowSize
	}
	if c.AnchorOffset < 0 || c.AnchorOffset >= c.WindowSize {
		c.AnchorOffset = DefaultAnchorOffset(c.WindowSize)
	}
	if strings.TrimSpace(c.Terminator) == "" {
		c.Terminator = DefaultTerminator
	}
	return c
}

// State is the mutable part of a viewing session.
type State struct {
	WindowStart int    // may be negative or past the end
	Counterpart string // empty until a terminator line yields one
}

// Segment is a run of row text, emphasized when it is the counterpart callsign.
type Segment struct {
	Text     string
	Emphasis bool
}

// Row is one display line of the window.
type Row struct {
	Index    int // absolute position in the sequence
	Text     string
	Blank    bool
	Marked   bool
	Segments []Segment
}

// Frame is everything the presentation layer needs to draw one window.
type Frame struct {
	WindowStart     int
	Total           int
	Rows            []Row
	Counterpart     string
	Above           int // counterpart lines before the window
	Below           int // counterpart lines after the window
	CanShiftBack    bool
	CanShiftForward bool
}

// Controller owns the filtered sequence and computes frames. It holds no
// session state; callers thread State through Reduce.
type Controller struct {
	cfg   Config
	lines []string
}

// New returns a Controller over a private copy of lines.
func New(lines []string, cfg Config) *Controller {
	dup := make([]string, len(lines))
	copy(dup, lines)
	return &Controller{cfg: cfg.normalized(), lines: dup}
}

// Config returns the effective configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Len returns the number of lines in the sequence.
func (c *Controller) Len() int {
	return len(c.lines)
}

// RenderWindow returns exactly WindowSize rows starting at start. Positions
// outside the sequence are blank rows; start is never clamped.
func (c *Controller) RenderWindow(start int) []Row {
	return c.rows(start, "")
}

// Render builds the frame for s.
func (c *Controller) Render(s State) Frame {
	total := len(c.lines)
	if total == 0 {
		s.WindowStart = 0
	}
	rows := c.rows(s.WindowStart, s.Counterpart)

	f := Frame{
		WindowStart: s.WindowStart,
		Total:       total,
		Rows:        rows,
		Counterpart: s.Counterpart,
	}
	f.Above, f.Below = c.offWindowCounts(s.WindowStart, s.Counterpart)
	f.CanShiftBack, f.CanShiftForward = c.shiftAffordance(s.WindowStart, rows)
	return f
}

// Reduce applies a to s. It reports false, with s unchanged and a zero
// Frame, when the action does not change the display.
func (c *Controller) Reduce(s State, a Action) (State, Frame, bool) {
	total := len(c.lines)
	switch a := a.(type) {
	case ShowFirst:
		s.WindowStart = 0
	case ShowLast:
		s.WindowStart = max(0, total-c.cfg.WindowSize)
	case ShowFrom:
		n, err := strconv.Atoi(strings.TrimSpace(a.Input))
		if err != nil {
			return s, Frame{}, false
		}
		s.WindowStart = c.clamp(addSat(n, -1))
	case Shift:
		s.WindowStart = addSat(s.WindowStart, a.Delta)
	case Jump:
		next, ok := c.jump(s, a.Direction)
		if !ok {
			return s, Frame{}, false
		}
		s = next
	default:
		return s, Frame{}, false
	}
	if total == 0 {
		s.WindowStart = 0
	}
	return s, c.Render(s), true
}

// FindTerminator scans strictly after (Forward) or strictly before
// (Backward) from for the nearest line containing the terminator.
func (c *Controller) FindTerminator(dir Direction, from int) (int, bool) {
	if dir == Backward {
		for i := min(from, len(c.lines)) - 1; i >= 0; i-- {
			if strings.Contains(c.lines[i], c.cfg.Terminator) {
				return i, true
			}
		}
		return 0, false
	}
	for i := max(from+1, 0); i < len(c.lines); i++ {
		if strings.Contains(c.lines[i], c.cfg.Terminator) {
			return i, true
		}
	}
	return 0, false
}

// ExtractCounterpart returns the other station of a terminator line shaped
// like "... <call1> <call2> RR73". Exactly one of the two calls must equal
// the own callsign, ignoring case.
func (c *Controller) ExtractCounterpart(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[len(fields)-1] != c.cfg.Terminator {
		return "", false
	}
	first, second := fields[len(fields)-3], fields[len(fields)-2]
	firstOwn := strings.EqualFold(first, c.cfg.Callsign)
	secondOwn := strings.EqualFold(second, c.cfg.Callsign)
	switch {
	case firstOwn && !secondOwn:
		return second, true
	case secondOwn && !firstOwn:
		return first, true
	default:
		return "", false
	}
}

func (c *Controller) jump(s State, dir Direction) (State, bool) {
	total := len(c.lines)
	if total == 0 {
		return s, false
	}
	ref := min(max(addSat(s.WindowStart, c.cfg.AnchorOffset), 0), total-1)
	hit, ok := c.FindTerminator(dir, ref)
	if !ok {
		return s, false
	}
	if cp, ok := c.ExtractCounterpart(c.lines[hit]); ok {
		s.Counterpart = cp
	}
	s.WindowStart = c.clamp(hit - c.cfg.AnchorOffset)
	return s, true
}

func (c *Controller) clamp(start int) int {
	if !c.cfg.ClampWindow {
		return start
	}
	return min(max(start, 0), max(len(c.lines)-c.cfg.WindowSize, 0))
}

func (c *Controller) rows(start int, counterpart string) []Row {
	rows := make([]Row, c.cfg.WindowSize)
	for offset := range rows {
		idx := addSat(start, offset)
		if idx < 0 || idx >= len(c.lines) {
			rows[offset] = Row{Index: idx, Blank: true}
			continue
		}
		text := strings.TrimRight(c.lines[idx], "\r\n")
		row := Row{Index: idx, Text: text, Segments: highlight(text, counterpart)}
		row.Marked = counterpart != "" && strings.Contains(text, counterpart)
		rows[offset] = row
	}
	return rows
}

func (c *Controller) offWindowCounts(start int, counterpart string) (above, below int) {
	if counterpart == "" {
		return 0, 0
	}
	total := len(c.lines)
	for i := 0; i < min(max(start, 0), total); i++ {
		if strings.Contains(c.lines[i], counterpart) {
			above++
		}
	}
	for i := max(addSat(start, c.cfg.WindowSize), 0); i < total; i++ {
		if strings.Contains(c.lines[i], counterpart) {
			below++
		}
	}
	return above, below
}

func (c *Controller) shiftAffordance(start int, rows []Row) (back, forward bool) {
	total := len(c.lines)
	if total <= 2 {
		return false, false
	}
	visible := 0
	for _, r := range rows {
		if !r.Blank {
			visible++
		}
	}
	back, forward = true, true
	if visible <= 2 {
		back, forward = false, false
	}
	if start <= 0 {
		back = false
	}
	if addSat(start, c.cfg.WindowSize) >= total {
		forward = false
	}
	return back, forward
}

func highlight(text, counterpart string) []Segment {
	if counterpart == "" || !strings.Contains(text, counterpart) {
		return []Segment{{Text: text}}
	}
	var segs []Segment
	rest := text
	for {
		idx := strings.Index(rest, counterpart)
		if idx < 0 {
			break
		}
		if idx > 0 {
			segs = append(segs, Segment{Text: rest[:idx]})
		}
		segs = append(segs, Segment{Text: counterpart, Emphasis: true})
		rest = rest[idx+len(counterpart):]
	}
	if rest != "" {
		segs = append(segs, Segment{Text: rest})
	}
	return segs
}

// addSat adds without wrapping; window starts come from user input and may
// sit anywhere in the int range.
func addSat(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}
