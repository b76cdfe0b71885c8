package viewer

import (
	"fmt"
	"math"
	"reflect"
	"testing"
)

// sampleLines builds 59 lines with terminators at indexes 6, 14, 24, 32, 47.
func sampleLines() []string {
	var lines []string
	for i := 1; i < 60; i++ {
		switch i {
		case 7, 15, 25, 33, 48:
			lines = append(lines, fmt.Sprintf("251208_0414%02d     3.573 Rx FT8    -12  0.4 1030 HB9EVT DJ2MS RR73\n", i))
		default:
			lines = append(lines, fmt.Sprintf("251208_0414%02d     3.573 Rx FT8    -10  0.4 1030 HB9EVT DJ2MS %d\n", i, i))
		}
	}
	return lines
}

func newSample(t *testing.T) *Controller {
	t.Helper()
	return New(sampleLines(), DefaultConfig("HB9EVT"))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("HB9EVT")
	if cfg.WindowSize != 20 || cfg.AnchorOffset != 15 || cfg.Terminator != "RR73" {
		t.Fatalf("DefaultConfig = %+v", cfg)
	}
}

func TestNew_NormalizesInvalidConfig(t *testing.T) {
	c := New(nil, Config{Callsign: "HB9EVT", WindowSize: -1, AnchorOffset: 99})
	got := c.Config()
	if got.WindowSize != DefaultWindowSize {
		t.Fatalf("WindowSize = %d, want %d", got.WindowSize, DefaultWindowSize)
	}
	if got.AnchorOffset != 15 {
		t.Fatalf("AnchorOffset = %d, want 15", got.AnchorOffset)
	}
	if got.Terminator != DefaultTerminator {
		t.Fatalf("Terminator = %q, want %q", got.Terminator, DefaultTerminator)
	}

	small := New(nil, Config{WindowSize: 3, AnchorOffset: -1})
	if small.Config().AnchorOffset != 0 {
		t.Fatalf("AnchorOffset for small window = %d, want 0", small.Config().AnchorOffset)
	}
}

func TestRenderWindow_AlwaysWindowSizeRows(t *testing.T) {
	c := newSample(t)
	for _, start := range []int{-100, -19, -1, 0, 10, 39, 58, 59, 1000} {
		rows := c.RenderWindow(start)
		if len(rows) != 20 {
			t.Fatalf("RenderWindow(%d) returned %d rows, want 20", start, len(rows))
		}
		for off, r := range rows {
			idx := start + off
			inRange := idx >= 0 && idx < c.Len()
			if r.Blank == inRange {
				t.Fatalf("RenderWindow(%d) row %d blank=%v, want %v", start, off, r.Blank, !inRange)
			}
			if r.Index != idx {
				t.Fatalf("row %d Index = %d, want %d", off, r.Index, idx)
			}
			if r.Blank && r.Text != "" {
				t.Fatalf("blank row has text %q", r.Text)
			}
		}
	}
}

func TestRenderWindow_StripsLineEnding(t *testing.T) {
	c := New([]string{"HB9EVT DJ2MS 1\r\n", "HB9EVT DJ2MS 2"}, DefaultConfig("HB9EVT"))
	rows := c.RenderWindow(0)
	if rows[0].Text != "HB9EVT DJ2MS 1" || rows[1].Text != "HB9EVT DJ2MS 2" {
		t.Fatalf("rows = %q, %q", rows[0].Text, rows[1].Text)
	}
}

func TestReduce_ShowFirstAndLast(t *testing.T) {
	c := newSample(t)

	s, f, ok := c.Reduce(State{WindowStart: 30}, ShowFirst{})
	if !ok || s.WindowStart != 0 || f.WindowStart != 0 {
		t.Fatalf("ShowFirst: state %+v ok %v", s, ok)
	}

	s, f, ok = c.Reduce(s, ShowLast{})
	if !ok || s.WindowStart != 39 {
		t.Fatalf("ShowLast: WindowStart = %d, want 39", s.WindowStart)
	}
	if f.Rows[19].Index != 58 || f.Rows[19].Blank {
		t.Fatalf("ShowLast: last row = %+v, want index 58", f.Rows[19])
	}

	short := New([]string{"HB9EVT a\n", "HB9EVT b\n"}, DefaultConfig("HB9EVT"))
	s, _, _ = short.Reduce(State{WindowStart: 5}, ShowLast{})
	if s.WindowStart != 0 {
		t.Fatalf("ShowLast on short sequence: WindowStart = %d, want 0", s.WindowStart)
	}
}

func TestReduce_ShowFrom(t *testing.T) {
	c := newSample(t)

	tests := []struct {
		name   string
		input  string
		start  int
		wantOK bool
	}{
		{"one based", "10", 9, true},
		{"trimmed", "  1 ", 0, true},
		{"negative allowed", "-5", -6, true},
		{"past end allowed", "100", 99, true},
		{"not a number", "abc", 7, false},
		{"empty", "", 7, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, ok := c.Reduce(State{WindowStart: 7}, ShowFrom{Input: tt.input})
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if s.WindowStart != tt.start {
				t.Fatalf("WindowStart = %d, want %d", s.WindowStart, tt.start)
			}
		})
	}
}

func TestReduce_ShowFromClamped(t *testing.T) {
	cfg := DefaultConfig("HB9EVT")
	cfg.ClampWindow = true
	c := New(sampleLines(), cfg)

	s, _, _ := c.Reduce(State{}, ShowFrom{Input: "-5"})
	if s.WindowStart != 0 {
		t.Fatalf("WindowStart = %d, want 0", s.WindowStart)
	}
	s, _, _ = c.Reduce(State{}, ShowFrom{Input: "100"})
	if s.WindowStart != 39 {
		t.Fatalf("WindowStart = %d, want 39", s.WindowStart)
	}
}

func TestReduce_ShowFromExtremeInput(t *testing.T) {
	lines := []string{
		"HB9EVT DJ2MS -10\n",
		"DJ2MS HB9EVT R-12\n",
		"HB9EVT DJ2MS RR73\n",
	}
	c := New(lines, DefaultConfig("HB9EVT"))

	tests := []struct {
		name         string
		input        string
		start        int
		above, below int
	}{
		{"min int", "-9223372036854775808", math.MinInt, 0, 3},
		{"max int", "9223372036854775807", math.MaxInt - 1, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, f, ok := c.Reduce(State{Counterpart: "DJ2MS"}, ShowFrom{Input: tt.input})
			if !ok {
				t.Fatalf("ok = false")
			}
			if s.WindowStart != tt.start {
				t.Fatalf("WindowStart = %d, want %d", s.WindowStart, tt.start)
			}
			if f.Above != tt.above || f.Below != tt.below {
				t.Fatalf("Above/Below = %d/%d, want %d/%d", f.Above, f.Below, tt.above, tt.below)
			}
			for _, r := range f.Rows {
				if !r.Blank {
					t.Fatalf("row %d not blank", r.Index)
				}
			}
			if f.CanShiftBack || f.CanShiftForward {
				t.Fatalf("shift enabled on an empty window")
			}
		})
	}

	s, _, _ := c.Reduce(State{WindowStart: math.MaxInt}, Shift{Delta: 1})
	if s.WindowStart != math.MaxInt {
		t.Fatalf("Shift past MaxInt wrapped to %d", s.WindowStart)
	}
}

func TestReduce_ShiftIsUnconditional(t *testing.T) {
	c := newSample(t)
	s, f, ok := c.Reduce(State{WindowStart: 0}, Shift{Delta: -1})
	if !ok || s.WindowStart != -1 {
		t.Fatalf("Shift -1 from 0: WindowStart = %d, want -1", s.WindowStart)
	}
	if !f.Rows[0].Blank || f.Rows[1].Index != 0 {
		t.Fatalf("Shift -1 rows = %+v", f.Rows[:2])
	}
	s, _, _ = c.Reduce(s, Shift{Delta: 1})
	if s.WindowStart != 0 {
		t.Fatalf("Shift +1: WindowStart = %d, want 0", s.WindowStart)
	}
}

func TestShiftAffordance(t *testing.T) {
	c := newSample(t)

	tests := []struct {
		start         int
		back, forward bool
	}{
		{0, false, true},
		{1, true, true},
		{38, true, true},
		{39, true, false},
		{56, true, false},
		{57, false, false},
		{-17, false, true},
		{-18, false, false},
	}
	for _, tt := range tests {
		f := c.Render(State{WindowStart: tt.start})
		if f.CanShiftBack != tt.back || f.CanShiftForward != tt.forward {
			t.Errorf("start %d: back=%v forward=%v, want back=%v forward=%v",
				tt.start, f.CanShiftBack, f.CanShiftForward, tt.back, tt.forward)
		}
	}

	tiny := New([]string{"HB9EVT a\n", "HB9EVT b\n"}, DefaultConfig("HB9EVT"))
	f := tiny.Render(State{WindowStart: 0})
	if f.CanShiftBack || f.CanShiftForward {
		t.Fatalf("two-line sequence should disable shifting")
	}
}

func TestFindTerminator(t *testing.T) {
	c := newSample(t)

	tests := []struct {
		name  string
		dir   Direction
		from  int
		want  int
		found bool
	}{
		{"forward from start", Forward, 0, 6, true},
		{"forward is strict", Forward, 6, 14, true},
		{"forward from before start", Forward, -10, 6, true},
		{"forward past last", Forward, 47, 0, false},
		{"backward is strict", Backward, 14, 6, true},
		{"backward from end", Backward, 58, 47, true},
		{"backward from beyond end", Backward, 500, 47, true},
		{"backward before first", Backward, 6, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.FindTerminator(tt.dir, tt.from)
			if ok != tt.found || got != tt.want {
				t.Fatalf("FindTerminator(%v, %d) = %d, %v, want %d, %v", tt.dir, tt.from, got, ok, tt.want, tt.found)
			}
		})
	}
}

func TestExtractCounterpart(t *testing.T) {
	line := "... HB9EVT DJ2MS RR73\n"
	tests := []struct {
		own   string
		line  string
		want  string
		found bool
	}{
		{"HB9EVT", line, "DJ2MS", true},
		{"DJ2MS", line, "HB9EVT", true},
		{"hb9evt", line, "DJ2MS", true},
		{"XX1XX", line, "", false},
		{"HB9EVT", "HB9EVT RR73\n", "", false},
		{"HB9EVT", "... HB9EVT DJ2MS RR73 extra\n", "", false},
		{"HB9EVT", "... HB9EVT DJ2MS RRR73\n", "", false},
		{"HB9EVT", "... HB9EVT HB9EVT RR73\n", "", false},
	}
	for _, tt := range tests {
		c := New(nil, DefaultConfig(tt.own))
		got, ok := c.ExtractCounterpart(tt.line)
		if ok != tt.found || got != tt.want {
			t.Errorf("ExtractCounterpart(%q) with own %q = %q, %v, want %q, %v", tt.line, tt.own, got, ok, tt.want, tt.found)
		}
	}
}

func TestReduce_JumpForwardAndBackward(t *testing.T) {
	c := newSample(t)

	// Anchor row is 15; the first terminator after index 15 is 24.
	s, f, ok := c.Reduce(State{WindowStart: 0}, Jump{Direction: Forward})
	if !ok {
		t.Fatalf("forward jump failed")
	}
	if s.WindowStart != 9 {
		t.Fatalf("WindowStart = %d, want 9", s.WindowStart)
	}
	if s.Counterpart != "DJ2MS" || f.Counterpart != "DJ2MS" {
		t.Fatalf("Counterpart = %q, want DJ2MS", s.Counterpart)
	}
	if f.Rows[15].Index != 24 {
		t.Fatalf("anchor row index = %d, want 24", f.Rows[15].Index)
	}

	s, f, ok = c.Reduce(State{WindowStart: 0}, Jump{Direction: Backward})
	if !ok || s.WindowStart != -1 || f.Rows[15].Index != 14 || !f.Rows[0].Blank {
		t.Fatalf("backward jump: state %+v ok %v", s, ok)
	}

	s, _, ok = c.Reduce(s, Jump{Direction: Backward})
	if !ok || s.WindowStart != -9 {
		t.Fatalf("second backward jump: WindowStart = %d, want -9", s.WindowStart)
	}

	before := s
	s, f, ok = c.Reduce(s, Jump{Direction: Backward})
	if ok {
		t.Fatalf("jump past first terminator should report no change")
	}
	if s != before || f.Rows != nil {
		t.Fatalf("failed jump changed state: %+v -> %+v", before, s)
	}
}

func TestReduce_JumpFromOutOfRangeWindow(t *testing.T) {
	c := newSample(t)
	// Reference clamps to the last line; nothing follows it.
	if _, _, ok := c.Reduce(State{WindowStart: 200}, Jump{Direction: Forward}); ok {
		t.Fatalf("forward jump from past the end should fail")
	}
	s, _, ok := c.Reduce(State{WindowStart: 200}, Jump{Direction: Backward})
	if !ok || s.WindowStart != 47-15 {
		t.Fatalf("backward jump from past the end: WindowStart = %d, ok %v", s.WindowStart, ok)
	}
}

func TestReduce_JumpClamped(t *testing.T) {
	cfg := DefaultConfig("HB9EVT")
	cfg.ClampWindow = true
	c := New(sampleLines(), cfg)

	s, _, ok := c.Reduce(State{WindowStart: 0}, Jump{Direction: Backward})
	if !ok || s.WindowStart != 0 {
		t.Fatalf("clamped backward jump: WindowStart = %d, want 0", s.WindowStart)
	}
}

func TestReduce_JumpKeepsCounterpartOnMalformedLine(t *testing.T) {
	lines := []string{
		"HB9EVT DJ2MS 1\n",
		"HB9EVT OE1XX RR73\n",
		"HB9EVT RR73 DJ2MS\n",
		"DJ2MS OE1XX RR73\n",
	}
	cfg := DefaultConfig("HB9EVT")
	cfg.WindowSize = 2
	cfg.AnchorOffset = 0
	c := New(lines, cfg)

	s, _, ok := c.Reduce(State{WindowStart: 0}, Jump{Direction: Forward})
	if !ok || s.WindowStart != 1 || s.Counterpart != "OE1XX" {
		t.Fatalf("first jump: %+v ok %v", s, ok)
	}
	// Terminator not in final position.
	s, _, ok = c.Reduce(s, Jump{Direction: Forward})
	if !ok || s.WindowStart != 2 || s.Counterpart != "OE1XX" {
		t.Fatalf("second jump: %+v ok %v", s, ok)
	}
	// Own callsign in neither slot.
	s, _, ok = c.Reduce(s, Jump{Direction: Forward})
	if !ok || s.WindowStart != 3 || s.Counterpart != "OE1XX" {
		t.Fatalf("third jump: %+v ok %v", s, ok)
	}
}

func TestRender_HighlightAndCounts(t *testing.T) {
	lines := []string{
		"HB9EVT OE1XX 1\n",
		"HB9EVT DJ2MS 2\n",
		"DJ2MS HB9EVT DJ2MS\n",
		"HB9EVT OE1XX 3\n",
		"HB9EVT DJ2MS 4\n",
	}
	cfg := DefaultConfig("HB9EVT")
	cfg.WindowSize = 2
	cfg.AnchorOffset = 1
	c := New(lines, cfg)

	f := c.Render(State{WindowStart: 2, Counterpart: "DJ2MS"})
	if f.Above != 1 || f.Below != 1 {
		t.Fatalf("Above/Below = %d/%d, want 1/1", f.Above, f.Below)
	}
	want := []Segment{
		{Text: "DJ2MS", Emphasis: true},
		{Text: " HB9EVT "},
		{Text: "DJ2MS", Emphasis: true},
	}
	if !reflect.DeepEqual(f.Rows[0].Segments, want) {
		t.Fatalf("Segments = %+v, want %+v", f.Rows[0].Segments, want)
	}
	if !f.Rows[0].Marked || f.Rows[1].Marked {
		t.Fatalf("Marked = %v/%v, want true/false", f.Rows[0].Marked, f.Rows[1].Marked)
	}

	plain := c.Render(State{WindowStart: 2})
	if plain.Above != 0 || plain.Below != 0 || plain.Rows[0].Marked {
		t.Fatalf("no counterpart should produce no marks: %+v", plain)
	}
	if len(plain.Rows[0].Segments) != 1 || plain.Rows[0].Segments[0].Emphasis {
		t.Fatalf("Segments without counterpart = %+v", plain.Rows[0].Segments)
	}
}

func TestRender_CountsWithFullyOutOfRangeWindow(t *testing.T) {
	c := newSample(t)
	f := c.Render(State{WindowStart: -50, Counterpart: "DJ2MS"})
	if f.Above != 0 || f.Below != 59 {
		t.Fatalf("Above/Below = %d/%d, want 0/59", f.Above, f.Below)
	}
	f = c.Render(State{WindowStart: 100, Counterpart: "DJ2MS"})
	if f.Above != 59 || f.Below != 0 {
		t.Fatalf("Above/Below = %d/%d, want 59/0", f.Above, f.Below)
	}
}

func TestEmptySequence(t *testing.T) {
	c := New(nil, DefaultConfig("HB9EVT"))

	for _, a := range []Action{ShowFirst{}, ShowLast{}, ShowFrom{Input: "5"}, Shift{Delta: 1}} {
		s, f, ok := c.Reduce(State{}, a)
		if !ok {
			t.Fatalf("%T: ok = false", a)
		}
		if s.WindowStart != 0 || len(f.Rows) != 20 {
			t.Fatalf("%T: state %+v rows %d", a, s, len(f.Rows))
		}
		for _, r := range f.Rows {
			if !r.Blank {
				t.Fatalf("%T: non-blank row on empty sequence", a)
			}
		}
		if f.CanShiftBack || f.CanShiftForward {
			t.Fatalf("%T: shifting enabled on empty sequence", a)
		}
	}
	for _, dir := range []Direction{Forward, Backward} {
		if _, _, ok := c.Reduce(State{}, Jump{Direction: dir}); ok {
			t.Fatalf("jump on empty sequence reported a change")
		}
	}
}
