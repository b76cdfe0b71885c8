package viewer

// Action is a user intent understood by Controller.Reduce.
type Action interface {
	action()
}

// ShowFirst anchors the window at the first line.
type ShowFirst struct{}

// ShowLast anchors the window so the last line is the bottom row.
type ShowLast struct{}

// ShowFrom anchors the window at a 1-based line number typed by the user.
// Input that is not an integer is ignored.
type ShowFrom struct {
	Input string
}

// Shift moves the window by Delta rows.
type Shift struct {
	Delta int
}

// Jump moves to the next or previous terminator line.
type Jump struct {
	Direction Direction
}

func (ShowFirst) action() {}
func (ShowLast) action()  {}
func (ShowFrom) action()  {}
func (Shift) action()     {}
func (Jump) action()      {}
