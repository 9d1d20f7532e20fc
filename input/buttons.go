// Package input holds the logical button state of the console and the queue
// that carries key events from a backend to the frame driver.
package input

type Button uint8

const (
	Left Button = iota
	Right
	Up
	Down
	O
	X

	NumButtons = 6
)

func (b Button) String() string {
	switch b {
	case Left:
		return "Button(Left)"
	case Right:
		return "Button(Right)"
	case Up:
		return "Button(Up)"
	case Down:
		return "Button(Down)"
	case O:
		return "Button(O)"
	case X:
		return "Button(X)"
	}
	return "Button(Invalid)"
}

// Buttons is a bitset with one bit per logical button.
type Buttons uint16

func (s *Buttons) Press(b Button) {
	if b < NumButtons {
		*s |= 1 << b
	}
}

func (s *Buttons) Release(b Button) {
	if b < NumButtons {
		*s &= ^(1 << b)
	}
}

// Pressed reports whether button i is held. Indices outside the button range
// are never pressed.
func (s Buttons) Pressed(i int) bool {
	if i < 0 || i >= NumButtons {
		return false
	}
	return s&(1<<uint(i)) != 0
}
