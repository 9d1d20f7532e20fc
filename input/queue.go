package input

type EventKind uint8

const (
	KeyDown EventKind = iota
	KeyUp
	Quit
	Debug
)

type Event struct {
	Kind   EventKind
	Button Button
}

func Press(b Button) Event   { return Event{Kind: KeyDown, Button: b} }
func Release(b Button) Event { return Event{Kind: KeyUp, Button: b} }

// Queue buffers events between polls. It is owned by the loop that runs the
// driver and is not safe for concurrent use.
type Queue struct {
	events []Event
}

func (q *Queue) Push(ev Event) {
	q.events = append(q.events, ev)
}

func (q *Queue) Len() int {
	return len(q.events)
}

// Drain applies every queued key event to state in arrival order and returns
// the remaining control events (Quit, Debug). The queue is empty afterwards.
func (q *Queue) Drain(state *Buttons) []Event {
	var control []Event
	for _, ev := range q.events {
		switch ev.Kind {
		case KeyDown:
			state.Press(ev.Button)
		case KeyUp:
			state.Release(ev.Button)
		default:
			control = append(control, ev)
		}
	}
	q.events = q.events[:0]
	return control
}
