package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestButtons(t *testing.T) {
	var s Buttons
	s.Press(Left)
	s.Press(X)
	assert.True(t, s.Pressed(int(Left)))
	assert.True(t, s.Pressed(int(X)))
	assert.False(t, s.Pressed(int(Right)))

	s.Release(Left)
	assert.False(t, s.Pressed(int(Left)))
	assert.True(t, s.Pressed(int(X)))
}

func TestButtonsOutOfRange(t *testing.T) {
	var s Buttons
	s.Press(Button(9))
	assert.Equal(t, Buttons(0), s)
	assert.False(t, s.Pressed(-1))
	assert.False(t, s.Pressed(6))
}

func TestQueueDrain(t *testing.T) {
	var (
		q Queue
		s Buttons
	)
	q.Push(Press(Up))
	q.Push(Event{Kind: Debug})
	q.Push(Press(O))
	q.Push(Release(Up))
	q.Push(Event{Kind: Quit})

	control := q.Drain(&s)
	assert.Equal(t, []Event{{Kind: Debug}, {Kind: Quit}}, control)
	assert.False(t, s.Pressed(int(Up)))
	assert.True(t, s.Pressed(int(O)))
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Drain(&s))
}
