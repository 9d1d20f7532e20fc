package term

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/32bitkid/p8emu/input"
	"github.com/32bitkid/p8emu/screen"
)

func newTestTerminal(t *testing.T, cols, rows int, hold time.Duration) *Terminal {
	sim := tcell.NewSimulationScreen("UTF-8")
	term, err := New(Options{Screen: sim, Hold: hold})
	require.NoError(t, err)
	sim.SetSize(cols, rows)
	t.Cleanup(term.Close)
	return term
}

func keyRune(k rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, k, tcell.ModNone)
}

func TestPresent(t *testing.T) {
	term := newTestTerminal(t, 200, 100, 0)
	buf := screen.ScalerNx{Factor: 2}.NewBuffer(screen.Bounds)
	buf.RectFill(0, 0, 3, 3, screen.Pack(screen.DefaultPalettes.PICO8[7]))

	require.NoError(t, term.Present(buf.Image()))

	r, _, _, _ := term.screen.GetContent(0, 0)
	assert.Equal(t, halfBlock, r)
	r, _, _, _ = term.screen.GetContent(screen.Width-1, screen.Height/2-1)
	assert.Equal(t, halfBlock, r)
	r, _, _, _ = term.screen.GetContent(screen.Width, 0)
	assert.NotEqual(t, halfBlock, r, "nothing right of the frame")
	r, _, _, _ = term.screen.GetContent(0, screen.Height/2)
	assert.NotEqual(t, halfBlock, r, "nothing below the frame")
}

func TestPresentSmallTerminal(t *testing.T) {
	term := newTestTerminal(t, 20, 10, 0)
	buf := screen.ScalerNx{Factor: 1}.NewBuffer(screen.Bounds)
	assert.NoError(t, term.Present(buf.Image()))

	r, _, _, _ := term.screen.GetContent(19, 9)
	assert.Equal(t, halfBlock, r)
}

func TestTranslateControlKeys(t *testing.T) {
	term := newTestTerminal(t, 10, 10, 0)
	now := time.Unix(0, 0)

	quit := []input.Event{{Kind: input.Quit}}
	assert.Equal(t, quit, term.translate(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), now))
	assert.Equal(t, quit, term.translate(keyRune('q'), now))
	assert.Equal(t, []input.Event{{Kind: input.Debug}}, term.translate(keyRune('r'), now))
	assert.Empty(t, term.translate(keyRune('k'), now))
	assert.Empty(t, term.translate(tcell.NewEventResize(10, 10), now))
}

func TestTranslateButtons(t *testing.T) {
	term := newTestTerminal(t, 10, 10, 0)
	now := time.Unix(0, 0)

	cases := []struct {
		ev     *tcell.EventKey
		button input.Button
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), input.Left},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), input.Right},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), input.Up},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), input.Down},
		{keyRune('z'), input.O},
		{keyRune('x'), input.X},
	}
	for _, c := range cases {
		assert.Equal(t, []input.Event{input.Press(c.button)}, term.translate(c.ev, now), c.button.String())
	}
}

func TestHoldReleasesButtons(t *testing.T) {
	term := newTestTerminal(t, 10, 10, 100*time.Millisecond)
	start := time.Unix(0, 0)

	assert.Equal(t, []input.Event{input.Press(input.O)}, term.translate(keyRune('z'), start))

	// Repeats extend the hold without pressing again.
	assert.Empty(t, term.translate(keyRune('c'), start.Add(80*time.Millisecond)))
	assert.Empty(t, term.expire(start.Add(150*time.Millisecond)))

	assert.Equal(t, []input.Event{input.Release(input.O)}, term.expire(start.Add(180*time.Millisecond)))
	assert.Empty(t, term.expire(start.Add(time.Second)))

	assert.Equal(t, []input.Event{input.Press(input.O)}, term.translate(keyRune('z'), start.Add(time.Second)))
}

func TestDefaultHold(t *testing.T) {
	term := newTestTerminal(t, 10, 10, 0)
	assert.Equal(t, DefaultHold, term.hold)
}
