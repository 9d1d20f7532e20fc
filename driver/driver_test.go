package driver

import (
	"bytes"
	"errors"
	"image"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/32bitkid/p8emu/input"
	"github.com/32bitkid/p8emu/screen"
)

type recordingGame struct {
	calls   []string
	buttons *input.Buttons
	seen    []bool
	debug   int
}

func (g *recordingGame) Update() {
	g.calls = append(g.calls, "update")
	g.seen = append(g.seen, g.buttons.Pressed(int(input.X)))
}

func (g *recordingGame) Draw() {
	g.calls = append(g.calls, "draw")
}

func (g *recordingGame) Debug() {
	g.debug++
}

type plainGame struct{ updates int }

func (g *plainGame) Update() { g.updates++ }
func (g *plainGame) Draw()   {}

type fixture struct {
	game    *recordingGame
	buf     screen.Buffer
	driver  *Driver
	clock   *ManualClock
	frames  []image.Image
	buttons *input.Buttons
}

func newFixture(options ...Options) *fixture {
	f := &fixture{
		buttons: new(input.Buttons),
		buf:     screen.ScalerNx{Factor: 1}.NewBuffer(screen.Bounds),
		clock:   NewManualClock(time.Unix(1000, 0)),
	}
	f.game = &recordingGame{buttons: f.buttons}
	f.driver = New(f.game, f.buf, f.buttons, PresenterFunc(func(frame image.Image) error {
		f.frames = append(f.frames, frame)
		return nil
	}), options...)
	f.driver.Start(f.clock.Now())
	return f
}

func TestPollRunsWholeSteps(t *testing.T) {
	f := newFixture()
	start := f.clock.Now()

	f.clock.Advance(DefaultStep*3 + DefaultStep/2)
	n, err := f.driver.Poll(f.clock.Now())
	require.NoError(t, err)

	assert.Equal(t, 3, n)
	assert.Equal(t, start.Add(3*DefaultStep), f.driver.Last())
	assert.Equal(t, uint64(3), f.driver.Frames())
	assert.Len(t, f.frames, 3)
	assert.Equal(t, []string{"update", "draw", "update", "draw", "update", "draw"}, f.game.calls)

	// The leftover half step carries over.
	f.clock.Advance(DefaultStep / 2)
	n, err = f.driver.Poll(f.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, start.Add(4*DefaultStep), f.driver.Last())
}

func TestPollNothingDue(t *testing.T) {
	f := newFixture()
	f.clock.Advance(DefaultStep - time.Millisecond)

	n, err := f.driver.Poll(f.clock.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, f.game.calls)
}

func TestPollBeforeStart(t *testing.T) {
	game := new(plainGame)
	buf := screen.ScalerNx{Factor: 1}.NewBuffer(screen.Bounds)
	d := New(game, buf, new(input.Buttons), PresenterFunc(func(image.Image) error { return nil }))

	now := time.Unix(50, 0)
	n, err := d.Poll(now)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, now, d.Last())

	n, err = d.Poll(now.Add(DefaultStep))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, game.updates)
}

func TestCustomStep(t *testing.T) {
	f := newFixture(Options{Step: 10 * time.Millisecond})
	assert.Equal(t, 10*time.Millisecond, f.driver.Step())

	f.clock.Advance(25 * time.Millisecond)
	n, err := f.driver.Poll(f.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestInputDrainedBeforeEachStep(t *testing.T) {
	f := newFixture()

	f.driver.Push(input.Press(input.X))
	f.clock.Advance(DefaultStep)
	_, err := f.driver.Poll(f.clock.Now())
	require.NoError(t, err)

	f.driver.Push(input.Release(input.X))
	f.clock.Advance(DefaultStep)
	_, err = f.driver.Poll(f.clock.Now())
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false}, f.game.seen)
}

func TestFrameIsClearedBeforeDraw(t *testing.T) {
	f := newFixture()
	f.buf.RectFill(0, 0, 10, 10, screen.Pack(screen.DefaultPalettes.PICO8[7]))

	f.clock.Advance(DefaultStep)
	_, err := f.driver.Poll(f.clock.Now())
	require.NoError(t, err)

	assert.Equal(t, screen.Black, f.buf.Image().LogicalAt(5, 5))
}

func TestQuit(t *testing.T) {
	f := newFixture()
	f.driver.Push(input.Event{Kind: input.Quit})

	f.clock.Advance(2 * DefaultStep)
	n, err := f.driver.Poll(f.clock.Now())
	assert.True(t, errors.Is(err, ErrQuit))
	assert.Zero(t, n)
	assert.Empty(t, f.game.calls)
}

func TestDebug(t *testing.T) {
	f := newFixture()
	f.driver.Push(input.Event{Kind: input.Debug})

	f.clock.Advance(DefaultStep)
	_, err := f.driver.Poll(f.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, f.game.debug)

	// Games without a debug hook ignore the event.
	game := new(plainGame)
	d := New(game, f.buf, new(input.Buttons), PresenterFunc(func(image.Image) error { return nil }))
	d.Start(f.clock.Now())
	d.Push(input.Event{Kind: input.Debug})
	_, err = d.Poll(f.clock.Now().Add(DefaultStep))
	require.NoError(t, err)
	assert.Equal(t, 1, game.updates)
}

func TestPresentError(t *testing.T) {
	failure := errors.New("display gone")
	game := new(plainGame)
	buf := screen.ScalerNx{Factor: 1}.NewBuffer(screen.Bounds)
	d := New(game, buf, new(input.Buttons), PresenterFunc(func(image.Image) error { return failure }))

	start := time.Unix(0, 1)
	d.Start(start)
	n, err := d.Poll(start.Add(3 * DefaultStep))
	assert.True(t, errors.Is(err, failure))
	assert.Zero(t, n)
	assert.Equal(t, start, d.Last())
}

func TestCatchUpIsLogged(t *testing.T) {
	var out bytes.Buffer
	f := newFixture(Options{Logger: log.New(&out, "", 0)})

	f.clock.Advance(DefaultStep)
	_, _ = f.driver.Poll(f.clock.Now())
	assert.Empty(t, out.String())

	f.clock.Advance(3 * DefaultStep)
	_, _ = f.driver.Poll(f.clock.Now())
	assert.Contains(t, out.String(), "behind by 2 steps")
}

func TestManualClock(t *testing.T) {
	start := time.Unix(10, 0)
	c := NewManualClock(start)
	c.Advance(time.Second)
	assert.Equal(t, start.Add(time.Second), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())

	var _ Clock = SystemClock{}
}
