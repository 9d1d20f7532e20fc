// Package driver runs game logic at a fixed rate and hands every finished
// frame to a presenter.
package driver

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"time"

	"github.com/32bitkid/p8emu/input"
	"github.com/32bitkid/p8emu/screen"
)

// DefaultStep is roughly 30 frames per second.
const DefaultStep = 33 * time.Millisecond

// ErrQuit is returned by Poll once a quit event has been drained.
var ErrQuit = errors.New("driver: quit")

type Game interface {
	Update()
	Draw()
}

// Debugger is implemented by games that react to the debug key.
type Debugger interface {
	Debug()
}

type Presenter interface {
	Present(frame image.Image) error
}

// PresenterFunc adapts a function to a Presenter.
type PresenterFunc func(frame image.Image) error

func (f PresenterFunc) Present(frame image.Image) error { return f(frame) }

type Options struct {
	Step   time.Duration
	Logger *log.Logger
}

type Driver struct {
	game      Game
	buf       screen.Buffer
	buttons   *input.Buttons
	presenter Presenter

	queue  input.Queue
	step   time.Duration
	last   time.Time
	frames uint64
	logger *log.Logger
}

// New builds a driver. Button state drained from the queue is written to
// buttons, which is normally the state the console reads BTN from.
func New(game Game, buf screen.Buffer, buttons *input.Buttons, presenter Presenter, options ...Options) *Driver {
	d := &Driver{
		game:      game,
		buf:       buf,
		buttons:   buttons,
		presenter: presenter,
		step:      DefaultStep,
		logger:    log.New(io.Discard, "", 0),
	}
	for _, opts := range options {
		if opts.Step > 0 {
			d.step = opts.Step
		}
		if opts.Logger != nil {
			d.logger = opts.Logger
		}
	}
	return d
}

func (d *Driver) Step() time.Duration { return d.step }

// Frames is the number of steps run so far.
func (d *Driver) Frames() uint64 { return d.frames }

// Last is the time the most recent step was due.
func (d *Driver) Last() time.Time { return d.last }

// Push queues an input event for the next step.
func (d *Driver) Push(ev input.Event) {
	d.queue.Push(ev)
}

// Start resets the accumulator so the first step is due one step after now.
func (d *Driver) Start(now time.Time) {
	d.last = now
}

// Poll runs every step that is due at now and returns how many ran. A driver
// that was never started starts at now and runs nothing.
func (d *Driver) Poll(now time.Time) (int, error) {
	if d.last.IsZero() {
		d.Start(now)
		return 0, nil
	}

	steps := 0
	for now.Sub(d.last) >= d.step {
		if err := d.cycle(); err != nil {
			return steps, err
		}
		d.last = d.last.Add(d.step)
		steps++
	}

	if steps > 1 {
		d.logger.Printf("driver: behind by %d steps at frame %d", steps-1, d.frames)
	}
	return steps, nil
}

func (d *Driver) cycle() error {
	for _, ev := range d.queue.Drain(d.buttons) {
		switch ev.Kind {
		case input.Quit:
			return ErrQuit
		case input.Debug:
			if dbg, ok := d.game.(Debugger); ok {
				dbg.Debug()
			}
		}
	}

	d.game.Update()
	d.buf.Clear(screen.Black)
	d.game.Draw()
	d.frames++

	if err := d.presenter.Present(d.buf.Image()); err != nil {
		return fmt.Errorf("driver: present frame %d: %w", d.frames, err)
	}
	return nil
}
