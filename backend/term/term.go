// Package term shows frames in a terminal, two logical pixels per character
// cell, and turns key presses into console buttons.
package term

import (
	"context"
	"errors"
	"image"
	"io"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/32bitkid/p8emu/driver"
	"github.com/32bitkid/p8emu/input"
	"github.com/32bitkid/p8emu/screen"
)

// DefaultHold is how long a button stays down after the last key repeat.
const DefaultHold = 250 * time.Millisecond

const (
	halfBlock = '▀'
	tick      = time.Millisecond
)

type Options struct {
	// Hold replaces DefaultHold. Terminals do not report key releases, so a
	// button is released once no repeat has arrived for this long.
	Hold time.Duration
	// Screen is used instead of the process terminal when set.
	Screen tcell.Screen
	Logger *log.Logger
}

type Terminal struct {
	screen tcell.Screen
	hold   time.Duration
	logger *log.Logger

	// seen is when each button's key last arrived; zero while released.
	seen [input.NumButtons]time.Time
}

var _ driver.Presenter = (*Terminal)(nil)

func New(options ...Options) (*Terminal, error) {
	t := &Terminal{
		hold:   DefaultHold,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opts := range options {
		if opts.Hold > 0 {
			t.hold = opts.Hold
		}
		if opts.Screen != nil {
			t.screen = opts.Screen
		}
		if opts.Logger != nil {
			t.logger = opts.Logger
		}
	}

	if t.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		t.screen = s
	}
	if err := t.screen.Init(); err != nil {
		return nil, err
	}
	t.screen.HideCursor()
	t.screen.Clear()

	w, h := t.screen.Size()
	t.logger.Printf("term: screen %dx%d, key hold %v", w, h, t.hold)
	return t, nil
}

func (t *Terminal) Close() {
	t.screen.Fini()
	t.logger.Printf("term: closed")
}

func rgb(c screen.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c>>16&0xff), int32(c>>8&0xff), int32(c&0xff))
}

// Present draws frame at logical resolution. Rows or columns that do not fit
// the terminal are cut off.
func (t *Terminal) Present(frame image.Image) error {
	var fb *screen.Framebuffer
	switch f := frame.(type) {
	case *screen.Framebuffer:
		fb = f
	default:
		fb = screen.NewFramebuffer(frame.Bounds(), 1)
		for y := fb.Rect.Min.Y; y < fb.Rect.Max.Y; y++ {
			for x := fb.Rect.Min.X; x < fb.Rect.Max.X; x++ {
				fb.Set(x, y, frame.At(x, y))
			}
		}
	}

	w, h := fb.Rect.Dx()/fb.Scale, fb.Rect.Dy()/fb.Scale
	cols, rows := t.screen.Size()
	if cols > w {
		cols = w
	}
	if rows > (h+1)/2 {
		rows = (h + 1) / 2
	}

	for row := 0; row < rows; row++ {
		for x := 0; x < cols; x++ {
			top := fb.LogicalAt(x, 2*row)
			bottom := screen.Black
			if 2*row+1 < h {
				bottom = fb.LogicalAt(x, 2*row+1)
			}
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			t.screen.SetContent(x, row, halfBlock, nil, style)
		}
	}
	t.screen.Show()
	return nil
}

func keyButton(ev *tcell.EventKey) (input.Button, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return input.Left, true
	case tcell.KeyRight:
		return input.Right, true
	case tcell.KeyUp:
		return input.Up, true
	case tcell.KeyDown:
		return input.Down, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'z', 'Z', 'c', 'C':
			return input.O, true
		case 'x', 'X', 'v', 'V':
			return input.X, true
		}
	}
	return 0, false
}

// translate turns a terminal event into console events. A key repeat of a
// button that is already down only extends its hold.
func (t *Terminal) translate(ev tcell.Event, now time.Time) []input.Event {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return nil
	}

	switch {
	case key.Key() == tcell.KeyEscape, key.Key() == tcell.KeyCtrlC,
		key.Key() == tcell.KeyRune && (key.Rune() == 'q' || key.Rune() == 'Q'):
		return []input.Event{{Kind: input.Quit}}
	case key.Key() == tcell.KeyRune && (key.Rune() == 'r' || key.Rune() == 'R'):
		return []input.Event{{Kind: input.Debug}}
	}

	b, ok := keyButton(key)
	if !ok {
		return nil
	}
	wasDown := !t.seen[b].IsZero()
	t.seen[b] = now
	if wasDown {
		return nil
	}
	return []input.Event{input.Press(b)}
}

// expire releases every button whose key has not repeated within the hold.
func (t *Terminal) expire(now time.Time) []input.Event {
	var events []input.Event
	for b, seen := range t.seen {
		if !seen.IsZero() && now.Sub(seen) >= t.hold {
			t.seen[b] = time.Time{}
			events = append(events, input.Release(input.Button(b)))
		}
	}
	return events
}

// Run drives d until a quit key is pressed, ctx is done, or the driver fails.
func (t *Terminal) Run(ctx context.Context, d *driver.Driver, clock driver.Clock) error {
	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	d.Start(clock.Now())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				t.screen.Sync()
				continue
			}
			for _, e := range t.translate(ev, clock.Now()) {
				d.Push(e)
			}

		case <-ticker.C:
			now := clock.Now()
			for _, e := range t.expire(now) {
				d.Push(e)
			}
			if _, err := d.Poll(now); err != nil {
				if errors.Is(err, driver.ErrQuit) {
					return nil
				}
				return err
			}
		}
	}
}
