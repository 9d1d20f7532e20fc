// Package window shows frames in a desktop window through ebiten.
package window

import (
	"errors"
	"image"
	"image/draw"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/32bitkid/p8emu/driver"
	"github.com/32bitkid/p8emu/input"
	"github.com/32bitkid/p8emu/screen"
)

type Options struct {
	Title string
	// Clock replaces the system clock the driver is polled with.
	Clock  driver.Clock
	Logger *log.Logger
}

var buttonKeys = []struct {
	key    ebiten.Key
	button input.Button
}{
	{ebiten.KeyArrowLeft, input.Left},
	{ebiten.KeyArrowRight, input.Right},
	{ebiten.KeyArrowUp, input.Up},
	{ebiten.KeyArrowDown, input.Down},
	{ebiten.KeyZ, input.O},
	{ebiten.KeyC, input.O},
	{ebiten.KeyX, input.X},
	{ebiten.KeyV, input.X},
}

var (
	quitKeys  = []ebiten.Key{ebiten.KeyEscape, ebiten.KeyQ}
	debugKeys = []ebiten.Key{ebiten.KeyR}
)

// Window is both the ebiten game and the frame presenter. Ebiten calls Update
// at its own tick rate; the driver decides how many console steps that is.
type Window struct {
	driver *driver.Driver
	clock  driver.Clock
	title  string
	logger *log.Logger

	width, height int
	pixels        []byte
	started       bool

	justPressed, justReleased func(ebiten.Key) bool
}

var (
	_ ebiten.Game      = (*Window)(nil)
	_ driver.Presenter = (*Window)(nil)
)

// New makes a window the size of bounds, which is the physical size of the
// frames it will be shown.
func New(bounds image.Rectangle, options ...Options) *Window {
	w := &Window{
		clock:  driver.SystemClock{},
		title:  "p8emu",
		logger: log.New(io.Discard, "", 0),
		width:  bounds.Dx(),
		height: bounds.Dy(),

		justPressed:  inpututil.IsKeyJustPressed,
		justReleased: inpututil.IsKeyJustReleased,
	}
	for _, opts := range options {
		if opts.Title != "" {
			w.title = opts.Title
		}
		if opts.Clock != nil {
			w.clock = opts.Clock
		}
		if opts.Logger != nil {
			w.logger = opts.Logger
		}
	}
	return w
}

// Attach sets the driver polled from Update. The driver is normally built
// with the window as its presenter, so it cannot be passed to New.
func (w *Window) Attach(d *driver.Driver) {
	w.driver = d
}

// Present keeps a copy of frame for the next Draw.
func (w *Window) Present(frame image.Image) error {
	if fb, ok := frame.(*screen.Framebuffer); ok {
		w.pixels = fb.RGBA(w.pixels)
		return nil
	}

	b := frame.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, frame, b.Min, draw.Src)
	w.pixels = rgba.Pix
	return nil
}

func anyKey(keys []ebiten.Key, test func(ebiten.Key) bool) bool {
	for _, k := range keys {
		if test(k) {
			return true
		}
	}
	return false
}

// keyEvents converts this tick's key transitions into console events.
func keyEvents(pressed, released func(ebiten.Key) bool) []input.Event {
	var events []input.Event
	if anyKey(quitKeys, pressed) {
		events = append(events, input.Event{Kind: input.Quit})
	}
	if anyKey(debugKeys, pressed) {
		events = append(events, input.Event{Kind: input.Debug})
	}
	for _, bk := range buttonKeys {
		if pressed(bk.key) {
			events = append(events, input.Press(bk.button))
		}
		if released(bk.key) {
			events = append(events, input.Release(bk.button))
		}
	}
	return events
}

func (w *Window) Update() error {
	if w.driver == nil {
		return errors.New("window: no driver attached")
	}
	if !w.started {
		w.driver.Start(w.clock.Now())
		w.started = true
	}

	for _, ev := range keyEvents(w.justPressed, w.justReleased) {
		w.driver.Push(ev)
	}

	if _, err := w.driver.Poll(w.clock.Now()); err != nil {
		if errors.Is(err, driver.ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (w *Window) Draw(dst *ebiten.Image) {
	if len(w.pixels) == 4*w.width*w.height {
		dst.WritePixels(w.pixels)
	}
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.width, w.height
}

// Run opens the window and blocks until it is closed or a quit key is
// pressed.
func (w *Window) Run() error {
	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowTitle(w.title)
	w.logger.Printf("window: %dx%d %q", w.width, w.height, w.title)

	err := ebiten.RunGame(w)
	w.logger.Printf("window: closed")
	return err
}
