// Package capture records presented frames as an animated GIF or a PNG
// snapshot.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"log"
	"time"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"

	"github.com/32bitkid/p8emu/driver"
	"github.com/32bitkid/p8emu/screen"
)

const maxGIFColors = 256

var ErrNoFrames = errors.New("capture: no frames recorded")

type Options struct {
	// CRT runs each frame through screen.RenderToCRT and quantizes the result.
	CRT bool
	// Delay between frames, driver.DefaultStep when zero.
	Delay time.Duration
	// Palette of plain frames, the PICO-8 palette when nil.
	Palette color.Palette
	Logger  *log.Logger
}

// GIF is a driver.Presenter that keeps every frame it is shown.
type GIF struct {
	crt     bool
	delay   int
	palette color.Palette
	logger  *log.Logger

	anim gif.GIF
}

var _ driver.Presenter = (*GIF)(nil)

func NewGIF(options ...Options) *GIF {
	g := &GIF{
		delay:   toCentiseconds(driver.DefaultStep),
		palette: screen.DefaultPalettes.PICO8,
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opts := range options {
		g.crt = g.crt || opts.CRT
		if opts.Delay > 0 {
			g.delay = toCentiseconds(opts.Delay)
		}
		if opts.Palette != nil {
			g.palette = opts.Palette
		}
		if opts.Logger != nil {
			g.logger = opts.Logger
		}
	}
	return g
}

func toCentiseconds(d time.Duration) int {
	cs := int((d + 5*time.Millisecond) / (10 * time.Millisecond))
	if cs < 1 {
		cs = 1
	}
	return cs
}

// logical drops the integer scale of a framebuffer.
func logical(frame image.Image) image.Image {
	if fb, ok := frame.(*screen.Framebuffer); ok && fb.Scale > 1 {
		return fb.Logical()
	}
	return frame
}

// Present converts frame to a paletted copy and appends it.
func (g *GIF) Present(frame image.Image) error {
	src := logical(frame)

	var pm *image.Paletted
	if g.crt {
		crt := screen.RenderToCRT(src)
		b := crt.Bounds()
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, maxGIFColors), crt))
		draw.Draw(pm, b, crt, b.Min, draw.Src)
	} else {
		b := src.Bounds()
		pm = image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), g.palette)
		draw.Draw(pm, pm.Rect, src, b.Min, draw.Src)
	}

	g.anim.Image = append(g.anim.Image, pm)
	g.anim.Delay = append(g.anim.Delay, g.delay)
	return nil
}

func (g *GIF) Len() int {
	return len(g.anim.Image)
}

// Encode writes the recorded frames as a looping animation.
func (g *GIF) Encode(w io.Writer) error {
	if len(g.anim.Image) == 0 {
		return ErrNoFrames
	}
	if err := gif.EncodeAll(w, &g.anim); err != nil {
		return fmt.Errorf("capture: encode gif: %w", err)
	}
	g.logger.Printf("capture: wrote %d frames", len(g.anim.Image))
	return nil
}

// PNG writes frame at logical resolution.
func PNG(w io.Writer, frame image.Image) error {
	if err := png.Encode(w, logical(frame)); err != nil {
		return fmt.Errorf("capture: encode png: %w", err)
	}
	return nil
}

type tee []driver.Presenter

func (t tee) Present(frame image.Image) error {
	for _, p := range t {
		if err := p.Present(frame); err != nil {
			return err
		}
	}
	return nil
}

// Tee presents every frame to each presenter in turn, stopping at the first
// error.
func Tee(presenters ...driver.Presenter) driver.Presenter {
	return tee(presenters)
}
