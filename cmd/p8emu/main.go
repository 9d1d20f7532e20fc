package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/32bitkid/p8emu"
	"github.com/32bitkid/p8emu/asset"
	"github.com/32bitkid/p8emu/backend/term"
	"github.com/32bitkid/p8emu/backend/window"
	"github.com/32bitkid/p8emu/capture"
	"github.com/32bitkid/p8emu/driver"
	"github.com/32bitkid/p8emu/input"
	"github.com/32bitkid/p8emu/screen"
)

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", log.LstdFlags)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func loadCart(c *cli.Context, logger *log.Logger) (*asset.Cart, error) {
	cart := asset.NewCart()
	if path := c.String("cart"); path != "" {
		var err error
		if cart, err = asset.LoadCart(path); err != nil {
			return nil, err
		}
		logger.Printf("cart %s: %+v", path, cart.Stats())
	}

	if path := c.String("sheet"); path != "" {
		sheet, err := readSheet(path)
		if err != nil {
			return nil, err
		}
		cart.SetSprites(sheet)
		logger.Printf("sheet %s replaces cart sprites", path)
	}

	if path := c.String("font"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		font, err := asset.DecodeFont(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		cart.Font = font
	}
	return cart, nil
}

// readSheet loads a raw sprite sheet: 128x128 pixels packed two per byte.
func readSheet(path string) (*image.Paletted, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet, err := asset.DecodeSheet(f, asset.SheetWidth, asset.SheetHeight)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sheet, nil
}

// session is everything a command needs to run the demo.
type session struct {
	buf     screen.Buffer
	buttons *input.Buttons
	con     *p8emu.Console
	game    driver.Game
	opts    driver.Options
	logger  *log.Logger
}

func newSession(c *cli.Context) (*session, error) {
	logger := newLogger(c)

	cart, err := loadCart(c, logger)
	if err != nil {
		return nil, err
	}

	scale := c.Int("scale")
	if scale < 1 {
		return nil, fmt.Errorf("invalid scale %d", scale)
	}

	buf := screen.ScalerNx{Factor: scale}.NewBuffer(screen.Bounds)
	buttons := new(input.Buttons)
	con := p8emu.New(buf, cart, p8emu.Options{Buttons: buttons})

	return &session{
		buf:     buf,
		buttons: buttons,
		con:     con,
		game:    newDemo(con),
		opts:    driver.Options{Step: c.Duration("step"), Logger: logger},
		logger:  logger,
	}, nil
}

func run(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	switch backend := c.String("backend"); backend {
	case "window":
		w := window.New(s.buf.Image().Bounds(), window.Options{Logger: s.logger})
		w.Attach(driver.New(s.game, s.buf, s.buttons, w, s.opts))
		if err := w.Run(); err != nil {
			return cli.NewExitError(err, 1)
		}

	case "term":
		t, err := term.New(term.Options{Hold: c.Duration("hold"), Logger: s.logger})
		if err != nil {
			return cli.NewExitError(fmt.Errorf("terminal: %w", err), 1)
		}
		defer t.Close()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		d := driver.New(s.game, s.buf, s.buttons, t, s.opts)
		if err := t.Run(ctx, d, driver.SystemClock{}); err != nil && !errors.Is(err, context.Canceled) {
			return cli.NewExitError(err, 1)
		}

	default:
		return cli.NewExitError(fmt.Errorf("unknown backend %q", backend), 1)
	}
	return nil
}

func record(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	frames := c.Int("frames")
	if frames < 1 {
		return cli.NewExitError(fmt.Errorf("invalid frame count %d", frames), 1)
	}

	anim := capture.NewGIF(capture.Options{
		CRT:     c.Bool("crt"),
		Delay:   c.Duration("step"),
		Palette: s.con.Palette.Base(),
		Logger:  s.logger,
	})

	var last image.Image
	keepLast := driver.PresenterFunc(func(frame image.Image) error {
		last = frame
		return nil
	})

	clock := driver.NewManualClock(time.Unix(0, 0))
	d := driver.New(s.game, s.buf, s.buttons, capture.Tee(anim, keepLast), s.opts)
	d.Start(clock.Now())
	for d.Frames() < uint64(frames) {
		clock.Advance(d.Step())
		if _, err := d.Poll(clock.Now()); err != nil {
			return cli.NewExitError(err, 1)
		}
	}

	if err := writeFile(c.String("out"), anim.Encode); err != nil {
		return cli.NewExitError(err, 1)
	}
	if path := c.String("snapshot"); path != "" {
		err := writeFile(path, func(w io.Writer) error { return capture.PNG(w, last) })
		if err != nil {
			return cli.NewExitError(err, 1)
		}
	}
	return nil
}

func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func info(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	path := c.Args().First()
	cart, err := asset.LoadCart(path)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	stats := cart.Stats()
	fmt.Fprintf(c.App.Writer, "%s\n", path)
	fmt.Fprintf(c.App.Writer, "  sprites:       %d\n", stats.Sprites)
	fmt.Fprintf(c.App.Writer, "  flagged tiles: %d\n", stats.Flagged)
	fmt.Fprintf(c.App.Writer, "  map cells:     %d\n", stats.MapCells)
	fmt.Fprintf(c.App.Writer, "  map rows used: %d\n", stats.MapRowsSet)

	if out := c.String("export-sheet"); out != "" {
		err := writeFile(out, func(w io.Writer) error { return asset.EncodeSheet(w, cart.Sprites) })
		if err != nil {
			return cli.NewExitError(err, 1)
		}
	}
	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "p8emu"
	app.Usage = "128x128 fantasy console graphics layer"
	app.Version = "0.1.0"

	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:    "scale",
			EnvVars: []string{"P8EMU_SCALE"},
			Value:   3,
			Usage:   "physical pixels per logical pixel",
		},
		&cli.DurationFlag{
			Name:    "step",
			EnvVars: []string{"P8EMU_STEP"},
			Value:   driver.DefaultStep,
			Usage:   "fixed time step",
		},
		&cli.StringFlag{
			Name:    "cart",
			EnvVars: []string{"P8EMU_CART"},
			Usage:   "load sprites, flags and map from a .p8 cart",
		},
		&cli.StringFlag{
			Name:    "sheet",
			EnvVars: []string{"P8EMU_SHEET"},
			Usage:   "raw 4bpp sprite sheet replacing the cart sprites",
		},
		&cli.StringFlag{
			Name:    "font",
			EnvVars: []string{"P8EMU_FONT"},
			Usage:   "font sheet image, 16 glyphs of 8x8 per row",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:  "run",
			Usage: "Run the demo interactively",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "backend",
					EnvVars: []string{"P8EMU_BACKEND"},
					Value:   "window",
					Usage:   "window or term",
				},
				&cli.DurationFlag{
					Name:    "hold",
					EnvVars: []string{"P8EMU_HOLD"},
					Value:   term.DefaultHold,
					Usage:   "terminal key release timeout",
				},
			},
			Action: run,
		},
		{
			Name:  "record",
			Usage: "Run the demo headless and write an animated GIF",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "frames",
					Value: 90,
					Usage: "number of steps to record",
				},
				&cli.StringFlag{
					Name:  "out",
					Value: "p8emu.gif",
					Usage: "GIF output path",
				},
				&cli.StringFlag{
					Name:  "snapshot",
					Usage: "also write the last frame as PNG",
				},
				&cli.BoolFlag{
					Name:  "crt",
					Usage: "apply the CRT filter",
				},
			},
			Action: record,
		},
		{
			Name:      "info",
			Usage:     "Print cart statistics",
			ArgsUsage: "CART",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "export-sheet",
					Usage: "write the sprite sheet in the raw 4bpp layout --sheet reads",
				},
			},
			Action: info,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
