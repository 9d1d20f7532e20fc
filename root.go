// Package p8emu implements the drawing and query API of a 128×128, 16 colour
// fantasy console on top of a software rasterizer.
//
// A game drives a Console through typed commands, one per opcode of the
// console API: sprites, rectangles, circles, lines, text, the tile map,
// palette remapping, the camera and the buttons. The Console applies the
// camera offset and the working palette, then hands the result to a
// screen.Buffer, which scales every logical pixel into a block of physical
// pixels.
//
// Audio opcodes are accepted and ignored.
package p8emu

import (
	"image"
	"image/color"

	"github.com/32bitkid/p8emu/asset"
	"github.com/32bitkid/p8emu/input"
	"github.com/32bitkid/p8emu/screen"
	"github.com/32bitkid/p8emu/tilemap"
)

// SpriteSize is the edge length of a sprite cell in the sprite sheet.
const SpriteSize = 8

// Console is the render context every command runs against. It owns the
// working palette and the camera; the button state is shared with whatever
// drains input events into it.
type Console struct {
	Palette *screen.Palette
	Buttons *input.Buttons
	Tiles   *tilemap.Store

	buf     screen.Buffer
	sprites image.Image
	font    image.Image

	camX, camY int
}

type Options struct {
	// Buttons is the state BTN reads. A private state is used when nil.
	Buttons *input.Buttons
	// Base replaces the default PICO-8 base palette.
	Base color.Palette
}

// New builds a Console drawing into buf with the assets of cart. A nil cart
// gives an empty sprite sheet and map and the built-in font.
func New(buf screen.Buffer, cart *asset.Cart, options ...Options) *Console {
	if cart == nil {
		cart = asset.NewCart()
	}

	buttons := new(input.Buttons)
	base := screen.DefaultPalettes.PICO8
	for _, opts := range options {
		if opts.Buttons != nil {
			buttons = opts.Buttons
		}
		if len(opts.Base) == screen.PaletteSize {
			base = opts.Base
		}
	}

	font := cart.Font
	if font == nil {
		font = asset.DefaultFont()
	}

	return &Console{
		Palette: screen.NewPalette(base),
		Buttons: buttons,
		Tiles:   tilemap.New(cart.Map, cart.Flags),
		buf:     buf,
		sprites: cart.Sprites,
		font:    font,
	}
}

// Reset restores the palette and puts the camera back at the origin.
func (c *Console) Reset() {
	c.Palette.Reset()
	c.camX, c.camY = 0, 0
}

// CameraOffset returns the current camera position.
func (c *Console) CameraOffset() (int, int) {
	return c.camX, c.camY
}
