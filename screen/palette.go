package screen

import (
	"image/color"
)

// PaletteSize is the number of entries in both the base and the working palette.
const PaletteSize = 16

var DefaultPalettes = struct {
	PICO8 color.Palette
}{
	PICO8: color.Palette{
		0x0: Color(0x000000), // black
		0x1: Color(0x1d2b53), // dark-blue
		0x2: Color(0x7e2553), // dark-purple
		0x3: Color(0x008751), // dark-green
		0x4: Color(0xab5236), // brown
		0x5: Color(0x5f574f), // dark-grey
		0x6: Color(0xc2c3c7), // light-grey
		0x7: Color(0xfff1e8), // white

		0x8: Color(0xff004d), // red
		0x9: Color(0xffa300), // orange
		0xa: Color(0xffec27), // yellow
		0xb: Color(0x00e436), // green
		0xc: Color(0x29adff), // blue
		0xd: Color(0x83769c), // lavender
		0xe: Color(0xff77a8), // pink
		0xf: Color(0xffccaa), // light-peach
	},
}

// Palette is the working colour table consulted whenever a colour index is
// turned into a pixel. Entries can only ever be remapped to colours of the
// base palette it was created from.
type Palette struct {
	base    color.Palette
	working [PaletteSize]Color
}

// NewPalette returns a working palette initialised from base, which must have
// PaletteSize entries.
func NewPalette(base color.Palette) *Palette {
	if base == nil {
		base = DefaultPalettes.PICO8
	}
	p := &Palette{base: base}
	p.Reset()
	return p
}

// Remap makes index src draw as base colour dst. Requests with either index
// outside [0,16) are ignored.
func (p *Palette) Remap(src, dst int) {
	if src < 0 || src >= PaletteSize || dst < 0 || dst >= PaletteSize {
		return
	}
	p.working[src] = Pack(p.base[dst])
}

// Reset restores every working entry to its base colour.
func (p *Palette) Reset() {
	for i := range p.working {
		p.working[i] = Pack(p.base[i])
	}
}

// Resolve returns the native pixel value for colour index i, taken modulo 16.
func (p *Palette) Resolve(i int) Color {
	return p.working[wrapIndex(i)]
}

// Base returns the immutable colour table the palette was built from.
func (p *Palette) Base() color.Palette {
	return p.base
}

func wrapIndex(i int) int {
	i %= PaletteSize
	if i < 0 {
		i += PaletteSize
	}
	return i
}
