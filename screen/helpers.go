package screen

import (
	"image/color"

	clr "github.com/lucasb-eyer/go-colorful"
)

func rgbMix(c1, c2 color.Color, t float64) color.Color {
	clr1, _ := clr.MakeColor(c1)
	clr2, _ := clr.MakeColor(c2)
	if (clr1.R == clr1.G && clr1.G == clr1.B) || (clr2.R == clr2.G && clr2.G == clr2.B) {
		return clr1.BlendRgb(clr2, t).Clamped()
	}
	return clr1.BlendLab(clr2, t).Clamped()
}

func darken(src color.Color, p float64) color.Color {
	srcColor, _ := clr.MakeColor(src)
	h, c, l := srcColor.Hcl()
	return clr.Hcl(h, c, l-p).Clamped()
}

// Color is a pixel in the framebuffer's native XRGB8888 encoding.
type Color uint32

// Black is the colour every frame is cleared to.
const Black Color = 0x000000

func (c Color) RGBA() (r, g, b, a uint32) {
	rb, gb, bb := (c>>16)&0xFF, (c>>8)&0xFF, (c>>0)&0xFF

	r = uint32((rb << 8) | rb)
	g = uint32((gb << 8) | gb)
	b = uint32((bb << 8) | bb)
	a = 0xFFFF
	return
}

// Pack converts any colour into the native encoding. Alpha is discarded.
func Pack(c color.Color) Color {
	if native, ok := c.(Color); ok {
		return native
	}
	cc, _ := clr.MakeColor(c)
	r, g, b := cc.RGB255()
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// ColorModel converts colours into Color values.
var ColorModel = color.ModelFunc(func(c color.Color) color.Color { return Pack(c) })

func clampInt(min, max, i int) int {
	switch {
	case i < min:
		return min
	case i > max:
		return max
	default:
		return i
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
