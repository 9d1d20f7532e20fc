package screen

import (
	"image"
	"image/color"
)

// Framebuffer is the physical output surface. Every logical pixel is stored
// as a Scale×Scale block of XRGB8888 values.
type Framebuffer struct {
	Pix    []Color
	Stride int
	Rect   image.Rectangle
	Scale  int
}

// NewFramebuffer allocates a surface for a logical frame of the given size.
func NewFramebuffer(logical image.Rectangle, scale int) *Framebuffer {
	if scale < 1 {
		scale = 1
	}
	w, h := logical.Dx()*scale, logical.Dy()*scale
	return &Framebuffer{
		Pix:    make([]Color, w*h),
		Stride: w,
		Rect:   image.Rect(0, 0, w, h),
		Scale:  scale,
	}
}

func (fb *Framebuffer) ColorModel() color.Model { return ColorModel }
func (fb *Framebuffer) Bounds() image.Rectangle { return fb.Rect }

func (fb *Framebuffer) At(x, y int) color.Color {
	return fb.ColorAt(x, y)
}

// ColorAt returns the native pixel at physical (x, y), or Black outside the
// surface.
func (fb *Framebuffer) ColorAt(x, y int) Color {
	if !(image.Point{x, y}.In(fb.Rect)) {
		return Black
	}
	return fb.Pix[fb.PixOffset(x, y)]
}

func (fb *Framebuffer) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(fb.Rect)) {
		return
	}
	fb.Pix[fb.PixOffset(x, y)] = Pack(c)
}

func (fb *Framebuffer) PixOffset(x, y int) int {
	return (y-fb.Rect.Min.Y)*fb.Stride + (x - fb.Rect.Min.X)
}

// LogicalAt samples the top-left physical pixel of logical pixel (x, y).
func (fb *Framebuffer) LogicalAt(x, y int) Color {
	return fb.ColorAt(fb.Rect.Min.X+x*fb.Scale, fb.Rect.Min.Y+y*fb.Scale)
}

// Logical returns a 1:1 copy of the frame at logical resolution.
func (fb *Framebuffer) Logical() *Framebuffer {
	w, h := fb.Rect.Dx()/fb.Scale, fb.Rect.Dy()/fb.Scale
	dst := NewFramebuffer(image.Rect(0, 0, w, h), 1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Pix[y*dst.Stride+x] = fb.LogicalAt(x, y)
		}
	}
	return dst
}

// RGBA writes the frame into p as 8-bit RGBA quadruples, growing p when it is
// too small, and returns it.
func (fb *Framebuffer) RGBA(p []byte) []byte {
	n := fb.Rect.Dx() * fb.Rect.Dy() * 4
	if cap(p) < n {
		p = make([]byte, n)
	}
	p = p[:n]

	i := 0
	for y := fb.Rect.Min.Y; y < fb.Rect.Max.Y; y++ {
		row := fb.Pix[fb.PixOffset(fb.Rect.Min.X, y):]
		for x := 0; x < fb.Rect.Dx(); x++ {
			c := row[x]
			p[i+0] = uint8(c >> 16)
			p[i+1] = uint8(c >> 8)
			p[i+2] = uint8(c)
			p[i+3] = 0xFF
			i += 4
		}
	}
	return p
}
