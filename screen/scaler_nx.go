package screen

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Font sheet geometry. Glyphs sit in 8×8 cells, 16 cells per row; only the
// top-left GlyphWidth×GlyphHeight of a cell is drawn.
const (
	GlyphCell    = 8
	GlyphColumns = 16
	GlyphWidth   = 4
	GlyphHeight  = 6
	GlyphAdvance = 4
)

// ScalerNx builds buffers where every logical pixel is a Factor×Factor block.
type ScalerNx struct {
	Factor int
}

func (s ScalerNx) NewBuffer(bounds image.Rectangle) Buffer {
	normBounds := image.Rect(0, 0, bounds.Dx(), bounds.Dy())
	return &bufferNx{
		Framebuffer: NewFramebuffer(normBounds, s.Factor),
		bounds:      normBounds,
	}
}

type bufferNx struct {
	*Framebuffer
	bounds image.Rectangle
}

func (b *bufferNx) Image() *Framebuffer {
	return b.Framebuffer
}

func (b *bufferNx) Clear(c Color) {
	for i, max := 0, len(b.Pix); i < max; i++ {
		b.Pix[i] = c
	}
}

func (b *bufferNx) plot(x, y int, c Color) {
	if x < 0 || y < 0 || x >= b.bounds.Max.X || y >= b.bounds.Max.Y {
		return
	}
	b.fill(image.Rect(x, y, x+1, y+1), c)
}

// fill paints an already clipped logical rectangle.
func (b *bufferNx) fill(r image.Rectangle, c Color) {
	s := b.Scale
	left, right := r.Min.X*s, r.Max.X*s
	for py := r.Min.Y * s; py < r.Max.Y*s; py++ {
		row := b.Pix[py*b.Stride:]
		for px := left; px < right; px++ {
			row[px] = c
		}
	}
}

func (b *bufferNx) Line(x0, y0, x1, y1 int, c Color) {
	maxX, maxY := b.bounds.Max.X-1, b.bounds.Max.Y-1
	x0, y0 = clampInt(0, maxX, x0), clampInt(0, maxY, y0)
	x1, y1 = clampInt(0, maxX, x1), clampInt(0, maxY, y1)

	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}

	// Runs are half-open: (x1, y1) itself is never plotted.
	switch {
	case dx == 0 && dy == 0:
		return
	case dx == 0:
		for y := y0; y != y1; y += sy {
			b.plot(x0, y, c)
		}
	case dy == 0:
		for x := x0; x != x1; x += sx {
			b.plot(x, y0, c)
		}
	default:
		// bresenham
		err := dx - dy
		for x0 != x1 || y0 != y1 {
			b.plot(x0, y0, c)
			e2 := 2 * err
			if e2 > -dy {
				err -= dy
				x0 += sx
			}
			if e2 < dx {
				err += dx
				y0 += sy
			}
		}
	}
}

func (b *bufferNx) RectFill(x0, y0, x1, y1 int, c Color) {
	if x1-x0+1 <= 0 || y1-y0+1 <= 0 {
		return
	}
	r := image.Rect(x0, y0, x1+1, y1+1).Intersect(b.bounds)
	if r.Empty() {
		return
	}
	b.fill(r, c)
}

func (b *bufferNx) CircFill(cx, cy, r int, c Color) {
	if r < 0 {
		return
	}

	if r < len(circlePatterns) {
		bitmap := circlePatterns[r]
		offset := len(bitmap) / 2
		for y, row := range bitmap {
			for x, pixel := range row {
				if pixel {
					b.plot(cx+x-offset, cy+y-offset, c)
				}
			}
		}
		return
	}

	f := 1 - r
	ddFx, ddFy := 1, -2*r
	x, y := 0, r

	// Line clamps its end points, so rows and columns wholly outside the
	// frame are dropped here rather than smeared along the edge.
	span := func(x0, x1, y int) {
		if y >= 0 && y < b.bounds.Max.Y {
			b.Line(x0, y, x1, y, c)
		}
	}

	// The octant walk never visits the two diameters.
	if cx >= 0 && cx < b.bounds.Max.X {
		b.Line(cx, cy-y, cx, cy+r, c)
	}
	span(cx+r, cx-r, cy)

	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx

		span(cx+x, cx-x, cy+y)
		span(cx+x, cx-x, cy-y)
		span(cx+y, cx-y, cy+x)
		span(cx+y, cx-y, cy-x)
	}
}

// clipBlit shrinks a destination rectangle at (x, y) of w×h to the logical
// frame, moving the source origin by the same amount.
func (b *bufferNx) clipBlit(x, y, sx, sy, w, h int) (int, int, int, int, int, int) {
	if x < 0 {
		sx -= x
		w += x
		x = 0
	}
	if y < 0 {
		sy -= y
		h += y
		y = 0
	}
	if x+w > b.bounds.Max.X {
		w = b.bounds.Max.X - x
	}
	if y+h > b.bounds.Max.Y {
		h = b.bounds.Max.Y - y
	}
	return x, y, sx, sy, w, h
}

func (b *bufferNx) Blit(x, y int, src image.Image, sx, sy, w, h int) {
	if src == nil {
		return
	}
	x, y, sx, sy, w, h = b.clipBlit(x, y, sx, sy, w, h)
	if w <= 0 || h <= 0 {
		return
	}

	s := b.Scale
	origin := src.Bounds().Min
	sr := image.Rect(sx, sy, sx+w, sy+h).Add(origin)
	dr := image.Rect(x*s, y*s, (x+w)*s, (y+h)*s)
	xdraw.NearestNeighbor.Scale(b.Framebuffer, dr, src, sr, xdraw.Over, nil)
}

func (b *bufferNx) Print(s string, x, y int, font image.Image, c Color) {
	if font == nil {
		return
	}
	for i := 0; i < len(s); i++ {
		ch := int(s[i] & 0x7F)
		b.glyph(x, y, font, GlyphCell*(ch%GlyphColumns), GlyphCell*(ch/GlyphColumns), c)
		x += GlyphAdvance
	}
}

// glyph draws the covered pixels of one font cell in colour c.
func (b *bufferNx) glyph(x, y int, font image.Image, sx, sy int, c Color) {
	x, y, sx, sy, w, h := b.clipBlit(x, y, sx, sy, GlyphWidth, GlyphHeight)
	if w <= 0 || h <= 0 {
		return
	}

	origin := font.Bounds().Min
	for gy := 0; gy < h; gy++ {
		for gx := 0; gx < w; gx++ {
			if _, _, _, a := font.At(origin.X+sx+gx, origin.Y+sy+gy).RGBA(); a == 0 {
				continue
			}
			b.plot(x+gx, y+gy, c)
		}
	}
}
