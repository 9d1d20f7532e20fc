package screen

import "image"

// Commands are the rasterizer primitives. Coordinates are logical pixels.
type Commands interface {
	Line(x0, y0, x1, y1 int, c Color)
	RectFill(x0, y0, x1, y1 int, c Color)
	CircFill(cx, cy, r int, c Color)
	Blit(x, y int, src image.Image, sx, sy, w, h int)
	Print(s string, x, y int, font image.Image, c Color)
}

type Buffer interface {
	Clear(c Color)
	Image() *Framebuffer
	image.Image
	Commands
}
