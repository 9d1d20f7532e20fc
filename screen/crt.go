package screen

import (
	"image"
	"image/color"
)

// crtCell is the number of output pixels per source pixel, in each direction.
const crtCell = 6

var (
	maskRed   = color.RGBA{R: 0xFF, G: 0x99, B: 0x99, A: 0xff}
	maskGreen = color.RGBA{G: 0xFF, R: 0x99, B: 0x99, A: 0xff}
	maskBlue  = color.RGBA{B: 0xFF, R: 0x99, G: 0x99, A: 0xff}
)

func rgbMul(a, b color.Color) color.Color {
	r1, g1, b1, _ := a.RGBA()
	r2, g2, b2, _ := b.RGBA()
	return color.RGBA{
		R: uint8((r1 * r2 / 0xffff) >> 8),
		G: uint8((g1 * g2 / 0xffff) >> 8),
		B: uint8((b1 * b2 / 0xffff) >> 8),
		A: 0xFF,
	}
}

// scanline darkening per row of a cell.
var scanline = [crtCell]float64{0.7, 0.2, 0, 0, 0.1, 0.4}

// bleed is the blend weight towards the neighbouring pixel per column of a
// cell; negative values blend with the left neighbour, positive with the right.
var bleed = [crtCell]float64{-3.0 / 6.0, -2.0 / 6.0, -1.0 / 6.0, 0, 1.0 / 6.0, 2.0 / 6.0}

// shadowMask selects the phosphor tint per column, for even and odd rows.
var shadowMask = [2][crtCell]color.Color{
	{maskRed, maskRed, maskGreen, maskGreen, maskBlue, maskBlue},
	{maskGreen, maskBlue, maskBlue, maskRed, maskRed, maskGreen},
}

// RenderToCRT enlarges src by six in each direction and imitates a shadow-mask
// CRT: horizontal colour bleed, scan-lines and phosphor triads. It is meant
// for logical-resolution frames.
func RenderToCRT(src image.Image) *image.RGBA {
	srcRect := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, srcRect.Dx()*crtCell, srcRect.Dy()*crtCell))
	for sy, dy := srcRect.Min.Y, 0; sy < srcRect.Max.Y; sy, dy = sy+1, dy+crtCell {
		for sx, dx := srcRect.Min.X, 0; sx < srcRect.Max.X; sx, dx = sx+1, dx+crtCell {
			lc := src.At(clampInt(srcRect.Min.X, srcRect.Max.X-1, sx-1), sy)
			c := src.At(sx, sy)
			rc := src.At(clampInt(srcRect.Min.X, srcRect.Max.X-1, sx+1), sy)
			for iy := 0; iy < crtCell; iy++ {
				for ix := 0; ix < crtCell; ix++ {
					co := c
					switch t := bleed[ix]; {
					case t < 0:
						co = rgbMix(lc, c, 1+t)
					case t > 0:
						co = rgbMix(c, rc, t)
					}
					if p := scanline[iy]; p > 0 {
						co = darken(co, p)
					}
					co = rgbMul(co, shadowMask[iy%2][ix])
					dst.Set(dx+ix, dy+iy, co)
				}
			}
		}
	}
	return dst
}
