package p8emu

import (
	"github.com/32bitkid/p8emu/screen"
)

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Exec runs a single command and returns its result. Commands without a
// result, and commands the console does not know, return 0.
func (c *Console) Exec(cmd Command) int {
	switch cmd := cmd.(type) {
	case Music, Sfx:
		return 0

	case Spr:
		if cmd.N >= 0 {
			c.sprite(cmd.N, cmd.X-c.camX, cmd.Y-c.camY)
		}

	case Btn:
		return boolInt(c.Buttons.Pressed(cmd.B))

	case Pal:
		c.Palette.Remap(cmd.A, cmd.B)

	case PalReset:
		c.Palette.Reset()

	case Print:
		col := c.Palette.Resolve(cmd.Col % screen.PaletteSize)
		c.buf.Print(cmd.Text, cmd.X-c.camX, cmd.Y-c.camY, c.font, col)

	case RectFill:
		col := c.Palette.Resolve(cmd.Col)
		x0, y0 := cmd.X0-c.camX, cmd.Y0-c.camY
		x1, y1 := cmd.X1-c.camX, cmd.Y1-c.camY
		if w, h := x1-x0+1, y1-y0+1; w > 0 && h > 0 {
			c.buf.RectFill(x0, y0, x1, y1, col)
		}

	case CircFill:
		cx, cy := cmd.X-c.camX, cmd.Y-c.camY
		col := c.Palette.Resolve(cmd.Col)
		if cmd.R >= 0 {
			c.buf.CircFill(cx, cy, cmd.R, col)
		}

	case Line:
		x0, y0 := cmd.X0-c.camX, cmd.Y0-c.camY
		x1, y1 := cmd.X1-c.camX, cmd.Y1-c.camY
		c.buf.Line(x0, y0, x1, y1, c.Palette.Resolve(cmd.Col))

	case Camera:
		c.camX, c.camY = cmd.X, cmd.Y

	case Fget:
		return boolInt(c.Tiles.HasFlag(cmd.Tile, cmd.Flag))

	case Mget:
		return c.Tiles.TileAt(cmd.X, cmd.Y)

	case Map:
		c.Tiles.DrawRegion(cmd.MX, cmd.MY, cmd.X, cmd.Y, cmd.W, cmd.H, cmd.Mask, func(tile, x, y int) {
			c.sprite(tile, x-c.camX, y-c.camY)
		})
	}

	return 0
}

// sprite blits cell n of the sprite sheet at an already camera-adjusted
// position.
func (c *Console) sprite(n, x, y int) {
	const cellsPerRow = 16
	sx, sy := SpriteSize*(n%cellsPerRow), SpriteSize*(n/cellsPerRow)
	c.buf.Blit(x, y, c.sprites, sx, sy, SpriteSize, SpriteSize)
}
