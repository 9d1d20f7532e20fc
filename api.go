package p8emu

// The methods below are the game-facing console API. Each builds the
// matching command and runs it through Exec.

func (c *Console) Music(n, fade, mask int) { c.Exec(Music{N: n, Fade: fade, Mask: mask}) }

func (c *Console) Sfx(n int) { c.Exec(Sfx{N: n}) }

func (c *Console) Spr(n, x, y, w, h int, flipX, flipY bool) {
	c.Exec(Spr{N: n, X: x, Y: y, W: w, H: h, FlipX: flipX, FlipY: flipY})
}

func (c *Console) Btn(b int) bool { return c.Exec(Btn{B: b}) != 0 }

func (c *Console) Pal(a, b int) { c.Exec(Pal{A: a, B: b}) }

func (c *Console) PalReset() { c.Exec(PalReset{}) }

func (c *Console) Print(text string, x, y, col int) {
	c.Exec(Print{Text: text, X: x, Y: y, Col: col})
}

func (c *Console) RectFill(x0, y0, x1, y1, col int) {
	c.Exec(RectFill{X0: x0, Y0: y0, X1: x1, Y1: y1, Col: col})
}

func (c *Console) CircFill(x, y, r, col int) { c.Exec(CircFill{X: x, Y: y, R: r, Col: col}) }

func (c *Console) Line(x0, y0, x1, y1, col int) {
	c.Exec(Line{X0: x0, Y0: y0, X1: x1, Y1: y1, Col: col})
}

func (c *Console) Camera(x, y int) { c.Exec(Camera{X: x, Y: y}) }

func (c *Console) Fget(tile, flag int) bool { return c.Exec(Fget{Tile: tile, Flag: flag}) != 0 }

// Mget returns the tile at map cell (x, y), or tilemap.NoTile outside the map.
func (c *Console) Mget(x, y int) int { return c.Exec(Mget{X: x, Y: y}) }

func (c *Console) Map(mx, my, x, y, w, h, mask int) {
	c.Exec(Map{MX: mx, MY: my, X: x, Y: y, W: w, H: h, Mask: mask})
}
