package main

import (
	"fmt"

	"github.com/32bitkid/p8emu"
	"github.com/32bitkid/p8emu/input"
)

const (
	ballRadius = 4
	solidFlag  = 0
	floorY     = 120
)

// demo is a small stand-in game: a ball bouncing around the map and a player
// block steered with the arrow keys.
type demo struct {
	con *p8emu.Console

	px, py int
	bx, by int
	vx, vy int
	shake  int
	frame  int
	debug  bool
	lastO  bool
}

func newDemo(con *p8emu.Console) *demo {
	d := &demo{con: con, px: 60, py: 100, bx: 20, by: 30, vx: 2, vy: 1}
	con.Music(0, 0, 0)
	return d
}

func (d *demo) solid(x, y int) bool {
	tile := d.con.Mget(x/p8emu.SpriteSize, y/p8emu.SpriteSize)
	return tile != 0 && d.con.Fget(tile, solidFlag)
}

func (d *demo) Update() {
	d.frame++

	nx, ny := d.px, d.py
	if d.con.Btn(int(input.Left)) {
		nx--
	}
	if d.con.Btn(int(input.Right)) {
		nx++
	}
	if d.con.Btn(int(input.Up)) {
		ny--
	}
	if d.con.Btn(int(input.Down)) {
		ny++
	}
	if nx >= 0 && nx <= 127-p8emu.SpriteSize && ny >= 0 && ny <= floorY-p8emu.SpriteSize && !d.solid(nx, ny) {
		d.px, d.py = nx, ny
	}

	o := d.con.Btn(int(input.O))
	if o && !d.lastO {
		d.vx, d.vy = -d.vx, -d.vy
		d.con.Sfx(0)
	}
	d.lastO = o

	d.bx += d.vx
	d.by += d.vy
	if d.bx < ballRadius || d.bx > 127-ballRadius {
		d.vx = -d.vx
		d.shake = 4
		d.con.Sfx(1)
	}
	if d.by < ballRadius || d.by > floorY-ballRadius {
		d.vy = -d.vy
		d.shake = 4
		d.con.Sfx(1)
	}
	if d.shake > 0 {
		d.shake--
	}
}

func (d *demo) Draw() {
	d.con.Camera(d.shake%2, 0)
	d.con.Map(0, 0, 0, 0, 16, 16, 0)

	d.con.RectFill(0, floorY, 127, 127, 1)
	d.con.Line(0, floorY, 128, floorY, 6)

	if d.con.Btn(int(input.X)) {
		d.con.Pal(8, 12)
	}
	d.con.CircFill(d.bx, d.by, ballRadius, 8)
	d.con.PalReset()

	d.con.RectFill(d.px, d.py, d.px+p8emu.SpriteSize-1, d.py+p8emu.SpriteSize-1, 11)
	d.con.Spr(1, d.px, d.py, 1, 1, false, false)

	d.con.Camera(0, 0)
	d.con.Print("P8EMU", 2, 2, 7)
	if d.debug {
		d.con.Print(fmt.Sprintf("F %d B %d,%d", d.frame, d.bx, d.by), 2, floorY+2, 7)
	}
}

func (d *demo) Debug() {
	d.debug = !d.debug
}
