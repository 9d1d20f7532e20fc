package p8emu

import "fmt"

// Op identifies a console API call.
type Op uint8

const (
	OpMusic Op = iota
	OpSfx
	OpSpr
	OpBtn
	OpPal
	OpPalReset
	OpPrint
	OpRectFill
	OpCircFill
	OpLine
	OpCamera
	OpFget
	OpMget
	OpMap
)

var opNames = [...]string{
	OpMusic:    "MUSIC",
	OpSfx:      "SFX",
	OpSpr:      "SPR",
	OpBtn:      "BTN",
	OpPal:      "PAL",
	OpPalReset: "PAL_RESET",
	OpPrint:    "PRINT",
	OpRectFill: "RECTFILL",
	OpCircFill: "CIRCFILL",
	OpLine:     "LINE",
	OpCamera:   "CAMERA",
	OpFget:     "FGET",
	OpMget:     "MGET",
	OpMap:      "MAP",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return fmt.Sprintf("Op(%s)", opNames[op])
	}
	return "Op(Invalid)"
}

// Command is one console API call with its arguments. Each opcode has its
// own struct carrying exactly the fields it takes.
type Command interface {
	Op() Op
}

// Music selects a music pattern. Audio is not emulated.
type Music struct{ N, Fade, Mask int }

// Sfx plays a sound effect. Audio is not emulated.
type Sfx struct{ N int }

// Spr draws sprite N at (X, Y). W, H and the flip flags are accepted but do
// not change what is drawn: a single 8×8 cell, unflipped.
type Spr struct {
	N, X, Y      int
	W, H         int
	FlipX, FlipY bool
}

// Btn tests button B.
type Btn struct{ B int }

// Pal makes colour A draw as base colour B.
type Pal struct{ A, B int }

// PalReset restores the base palette.
type PalReset struct{}

// Print draws Text at (X, Y) in colour Col.
type Print struct {
	Text string
	X, Y int
	Col  int
}

type RectFill struct{ X0, Y0, X1, Y1, Col int }

type CircFill struct{ X, Y, R, Col int }

type Line struct{ X0, Y0, X1, Y1, Col int }

// Camera sets the offset subtracted from all later drawing coordinates.
type Camera struct{ X, Y int }

// Fget tests flag bit Flag of tile Tile.
type Fget struct{ Tile, Flag int }

// Mget reads the tile at map cell (X, Y).
type Mget struct{ X, Y int }

// Map draws the W×H block of map cells at (MX, MY) with its top left corner
// at (X, Y), keeping only tiles selected by Mask.
type Map struct {
	MX, MY int
	X, Y   int
	W, H   int
	Mask   int
}

func (Music) Op() Op    { return OpMusic }
func (Sfx) Op() Op      { return OpSfx }
func (Spr) Op() Op      { return OpSpr }
func (Btn) Op() Op      { return OpBtn }
func (Pal) Op() Op      { return OpPal }
func (PalReset) Op() Op { return OpPalReset }
func (Print) Op() Op    { return OpPrint }
func (RectFill) Op() Op { return OpRectFill }
func (CircFill) Op() Op { return OpCircFill }
func (Line) Op() Op     { return OpLine }
func (Camera) Op() Op   { return OpCamera }
func (Fget) Op() Op     { return OpFget }
func (Mget) Op() Op     { return OpMget }
func (Map) Op() Op      { return OpMap }
