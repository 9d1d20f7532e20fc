/*
Package asset decodes the constant data a cart brings along: the sprite sheet,
the tile flag table, the tile map and the font sheet.

Carts are read from the PICO-8 ".p8" text format. Only the graphics, flag and
map sections are used; code, sound and music sections are skipped.
*/
package asset

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/32bitkid/bitreader"
	"github.com/32bitkid/p8emu/screen"
)

const (
	SheetWidth  = 128
	SheetHeight = 128
	NumFlags    = 256
	MapColumns  = 128
	MapRows     = 64

	// Map rows from sharedRow down live in the lower half of the sprite sheet.
	sharedRow = 32
)

var (
	ErrBadHex    = errors.New("asset: malformed hex data")
	ErrSheetSize = errors.New("asset: invalid sheet size")
)

// SheetPalette is the base palette with colour 0 fully transparent, which is
// how sprites are drawn.
var SheetPalette = func() color.Palette {
	p := make(color.Palette, screen.PaletteSize)
	copy(p, screen.DefaultPalettes.PICO8)
	p[0] = color.RGBA{}
	return p
}()

type Cart struct {
	Sprites *image.Paletted
	Flags   []uint8
	Map     []uint8

	// Font is nil unless a font sheet was loaded separately.
	Font image.Image
}

// NewCart returns a cart with a blank sheet, no flags and an empty map.
func NewCart() *Cart {
	return &Cart{
		Sprites: image.NewPaletted(image.Rect(0, 0, SheetWidth, SheetHeight), SheetPalette),
		Flags:   make([]uint8, NumFlags),
		Map:     make([]uint8, MapColumns*MapRows),
	}
}

type section uint8

const (
	sectionNone section = iota
	sectionGfx
	sectionGff
	sectionMap
)

func sectionFor(header string) section {
	switch header {
	case "__gfx__":
		return sectionGfx
	case "__gff__":
		return sectionGff
	case "__map__":
		return sectionMap
	}
	return sectionNone
}

// decodeRow hex-decodes a section line into exactly n bytes. Short lines are
// zero padded and long lines truncated.
func decodeRow(line string, n int) ([]byte, error) {
	if len(line)%2 != 0 {
		return nil, ErrBadHex
	}
	raw, err := hex.DecodeString(line)
	if err != nil {
		return nil, ErrBadHex
	}
	row := make([]byte, n)
	copy(row, raw)
	return row, nil
}

// readNibbles splits packed bytes into 4-bit values, high nibble first, which
// is the order pixels are written in a __gfx__ line.
func readNibbles(raw []byte, dst []uint8) error {
	br := bitreader.NewReader(bytes.NewReader(raw))
	for i := range dst {
		v, err := br.Read8(4)
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

// ParseCart reads a ".p8" cart.
func ParseCart(r io.Reader) (*Cart, error) {
	cart := NewCart()

	var (
		current section
		row     int
		lineNo  int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "__") && strings.HasSuffix(line, "__") && len(line) > 4 {
			current, row = sectionFor(line), 0
			continue
		}
		if line == "" {
			continue
		}

		switch current {
		case sectionGfx:
			if row >= SheetHeight {
				continue
			}
			// One digit per pixel, so a short row may have an odd length.
			if len(line)%2 != 0 {
				line += "0"
			}
			raw, err := decodeRow(line, SheetWidth/2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			pix := cart.Sprites.Pix[row*cart.Sprites.Stride : row*cart.Sprites.Stride+SheetWidth]
			if err := readNibbles(raw, pix); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		case sectionGff:
			const flagsPerLine = 128
			if row*flagsPerLine >= NumFlags {
				continue
			}
			raw, err := decodeRow(line, flagsPerLine)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			copy(cart.Flags[row*flagsPerLine:], raw)
		case sectionMap:
			if row >= sharedRow {
				continue
			}
			raw, err := decodeRow(line, MapColumns)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			copy(cart.Map[row*MapColumns:], raw)
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	cart.shareMap()
	return cart, nil
}

// shareMap fills the lower map rows from the lower half of the sprite sheet.
// In memory two horizontally adjacent pixels form one byte, left pixel in the
// low nibble, and each map row takes 128 of those bytes.
func (cart *Cart) shareMap() {
	const bytesPerSheetRow = SheetWidth / 2
	base := sharedRow * MapColumns
	for i := 0; i < (MapRows-sharedRow)*MapColumns; i++ {
		addr := base + i
		y, x := addr/bytesPerSheetRow, (addr%bytesPerSheetRow)*2
		if y >= SheetHeight {
			return
		}
		left := cart.Sprites.ColorIndexAt(x, y)
		right := cart.Sprites.ColorIndexAt(x+1, y)
		cart.Map[base+i] = right<<4 | left
	}
}

// SetSprites replaces the sprite sheet. The lower map rows are refreshed from
// it, since they share its memory.
func (cart *Cart) SetSprites(sheet *image.Paletted) {
	cart.Sprites = sheet
	cart.shareMap()
}

// LoadCart parses the ".p8" cart at path.
func LoadCart(path string) (*Cart, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	cart, err := ParseCart(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cart, nil
}

type Stats struct {
	Sprites    int
	Flagged    int
	MapCells   int
	MapRowsSet int
}

// Stats counts non-empty sprite cells, tiles with any flag, non-zero map cells
// and map rows holding at least one.
func (cart *Cart) Stats() Stats {
	var s Stats
	for cell := 0; cell < (SheetWidth/8)*(SheetHeight/8); cell++ {
		x0, y0 := 8*(cell%16), 8*(cell/16)
	pixels:
		for y := y0; y < y0+8; y++ {
			for x := x0; x < x0+8; x++ {
				if cart.Sprites.ColorIndexAt(x, y) != 0 {
					s.Sprites++
					break pixels
				}
			}
		}
	}
	for _, f := range cart.Flags {
		if f != 0 {
			s.Flagged++
		}
	}
	for r := 0; r*MapColumns < len(cart.Map); r++ {
		used := false
		for _, t := range cart.Map[r*MapColumns : (r+1)*MapColumns] {
			if t != 0 {
				s.MapCells++
				used = true
			}
		}
		if used {
			s.MapRowsSet++
		}
	}
	return s
}
