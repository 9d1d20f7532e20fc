package asset

import (
	"image"
	"image/color"
	_ "image/png"
	"io"
	"strings"

	"github.com/32bitkid/p8emu/screen"
)

const (
	FontWidth  = screen.GlyphColumns * screen.GlyphCell
	FontHeight = 128 / screen.GlyphColumns * screen.GlyphCell
)

// Glyphs are 3x5, drawn in the top left of their cell. Lowercase letters
// reuse the uppercase shapes.
var glyphTemplates = map[byte]string{
	'!': ".X./.X./.X./.../.X.", '"': "X.X/X.X/.../.../...", '#': "X.X/XXX/X.X/XXX/X.X",
	'$': "XXX/XX./XXX/.XX/XXX", '%': "X.X/..X/.X./X../X.X", '&': "XX./XX./XXX/X.X/XXX",
	'\'': ".X./.X./.../.../...", '(': ".X./X../X../X../.X.", ')': ".X./..X/..X/..X/.X.",
	'*': "X.X/.X./XXX/.X./X.X", '+': ".../.X./XXX/.X./...", ',': ".../.../.../.X./X..",
	'-': ".../.../XXX/.../...", '.': ".../.../.../.../.X.", '/': "..X/.X./.X./.X./X..",

	'0': "XXX/X.X/X.X/X.X/XXX", '1': "XX./.X./.X./.X./XXX", '2': "XXX/..X/XXX/X../XXX",
	'3': "XXX/..X/.XX/..X/XXX", '4': "X.X/X.X/XXX/..X/..X", '5': "XXX/X../XXX/..X/XXX",
	'6': "X../X../XXX/X.X/XXX", '7': "XXX/..X/..X/..X/..X", '8': "XXX/X.X/XXX/X.X/XXX",
	'9': "XXX/X.X/XXX/..X/..X",

	':': ".../.X./.../.X./...", ';': ".../.X./.../.X./X..", '<': "..X/.X./X../.X./..X",
	'=': ".../XXX/.../XXX/...", '>': "X../.X./..X/.X./X..", '?': "XXX/..X/.XX/.../.X.",
	'@': ".X./X.X/X.X/X../.XX",

	'A': "XXX/X.X/XXX/X.X/X.X", 'B': "XXX/X.X/XX./X.X/XXX", 'C': "XXX/X../X../X../XXX",
	'D': "XX./X.X/X.X/X.X/XXX", 'E': "XXX/X../XX./X../XXX", 'F': "XXX/X../XX./X../X..",
	'G': "XXX/X../X../X.X/XXX", 'H': "X.X/X.X/XXX/X.X/X.X", 'I': "XXX/.X./.X./.X./XXX",
	'J': "XXX/.X./.X./.X./XX.", 'K': "X.X/X.X/XX./X.X/X.X", 'L': "X../X../X../X../XXX",
	'M': "XXX/XXX/X.X/X.X/X.X", 'N': "XX./X.X/X.X/X.X/X.X", 'O': ".XX/X.X/X.X/X.X/XX.",
	'P': "XXX/X.X/XXX/X../X..", 'Q': ".X./X.X/X.X/XX./.XX", 'R': "XXX/X.X/XX./X.X/X.X",
	'S': ".XX/X../XXX/..X/XX.", 'T': "XXX/.X./.X./.X./.X.", 'U': "X.X/X.X/X.X/X.X/.XX",
	'V': "X.X/X.X/X.X/XXX/.X.", 'W': "X.X/X.X/X.X/XXX/XXX", 'X': "X.X/X.X/.X./X.X/X.X",
	'Y': "X.X/X.X/XXX/..X/XXX", 'Z': "XXX/..X/.X./X../XXX",

	'[': "XX./X../X../X../XX.", '\\': "X../.X./.X./.X./..X", ']': ".XX/..X/..X/..X/.XX",
	'^': ".X./X.X/.../.../...", '_': ".../.../.../.../XXX", '`': ".X./..X/.../.../...",
	'{': ".XX/.X./XX./.X./.XX", '|': ".X./.X./.X./.X./.X.", '}': "XX./.X./.XX/.X./XX.",
	'~': ".../..X/XXX/X../...",
}

var defaultFont = buildFont()

func buildFont() *image.Alpha {
	font := image.NewAlpha(image.Rect(0, 0, FontWidth, FontHeight))
	for ch := 0; ch < 128; ch++ {
		tmpl, ok := glyphTemplates[byte(ch)]
		if !ok && ch >= 'a' && ch <= 'z' {
			tmpl, ok = glyphTemplates[byte(ch-'a'+'A')]
		}
		if !ok {
			continue
		}
		cx := (ch % screen.GlyphColumns) * screen.GlyphCell
		cy := (ch / screen.GlyphColumns) * screen.GlyphCell
		bitmap := screen.BitmapFromTemplate(strings.ReplaceAll(tmpl, "/", "\n"))
		for y, row := range bitmap {
			for x, on := range row {
				if on {
					font.SetAlpha(cx+x, cy+y, color.Alpha{A: 0xff})
				}
			}
		}
	}
	return font
}

// DefaultFont returns the built-in font sheet. The image is shared and must
// not be modified.
func DefaultFont() *image.Alpha {
	return defaultFont
}

// DecodeFont reads a font sheet image. Any pixel that is neither black nor
// transparent becomes glyph coverage.
func DecodeFont(r io.Reader) (*image.Alpha, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	font := image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := src.At(x, y).RGBA()
			if a == 0 || r|g|bl == 0 {
				continue
			}
			font.SetAlpha(x-b.Min.X, y-b.Min.Y, color.Alpha{A: 0xff})
		}
	}
	return font, nil
}
