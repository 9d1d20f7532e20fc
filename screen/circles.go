package screen

import (
	"fmt"
	"strings"
)

// Bitmap is a small on/off pattern, indexed [y][x].
type Bitmap [][]bool

// BitmapFromTemplate builds a Bitmap from rows of text where '_', '-', '.'
// and '0' are off and anything else is on. Every row must be the same width.
func BitmapFromTemplate(s string) (bm Bitmap) {
	var lines [][]rune
	for _, l := range strings.Split(strings.Trim(s, "\n"), "\n") {
		lines = append(lines, []rune(strings.TrimSpace(l)))
	}

	expectedLineLen := -1
	for _, line := range lines {
		ll := len(line)
		if expectedLineLen == -1 {
			expectedLineLen = ll
		} else if expectedLineLen != ll {
			panic(fmt.Errorf("invalid template width: %d is abnormal", ll))
		}
	}

	for _, line := range lines {
		row := make([]bool, len(line))
		for x, tr := range line {
			row[x] = tr != '_' &&
				tr != '-' &&
				tr != '.' &&
				tr != '0'
		}
		bm = append(bm, row)
	}
	return bm
}

// circlePatterns are the hand-authored discs for radius 0 through 3. Each
// pattern is centred on its middle cell. The midpoint walk is only used from
// radius 4 up since it degrades visibly at these sizes.
var circlePatterns = [...]Bitmap{
	0: BitmapFromTemplate(`
.X.
XXX
.X.
`),
	1: BitmapFromTemplate(`
.X.
XXX
.X.
`),
	2: BitmapFromTemplate(`
.XXX.
XXXXX
XXXXX
XXXXX
.XXX.
`),
	3: BitmapFromTemplate(`
..XXX..
.XXXXX.
XXXXXXX
XXXXXXX
XXXXXXX
.XXXXX.
..XXX..
`),
}
