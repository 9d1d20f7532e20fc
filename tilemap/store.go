/*
Package tilemap holds the read-only tile grid and per-tile flag table of a cart.

The grid is always Columns tiles wide; the number of rows is whatever the cart
supplies. Every tile is TileSize logical pixels square when drawn.
*/
package tilemap

const (
	Columns  = 128
	TileSize = 8
	flagBits = 8

	// NoTile is returned for coordinates outside the grid.
	NoTile = -1

	// ExactMask is the mask value that also selects tiles whose whole flag
	// byte equals it, in addition to the flag-bit test.
	ExactMask = 4
)

type Store struct {
	grid  []uint8
	flags []uint8
}

// New wraps a grid of tile ids, Columns per row, and a flag table indexed by
// tile id. A trailing partial row is ignored.
func New(grid []uint8, flags []uint8) *Store {
	rows := len(grid) / Columns
	return &Store{
		grid:  grid[:rows*Columns],
		flags: flags,
	}
}

func (s *Store) Rows() int {
	return len(s.grid) / Columns
}

// TileAt returns the tile id at (tx, ty), or NoTile when the coordinate is
// outside the grid.
func (s *Store) TileAt(tx, ty int) int {
	if tx < 0 || ty < 0 || tx >= Columns || ty >= s.Rows() {
		return NoTile
	}
	return int(s.grid[ty*Columns+tx])
}

// Flags returns the raw flag byte of tile, or 0 for tiles outside the table.
func (s *Store) Flags(tile int) uint8 {
	if tile < 0 || tile >= len(s.flags) {
		return 0
	}
	return s.flags[tile]
}

// HasFlag reports whether tile carries flag bit. Tiles outside the table and
// bits outside [0,8) never match.
func (s *Store) HasFlag(tile, bit int) bool {
	if tile < 0 || tile >= len(s.flags) || bit < 0 || bit >= flagBits {
		return false
	}
	return s.flags[tile]&(1<<uint(bit)) != 0
}

// selected applies the map drawing mask to a single tile.
//
// A zero mask selects everything. ExactMask selects tiles whose flag byte is
// exactly ExactMask, or that carry bit ExactMask. Any other mask selects tiles
// carrying bit mask-1.
func (s *Store) selected(tile, mask int) bool {
	switch {
	case mask == 0:
		return true
	case mask == ExactMask && s.Flags(tile) == ExactMask:
		return true
	case mask == ExactMask:
		return s.HasFlag(tile, mask)
	default:
		return s.HasFlag(tile, mask-1)
	}
}

// DrawRegion walks the w×h block of the grid starting at (mapX, mapY) and
// calls draw for every selected tile with the logical position of its top
// left corner, starting from (dstX, dstY).
func (s *Store) DrawRegion(mapX, mapY, dstX, dstY, w, h, mask int, draw func(tile, x, y int)) {
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			tile := s.TileAt(mapX+x, mapY+y)
			if tile == NoTile || !s.selected(tile, mask) {
				continue
			}
			draw(tile, dstX+x*TileSize, dstY+y*TileSize)
		}
	}
}
