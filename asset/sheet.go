package asset

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/32bitkid/bitreader"
)

// DecodeSheet reads a w by h sheet stored as packed 4-bit indexes, two pixels
// per byte with the left pixel in the low nibble. This is the in-memory layout
// of the sprite region.
func DecodeSheet(r io.Reader, w, h int) (*image.Paletted, error) {
	if w <= 0 || h <= 0 || w%2 != 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrSheetSize, w, h)
	}

	img := image.NewPaletted(image.Rect(0, 0, w, h), SheetPalette)
	br := bitreader.NewReader(bufio.NewReader(r))

	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w]
		for x := 0; x < w; x += 2 {
			right, err := br.Read8(4)
			if err != nil {
				return nil, unexpected(err)
			}
			left, err := br.Read8(4)
			if err != nil {
				return nil, unexpected(err)
			}
			row[x], row[x+1] = left, right
		}
	}
	return img, nil
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// EncodeSheet is the inverse of DecodeSheet.
func EncodeSheet(w io.Writer, img *image.Paletted) error {
	b := img.Bounds()
	if b.Dx()%2 != 0 {
		return fmt.Errorf("%w: %dx%d", ErrSheetSize, b.Dx(), b.Dy())
	}
	buf := make([]byte, 0, b.Dx()/2)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		buf = buf[:0]
		for x := b.Min.X; x < b.Max.X; x += 2 {
			left := img.ColorIndexAt(x, y) & 0x0f
			right := img.ColorIndexAt(x+1, y) & 0x0f
			buf = append(buf, right<<4|left)
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}
