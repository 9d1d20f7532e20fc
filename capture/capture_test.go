package capture

import (
	"bytes"
	"errors"
	"image"
	"image/gif"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/32bitkid/p8emu/driver"
	"github.com/32bitkid/p8emu/screen"
)

func testFrame(scale int) screen.Buffer {
	buf := screen.ScalerNx{Factor: scale}.NewBuffer(screen.Bounds)
	buf.RectFill(0, 0, 9, 9, screen.Pack(screen.DefaultPalettes.PICO8[8]))
	return buf
}

func TestGIF(t *testing.T) {
	g := NewGIF(Options{Delay: 50 * time.Millisecond})
	buf := testFrame(3)

	require.NoError(t, g.Present(buf.Image()))
	buf.Clear(screen.Black)
	require.NoError(t, g.Present(buf.Image()))
	assert.Equal(t, 2, g.Len())

	var out bytes.Buffer
	require.NoError(t, g.Encode(&out))

	anim, err := gif.DecodeAll(&out)
	require.NoError(t, err)
	require.Len(t, anim.Image, 2)
	assert.Equal(t, []int{5, 5}, anim.Delay)

	first := anim.Image[0]
	assert.Equal(t, image.Rect(0, 0, screen.Width, screen.Height), first.Bounds())
	assert.Equal(t, uint8(8), first.ColorIndexAt(9, 9))
	assert.Equal(t, uint8(0), first.ColorIndexAt(10, 10))
	assert.Equal(t, uint8(0), anim.Image[1].ColorIndexAt(0, 0))
}

func TestGIFCRT(t *testing.T) {
	g := NewGIF(Options{CRT: true})
	require.NoError(t, g.Present(testFrame(1).Image()))

	var out bytes.Buffer
	require.NoError(t, g.Encode(&out))

	anim, err := gif.DecodeAll(&out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, screen.Width*6, screen.Height*6), anim.Image[0].Bounds())
	assert.True(t, len(anim.Image[0].Palette) <= maxGIFColors)
	assert.Equal(t, []int{3}, anim.Delay)
}

func TestGIFEmpty(t *testing.T) {
	err := NewGIF().Encode(new(bytes.Buffer))
	assert.True(t, errors.Is(err, ErrNoFrames))
}

func TestPNG(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, PNG(&out, testFrame(2).Image()))

	img, err := png.Decode(&out)
	require.NoError(t, err)
	assert.Equal(t, screen.Bounds, img.Bounds())

	r, g, b, _ := img.At(0, 0).RGBA()
	er, eg, eb, _ := screen.DefaultPalettes.PICO8[8].RGBA()
	assert.Equal(t, [3]uint32{er, eg, eb}, [3]uint32{r, g, b})
}

func TestTee(t *testing.T) {
	var calls []string
	first := driver.PresenterFunc(func(image.Image) error {
		calls = append(calls, "first")
		return nil
	})
	failure := errors.New("boom")
	second := driver.PresenterFunc(func(image.Image) error {
		calls = append(calls, "second")
		return failure
	})
	third := driver.PresenterFunc(func(image.Image) error {
		calls = append(calls, "third")
		return nil
	})

	err := Tee(first, second, third).Present(testFrame(1).Image())
	assert.Equal(t, failure, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestToCentiseconds(t *testing.T) {
	assert.Equal(t, 3, toCentiseconds(33*time.Millisecond))
	assert.Equal(t, 1, toCentiseconds(time.Millisecond))
	assert.Equal(t, 100, toCentiseconds(time.Second))
}
