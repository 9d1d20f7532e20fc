package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/32bitkid/p8emu/asset"
)

func TestReadSheet(t *testing.T) {
	cart := asset.NewCart()
	cart.Sprites.SetColorIndex(0, 0, 7)
	cart.Sprites.SetColorIndex(9, 64, 12)

	path := filepath.Join(t.TempDir(), "sheet.bin")
	require.NoError(t, writeFile(path, func(w io.Writer) error { return asset.EncodeSheet(w, cart.Sprites) }))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(asset.SheetWidth*asset.SheetHeight/2), info.Size())

	sheet, err := readSheet(path)
	require.NoError(t, err)
	assert.Equal(t, cart.Sprites.Pix, sheet.Pix)
}

func TestReadSheetShort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x21, 0x43}, 0o644))

	_, err := readSheet(path)
	assert.Error(t, err)
}
