package platform

import (
	"errors"
	"testing"

	"github.com/berrythewa/clipdeck/internal/types"
	"github.com/berrythewa/clipdeck/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xclip "golang.design/x/clipboard"
)

func memoryNative() *nativeClipboard {
	store := map[xclip.Format][]byte{}
	return &nativeClipboard{
		read:  func(f xclip.Format) []byte { return store[f] },
		write: func(f xclip.Format, b []byte) { store[f] = b },
	}
}

func TestNativeClipboard(t *testing.T) {
	t.Run("EmptyIsNotAvailable", func(t *testing.T) {
		c := memoryNative()
		_, err := c.ReadText()
		assert.ErrorIs(t, err, types.ErrContentNotAvailable)
		_, err = c.ReadImage()
		assert.ErrorIs(t, err, types.ErrContentNotAvailable)
	})

	t.Run("Text", func(t *testing.T) {
		c := memoryNative()
		require.NoError(t, c.WriteText("héllo"))
		text, err := c.ReadText()
		require.NoError(t, err)
		assert.Equal(t, "héllo", text)
	})

	t.Run("ImageGoesThroughPNG", func(t *testing.T) {
		c := memoryNative()
		img := types.RawImage{Pixels: []byte{1, 2, 3, 4, 5, 6, 7, 8}, Width: 2, Height: 1}
		require.NoError(t, c.WriteImage(img))

		stored := c.read(xclip.FmtImage)
		_, err := codec.PNG{}.DecodePNG(stored)
		require.NoError(t, err, "clipboard should hold a PNG stream")

		got, err := c.ReadImage()
		require.NoError(t, err)
		assert.Equal(t, img, got)
	})

	t.Run("BadImageData", func(t *testing.T) {
		c := memoryNative()
		c.write(xclip.FmtImage, []byte("not a png"))
		_, err := c.ReadImage()
		assert.ErrorIs(t, err, types.ErrClipboardAccess)
	})

	t.Run("BadImageWrite", func(t *testing.T) {
		err := memoryNative().WriteImage(types.RawImage{Pixels: []byte{1}, Width: 1, Height: 1})
		assert.ErrorIs(t, err, types.ErrEncoding)
	})
}

func TestTextClipboard(t *testing.T) {
	var written string
	c := &textClipboard{
		readAll:  func() (string, error) { return written, nil },
		writeAll: func(s string) error { written = s; return nil },
	}

	require.NoError(t, c.WriteText("abc"))
	assert.Equal(t, "abc", written)

	_, err := c.ReadImage()
	assert.ErrorIs(t, err, types.ErrContentNotAvailable)
	assert.ErrorIs(t, c.WriteImage(types.RawImage{}), types.ErrClipboardAccess)

	c.writeAll = func(string) error { return errors.New("xclip missing") }
	assert.ErrorIs(t, c.WriteText("x"), types.ErrClipboardAccess)
}

func TestNewClipboardFallsBack(t *testing.T) {
	orig := initNative
	t.Cleanup(func() { initNative = orig })

	initNative = func() error { return errors.New("no display") }
	assert.Equal(t, "text-only", NewClipboard(nil).Name())

	initNative = func() error { return nil }
	assert.Equal(t, "native", NewClipboard(nil).Name())
}
