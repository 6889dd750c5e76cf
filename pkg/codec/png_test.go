package codec

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berrythewa/clipdeck/internal/types"
)

func checkerboard(w, h int) types.RawImage {
	pix := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		v := byte(0)
		if i%2 == 0 {
			v = 0xff
		}
		pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = v, 0x40, 0x80, 0xff
	}
	return types.RawImage{Pixels: pix, Width: w, Height: h}
}

func TestPNGRoundTrip(t *testing.T) {
	img := checkerboard(5, 3)

	encoded, err := PNG{}.Encode(img)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, raw[:4])

	got, err := PNG{}.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, img.Width, got.Width)
	assert.Equal(t, img.Height, got.Height)
	assert.Equal(t, img.Pixels, got.Pixels)
}

func TestPNGEncodeRejectsBadBuffers(t *testing.T) {
	tests := []struct {
		name string
		img  types.RawImage
	}{
		{name: "zero width", img: types.RawImage{Pixels: nil, Width: 0, Height: 4}},
		{name: "short buffer", img: types.RawImage{Pixels: make([]byte, 10), Width: 2, Height: 2}},
		{name: "long buffer", img: types.RawImage{Pixels: make([]byte, 20), Width: 2, Height: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PNG{}.Encode(tt.img)
			assert.ErrorIs(t, err, types.ErrEncoding)
		})
	}
}

func TestPNGDecodeRejectsMalformed(t *testing.T) {
	_, err := PNG{}.Decode("not base64!")
	assert.ErrorIs(t, err, types.ErrDecoding)

	_, err = PNG{}.Decode(base64.StdEncoding.EncodeToString([]byte("not a png")))
	assert.ErrorIs(t, err, types.ErrDecoding)
}
