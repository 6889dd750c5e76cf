package clipboard

import (
	"encoding/binary"

	"github.com/berrythewa/clipdeck/internal/types"
	"github.com/cespare/xxhash/v2"
)

// HashText is the content hash used for text dedup and burst suppression.
func HashText(text string) uint64 {
	return xxhash.Sum64String(text)
}

// HashImage is the content hash of a raw image. Dimensions are part of the
// digest so the same bytes reshaped hash differently.
func HashImage(img types.RawImage) uint64 {
	var dims [16]byte
	binary.LittleEndian.PutUint64(dims[:8], uint64(img.Width))
	binary.LittleEndian.PutUint64(dims[8:], uint64(img.Height))

	d := xxhash.New()
	_, _ = d.Write(dims[:])
	_, _ = d.Write(img.Pixels)
	return d.Sum64()
}
