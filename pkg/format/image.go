package format

import (
	"encoding/base64"
	"fmt"

	"github.com/berrythewa/clipdeck/internal/types"
)

// encodedSize is the PNG size behind a base64 payload.
func encodedSize(img types.ImageContent) int64 {
	return int64(base64.StdEncoding.DecodedLen(len(img.Encoded)))
}

// FormatImage formats image content for display
func FormatImage(img types.ImageContent, _ Options) string {
	return fmt.Sprintf("[PNG image %dx%d - %s, hash %016x]",
		img.Width, img.Height, FormatSize(encodedSize(img)), img.Hash)
}

// FormatImagePreview creates a short preview of image content
func FormatImagePreview(img types.ImageContent, maxLen int) string {
	return TruncateText(fmt.Sprintf("[Image %dx%d %s]", img.Width, img.Height, FormatSize(encodedSize(img))), maxLen)
}
