package types

import "errors"

// ContentType names the variant held by a clipboard item.
type ContentType string

const (
	TypeText  ContentType = "text"
	TypeImage ContentType = "image"
)

// Error kinds shared by the clipboard core. Concrete errors wrap one of these
// and can be matched with errors.Is.
var (
	// ErrClipboardAccess means the system clipboard could not be read or written.
	ErrClipboardAccess = errors.New("clipboard access failed")

	// ErrContentNotAvailable means the clipboard holds nothing of the requested
	// kind. It is an empty result, not a failure.
	ErrContentNotAvailable = errors.New("content not available")

	// ErrEncoding means raw pixels could not be converted to the portable format.
	ErrEncoding = errors.New("image encoding failed")

	// ErrDecoding means stored portable content is malformed.
	ErrDecoding = errors.New("image decoding failed")
)
