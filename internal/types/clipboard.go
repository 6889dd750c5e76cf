package types

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// DefaultPreviewLength is how many characters of text an item preview keeps.
const DefaultPreviewLength = 100

// Content is the payload of a history item. TextContent and ImageContent are
// the only implementations; consumers switch on the concrete type.
type Content interface {
	Type() ContentType
	isContent()
}

// TextContent is plain text.
type TextContent struct {
	Text string
}

// ImageContent is an image in portable encoding (base64 PNG). Hash is the
// content hash of the raw pixels the item was built from and lives as long as
// the item does.
type ImageContent struct {
	Encoded string
	Width   uint32
	Height  uint32
	Hash    uint64
}

func (TextContent) Type() ContentType  { return TypeText }
func (ImageContent) Type() ContentType { return TypeImage }

func (TextContent) isContent()  {}
func (ImageContent) isContent() {}

// RawImage is an uncompressed, non-premultiplied RGBA pixel buffer.
type RawImage struct {
	Pixels []byte
	Width  int
	Height int
}

// Item is one clipboard history entry. Only Pinned changes after creation.
type Item struct {
	ID        string
	Content   Content
	Timestamp time.Time
	Pinned    bool
	Preview   string
}

// NewTextItem builds an unpinned text item.
func NewTextItem(id, text string, at time.Time, previewLength int) Item {
	return Item{
		ID:        id,
		Content:   TextContent{Text: text},
		Timestamp: at,
		Preview:   TextPreview(text, previewLength),
	}
}

// NewImageItem builds an unpinned image item.
func NewImageItem(id string, img ImageContent, at time.Time) Item {
	return Item{
		ID:        id,
		Content:   img,
		Timestamp: at,
		Preview:   ImagePreview(img.Width, img.Height),
	}
}

// Text returns the item's text when it is a text item.
func (i Item) Text() (string, bool) {
	c, ok := i.Content.(TextContent)
	return c.Text, ok
}

// Image returns the item's image content when it is an image item.
func (i Item) Image() (ImageContent, bool) {
	c, ok := i.Content.(ImageContent)
	return c, ok
}

// Type returns the content type, or an empty string for an item without content.
func (i Item) Type() ContentType {
	if i.Content == nil {
		return ""
	}
	return i.Content.Type()
}

// TextPreview keeps the first n characters of text and appends "..." when
// anything was cut. Characters are runes, so multi-byte text is never split.
func TextPreview(text string, n int) string {
	if n <= 0 {
		n = DefaultPreviewLength
	}
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n]) + "..."
}

// ImagePreview is the display string for an image of the given size.
func ImagePreview(width, height uint32) string {
	return fmt.Sprintf("Image (%dx%d)", width, height)
}
