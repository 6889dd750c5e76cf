package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// itemJSON is the wire form of an Item. Content is tagged by Type with the
// variant body in Data.
type itemJSON struct {
	ID        string          `json:"id"`
	Type      ContentType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	Pinned    bool            `json:"pinned"`
	Preview   string          `json:"preview"`
}

type imageJSON struct {
	Base64 string `json:"base64"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
	Hash   uint64 `json:"hash,string"`
}

// MarshalJSON implements json.Marshaler.
func (i Item) MarshalJSON() ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch c := i.Content.(type) {
	case TextContent:
		data, err = json.Marshal(c.Text)
	case ImageContent:
		data, err = json.Marshal(imageJSON{Base64: c.Encoded, Width: c.Width, Height: c.Height, Hash: c.Hash})
	default:
		return nil, fmt.Errorf("item %s: unsupported content %T", i.ID, i.Content)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(itemJSON{
		ID:        i.ID,
		Type:      i.Type(),
		Data:      data,
		Timestamp: i.Timestamp,
		Pinned:    i.Pinned,
		Preview:   i.Preview,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Item) UnmarshalJSON(b []byte) error {
	var raw itemJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch raw.Type {
	case TypeText:
		var text string
		if err := json.Unmarshal(raw.Data, &text); err != nil {
			return fmt.Errorf("item %s: text data: %w", raw.ID, err)
		}
		i.Content = TextContent{Text: text}
	case TypeImage:
		var img imageJSON
		if err := json.Unmarshal(raw.Data, &img); err != nil {
			return fmt.Errorf("item %s: image data: %w", raw.ID, err)
		}
		i.Content = ImageContent{Encoded: img.Base64, Width: img.Width, Height: img.Height, Hash: img.Hash}
	default:
		return fmt.Errorf("item %s: unknown content type %q", raw.ID, raw.Type)
	}
	i.ID = raw.ID
	i.Timestamp = raw.Timestamp
	i.Pinned = raw.Pinned
	i.Preview = raw.Preview
	return nil
}
