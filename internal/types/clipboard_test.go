package types

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextPreview(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want string
	}{
		{name: "short text untouched", text: "hello", n: 100, want: "hello"},
		{name: "exact length untouched", text: strings.Repeat("a", 100), n: 100, want: strings.Repeat("a", 100)},
		{name: "long text truncated", text: strings.Repeat("a", 101), n: 100, want: strings.Repeat("a", 100) + "..."},
		{name: "multibyte counted as characters", text: "héllo wörld", n: 5, want: "héllo..."},
		{name: "zero length uses default", text: strings.Repeat("b", 150), n: 0, want: strings.Repeat("b", DefaultPreviewLength) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TextPreview(tt.text, tt.n))
		})
	}
}

func TestNewImageItemPreviewHasNoHash(t *testing.T) {
	item := NewImageItem("id-1", ImageContent{Encoded: "AAAA", Width: 640, Height: 480, Hash: 42}, time.Now())

	assert.Equal(t, "Image (640x480)", item.Preview)
	img, ok := item.Image()
	require.True(t, ok)
	assert.Equal(t, uint64(42), img.Hash)
	_, isText := item.Text()
	assert.False(t, isText)
	assert.Equal(t, TypeImage, item.Type())
}

func TestItemJSON(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Text", func(t *testing.T) {
		item := NewTextItem("t-1", "copy me", at, 100)
		item.Pinned = true

		data, err := json.Marshal(item)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"type":"text"`)

		var got Item
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, item, got)
	})

	t.Run("ImageKeepsFullHash", func(t *testing.T) {
		item := NewImageItem("i-1", ImageContent{Encoded: "iVBORw0KGgo=", Width: 2, Height: 3, Hash: 1<<63 + 7}, at)

		data, err := json.Marshal(item)
		require.NoError(t, err)

		var got Item
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, item, got)
	})

	t.Run("UnknownType", func(t *testing.T) {
		var got Item
		err := json.Unmarshal([]byte(`{"id":"x","type":"video","data":"{}"}`), &got)
		assert.Error(t, err)
	})
}
