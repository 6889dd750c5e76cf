package format

import (
	"strings"
	"testing"
	"time"

	"github.com/berrythewa/clipdeck/internal/types"
	"github.com/stretchr/testify/assert"
)

func plainOptions() Options {
	opts := DefaultOptions()
	opts.UseColors = false
	opts.UseIcons = false
	return opts
}

func TestFormatItem(t *testing.T) {
	at := time.Now().Add(-2 * time.Hour)
	text := types.NewTextItem("0123456789abcdef", "line one\nline two", at, 100)

	t.Run("Full", func(t *testing.T) {
		out := FormatItem(text, plainOptions())
		assert.Contains(t, out, "text 01234567")
		assert.Contains(t, out, "ID: 0123456789abcdef")
		assert.Contains(t, out, "Captured: 2 hours ago")
		assert.Contains(t, out, "  line one\n  line two")
		assert.NotContains(t, out, "\033[")
	})

	t.Run("CompactPinned", func(t *testing.T) {
		pinned := text
		pinned.Pinned = true
		opts := CompactOptions()
		opts.UseColors = false
		opts.UseIcons = false

		out := FormatItem(pinned, opts)
		assert.Equal(t, "text pinned 01234567 line one line two", out)
	})

	t.Run("Image", func(t *testing.T) {
		img := types.NewImageItem("img", types.ImageContent{Encoded: "AAAA", Width: 3, Height: 2, Hash: 0xff}, at)
		out := FormatItem(img, plainOptions())
		assert.Contains(t, out, "[PNG image 3x2 - 3 B, hash 00000000000000ff]")
	})

	t.Run("Colors", func(t *testing.T) {
		opts := DefaultOptions()
		assert.Contains(t, FormatItem(text, opts), Cyan+"text"+Reset)
	})
}

func TestFormatItemList(t *testing.T) {
	assert.Equal(t, "No clipboard history", FormatItemList(nil, plainOptions()))

	items := []types.Item{
		types.NewTextItem("a", "alpha", time.Now(), 100),
		types.NewTextItem("b", "beta", time.Now(), 100),
	}
	opts := CompactOptions()
	opts.UseColors = false
	opts.UseIcons = false

	out := FormatItemList(items, opts)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "📋 Clipboard History (2 entries)", lines[0])
	assert.Equal(t, "[1] text a alpha", lines[2])
	assert.Equal(t, "[2] text b beta", lines[3])
}

func TestTextHelpers(t *testing.T) {
	assert.Equal(t, "abcde", TruncateText("abcde", 5))
	assert.Equal(t, "ab...", TruncateText("abcdef", 5))
	assert.Equal(t, "héllo wo...", TruncateText("héllo world!", 11))
	assert.Equal(t, "a\nb\n... (2 more lines)", TruncateLines("a\nb\nc\nd", 2))
	assert.Equal(t, "a b c", FormatTextPreview("a\r\nb\tc", 10))
	assert.Equal(t, "1.5 KB", FormatSize(1536))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "just now", relativeTime(now.Add(-10*time.Second), now))
	assert.Equal(t, "1 minute ago", relativeTime(now.Add(-time.Minute), now))
	assert.Equal(t, "3 hours ago", relativeTime(now.Add(-3*time.Hour), now))
	assert.Equal(t, "2 days ago", relativeTime(now.Add(-48*time.Hour), now))
}

func TestFormatStats(t *testing.T) {
	out := FormatStats("Daemon", []Stat{{"Items", "3"}, {"Backend", "native"}}, plainOptions())
	assert.Equal(t, "Daemon\n\n  Items:   3\n  Backend: native", out)
}
