// Package format renders clipboard history items for the terminal.
package format

import (
	"fmt"
	"strings"

	"github.com/berrythewa/clipdeck/internal/types"
)

// Formatter is the main formatting orchestrator that delegates to specialized formatters
type Formatter struct {
	options Options
}

// New creates a new formatter with the given options
func New(opts Options) *Formatter {
	return &Formatter{options: opts}
}

// NewDefault creates a new formatter with default options
func NewDefault() *Formatter {
	return New(DefaultOptions())
}

// FormatItem formats a single history item
func (f *Formatter) FormatItem(item types.Item) string {
	if item.Content == nil {
		return ColorizeIf("No content", Gray, f.options.UseColors)
	}

	header := f.formatHeader(item)

	if f.options.Compact {
		preview := f.formatPreview(item, 50)
		return header + " " + DimIf(preview, f.options.UseColors)
	}

	parts := []string{header}
	if f.options.ShowMetadata {
		parts = append(parts, f.formatMetadata(item))
	}
	if data := f.formatData(item); data != "" {
		parts = append(parts, CreateBox("Content", data, f.options))
	}
	return strings.Join(parts, "\n")
}

// FormatItemList formats a history listing, most recent first
func (f *Formatter) FormatItemList(items []types.Item) string {
	if len(items) == 0 {
		return ColorizeIf("No clipboard history", Gray, f.options.UseColors)
	}

	parts := []string{f.formatListHeader(len(items)), ""}
	for i, item := range items {
		index := DimIf(fmt.Sprintf("[%d]", i+1), f.options.UseColors)
		if f.options.Compact {
			parts = append(parts, index+" "+f.FormatItem(item))
			continue
		}
		parts = append(parts, index, f.FormatItem(item))
		if i < len(items)-1 {
			parts = append(parts, CreateSeparator(f.options))
		}
	}
	return strings.Join(parts, "\n")
}

// formatHeader shows the type, pin marker and a short id
func (f *Formatter) formatHeader(item types.Item) string {
	var parts []string

	if f.options.UseIcons {
		if icon, ok := ContentIcons[item.Type()]; ok {
			parts = append(parts, icon)
		}
	}

	typeStr := string(item.Type())
	if color, ok := ContentColors[item.Type()]; ok {
		typeStr = ColorizeIf(typeStr, color, f.options.UseColors)
	}
	parts = append(parts, typeStr)

	if item.Pinned {
		pin := "pinned"
		if f.options.UseIcons {
			pin = PinIcon
		}
		parts = append(parts, ColorizeIf(pin, Yellow, f.options.UseColors))
	}

	parts = append(parts, DimIf(ShortID(item.ID), f.options.UseColors))
	return strings.Join(parts, " ")
}

func (f *Formatter) formatMetadata(item types.Item) string {
	parts := []string{
		"ID: " + item.ID,
		"Captured: " + FormatRelativeTime(item.Timestamp),
	}
	switch c := item.Content.(type) {
	case types.TextContent:
		parts = append(parts, "Size: "+FormatSize(int64(len(c.Text))))
	case types.ImageContent:
		parts = append(parts, "Size: "+FormatSize(encodedSize(c)))
	}
	return DimIf(strings.Join(parts, " • "), f.options.UseColors)
}

func (f *Formatter) formatData(item types.Item) string {
	switch c := item.Content.(type) {
	case types.TextContent:
		return FormatText(c.Text, f.options)
	case types.ImageContent:
		return FormatImage(c, f.options)
	default:
		return ""
	}
}

func (f *Formatter) formatPreview(item types.Item, maxLen int) string {
	switch c := item.Content.(type) {
	case types.TextContent:
		return FormatTextPreview(c.Text, maxLen)
	case types.ImageContent:
		return FormatImagePreview(c, maxLen)
	default:
		return TruncateText(item.Preview, maxLen)
	}
}

// formatListHeader creates the header for item lists
func (f *Formatter) formatListHeader(count int) string {
	title := fmt.Sprintf("📋 Clipboard History (%d entries)", count)
	return ColorizeIf(title, BrightBlue, f.options.UseColors)
}

// ShortID is the leading part of an id, enough to tell items apart on screen
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatItem formats a single history item with given options
func FormatItem(item types.Item, opts Options) string {
	return New(opts).FormatItem(item)
}

// FormatItemList formats multiple history items with given options
func FormatItemList(items []types.Item, opts Options) string {
	return New(opts).FormatItemList(items)
}
