package clipboard

import "github.com/berrythewa/clipdeck/internal/types"

// MarkAsPasted arms self-paste suppression for an item we are about to write
// to the system clipboard. Only one kind is armed at a time: marking text
// disarms a pending image and vice versa.
func (m *Manager) MarkAsPasted(item types.Item) {
	switch c := item.Content.(type) {
	case types.TextContent:
		m.pastedText, m.pastedTextSet = c.Text, true
		m.pastedImage, m.pastedImageSet = 0, false
	case types.ImageContent:
		m.pastedImage, m.pastedImageSet = c.Hash, true
		m.pastedText, m.pastedTextSet = "", false
	}
}

// MarkTextAsPasted arms suppression for ephemeral text that must never reach
// the history. It also primes the burst hash so the same text arriving by any
// other route is dropped too.
func (m *Manager) MarkTextAsPasted(text string) {
	m.pastedText, m.pastedTextSet = text, true
	m.lastTextHash, m.lastTextHashSet = HashText(text), true
}
