// Package clipboard holds the clipboard history, paste-back suppression and
// the paste orchestration built on top of them.
package clipboard

import (
	"slices"
	"time"
	"unicode"

	"github.com/berrythewa/clipdeck/internal/types"
	"github.com/berrythewa/clipdeck/pkg/codec"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCapacity is the number of non-pinned items kept.
const DefaultCapacity = 50

// ImageCodec converts raw pixels to and from the encoding stored in items.
type ImageCodec interface {
	Encode(img types.RawImage) (string, error)
	Decode(encoded string) (types.RawImage, error)
}

// Overridable for tests.
var (
	newItemID = uuid.NewString
	now       = func() time.Time { return time.Now().UTC() }
)

// Options configures a Manager. Zero values pick defaults.
type Options struct {
	Capacity      int
	PreviewLength int
	Codec         ImageCodec
	Logger        *zap.Logger
}

// Manager owns the clipboard history and the suppression state around it.
//
// A Manager is not safe for concurrent use. Callers that share one across
// goroutines serialize access themselves.
type Manager struct {
	history       []types.Item
	capacity      int
	previewLength int
	codec         ImageCodec
	logger        *zap.Logger

	pastedText      string
	pastedTextSet   bool
	pastedImage     uint64
	pastedImageSet  bool
	lastTextHash    uint64
	lastTextHashSet bool
}

// NewManager creates an empty history.
func NewManager(opts Options) *Manager {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.PreviewLength <= 0 {
		opts.PreviewLength = types.DefaultPreviewLength
	}
	if opts.Codec == nil {
		opts.Codec = codec.PNG{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Manager{
		capacity:      opts.Capacity,
		previewLength: opts.PreviewLength,
		codec:         opts.Codec,
		logger:        opts.Logger,
	}
}

// Capacity returns the maximum number of non-pinned items.
func (m *Manager) Capacity() int {
	return m.capacity
}

// AddText ingests observed text. It returns the new item, or false when the
// text was rejected as empty, a burst duplicate, our own paste, or already
// the most recent entry.
func (m *Manager) AddText(text string) (types.Item, bool) {
	if isBlank(text) {
		m.reject("text", "blank")
		return types.Item{}, false
	}

	hash := HashText(text)
	if m.lastTextHashSet && m.lastTextHash == hash {
		m.reject("text", "burst duplicate", zap.Uint64("hash", hash))
		return types.Item{}, false
	}

	if m.pastedTextSet && m.pastedText == text {
		m.pastedText, m.pastedTextSet = "", false
		m.reject("text", "self-pasted", zap.Uint64("hash", hash))
		return types.Item{}, false
	}

	if top := m.firstUnpinned(); top >= 0 {
		if existing, ok := m.history[top].Text(); ok && existing == text {
			m.lastTextHash, m.lastTextHashSet = hash, true
			m.reject("text", "already most recent", zap.Uint64("hash", hash))
			return types.Item{}, false
		}
	}

	m.history = slices.DeleteFunc(m.history, func(it types.Item) bool {
		existing, ok := it.Text()
		return ok && !it.Pinned && existing == text
	})

	m.lastTextHash, m.lastTextHashSet = hash, true
	item := types.NewTextItem(newItemID(), text, now(), m.previewLength)
	m.insert(item)
	return item, true
}

// AddImage ingests an observed image whose content hash the caller already
// computed. It returns the new item, or false when the image was our own
// paste, is already the most recent entry, or could not be encoded.
func (m *Manager) AddImage(img types.RawImage, hash uint64) (types.Item, bool) {
	if m.pastedImageSet && m.pastedImage == hash {
		m.pastedImage, m.pastedImageSet = 0, false
		m.reject("image", "self-pasted", zap.Uint64("hash", hash))
		return types.Item{}, false
	}

	if top := m.firstUnpinned(); top >= 0 {
		if existing, ok := m.history[top].Image(); ok && existing.Hash == hash {
			m.reject("image", "already most recent", zap.Uint64("hash", hash))
			return types.Item{}, false
		}
	}

	encoded, err := m.codec.Encode(img)
	if err != nil {
		m.reject("image", "encode failed", zap.Error(err))
		return types.Item{}, false
	}

	item := types.NewImageItem(newItemID(), types.ImageContent{
		Encoded: encoded,
		Width:   uint32(img.Width),
		Height:  uint32(img.Height),
		Hash:    hash,
	}, now())
	m.insert(item)
	return item, true
}

func (m *Manager) reject(kind, reason string, fields ...zap.Field) {
	m.logger.Debug("Ingestion rejected",
		append([]zap.Field{zap.String("type", kind), zap.String("reason", reason)}, fields...)...)
}

// insert places item before the first non-pinned entry, then trims.
func (m *Manager) insert(item types.Item) {
	pos := m.firstUnpinned()
	if pos < 0 {
		pos = len(m.history)
	}
	m.history = slices.Insert(m.history, pos, item)
	m.trim("")
}

// trim evicts the oldest non-pinned entries until the cap holds. The item
// with id keep is never the one evicted.
func (m *Manager) trim(keep string) {
	for unpinned := m.countUnpinned(); unpinned > m.capacity; unpinned-- {
		i := m.lastUnpinnedExcept(keep)
		if i < 0 {
			return
		}
		m.logger.Debug("Evicting history item", zap.String("id", m.history[i].ID))
		m.history = slices.Delete(m.history, i, i+1)
	}
}

// History returns a snapshot of the history, most recent non-pinned first.
func (m *Manager) History() []types.Item {
	return slices.Clone(m.history)
}

// Item finds an item by id.
func (m *Manager) Item(id string) (types.Item, bool) {
	if i := m.indexOf(id); i >= 0 {
		return m.history[i], true
	}
	return types.Item{}, false
}

// RemoveItem deletes an item whether or not it is pinned.
func (m *Manager) RemoveItem(id string) bool {
	i := m.indexOf(id)
	if i < 0 {
		return false
	}
	m.history = slices.Delete(m.history, i, i+1)
	return true
}

// Clear deletes every non-pinned item.
func (m *Manager) Clear() {
	m.history = slices.DeleteFunc(m.history, func(it types.Item) bool {
		return !it.Pinned
	})
}

// TogglePin flips the pinned flag in place and returns the updated item.
// Unpinning drops any other non-pinned copy of the same text and evicts
// from the tail if the non-pinned count went over capacity.
func (m *Manager) TogglePin(id string) (types.Item, bool) {
	i := m.indexOf(id)
	if i < 0 {
		return types.Item{}, false
	}
	m.history[i].Pinned = !m.history[i].Pinned
	item := m.history[i]
	if item.Pinned {
		return item, true
	}

	if text, ok := item.Text(); ok {
		m.history = slices.DeleteFunc(m.history, func(it types.Item) bool {
			existing, ok := it.Text()
			return ok && !it.Pinned && it.ID != id && existing == text
		})
	}
	m.trim(id)
	return item, true
}

func (m *Manager) indexOf(id string) int {
	return slices.IndexFunc(m.history, func(it types.Item) bool { return it.ID == id })
}

func (m *Manager) firstUnpinned() int {
	return slices.IndexFunc(m.history, func(it types.Item) bool { return !it.Pinned })
}

func (m *Manager) lastUnpinnedExcept(id string) int {
	for i := len(m.history) - 1; i >= 0; i-- {
		if !m.history[i].Pinned && m.history[i].ID != id {
			return i
		}
	}
	return -1
}

func (m *Manager) countUnpinned() int {
	n := 0
	for _, it := range m.history {
		if !it.Pinned {
			n++
		}
	}
	return n
}

func isBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
