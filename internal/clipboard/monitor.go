package clipboard

import (
	"context"
	"errors"
	"time"

	"github.com/berrythewa/clipdeck/internal/types"
	"go.uber.org/zap"
)

// Ingester receives clipboard content the monitor observed.
type Ingester interface {
	IngestText(text string)
	IngestImage(img types.RawImage, hash uint64)
}

// Monitor polls the system clipboard and forwards content that changed since
// the previous poll.
type Monitor struct {
	clipboard SystemClipboard
	ingester  Ingester
	interval  time.Duration
	images    bool
	logger    *zap.Logger

	lastText      string
	lastTextSeen  bool
	lastImage     uint64
	lastImageSeen bool
}

// NewMonitor creates a poller. images disables image reads when false.
func NewMonitor(sys SystemClipboard, ingester Ingester, interval time.Duration, images bool, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		clipboard: sys,
		ingester:  ingester,
		interval:  interval,
		images:    images,
		logger:    logger,
	}
}

// Run polls until ctx is done.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("Starting clipboard monitor", zap.Duration("interval", m.interval))

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		m.Poll()
		select {
		case <-ctx.Done():
			m.logger.Info("Clipboard monitor stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// Poll reads the clipboard once. Text takes precedence; the image is only
// read when no text is present.
func (m *Monitor) Poll() {
	text, err := m.clipboard.ReadText()
	switch {
	case err == nil && text != "":
		if m.lastTextSeen && text == m.lastText {
			return
		}
		m.lastText, m.lastTextSeen = text, true
		m.lastImageSeen = false
		m.ingester.IngestText(text)
		return
	case err != nil && !errors.Is(err, types.ErrContentNotAvailable):
		m.logger.Debug("Failed to read clipboard text", zap.Error(err))
		return
	}

	if !m.images {
		return
	}

	img, err := m.clipboard.ReadImage()
	if err != nil {
		if !errors.Is(err, types.ErrContentNotAvailable) {
			m.logger.Debug("Failed to read clipboard image", zap.Error(err))
		}
		return
	}

	hash := HashImage(img)
	if m.lastImageSeen && hash == m.lastImage {
		return
	}
	m.lastImage, m.lastImageSeen = hash, true
	m.lastTextSeen = false
	m.ingester.IngestImage(img, hash)
}
