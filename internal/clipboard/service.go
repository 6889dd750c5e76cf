package clipboard

import (
	"fmt"

	"github.com/berrythewa/clipdeck/internal/types"
	"go.uber.org/zap"
)

// SystemClipboard is the OS clipboard. Every call opens its own handle.
type SystemClipboard interface {
	ReadText() (string, error)
	ReadImage() (types.RawImage, error)
	WriteText(text string) error
	WriteImage(img types.RawImage) error
}

// Injector delivers a paste keystroke to the focused application.
type Injector interface {
	SimulatePaste() error
}

// Service pastes history items back into the focused application.
type Service struct {
	manager   *Manager
	clipboard SystemClipboard
	codec     ImageCodec
	injector  Injector
	logger    *zap.Logger
}

// NewService wires a Manager to the system clipboard and an injector.
func NewService(manager *Manager, sys SystemClipboard, injector Injector, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		manager:   manager,
		clipboard: sys,
		codec:     manager.codec,
		injector:  injector,
		logger:    logger,
	}
}

// Manager returns the history the service pastes from.
func (s *Service) Manager() *Manager {
	return s.manager
}

// PasteItem arms suppression, writes the item to the system clipboard and
// sends the paste keystroke. It stops at the first failing step. The history
// is never modified; on an injection failure the content stays on the
// clipboard for a manual paste.
func (s *Service) PasteItem(item types.Item) error {
	// Suppression has to be armed before the write or the poller may see
	// the new content first.
	s.manager.MarkAsPasted(item)

	switch c := item.Content.(type) {
	case types.TextContent:
		if err := s.clipboard.WriteText(c.Text); err != nil {
			return fmt.Errorf("write text: %w", err)
		}
	case types.ImageContent:
		img, err := s.codec.Decode(c.Encoded)
		if err != nil {
			return fmt.Errorf("item %s: %w", item.ID, err)
		}
		if err := s.clipboard.WriteImage(img); err != nil {
			return fmt.Errorf("write image: %w", err)
		}
	default:
		return fmt.Errorf("item %s: %w", item.ID, types.ErrContentNotAvailable)
	}

	s.logger.Debug("Clipboard written, injecting paste",
		zap.String("id", item.ID), zap.String("type", string(item.Type())))
	return s.inject()
}

// PasteText types ephemeral text through the clipboard without recording it.
func (s *Service) PasteText(text string) error {
	s.manager.MarkTextAsPasted(text)
	if err := s.clipboard.WriteText(text); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return s.inject()
}

func (s *Service) inject() error {
	if err := s.injector.SimulatePaste(); err != nil {
		s.logger.Warn("Paste injection failed, content left on clipboard", zap.Error(err))
		return err
	}
	return nil
}
