//go:build darwin

package inject

import (
	"fmt"

	"github.com/berrythewa/clipdeck/internal/config"
	"github.com/micmonay/keybd_event"
	"go.uber.org/zap"
)

// KeybdStrategy presses Cmd+V through CoreGraphics events. The process needs
// the Accessibility permission.
type KeybdStrategy struct {
	logger *zap.Logger
}

func newKeybdFromConfig(_ config.InjectConfig, logger *zap.Logger) Strategy {
	return &KeybdStrategy{logger: logger}
}

func (s *KeybdStrategy) Name() string { return config.StrategyKeybd }

func (s *KeybdStrategy) Attempt() error {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInjectionLibrary, err)
	}
	kb.SetKeys(keybd_event.VK_V)
	kb.HasSuper(true)
	if err := kb.Launching(); err != nil {
		return fmt.Errorf("%w: %v", ErrInjectionLibrary, err)
	}
	return nil
}
