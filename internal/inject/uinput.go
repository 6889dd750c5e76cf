package inject

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/berrythewa/clipdeck/internal/config"
	"go.uber.org/zap"
)

// inputID identifies the virtual keyboard to the kernel.
type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

var pasteDeviceID = inputID{Bustype: 0x03, Vendor: 0x1234, Product: 0x5678, Version: 0x0001}

// uinputDevice is an open handle on the uinput character device. The raw
// ioctl calls live behind it in the per-OS file.
type uinputDevice interface {
	io.Writer
	SetEventBit(ev int) error
	SetKeyBit(code int) error
	Setup(id inputID, name string) error
	Create() error
	Destroy() error
	Close() error
}

// UinputTiming holds the settling delays of the device lifecycle.
type UinputTiming struct {
	Settle time.Duration // after creation, for the OS to enumerate the device
	Step   time.Duration // between strokes
	Drain  time.Duration // after the last stroke, before destroying the device
}

// UinputStrategy creates a throwaway virtual keyboard, types the combination
// on it and destroys it again. It reaches every client, X11 or Wayland, but
// needs write access to the uinput device.
type UinputStrategy struct {
	path   string
	name   string
	timing UinputTiming
	open   func(path string) (uinputDevice, error)
	sleep  func(time.Duration)
	logger *zap.Logger
}

// NewUinputStrategy returns a strategy writing to the device at path.
func NewUinputStrategy(path, deviceName string, timing UinputTiming, logger *zap.Logger) *UinputStrategy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UinputStrategy{
		path:   path,
		name:   deviceName,
		timing: timing,
		open:   openUinput,
		sleep:  time.Sleep,
		logger: logger,
	}
}

func newUinputFromConfig(cfg config.InjectConfig, logger *zap.Logger) Strategy {
	return NewUinputStrategy(cfg.UinputPath, cfg.DeviceName, UinputTiming{
		Settle: cfg.SettleDelay,
		Step:   cfg.StepDelay,
		Drain:  cfg.DrainDelay,
	}, logger)
}

func (s *UinputStrategy) Name() string { return config.StrategyUinput }

func (s *UinputStrategy) Attempt() error {
	dev, err := s.open(s.path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrInjectionDevice, s.path, err)
	}
	defer dev.Close()

	if err := configure(dev, s.name); err != nil {
		return err
	}
	if err := dev.Create(); err != nil {
		return fmt.Errorf("%w: create device: %v", ErrInjectionDevice, err)
	}
	defer func() {
		if derr := dev.Destroy(); derr != nil {
			s.logger.Debug("Failed to destroy virtual keyboard", zap.Error(derr))
		}
	}()

	s.sleep(s.timing.Settle)

	// One stroke plus its sync report, flushed as a single write.
	w := bufio.NewWriterSize(dev, 2*eventSize)
	syn := encodeEvent(evSyn, synReport, 0)
	for i, st := range pasteStrokes {
		ev := encodeEvent(evKey, linuxKeyCode(st.key), pressValue(st.press))
		_, _ = w.Write(ev[:])
		_, _ = w.Write(syn[:])
		if err := w.Flush(); err != nil {
			return fmt.Errorf("%w: write stroke %d: %v", ErrInjectionDevice, i, err)
		}
		if i < len(pasteStrokes)-1 {
			s.sleep(s.timing.Step)
		}
	}

	s.sleep(s.timing.Drain)
	return nil
}

func configure(dev uinputDevice, name string) error {
	if err := dev.SetEventBit(evKey); err != nil {
		return fmt.Errorf("%w: enable key events: %v", ErrInjectionDevice, err)
	}
	for _, code := range []int{keyLeftCtrl, keyVCode} {
		if err := dev.SetKeyBit(code); err != nil {
			return fmt.Errorf("%w: enable key %d: %v", ErrInjectionDevice, code, err)
		}
	}
	if err := dev.Setup(pasteDeviceID, name); err != nil {
		return fmt.Errorf("%w: device setup: %v", ErrInjectionDevice, err)
	}
	return nil
}
