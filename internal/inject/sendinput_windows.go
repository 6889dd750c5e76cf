//go:build windows

package inject

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/berrythewa/clipdeck/internal/config"
	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

var (
	user32         = windows.NewLazySystemDLL("user32.dll")
	procSendInput  = user32.NewProc("SendInput")
	procMapVirtual = user32.NewProc("MapVirtualKeyW")
)

const (
	inputKeyboard  = 1
	keyeventfKeyup = 0x0002
	mapvkVkToVsc   = 0
	vkControl      = 0x11
	vkV            = 0x56
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type input struct {
	inputType uint32
	ki        keyboardInput
	padding   [8]byte // INPUT is a union sized by MOUSEINPUT
}

// SendInputStrategy queues all four strokes with a single SendInput call.
type SendInputStrategy struct {
	settle time.Duration
	sleep  func(time.Duration)
	logger *zap.Logger
}

func newSendInputFromConfig(cfg config.InjectConfig, logger *zap.Logger) Strategy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SendInputStrategy{settle: cfg.LibraryStepDelay, sleep: time.Sleep, logger: logger}
}

func (s *SendInputStrategy) Name() string { return config.StrategySendInput }

func (s *SendInputStrategy) Attempt() error {
	if err := procSendInput.Find(); err != nil {
		return fmt.Errorf("%w: %v", ErrInjectionDevice, err)
	}

	ctrlScan, _, _ := procMapVirtual.Call(vkControl, mapvkVkToVsc)
	vScan, _, _ := procMapVirtual.Call(vkV, mapvkVkToVsc)
	vk := map[key][2]uint16{
		keyControl: {vkControl, uint16(ctrlScan)},
		keyV:       {vkV, uint16(vScan)},
	}

	inputs := make([]input, 0, len(pasteStrokes))
	for _, st := range pasteStrokes {
		inputs = append(inputs, keyInput(vk[st.key], st.press))
	}

	sent, _, err := sendInputs(inputs)
	if n := int(sent); n != len(inputs) {
		s.release(heldAfter(pasteStrokes[:n]), vk)
		return fmt.Errorf("%w: SendInput queued %d of %d events: %v", ErrInjectionDevice, n, len(inputs), err)
	}

	s.sleep(s.settle)
	return nil
}

// release lifts keys left down by a partially queued sequence.
func (s *SendInputStrategy) release(held []key, vk map[key][2]uint16) {
	if len(held) == 0 {
		return
	}
	ups := make([]input, 0, len(held))
	for _, k := range held {
		ups = append(ups, keyInput(vk[k], false))
	}
	if sent, _, err := sendInputs(ups); int(sent) != len(ups) {
		s.logger.Debug("Failed to release keys after aborted paste",
			zap.Int("held", len(held)), zap.Error(err))
	}
}

func keyInput(codes [2]uint16, press bool) input {
	var flags uint32
	if !press {
		flags = keyeventfKeyup
	}
	return input{
		inputType: inputKeyboard,
		ki:        keyboardInput{wVk: codes[0], wScan: codes[1], dwFlags: flags},
	}
}

func sendInputs(inputs []input) (uintptr, uintptr, error) {
	return procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
}
