package inject

import (
	"fmt"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
	"github.com/berrythewa/clipdeck/internal/config"
	"go.uber.org/zap"
)

// Keysyms from X11/keysymdef.h.
const (
	keysymControlL xproto.Keysym = 0xffe3
	keysymV        xproto.Keysym = 0x0076
)

// XTestStrategy fakes the key events through the X server's XTEST
// extension. It needs no privileges but only reaches X11 and XWayland
// clients.
type XTestStrategy struct {
	display string
	step    time.Duration
	sleep   func(time.Duration)
	logger  *zap.Logger
}

// NewXTestStrategy connects to display on each attempt; an empty display
// means $DISPLAY.
func NewXTestStrategy(display string, step time.Duration, logger *zap.Logger) *XTestStrategy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &XTestStrategy{display: display, step: step, sleep: time.Sleep, logger: logger}
}

func newXTestFromConfig(cfg config.InjectConfig, logger *zap.Logger) Strategy {
	return NewXTestStrategy("", cfg.LibraryStepDelay, logger)
}

func (s *XTestStrategy) Name() string { return config.StrategyXTest }

func (s *XTestStrategy) Attempt() error {
	conn, err := xgb.NewConnDisplay(s.display)
	if err != nil {
		return fmt.Errorf("%w: connect to X server: %v", ErrInjectionLibrary, err)
	}
	defer conn.Close()

	if err := xtest.Init(conn); err != nil {
		return fmt.Errorf("%w: XTEST extension: %v", ErrInjectionLibrary, err)
	}

	setup := xproto.Setup(conn)
	root := setup.DefaultScreen(conn).Root
	count := byte(setup.MaxKeycode - setup.MinKeycode + 1)
	mapping, err := xproto.GetKeyboardMapping(conn, setup.MinKeycode, count).Reply()
	if err != nil {
		return fmt.Errorf("%w: keyboard mapping: %v", ErrInjectionLibrary, err)
	}

	codes := map[key]xproto.Keycode{}
	for k, sym := range map[key]xproto.Keysym{keyControl: keysymControlL, keyV: keysymV} {
		code, ok := keycodeFor(setup.MinKeycode, int(mapping.KeysymsPerKeycode), mapping.Keysyms, sym)
		if !ok {
			return fmt.Errorf("%w: no keycode for keysym %#x", ErrInjectionLibrary, sym)
		}
		codes[k] = code
	}

	send := func(st stroke) error {
		typ := byte(xproto.KeyRelease)
		if st.press {
			typ = xproto.KeyPress
		}
		return xtest.FakeInputChecked(conn, typ, byte(codes[st.key]), xproto.TimeCurrentTime, root, 0, 0, 0).Check()
	}
	if err := playStrokes(send, s.step, s.sleep, s.logger); err != nil {
		return fmt.Errorf("%w: fake input %v", ErrInjectionLibrary, err)
	}
	return nil
}

// keycodeFor finds the first keycode whose mapping contains want.
func keycodeFor(first xproto.Keycode, perKeycode int, syms []xproto.Keysym, want xproto.Keysym) (xproto.Keycode, bool) {
	if perKeycode <= 0 {
		return 0, false
	}
	for i, sym := range syms {
		if sym == want {
			return first + xproto.Keycode(i/perKeycode), true
		}
	}
	return 0, false
}
