package inject

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
)

func TestKeycodeFor(t *testing.T) {
	// Two keysyms per keycode starting at keycode 8.
	syms := []xproto.Keysym{
		0x0061, 0x0041, // 8: a A
		0xffe3, 0x0000, // 9: Control_L
		0x0076, 0x0056, // 10: v V
		0x0056, 0x0000, // 11: V only
	}

	code, ok := keycodeFor(8, 2, syms, keysymControlL)
	assert.True(t, ok)
	assert.Equal(t, xproto.Keycode(9), code)

	code, ok = keycodeFor(8, 2, syms, keysymV)
	assert.True(t, ok)
	assert.Equal(t, xproto.Keycode(10), code)

	_, ok = keycodeFor(8, 2, syms, 0xff0d)
	assert.False(t, ok)

	_, ok = keycodeFor(8, 0, syms, keysymV)
	assert.False(t, ok)
}

func TestXTestWithoutServer(t *testing.T) {
	s := NewXTestStrategy("not-a-display", 0, nil)
	assert.ErrorIs(t, s.Attempt(), ErrInjectionLibrary)
}
