package inject

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeEvent(t *testing.T) {
	buf := encodeEvent(evKey, keyVCode, 1)

	assert.Len(t, buf, 24)
	assert.Equal(t, make([]byte, 16), buf[:16], "timestamp stays zero")
	assert.Equal(t, uint16(evKey), binary.NativeEndian.Uint16(buf[16:18]))
	assert.Equal(t, uint16(47), binary.NativeEndian.Uint16(buf[18:20]))
	assert.Equal(t, uint32(1), binary.NativeEndian.Uint32(buf[20:24]))

	var endianCheck [2]byte
	binary.NativeEndian.PutUint16(endianCheck[:], 1)
	if endianCheck[0] == 1 {
		want := [24]byte{16: 0x01, 18: 0x2f, 20: 0x01}
		assert.Equal(t, want, buf)
	}
}

func TestEncodeSyncAndNegativeValue(t *testing.T) {
	syn := encodeEvent(evSyn, synReport, 0)
	assert.Equal(t, [24]byte{}, syn)

	neg := encodeEvent(evKey, keyLeftCtrl, -1)
	assert.Equal(t, int32(-1), int32(binary.NativeEndian.Uint32(neg[20:24])))
}

func TestPasteStrokeOrder(t *testing.T) {
	want := []stroke{
		{keyControl, true},
		{keyV, true},
		{keyV, false},
		{keyControl, false},
	}
	assert.Equal(t, want, pasteStrokes[:])
	assert.Equal(t, uint16(29), linuxKeyCode(keyControl))
	assert.Equal(t, uint16(47), linuxKeyCode(keyV))
}
