package inject

import "encoding/binary"

// Linux input event constants used by the uinput strategy.
const (
	evSyn     = 0x00
	evKey     = 0x01
	synReport = 0

	keyLeftCtrl = 29
	keyVCode    = 47

	eventSize = 24
)

// encodeEvent lays out one input_event record as the kernel reads it from a
// uinput descriptor on a 64-bit host: 16 bytes of timestamp (left zero), then
// type, code and value in native byte order.
func encodeEvent(typ, code uint16, value int32) [eventSize]byte {
	var buf [eventSize]byte
	binary.NativeEndian.PutUint16(buf[16:18], typ)
	binary.NativeEndian.PutUint16(buf[18:20], code)
	binary.NativeEndian.PutUint32(buf[20:24], uint32(value))
	return buf
}

func linuxKeyCode(k key) uint16 {
	if k == keyControl {
		return keyLeftCtrl
	}
	return keyVCode
}

func pressValue(press bool) int32 {
	if press {
		return 1
	}
	return 0
}
