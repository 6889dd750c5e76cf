//go:build linux

package inject

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// ioctl requests from linux/uinput.h.
const (
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiDevSetup   = 0x405c5503
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502

	uinputMaxNameSize = 80
)

// uinputSetup mirrors struct uinput_setup.
type uinputSetup struct {
	ID           inputID
	Name         [uinputMaxNameSize]byte
	FFEffectsMax uint32
}

type linuxUinput struct {
	f *os.File
}

func openUinput(path string) (uinputDevice, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, err
	}
	return &linuxUinput{f: f}, nil
}

func (d *linuxUinput) Write(p []byte) (int, error) { return d.f.Write(p) }

func (d *linuxUinput) SetEventBit(ev int) error {
	return unix.IoctlSetInt(int(d.f.Fd()), uiSetEvBit, ev)
}

func (d *linuxUinput) SetKeyBit(code int) error {
	return unix.IoctlSetInt(int(d.f.Fd()), uiSetKeyBit, code)
}

func (d *linuxUinput) Setup(id inputID, name string) error {
	if len(name) >= uinputMaxNameSize {
		return fmt.Errorf("device name %q longer than %d bytes", name, uinputMaxNameSize-1)
	}
	s := uinputSetup{ID: id}
	copy(s.Name[:], name)
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, d.f.Fd(), uiDevSetup, uintptr(unsafe.Pointer(&s)))
	if errno != 0 {
		return errno
	}
	return nil
}

func (d *linuxUinput) Create() error  { return d.ioctl(uiDevCreate) }
func (d *linuxUinput) Destroy() error { return d.ioctl(uiDevDestroy) }
func (d *linuxUinput) Close() error   { return d.f.Close() }

func (d *linuxUinput) ioctl(req uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, d.f.Fd(), req, 0)
	if errno != 0 {
		return errno
	}
	return nil
}
