//go:build !linux

package inject

import (
	"fmt"
	"runtime"
)

func openUinput(string) (uinputDevice, error) {
	return nil, fmt.Errorf("uinput is not available on %s", runtime.GOOS)
}
