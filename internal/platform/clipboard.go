// Package platform provides the system clipboard used by the daemon.
//
// The native backend (golang.design/x/clipboard) handles text and PNG
// images. When it cannot initialize, for example without cgo or on a
// display-less session, a text-only backend built on atotto/clipboard and the
// platform helper tools takes over.
package platform

import (
	"fmt"
	"strings"

	atotto "github.com/atotto/clipboard"
	"github.com/berrythewa/clipdeck/internal/types"
	"github.com/berrythewa/clipdeck/pkg/codec"
	"go.uber.org/zap"
	xclip "golang.design/x/clipboard"
)

// Clipboard is the OS clipboard. Every call opens a fresh handle.
type Clipboard interface {
	Name() string
	ReadText() (string, error)
	ReadImage() (types.RawImage, error)
	WriteText(text string) error
	WriteImage(img types.RawImage) error
}

// Overridable for tests.
var initNative = xclip.Init

// NewClipboard returns the best clipboard backend available.
func NewClipboard(logger *zap.Logger) Clipboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := initNative(); err != nil {
		logger.Warn("Native clipboard unavailable, falling back to text-only backend", zap.Error(err))
		return newTextClipboard()
	}
	logger.Debug("Using native clipboard backend")
	return newNativeClipboard()
}

// nativeClipboard reads and writes through golang.design/x/clipboard. Images
// cross the boundary as PNG.
type nativeClipboard struct {
	read  func(xclip.Format) []byte
	write func(xclip.Format, []byte)
	codec codec.PNG
}

func newNativeClipboard() *nativeClipboard {
	return &nativeClipboard{
		read:  xclip.Read,
		write: func(f xclip.Format, b []byte) { xclip.Write(f, b) },
	}
}

func (c *nativeClipboard) Name() string { return "native" }

func (c *nativeClipboard) ReadText() (string, error) {
	data := c.read(xclip.FmtText)
	if len(data) == 0 {
		return "", types.ErrContentNotAvailable
	}
	return string(data), nil
}

func (c *nativeClipboard) ReadImage() (types.RawImage, error) {
	data := c.read(xclip.FmtImage)
	if len(data) == 0 {
		return types.RawImage{}, types.ErrContentNotAvailable
	}
	img, err := c.codec.DecodePNG(data)
	if err != nil {
		return types.RawImage{}, fmt.Errorf("%w: %v", types.ErrClipboardAccess, err)
	}
	return img, nil
}

func (c *nativeClipboard) WriteText(text string) error {
	c.write(xclip.FmtText, []byte(text))
	return nil
}

func (c *nativeClipboard) WriteImage(img types.RawImage) error {
	data, err := c.codec.EncodePNG(img)
	if err != nil {
		return err
	}
	c.write(xclip.FmtImage, data)
	return nil
}

// textClipboard is the atotto fallback. It has no image support.
type textClipboard struct {
	readAll  func() (string, error)
	writeAll func(string) error
}

func newTextClipboard() *textClipboard {
	return &textClipboard{readAll: atotto.ReadAll, writeAll: atotto.WriteAll}
}

func (c *textClipboard) Name() string { return "text-only" }

func (c *textClipboard) ReadText() (string, error) {
	if atotto.Unsupported {
		return "", fmt.Errorf("%w: no clipboard utility installed", types.ErrClipboardAccess)
	}
	text, err := c.readAll()
	if err != nil {
		// xclip and friends exit non-zero on an empty selection.
		if strings.Contains(err.Error(), "exit status") {
			return "", types.ErrContentNotAvailable
		}
		return "", fmt.Errorf("%w: %v", types.ErrClipboardAccess, err)
	}
	if text == "" {
		return "", types.ErrContentNotAvailable
	}
	return text, nil
}

func (c *textClipboard) ReadImage() (types.RawImage, error) {
	return types.RawImage{}, types.ErrContentNotAvailable
}

func (c *textClipboard) WriteText(text string) error {
	if err := c.writeAll(text); err != nil {
		return fmt.Errorf("%w: %v", types.ErrClipboardAccess, err)
	}
	return nil
}

func (c *textClipboard) WriteImage(types.RawImage) error {
	return fmt.Errorf("%w: images are not supported by the %s backend", types.ErrClipboardAccess, c.Name())
}
