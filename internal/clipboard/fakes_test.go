package clipboard

import (
	"fmt"
	"sync"

	"github.com/berrythewa/clipdeck/internal/types"
)

// fakeClipboard records calls in order so tests can check sequencing.
type fakeClipboard struct {
	mu       sync.Mutex
	calls    *[]string
	text     string
	textErr  error
	image    types.RawImage
	imageErr error
	writeErr error
	written  []string
	images   []types.RawImage
}

func (f *fakeClipboard) record(call string) {
	if f.calls != nil {
		*f.calls = append(*f.calls, call)
	}
}

func (f *fakeClipboard) ReadText() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text, f.textErr
}

func (f *fakeClipboard) ReadImage() (types.RawImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.image, f.imageErr
}

func (f *fakeClipboard) WriteText(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("write-text")
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written = append(f.written, text)
	f.text = text
	return nil
}

func (f *fakeClipboard) WriteImage(img types.RawImage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("write-image")
	if f.writeErr != nil {
		return f.writeErr
	}
	f.images = append(f.images, img)
	return nil
}

type fakeInjector struct {
	calls *[]string
	err   error
	n     int
}

func (f *fakeInjector) SimulatePaste() error {
	f.n++
	if f.calls != nil {
		*f.calls = append(*f.calls, "inject")
	}
	return f.err
}

// recordingIngester captures what a monitor forwarded.
type recordingIngester struct {
	texts  []string
	hashes []uint64
}

func (r *recordingIngester) IngestText(text string) { r.texts = append(r.texts, text) }

func (r *recordingIngester) IngestImage(_ types.RawImage, hash uint64) {
	r.hashes = append(r.hashes, hash)
}

var errBoom = fmt.Errorf("%w: boom", types.ErrClipboardAccess)
