package daemon

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/berrythewa/clipdeck/internal/config"
	"github.com/berrythewa/clipdeck/internal/ipc"
	"github.com/berrythewa/clipdeck/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memClipboard struct {
	mu   sync.Mutex
	text string
}

func (m *memClipboard) Name() string { return "memory" }

func (m *memClipboard) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.text == "" {
		return "", types.ErrContentNotAvailable
	}
	return m.text, nil
}

func (m *memClipboard) ReadImage() (types.RawImage, error) {
	return types.RawImage{}, types.ErrContentNotAvailable
}

func (m *memClipboard) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

func (m *memClipboard) WriteImage(types.RawImage) error {
	return types.ErrClipboardAccess
}

type countingInjector struct {
	mu  sync.Mutex
	n   int
	err error
}

func (c *countingInjector) SimulatePaste() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return c.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir, err := os.MkdirTemp("", "cdd")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	return &config.Config{
		DeviceID: "test-device",
		History:  config.HistoryConfig{Capacity: 5, PreviewLength: 100},
		Monitor:  config.MonitorConfig{PollInterval: 5 * time.Millisecond},
		Inject:   config.InjectConfig{Strategies: []string{"uinput"}},
		IPC:      config.IPCConfig{Socket: filepath.Join(dir, "d.sock")},
	}
}

func request(cmd string, args map[string]interface{}) *ipc.Request {
	return &ipc.Request{Command: cmd, Args: args}
}

func history(t *testing.T, d *Daemon) []types.Item {
	t.Helper()
	var items []types.Item
	require.NoError(t, d.Handle(request(ipc.CmdHistory, nil)).Decode(&items))
	return items
}

func TestHandle(t *testing.T) {
	sys := &memClipboard{}
	inj := &countingInjector{}
	d := New(testConfig(t), sys, inj, nil)

	d.IngestText("first")
	d.IngestText("second")
	d.IngestText("second")

	items := history(t, d)
	require.Len(t, items, 2)
	first := items[1]

	t.Run("HistoryLimit", func(t *testing.T) {
		var limited []types.Item
		require.NoError(t, d.Handle(request(ipc.CmdHistory, map[string]interface{}{"limit": 1})).Decode(&limited))
		require.Len(t, limited, 1)
		text, _ := limited[0].Text()
		assert.Equal(t, "second", text)
	})

	t.Run("Get", func(t *testing.T) {
		var got types.Item
		require.NoError(t, d.Handle(request(ipc.CmdGet, map[string]interface{}{"id": first.ID})).Decode(&got))
		assert.Equal(t, first.ID, got.ID)

		resp := d.Handle(request(ipc.CmdGet, map[string]interface{}{"id": "nope"}))
		assert.ErrorContains(t, resp.Err(), "item not found")
	})

	t.Run("Pin", func(t *testing.T) {
		var got types.Item
		require.NoError(t, d.Handle(request(ipc.CmdPin, map[string]interface{}{"id": first.ID})).Decode(&got))
		assert.True(t, got.Pinned)

		var st Status
		require.NoError(t, d.Handle(request(ipc.CmdStatus, nil)).Decode(&st))
		assert.Equal(t, 1, st.Pinned)
		assert.Equal(t, 2, st.Items)
		assert.Equal(t, "memory", st.Backend)
		assert.Equal(t, 5, st.Capacity)
	})

	t.Run("PasteSuppressesReingest", func(t *testing.T) {
		resp := d.Handle(request(ipc.CmdPaste, map[string]interface{}{"id": first.ID}))
		require.NoError(t, resp.Err())
		assert.Equal(t, 1, inj.n)
		assert.Equal(t, "first", sys.text)

		d.IngestText("first")
		assert.Len(t, history(t, d), 2)
	})

	t.Run("PasteText", func(t *testing.T) {
		require.NoError(t, d.Handle(request(ipc.CmdPasteText, map[string]interface{}{"text": "✓"})).Err())
		d.IngestText("✓")
		assert.Len(t, history(t, d), 2)
	})

	t.Run("PasteFailure", func(t *testing.T) {
		inj.err = errors.New("all strategies failed")
		defer func() { inj.err = nil }()
		resp := d.Handle(request(ipc.CmdPaste, map[string]interface{}{"id": first.ID}))
		assert.ErrorContains(t, resp.Err(), "paste failed")
	})

	t.Run("ClearKeepsPinned", func(t *testing.T) {
		var res ClearResult
		require.NoError(t, d.Handle(request(ipc.CmdClear, nil)).Decode(&res))
		assert.Equal(t, 1, res.Removed)

		items := history(t, d)
		require.Len(t, items, 1)
		assert.Equal(t, first.ID, items[0].ID)
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, d.Handle(request(ipc.CmdRemove, map[string]interface{}{"id": first.ID})).Err())
		assert.Empty(t, history(t, d))
	})

	t.Run("Unknown", func(t *testing.T) {
		assert.Error(t, d.Handle(request("dance", nil)).Err())
		assert.Error(t, d.Handle(request(ipc.CmdShutdown, nil)).Err(), "not running yet")
	})
}

func TestRunEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	sys := &memClipboard{}
	d := New(cfg, sys, &countingInjector{}, nil)

	done := make(chan error, 1)
	go func() { done <- d.Run(context.Background()) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat(cfg.IPC.Socket)
		return err == nil
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, sys.WriteText("copied elsewhere"))
	require.Eventually(t, func() bool {
		resp, err := ipc.SendRequest(cfg.IPC.Socket, request(ipc.CmdHistory, nil))
		if err != nil {
			return false
		}
		var items []types.Item
		return resp.Decode(&items) == nil && len(items) == 1
	}, time.Second, 10*time.Millisecond)

	resp, err := ipc.SendRequest(cfg.IPC.Socket, request(ipc.CmdShutdown, nil))
	require.NoError(t, err)
	require.NoError(t, resp.Err())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("daemon did not shut down")
	}
}
