package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/berrythewa/clipdeck/internal/config"
	"github.com/berrythewa/clipdeck/internal/daemon"
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

func (m *memClipboard) WriteImage(types.RawImage) error { return types.ErrClipboardAccess }

type nopInjector struct{}

func (nopInjector) SimulatePaste() error { return nil }

// startDaemon runs an in-process daemon and returns a config file pointing at it.
func startDaemon(t *testing.T, seed ...string) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "cdc")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf("device_id: cli-test\nhistory:\n  capacity: 10\nlog:\n  level: error\nipc:\n  socket: %s\ninject:\n  strategies: []\n",
		filepath.Join(dir, "d.sock"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	dcfg, err := config.Load(path)
	require.NoError(t, err)

	d := daemon.New(dcfg, &memClipboard{}, nopInjector{}, nil)
	for _, s := range seed {
		d.IngestText(s)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = d.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	require.Eventually(t, func() bool {
		_, err := os.Stat(dcfg.IPC.Socket)
		return err == nil
	}, time.Second, 5*time.Millisecond)
	return path
}

func run(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	orig := out
	out = &buf
	t.Cleanup(func() { out = orig })

	// Flags are package globals shared by every command tree.
	useJSON, verbose, quiet = false, false, false

	root := newRootCmd()
	root.SetArgs(append([]string{"--config", configPath}, args...))
	root.SetOut(&buf)
	root.SetErr(&buf)
	err := root.Execute()
	return buf.String(), err
}

func TestHistoryCommands(t *testing.T) {
	path := startDaemon(t, "alpha", "beta", "gamma")

	listing, err := run(t, path, "history", "--compact", "--no-icons", "--no-colors")
	require.NoError(t, err)
	assert.Contains(t, listing, "(3 entries)")
	lines := strings.Split(strings.TrimSpace(listing), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasSuffix(lines[2], "gamma"), lines[2])

	jsonOut, err := run(t, path, "--json", "history", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, jsonOut, `"type": "text"`)
	assert.Contains(t, jsonOut, `"gamma"`)
	assert.NotContains(t, jsonOut, `"alpha"`)

	// Short ids from the listing are enough to address an item.
	fields := strings.Fields(lines[4])
	shortID := fields[2]
	raw, err := run(t, path, "show", shortID, "--raw")
	require.NoError(t, err)
	assert.Equal(t, "alpha", raw)

	pinned, err := run(t, path, "pin", shortID)
	require.NoError(t, err)
	assert.Equal(t, "Pinned "+shortID+"\n", pinned)

	cleared, err := run(t, path, "clear")
	require.NoError(t, err)
	assert.Equal(t, "Cleared 2 entries\n", cleared)

	removed, err := run(t, path, "rm", shortID)
	require.NoError(t, err)
	assert.Contains(t, removed, "Removed")

	_, err = run(t, path, "show", shortID)
	assert.ErrorContains(t, err, "no history item matches")
}

func TestPasteCommands(t *testing.T) {
	path := startDaemon(t, "first", "second")

	resp, err := run(t, path, "--json", "history")
	require.NoError(t, err)
	var id string
	for _, line := range strings.Split(resp, "\n") {
		if strings.Contains(line, `"id"`) {
			id = strings.Trim(strings.TrimSpace(strings.SplitN(line, ":", 2)[1]), `",`)
			break
		}
	}
	require.NotEmpty(t, id)

	msg, err := run(t, path, "paste", id)
	require.NoError(t, err)
	assert.Contains(t, msg, "Pasted")

	_, err = run(t, path, "type", "hello", "world")
	require.NoError(t, err)

	status, err := run(t, path, "status")
	require.NoError(t, err)
	assert.Contains(t, status, "2 (0 pinned)")
	assert.Contains(t, status, "none (manual paste)")
}

func TestNoDaemon(t *testing.T) {
	dir, err := os.MkdirTemp("", "cdn")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ipc:\n  socket: "+filepath.Join(dir, "none.sock")+"\n"), 0o644))

	_, err = run(t, path, "history")
	assert.ErrorContains(t, err, "is 'clipdeck run' active?")
}

func TestMatchID(t *testing.T) {
	items := []types.Item{
		{ID: "abc123"},
		{ID: "abd456"},
		{ID: "ab"},
	}

	id, err := matchID(items, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)

	id, err = matchID(items, "ab")
	require.NoError(t, err)
	assert.Equal(t, "ab", id, "exact match wins over prefixes")

	_, err = matchID(items, "a")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = matchID(items, "zz")
	assert.Error(t, err)
}

func TestFilterItems(t *testing.T) {
	items := []types.Item{
		types.NewTextItem("1", "a", time.Now(), 0),
		types.NewImageItem("2", types.ImageContent{Width: 1, Height: 1}, time.Now()),
		types.NewTextItem("3", "b", time.Now(), 0),
	}
	items[2].Pinned = true

	assert.Len(t, filterItems(items, "", false, 0), 3)
	assert.Len(t, filterItems(items, "", false, 2), 2)
	assert.Len(t, filterItems(items, types.TypeText, false, 0), 2)

	pinned := filterItems(items, "", true, 0)
	require.Len(t, pinned, 1)
	assert.Equal(t, "3", pinned[0].ID)
}

func TestWriteRaw(t *testing.T) {
	var buf bytes.Buffer
	img := types.NewImageItem("i", types.ImageContent{Encoded: "iVBORw==", Width: 1, Height: 1}, time.Now())
	require.NoError(t, writeRaw(&buf, img))
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, buf.Bytes())
}

func TestVersion(t *testing.T) {
	SetVersionInfo("1.2.3", "today", "abc")
	output, err := run(t, filepath.Join(t.TempDir(), "unused.yaml"), "version")
	require.NoError(t, err)
	assert.Contains(t, output, "Version:    1.2.3")
}
