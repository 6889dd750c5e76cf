// Package daemon runs the clipboard monitor and answers CLI requests over
// the IPC socket.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/berrythewa/clipdeck/internal/clipboard"
	"github.com/berrythewa/clipdeck/internal/config"
	"github.com/berrythewa/clipdeck/internal/ipc"
	"github.com/berrythewa/clipdeck/internal/platform"
	"github.com/berrythewa/clipdeck/internal/types"
	"github.com/berrythewa/clipdeck/pkg/codec"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Status is the payload of the status command.
type Status struct {
	DeviceID   string        `json:"device_id"`
	Uptime     time.Duration `json:"uptime"`
	Items      int           `json:"items"`
	Pinned     int           `json:"pinned"`
	Capacity   int           `json:"capacity"`
	Backend    string        `json:"backend"`
	Strategies []string      `json:"strategies"`
	Socket     string        `json:"socket"`
}

// ClearResult is the payload of the clear command.
type ClearResult struct {
	Removed int `json:"removed"`
}

// Daemon owns the history. The Manager is not safe for concurrent use, so
// the monitor and every IPC request go through mu.
type Daemon struct {
	mu      sync.Mutex
	manager *clipboard.Manager
	service *clipboard.Service
	monitor *clipboard.Monitor

	cfg       *config.Config
	backend   string
	logger    *zap.Logger
	started   time.Time
	cancelRun context.CancelFunc
}

// New wires the history, the paste service and the monitor around sys.
func New(cfg *config.Config, sys platform.Clipboard, injector clipboard.Injector, logger *zap.Logger) *Daemon {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Daemon{
		cfg:     cfg,
		backend: sys.Name(),
		logger:  logger,
		started: time.Now(),
	}
	d.manager = clipboard.NewManager(clipboard.Options{
		Capacity:      cfg.History.Capacity,
		PreviewLength: cfg.History.PreviewLength,
		Codec:         codec.PNG{},
		Logger:        logger.Named("history"),
	})
	d.service = clipboard.NewService(d.manager, sys, injector, logger.Named("paste"))
	d.monitor = clipboard.NewMonitor(sys, d, cfg.Monitor.PollInterval, cfg.Monitor.Images, logger.Named("monitor"))
	return d
}

// Run serves until ctx is cancelled, a shutdown request arrives, or the IPC
// server fails.
func (d *Daemon) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.mu.Lock()
	d.cancelRun = cancel
	d.mu.Unlock()

	d.logger.Info("Daemon starting",
		zap.String("device_id", d.cfg.DeviceID),
		zap.String("backend", d.backend),
		zap.Strings("strategies", d.cfg.Inject.Strategies))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.monitor.Run(ctx) })
	g.Go(func() error { return ipc.ListenAndServe(ctx, d.cfg.IPC.Socket, d.Handle, d.logger.Named("ipc")) })

	err := g.Wait()
	d.logger.Info("Daemon stopped")
	return err
}

// IngestText records text seen by the monitor.
func (d *Daemon) IngestText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if item, ok := d.manager.AddText(text); ok {
		d.logger.Debug("Captured text", zap.String("id", item.ID), zap.Int("length", len(text)))
	}
}

// IngestImage records an image seen by the monitor.
func (d *Daemon) IngestImage(img types.RawImage, hash uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if item, ok := d.manager.AddImage(img, hash); ok {
		d.logger.Debug("Captured image", zap.String("id", item.ID), zap.String("preview", item.Preview))
	}
}

// Handle serves one IPC request.
func (d *Daemon) Handle(req *ipc.Request) *ipc.Response {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch req.Command {
	case ipc.CmdStatus:
		return ipc.OK(d.status())

	case ipc.CmdHistory:
		limit, err := req.IntArg("limit", 0)
		if err != nil {
			return ipc.Errorf("%v", err)
		}
		items := d.manager.History()
		if limit > 0 && limit < len(items) {
			items = items[:limit]
		}
		return ipc.OK(items)

	case ipc.CmdGet:
		return d.withItem(req, func(item types.Item) *ipc.Response {
			return ipc.OK(item)
		})

	case ipc.CmdPin:
		return d.withItem(req, func(item types.Item) *ipc.Response {
			updated, _ := d.manager.TogglePin(item.ID)
			return ipc.OK(updated)
		})

	case ipc.CmdRemove:
		return d.withItem(req, func(item types.Item) *ipc.Response {
			d.manager.RemoveItem(item.ID)
			return ipc.OK(nil)
		})

	case ipc.CmdClear:
		before := len(d.manager.History())
		d.manager.Clear()
		return ipc.OK(ClearResult{Removed: before - len(d.manager.History())})

	case ipc.CmdPaste:
		// The lock is held across the whole paste so the monitor cannot
		// ingest our own write between suppression and the keystroke.
		return d.withItem(req, func(item types.Item) *ipc.Response {
			if err := d.service.PasteItem(item); err != nil {
				return ipc.Errorf("paste failed: %v", err)
			}
			return ipc.OK(nil)
		})

	case ipc.CmdPasteText:
		text, err := req.StringArg("text")
		if err != nil {
			return ipc.Errorf("%v", err)
		}
		if err := d.service.PasteText(text); err != nil {
			return ipc.Errorf("paste failed: %v", err)
		}
		return ipc.OK(nil)

	case ipc.CmdShutdown:
		if d.cancelRun == nil {
			return ipc.Errorf("daemon is not running")
		}
		d.logger.Info("Shutdown requested over IPC")
		d.cancelRun()
		return ipc.OK(nil)

	default:
		return ipc.Errorf("unknown command %q", req.Command)
	}
}

// ErrItemNotFound is reported when a request names an unknown id.
var ErrItemNotFound = errors.New("item not found")

func (d *Daemon) withItem(req *ipc.Request, fn func(types.Item) *ipc.Response) *ipc.Response {
	id, err := req.StringArg("id")
	if err != nil {
		return ipc.Errorf("%v", err)
	}
	item, ok := d.manager.Item(id)
	if !ok {
		return ipc.Errorf("%v: %s", ErrItemNotFound, id)
	}
	return fn(item)
}

func (d *Daemon) status() Status {
	items := d.manager.History()
	pinned := 0
	for _, it := range items {
		if it.Pinned {
			pinned++
		}
	}
	return Status{
		DeviceID:   d.cfg.DeviceID,
		Uptime:     time.Since(d.started).Round(time.Second),
		Items:      len(items),
		Pinned:     pinned,
		Capacity:   d.manager.Capacity(),
		Backend:    d.backend,
		Strategies: d.cfg.Inject.Strategies,
		Socket:     d.cfg.IPC.Socket,
	}
}

// String summarizes the status on one line.
func (s Status) String() string {
	return fmt.Sprintf("%d items (%d pinned), backend %s", s.Items, s.Pinned, s.Backend)
}
