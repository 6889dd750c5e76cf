// Package inject delivers a paste keystroke (Ctrl+V, Cmd+V on macOS) to
// whichever application holds keyboard focus. Several strategies are tried in
// order and the first one that succeeds wins.
package inject

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/berrythewa/clipdeck/internal/config"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Error kinds for each strategy family. Strategy errors wrap one of these.
var (
	ErrInjectionDevice     = errors.New("virtual input device failed")
	ErrInjectionLibrary    = errors.New("input simulation library failed")
	ErrInjectionCommand    = errors.New("key sender command failed")
	ErrAllStrategiesFailed = errors.New("all paste injection strategies failed")
)

// Strategy is one way of sending the paste combination. A failed attempt
// leaves nothing behind.
type Strategy interface {
	Name() string
	Attempt() error
}

// ChainError is returned when every strategy failed. It matches
// ErrAllStrategiesFailed and each individual cause with errors.Is.
type ChainError struct {
	Causes error
}

func (e *ChainError) Error() string {
	parts := make([]string, 0, len(e.Failures()))
	for _, err := range e.Failures() {
		parts = append(parts, err.Error())
	}
	return fmt.Sprintf("%s: %s", ErrAllStrategiesFailed, strings.Join(parts, "; "))
}

func (e *ChainError) Unwrap() []error {
	return []error{ErrAllStrategiesFailed, e.Causes}
}

// Failures lists the cause of each attempt in the order they ran.
func (e *ChainError) Failures() []error {
	return multierr.Errors(e.Causes)
}

// Chain tries its strategies in order until one succeeds.
type Chain struct {
	strategies []Strategy
	preDelay   time.Duration
	sleep      func(time.Duration)
	logger     *zap.Logger
}

// NewChain builds a chain from explicit strategies.
func NewChain(strategies []Strategy, preDelay time.Duration, logger *zap.Logger) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{
		strategies: strategies,
		preDelay:   preDelay,
		sleep:      time.Sleep,
		logger:     logger,
	}
}

// New builds the chain named by cfg.Strategies for the running platform.
func New(cfg config.InjectConfig, logger *zap.Logger) (*Chain, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	strategies := make([]Strategy, 0, len(cfg.Strategies))
	for _, name := range cfg.Strategies {
		factory, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("inject strategy %q is not available on this platform", name)
		}
		strategies = append(strategies, factory(cfg, logger))
	}
	return NewChain(strategies, cfg.PreDelay, logger), nil
}

// Strategies returns the strategy names in the order they are tried.
func (c *Chain) Strategies() []string {
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.Name()
	}
	return names
}

// SimulatePaste sends the paste combination. A chain without strategies
// succeeds without doing anything; the content is already on the clipboard
// for a manual paste.
func (c *Chain) SimulatePaste() error {
	if len(c.strategies) == 0 {
		c.logger.Debug("No paste strategy on this platform, leaving paste to the user")
		return nil
	}

	c.sleep(c.preDelay)

	var causes error
	for _, s := range c.strategies {
		err := s.Attempt()
		if err == nil {
			c.logger.Info("Paste injected", zap.String("strategy", s.Name()))
			return nil
		}
		c.logger.Warn("Paste strategy failed", zap.String("strategy", s.Name()), zap.Error(err))
		causes = multierr.Append(causes, fmt.Errorf("%s: %w", s.Name(), err))
	}
	c.logger.Error("All paste strategies failed",
		zap.Int("attempted", len(c.strategies)),
		zap.Error(causes))
	return &ChainError{Causes: causes}
}

type factory func(cfg config.InjectConfig, logger *zap.Logger) Strategy
