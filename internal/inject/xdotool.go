package inject

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/berrythewa/clipdeck/internal/config"
	"go.uber.org/zap"
)

// XdotoolStrategy shells out to xdotool. It only runs when an X display is
// advertised in the environment.
type XdotoolStrategy struct {
	path      string
	lookupEnv func(string) (string, bool)
	run       func(name string, args ...string) ([]byte, error)
	logger    *zap.Logger
}

// NewXdotoolStrategy runs the xdotool binary at path.
func NewXdotoolStrategy(path string, logger *zap.Logger) *XdotoolStrategy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &XdotoolStrategy{
		path:      path,
		lookupEnv: os.LookupEnv,
		run: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).CombinedOutput()
		},
		logger: logger,
	}
}

func newXdotoolFromConfig(cfg config.InjectConfig, logger *zap.Logger) Strategy {
	return NewXdotoolStrategy(cfg.XdotoolPath, logger)
}

func (s *XdotoolStrategy) Name() string { return config.StrategyXdotool }

func (s *XdotoolStrategy) Attempt() error {
	if _, ok := s.lookupEnv("DISPLAY"); !ok {
		return fmt.Errorf("%w: DISPLAY is not set", ErrInjectionCommand)
	}

	out, err := s.run(s.path, "key", "--clearmodifiers", "ctrl+v")
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%w: %v: %s", ErrInjectionCommand, err, msg)
		}
		return fmt.Errorf("%w: %v", ErrInjectionCommand, err)
	}
	return nil
}
