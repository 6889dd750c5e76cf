// File: internal/config/config.go

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Names of the paste strategies a config may list.
const (
	StrategyUinput    = "uinput"
	StrategyXTest     = "xtest"
	StrategyXdotool   = "xdotool"
	StrategySendInput = "sendinput"
	StrategyKeybd     = "keybd"
)

var knownStrategies = map[string]bool{
	StrategyUinput:    true,
	StrategyXTest:     true,
	StrategyXdotool:   true,
	StrategySendInput: true,
	StrategyKeybd:     true,
}

// ConfigPaths holds all relevant paths for the application
type ConfigPaths struct {
	BaseDir    string `yaml:"base_dir"`    // Directory holding the config file
	ConfigFile string `yaml:"config_file"` // Path to the config file
	RuntimeDir string `yaml:"runtime_dir"` // Directory for the IPC socket
	LogDir     string `yaml:"log_dir"`     // Directory for log files
}

// Config holds all application configuration
type Config struct {
	DeviceID string `yaml:"device_id"`

	SystemPaths ConfigPaths   `yaml:"-"`
	Log         LogConfig     `yaml:"log"`
	History     HistoryConfig `yaml:"history"`
	Monitor     MonitorConfig `yaml:"monitor"`
	Inject      InjectConfig  `yaml:"inject"`
	IPC         IPCConfig     `yaml:"ipc"`
}

// LogConfig holds logging-related configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
	File   string `yaml:"file"`   // empty means stderr
}

// HistoryConfig controls the in-memory history.
type HistoryConfig struct {
	Capacity      int `yaml:"capacity"`       // max non-pinned items
	PreviewLength int `yaml:"preview_length"` // characters kept in text previews
}

// MonitorConfig controls the clipboard poller.
type MonitorConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	Images       bool          `yaml:"images"`
}

// InjectConfig controls how a paste keystroke is delivered.
type InjectConfig struct {
	Strategies       []string      `yaml:"strategies"`
	UinputPath       string        `yaml:"uinput_path"`
	DeviceName       string        `yaml:"device_name"`
	XdotoolPath      string        `yaml:"xdotool_path"`
	PreDelay         time.Duration `yaml:"pre_delay"`
	SettleDelay      time.Duration `yaml:"settle_delay"`
	StepDelay        time.Duration `yaml:"step_delay"`
	DrainDelay       time.Duration `yaml:"drain_delay"`
	LibraryStepDelay time.Duration `yaml:"library_step_delay"`
}

// IPCConfig holds the daemon socket location.
type IPCConfig struct {
	Socket string `yaml:"socket"`
}

// Overridable for tests.
var (
	getConfigPath    = defaultConfigPath
	getRuntimeDir    = defaultRuntimeDir
	generateDeviceID = func() string { return uuid.New().String() }
)

// GetConfigPaths returns the platform-specific configuration paths
func GetConfigPaths() (*ConfigPaths, error) {
	configFile, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	runtimeDir, err := getRuntimeDir()
	if err != nil {
		return nil, err
	}
	baseDir := filepath.Dir(configFile)
	return &ConfigPaths{
		BaseDir:    baseDir,
		ConfigFile: configFile,
		RuntimeDir: runtimeDir,
		LogDir:     filepath.Join(baseDir, "logs"),
	}, nil
}

// DefaultConfig returns a new Config with default values
func DefaultConfig() *Config {
	paths, err := GetConfigPaths()
	if err != nil {
		paths = &ConfigPaths{RuntimeDir: os.TempDir()}
	}
	defaults := GetPlatformDefaults()

	return &Config{
		DeviceID:    generateDeviceID(),
		SystemPaths: *paths,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		History: HistoryConfig{
			Capacity:      50,
			PreviewLength: 100,
		},
		Monitor: MonitorConfig{
			PollInterval: defaults.PollInterval,
			Images:       true,
		},
		Inject: InjectConfig{
			Strategies:       defaults.Strategies,
			UinputPath:       "/dev/uinput",
			DeviceName:       "clipdeck-paste-helper",
			XdotoolPath:      "xdotool",
			PreDelay:         10 * time.Millisecond,
			SettleDelay:      100 * time.Millisecond,
			StepDelay:        30 * time.Millisecond,
			DrainDelay:       100 * time.Millisecond,
			LibraryStepDelay: 20 * time.Millisecond,
		},
		IPC: IPCConfig{
			Socket: filepath.Join(paths.RuntimeDir, "clipdeck.sock"),
		},
	}
}

// Load loads the configuration from the specified file or creates default if not exists
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		var err error
		configPath, err = getConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
	}

	cfg := DefaultConfig()
	cfg.SystemPaths.ConfigFile = configPath
	cfg.SystemPaths.BaseDir = filepath.Dir(configPath)
	cfg.SystemPaths.LogDir = filepath.Join(cfg.SystemPaths.BaseDir, "logs")

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		if err := cfg.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := overrideFromEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves the configuration to the specified file
func (c *Config) Save(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.History.Capacity < 1 {
		return fmt.Errorf("history.capacity must be at least 1, got %d", c.History.Capacity)
	}
	if c.History.PreviewLength < 1 {
		return fmt.Errorf("history.preview_length must be at least 1, got %d", c.History.PreviewLength)
	}
	if c.Monitor.PollInterval <= 0 {
		return fmt.Errorf("monitor.poll_interval must be positive, got %s", c.Monitor.PollInterval)
	}
	for _, name := range c.Inject.Strategies {
		if !knownStrategies[name] {
			return fmt.Errorf("inject.strategies: unknown strategy %q", name)
		}
	}
	for name, d := range map[string]time.Duration{
		"pre_delay":          c.Inject.PreDelay,
		"settle_delay":       c.Inject.SettleDelay,
		"step_delay":         c.Inject.StepDelay,
		"drain_delay":        c.Inject.DrainDelay,
		"library_step_delay": c.Inject.LibraryStepDelay,
	} {
		if d < 0 {
			return fmt.Errorf("inject.%s must not be negative, got %s", name, d)
		}
	}
	if c.IPC.Socket == "" {
		return fmt.Errorf("ipc.socket must be set")
	}
	return nil
}

// overrideFromEnv overrides configuration values from environment variables
func overrideFromEnv(cfg *Config) error {
	if val := os.Getenv("CLIPDECK_DEVICE_ID"); val != "" {
		cfg.DeviceID = val
	}
	if val := os.Getenv("CLIPDECK_LOG_LEVEL"); val != "" {
		cfg.Log.Level = val
	}
	if val := os.Getenv("CLIPDECK_HISTORY_CAPACITY"); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("CLIPDECK_HISTORY_CAPACITY: %w", err)
		}
		cfg.History.Capacity = n
	}
	if val := os.Getenv("CLIPDECK_POLL_INTERVAL"); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("CLIPDECK_POLL_INTERVAL: %w", err)
		}
		cfg.Monitor.PollInterval = d
	}
	if val := os.Getenv("CLIPDECK_SOCKET"); val != "" {
		cfg.IPC.Socket = val
	}
	if val := os.Getenv("CLIPDECK_UINPUT_PATH"); val != "" {
		cfg.Inject.UinputPath = val
	}
	if val := os.Getenv("CLIPDECK_INJECT_STRATEGIES"); val != "" {
		var names []string
		for _, name := range strings.Split(val, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		cfg.Inject.Strategies = names
	}
	return nil
}
