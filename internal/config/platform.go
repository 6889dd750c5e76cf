// File: internal/config/platform.go

package config

import (
	"runtime"
	"time"
)

// PlatformDefaults holds platform-specific default values
type PlatformDefaults struct {
	PollInterval time.Duration
	Strategies   []string // paste strategies in the order they are tried
}

// GetPlatformDefaults returns platform-optimized default values
func GetPlatformDefaults() PlatformDefaults {
	return platformDefaults(runtime.GOOS)
}

func platformDefaults(goos string) PlatformDefaults {
	switch goos {
	case "linux":
		// uinput reaches every client, XTEST only X11/XWayland ones, xdotool
		// is the last resort when neither the device nor the library works.
		return PlatformDefaults{
			PollInterval: 500 * time.Millisecond,
			Strategies:   []string{StrategyUinput, StrategyXTest, StrategyXdotool},
		}
	case "windows":
		return PlatformDefaults{
			PollInterval: 250 * time.Millisecond,
			Strategies:   []string{StrategySendInput},
		}
	case "darwin":
		return PlatformDefaults{
			PollInterval: 500 * time.Millisecond,
			Strategies:   []string{StrategyKeybd},
		}
	default:
		// No input injection; pasting is left to the user.
		return PlatformDefaults{
			PollInterval: time.Second,
			Strategies:   []string{},
		}
	}
}
