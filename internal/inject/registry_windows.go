//go:build windows

package inject

import "github.com/berrythewa/clipdeck/internal/config"

var registry = map[string]factory{
	config.StrategySendInput: newSendInputFromConfig,
}
