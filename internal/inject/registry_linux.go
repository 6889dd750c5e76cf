//go:build linux

package inject

import "github.com/berrythewa/clipdeck/internal/config"

var registry = map[string]factory{
	config.StrategyUinput:  newUinputFromConfig,
	config.StrategyXTest:   newXTestFromConfig,
	config.StrategyXdotool: newXdotoolFromConfig,
}
