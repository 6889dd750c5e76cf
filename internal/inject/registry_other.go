//go:build !linux && !windows && !darwin

package inject

// No injection mechanism; the default chain is empty and pastes are manual.
var registry = map[string]factory{}
