package inject

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
)

// key is a logical key of the paste combination.
type key int

const (
	keyControl key = iota
	keyV
)

func (k key) String() string {
	switch k {
	case keyControl:
		return "ctrl"
	case keyV:
		return "v"
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// stroke is one step of the combination.
type stroke struct {
	key   key
	press bool
}

// pasteStrokes is the only valid ordering: the modifier wraps V.
var pasteStrokes = [...]stroke{
	{keyControl, true},
	{keyV, true},
	{keyV, false},
	{keyControl, false},
}

// heldAfter returns the keys still down once strokes have been applied,
// most recently pressed first.
func heldAfter(strokes []stroke) []key {
	var held []key
	for _, st := range strokes {
		if st.press {
			held = append(held, st.key)
			continue
		}
		held = slices.DeleteFunc(held, func(k key) bool { return k == st.key })
	}
	slices.Reverse(held)
	return held
}

// playStrokes sends the paste strokes in order, sleeping step between them.
// When a stroke fails, the keys it already pressed are released in reverse
// order before the error is returned, so a failed attempt never leaves a
// modifier down. Release failures are only logged.
func playStrokes(send func(stroke) error, step time.Duration, sleep func(time.Duration), logger *zap.Logger) error {
	for i, st := range pasteStrokes {
		if err := send(st); err != nil {
			for _, k := range heldAfter(pasteStrokes[:i]) {
				if rerr := send(stroke{key: k}); rerr != nil {
					logger.Debug("Failed to release key after aborted paste",
						zap.Stringer("key", k), zap.Error(rerr))
				}
			}
			return fmt.Errorf("stroke %d: %w", i, err)
		}
		if i < len(pasteStrokes)-1 {
			sleep(step)
		}
	}
	return nil
}
