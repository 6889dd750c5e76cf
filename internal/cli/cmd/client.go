package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/berrythewa/clipdeck/internal/ipc"
	"github.com/berrythewa/clipdeck/internal/types"
	"github.com/berrythewa/clipdeck/pkg/format"
)

// callDaemon sends one request and returns the response when it succeeded.
func callDaemon(command string, args map[string]interface{}) (*ipc.Response, error) {
	resp, err := ipc.SendRequest(cfg.IPC.Socket, &ipc.Request{Command: command, Args: args})
	if err != nil {
		return nil, fmt.Errorf("%w (is 'clipdeck run' active?)", err)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp, nil
}

func fetchHistory(limit int) ([]types.Item, error) {
	resp, err := callDaemon(ipc.CmdHistory, map[string]interface{}{"limit": limit})
	if err != nil {
		return nil, err
	}
	var items []types.Item
	if err := resp.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return items, nil
}

// resolveID expands a short id (as printed by history) to the full one.
func resolveID(prefix string) (string, error) {
	items, err := fetchHistory(0)
	if err != nil {
		return "", err
	}
	return matchID(items, prefix)
}

func matchID(items []types.Item, prefix string) (string, error) {
	var matches []string
	for _, it := range items {
		if it.ID == prefix {
			return it.ID, nil
		}
		if strings.HasPrefix(it.ID, prefix) {
			matches = append(matches, it.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no history item matches %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q is ambiguous: matches %d items", prefix, len(matches))
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func outputOptions(compact, noColors, noIcons bool) format.Options {
	opts := format.DefaultOptions()
	if compact {
		opts = format.CompactOptions()
	}
	f := stdoutFile()
	opts.UseColors = !noColors && f != nil && format.ColorsEnabled(f)
	opts.UseIcons = !noIcons
	return opts
}

func stdoutFile() *os.File {
	if f, ok := out.(*os.File); ok {
		return f
	}
	return nil
}
