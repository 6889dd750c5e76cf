package cmd

import (
	"fmt"
	"strings"

	"github.com/berrythewa/clipdeck/internal/daemon"
	"github.com/berrythewa/clipdeck/internal/ipc"
	"github.com/berrythewa/clipdeck/pkg/format"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := callDaemon(ipc.CmdStatus, nil)
			if err != nil {
				return err
			}
			var st daemon.Status
			if err := resp.Decode(&st); err != nil {
				return err
			}
			if useJSON {
				return printJSON(st)
			}

			strategies := strings.Join(st.Strategies, " → ")
			if strategies == "" {
				strategies = "none (manual paste)"
			}
			stats := []format.Stat{
				{Label: "Device", Value: st.DeviceID},
				{Label: "Uptime", Value: st.Uptime.String()},
				{Label: "Items", Value: fmt.Sprintf("%d (%d pinned)", st.Items, st.Pinned)},
				{Label: "Capacity", Value: fmt.Sprintf("%d unpinned", st.Capacity)},
				{Label: "Clipboard", Value: st.Backend},
				{Label: "Paste via", Value: strategies},
				{Label: "Socket", Value: st.Socket},
			}
			opts := outputOptions(false, false, false)
			fmt.Fprintln(out, format.FormatStats("📋 Clipdeck daemon", stats, opts))
			return nil
		},
	}
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := callDaemon(ipc.CmdShutdown, nil); err != nil {
				return err
			}
			if !quiet {
				fmt.Fprintln(out, "Clipdeck daemon stopped.")
			}
			return nil
		},
	}
}
