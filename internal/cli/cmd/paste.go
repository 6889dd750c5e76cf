package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/berrythewa/clipdeck/internal/inject"
	"github.com/berrythewa/clipdeck/internal/ipc"
	"github.com/berrythewa/clipdeck/pkg/format"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPasteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paste <id>",
		Short: "Paste a history entry into the focused window",
		Long: `Write the entry to the clipboard and send the paste keystroke to
whichever window has focus. If no keystroke strategy works the content is
still left on the clipboard.

Bind this to a hotkey, or run it with a short delay from a terminal:
  sleep 2; clipdeck paste 3f2a`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveID(args[0])
			if err != nil {
				return err
			}
			if _, err := callDaemon(ipc.CmdPaste, map[string]interface{}{"id": id}); err != nil {
				return err
			}
			logger.Debug("Pasted history entry", zap.String("id", id))
			if !quiet {
				fmt.Fprintf(out, "Pasted %s\n", format.ShortID(id))
			}
			return nil
		},
	}
}

func newTypeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "type <text>...",
		Short: "Paste text without recording it in history",
		Long: `Paste the given text (arguments joined by spaces) into the focused
window through the clipboard. The text never appears in the history; use it
for symbols, emoji and snippets.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if _, err := callDaemon(ipc.CmdPasteText, map[string]interface{}{"text": text}); err != nil {
				return err
			}
			return nil
		},
	}
}

// newInjectCmd sends the keystroke directly, without the daemon, to check
// which strategy works on this machine.
func newInjectCmd() *cobra.Command {
	var (
		delay      time.Duration
		strategies []string
	)

	cmd := &cobra.Command{
		Use:   "inject",
		Short: "Send a paste keystroke now, to test the strategies",
		Long: `Run the paste keystroke chain locally, without touching the clipboard
or the daemon. Useful to check permissions, for example:

  clipdeck inject --delay 3s --strategy uinput`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			injectCfg := cfg.Inject
			if len(strategies) > 0 {
				injectCfg.Strategies = strategies
			}
			chain, err := inject.New(injectCfg, logger.Named("inject"))
			if err != nil {
				return err
			}

			if delay > 0 {
				fmt.Fprintf(out, "Focus the target window, sending in %s...\n", delay)
				time.Sleep(delay)
			}
			if err := chain.SimulatePaste(); err != nil {
				return err
			}
			if quiet {
				return nil
			}
			if names := chain.Strategies(); len(names) > 0 {
				fmt.Fprintf(out, "Keystroke sent (chain: %s)\n", strings.Join(names, ", "))
			} else {
				fmt.Fprintln(out, "No paste strategy on this platform; nothing sent")
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&delay, "delay", 0, "wait before sending")
	cmd.Flags().StringSliceVar(&strategies, "strategy", nil, "override the configured strategies")
	return cmd
}
