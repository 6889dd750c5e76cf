package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/berrythewa/clipdeck/internal/common"
	"github.com/berrythewa/clipdeck/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configFile string
	verbose    bool
	quiet      bool
	useJSON    bool

	// Shared resources
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "clipdeck",
		Short: "Clipboard history with paste-back",
		Long: `Clipdeck keeps a history of what you copy and pastes any entry back
into the focused application:
  • Text and image history with pinning
  • Duplicate and self-paste suppression
  • Paste keystroke via uinput, XTEST or xdotool on Linux`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is the user config dir, clipdeck/config.yaml)")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose output")
	root.PersistentFlags().BoolVar(&quiet, "quiet", false, "minimize output")
	root.PersistentFlags().BoolVar(&useJSON, "json", false, "output in JSON format")

	root.AddCommand(
		newRunCmd(),
		newStatusCmd(),
		newStopCmd(),
		newHistoryCmd(),
		newShowCmd(),
		newPinCmd(),
		newRemoveCmd(),
		newClearCmd(),
		newPasteCmd(),
		newTypeCmd(),
		newInjectCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func setup() error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err = common.NewLogger(cfg.Log, verbose, quiet)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// out is where command output goes; tests swap it.
var out io.Writer = os.Stdout
