package cmd

import (
	"fmt"
	"os"

	"github.com/berrythewa/clipdeck/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage Clipdeck configuration",
		Long: `Manage Clipdeck configuration:
  • Show the effective configuration
  • Write a fresh default configuration
  • Print the configuration file path`,
	}

	cmd.AddCommand(newConfigShowCmd(), newConfigInitCmd(), newConfigPathCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration (file plus environment)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if useJSON {
				return printJSON(cfg)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = out.Write(data)
			return err
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write the default configuration, with the paste strategies suited to
this platform, to the configuration path.`,
		Args: cobra.NoArgs,
		// Loading would create the file before we can check for it.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configFile
			if path == "" {
				paths, err := config.GetConfigPaths()
				if err != nil {
					return err
				}
				path = paths.ConfigFile
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("configuration already exists at %s\nUse --force to overwrite or 'clipdeck config show' to view it", path)
			}

			defaults := config.DefaultConfig()
			if err := defaults.Save(path); err != nil {
				return err
			}
			if logger != nil {
				logger.Info("Configuration written", zap.String("path", path))
			}
			if !quiet {
				fmt.Fprintf(out, "Configuration written to %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration")
	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(out, cfg.SystemPaths.ConfigFile)
			return nil
		},
	}
}
