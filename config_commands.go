package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"enhancer/config"
	"enhancer/display"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write the effective configuration to a YAML file",
		Long: `Write the effective configuration (defaults, any existing config file and
the flags given on this command line) to PATH, or to ~/.enhancer/config.yaml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := config.DefaultConfigPath()
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				target = strings.TrimSpace(args[0])
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			cfg, _, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			// Per-run settings do not belong in a saved profile.
			cfg.Input = ""
			cfg.Output = ""
			cfg.DryRun = false

			if err := config.SaveConfigFile(cfg, target); err != nil {
				return err
			}

			logger := newLogger(cmd)
			logger.Info().Str("path", target).Msg("configuration written")
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing configuration file")
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, source, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			cfg.Finalize()

			fmt.Fprintln(cmd.OutOrStdout(), display.RenderConfig(cfg, source))
			return nil
		},
	}
}
