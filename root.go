package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"enhancer/config"
	"enhancer/display"
	"enhancer/enhance"
	"enhancer/ffmpeg"
	"enhancer/ffprobe"
	"enhancer/internal/logging"
	"enhancer/models"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "enhancer -i INPUT [flags]",
		Short: "Adjust colour, detail and playback speed of a video with ffmpeg",
		Long: `enhancer adjusts brightness, contrast, saturation, sharpness, noise and
playback speed of a video in a single ffmpeg run.

Every control takes a value from 0 to 100 where 50 leaves the picture
unchanged. Streams that need no change are copied without re-encoding.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnhance(cmd)
		},
	}

	config.BindFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

func runEnhance(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		// A bare invocation gets the flag list along with the error
		var verr *models.ValidationError
		if errors.As(err, &verr) && verr.HasField("input") && !cmd.Flags().Changed("input") {
			fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
		}
		return err
	}

	stderr := cmd.ErrOrStderr()
	logger, err := logging.New(logging.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Verbose: cfg.Verbose,
		Output:  stderr,
	})
	if err != nil {
		return err
	}

	tools, err := cfg.Tools.ResolveTools()
	if err != nil {
		return err
	}
	logger.Debug().Str("ffmpeg", tools.FFmpeg).Str("ffprobe", tools.FFprobe).Msg("tools resolved")

	prober := ffprobe.NewProber(tools.FFprobe, logger)
	runner := ffmpeg.NewRunner(logger)

	interactive := !cfg.NoProgress && !cfg.Verbose &&
		cfg.Logging.Format != logging.FormatJSON && logging.IsTerminal(stderr)

	var progress *display.Progress
	pipeline := enhance.NewPipeline(prober, runner, logger).
		SetProgress(func(total float64) models.ProgressCallback {
			progress = display.NewProgress(stderr, logging.WithComponent(logger, "progress"), interactive, total)
			return progress.Update
		})

	out, err := pipeline.Run(cmd.Context(), cfg, tools.FFmpeg)
	if err != nil {
		if progress != nil {
			progress.Abort()
		}
		return err
	}

	stdout := cmd.OutOrStdout()
	if out.DryRun {
		fmt.Fprintln(stdout, display.RenderPlan(out.Plan))
		fmt.Fprintln(stdout, out.Command)
		return nil
	}
	if interactive {
		fmt.Fprintln(stdout, display.RenderResult(out.Result, out.TargetSeconds))
	}
	return nil
}

// newLogger is used by commands that run before a full configuration is
// available.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	logger, err := logging.New(logging.Options{Output: cmd.ErrOrStderr()})
	if err != nil {
		return zerolog.New(os.Stderr)
	}
	return logger
}
