package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"enhancer/planner"
)

// BindFlags registers every configuration flag on fs. Defaults shown in help
// come from DefaultConfig; a flag only overrides the config file when the
// user sets it explicitly.
func BindFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()

	// Paths
	fs.StringP("input", "i", "", "Input video file path (required)")
	fs.StringP("output", "o", "", "Output file path (default: <input>_enhanced_speed<S>.<ext>)")
	fs.String("config", "", "Path to config file (default: search ./enhancer.yaml, ~/.enhancer/config.yaml, /etc/enhancer/config.yaml)")

	// Enhancement
	fs.Float64P("speed", "s", d.Speed, "Playback speed multiplier, e.g. 1.25 plays 25% faster")
	fs.Int("brightness", d.Adjustments.Brightness, "Brightness 0-100 (50 = unchanged)")
	fs.Int("contrast", d.Adjustments.Contrast, "Contrast 0-100 (50 = unchanged)")
	fs.Int("saturation", d.Adjustments.Saturation, "Saturation 0-100 (50 = unchanged, 0 = grayscale)")
	fs.Int("sharpen", d.Adjustments.Sharpen, "Sharpen 0-100 (50 = unchanged, below 50 softens)")
	fs.Int("denoise", d.Adjustments.Denoise, "Denoise 0-100 (50 or less = off)")
	fs.Int("scale", d.ScaleHeight, "Output height in pixels, even (0 = keep original)")

	// Video encoding
	fs.Int("crf", d.Video.CRF, "Video CRF 0-51, lower = better quality")
	fs.String("preset", d.Video.Preset, "Encoder preset: "+strings.Join(planner.Presets, ", "))
	fs.Int("threads", d.Video.Threads, "Encoder threads (0 = automatic)")

	// Tools
	fs.String("ffmpeg", "", "Path to the ffmpeg executable (default: search PATH)")
	fs.String("ffprobe", "", "Path to the ffprobe executable (default: next to --ffmpeg, then PATH)")

	// Behavior
	fs.String("log-level", d.Logging.Level, "Log level: debug, info, warn, error")
	fs.String("log-format", d.Logging.Format, "Log format: console, json")
	fs.Bool("verbose", false, "Enable debug logging and show raw ffmpeg output")
	fs.Bool("dry-run", false, "Print the encode plan and ffmpeg command without running it")
	fs.Bool("no-progress", false, "Disable the progress bar")
}

// MergeFlags overrides config values with the flags set on fs
func (c *Config) MergeFlags(fs *pflag.FlagSet) error {
	var errs []error
	fs.Visit(func(f *pflag.Flag) {
		if err := c.applyFlag(fs, f.Name); err != nil {
			errs = append(errs, fmt.Errorf("--%s: %w", f.Name, err))
		}
	})
	return errors.Join(errs...)
}

func (c *Config) applyFlag(fs *pflag.FlagSet, name string) (err error) {
	switch name {
	case "input":
		c.Input, err = fs.GetString(name)
	case "output":
		c.Output, err = fs.GetString(name)
	case "speed":
		c.Speed, err = fs.GetFloat64(name)
	case "brightness":
		c.Adjustments.Brightness, err = fs.GetInt(name)
	case "contrast":
		c.Adjustments.Contrast, err = fs.GetInt(name)
	case "saturation":
		c.Adjustments.Saturation, err = fs.GetInt(name)
	case "sharpen":
		c.Adjustments.Sharpen, err = fs.GetInt(name)
	case "denoise":
		c.Adjustments.Denoise, err = fs.GetInt(name)
	case "scale":
		c.ScaleHeight, err = fs.GetInt(name)
	case "crf":
		c.Video.CRF, err = fs.GetInt(name)
	case "preset":
		c.Video.Preset, err = fs.GetString(name)
	case "threads":
		c.Video.Threads, err = fs.GetInt(name)
	case "ffmpeg":
		c.Tools.FFmpeg, err = fs.GetString(name)
	case "ffprobe":
		c.Tools.FFprobe, err = fs.GetString(name)
	case "log-level":
		c.Logging.Level, err = fs.GetString(name)
	case "log-format":
		c.Logging.Format, err = fs.GetString(name)
	case "verbose":
		c.Verbose, err = fs.GetBool(name)
	case "dry-run":
		c.DryRun, err = fs.GetBool(name)
	case "no-progress":
		c.NoProgress, err = fs.GetBool(name)
	}
	return err
}
