package config

import (
	"enhancer/internal/logging"
	"enhancer/models"
)

// Config holds all enhancer configuration options
type Config struct {
	// Paths. Output defaults to <input-stem>_enhanced_speed<S>.<ext>.
	Input  string `yaml:"input,omitempty"`
	Output string `yaml:"output,omitempty"`

	// Enhancement settings
	Speed       float64                  `yaml:"speed"`       // Playback speed multiplier, 1.0 = unchanged
	Adjustments models.AdjustmentRequest `yaml:"adjustments"` // 0-100 controls, 50 = unchanged
	ScaleHeight int                      `yaml:"scale"`       // Output height in pixels, 0 = keep original

	// Video settings
	Video VideoConfig `yaml:"video"`

	// Audio settings
	Audio AudioConfig `yaml:"audio"`

	// External tools
	Tools ToolsConfig `yaml:"tools"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Behavioral flags
	Verbose    bool `yaml:"verbose"`     // Debug logs and raw ffmpeg output
	DryRun     bool `yaml:"dry_run"`     // Print the plan and command without encoding
	NoProgress bool `yaml:"no_progress"` // Disable the progress bar
}

// VideoConfig holds video encoding settings, used only when video is re-encoded
type VideoConfig struct {
	Codec       string `yaml:"codec"`        // e.g., "libx264"
	CRF         int    `yaml:"crf"`          // Constant Rate Factor (0-51, lower = better quality)
	Preset      string `yaml:"preset"`       // e.g., "ultrafast", "medium", "slow", "veryslow"
	Threads     int    `yaml:"threads"`      // 0 = let the encoder decide
	PixelFormat string `yaml:"pixel_format"` // e.g., "yuv420p"
}

// AudioConfig holds audio encoding settings, used only when audio is re-encoded
type AudioConfig struct {
	Codec      string `yaml:"codec"`       // e.g., "aac"
	Bitrate    string `yaml:"bitrate"`     // e.g., "128k", "192k", "320k"
	SampleRate int    `yaml:"sample_rate"` // Hz, 0 = keep the source rate
	Channels   int    `yaml:"channels"`    // 0 = keep the source layout
}

// ToolsConfig holds explicit executable paths. Empty means search PATH.
type ToolsConfig struct {
	FFmpeg  string `yaml:"ffmpeg,omitempty"`
	FFprobe string `yaml:"ffprobe,omitempty"`
}

// LoggingConfig selects log verbosity and format
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Speed:       1.0,
		Adjustments: models.NeutralAdjustments(),
		ScaleHeight: 0, // Keep original

		// Video defaults (x264: visually lossless, broadly playable)
		Video: VideoConfig{
			Codec:       "libx264",
			CRF:         17,
			Preset:      "slow",
			Threads:     0,
			PixelFormat: "yuv420p",
		},

		// Audio defaults (AAC: plays in every supported container)
		Audio: AudioConfig{
			Codec:   "aac",
			Bitrate: "192k",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

