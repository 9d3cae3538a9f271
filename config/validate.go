package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"enhancer/internal/logging"
	"enhancer/models"
	"enhancer/planner"
)

// Validate checks if the configuration is valid. Every problem is collected
// into a single *models.ValidationError.
func (c *Config) Validate() error {
	var problems []models.FieldError

	// Required fields
	if c.Input == "" {
		problems = append(problems, models.FieldError{Field: "input", Err: errors.New("input file is required")})
	} else if info, err := os.Stat(c.Input); err != nil {
		problems = append(problems, models.FieldError{Field: "input", Err: fmt.Errorf("cannot read input file: %w", err)})
	} else if info.IsDir() {
		problems = append(problems, models.FieldError{Field: "input", Err: fmt.Errorf("input is a directory: %s", c.Input)})
	}

	problems = append(problems, c.validateOutput()...)

	// Enhancement settings
	if c.Speed <= 0 || math.IsNaN(c.Speed) || math.IsInf(c.Speed, 0) {
		problems = append(problems, models.FieldError{Field: "speed", Value: c.Speed, Expected: "finite number greater than 0"})
	}
	problems = append(problems, c.Adjustments.Validate()...)
	if c.ScaleHeight < 0 || c.ScaleHeight%2 != 0 {
		problems = append(problems, models.FieldError{Field: "scale", Value: c.ScaleHeight, Expected: "0 or a positive even height"})
	}

	// Encode parameters are checked by the same resolver the planner uses
	if _, err := planner.ResolveEncodeParams(c.Video.CRF, c.Video.Preset, c.Video.Threads); err != nil {
		var paramErr *planner.InvalidEncodeParameterError
		if errors.As(err, &paramErr) {
			problems = append(problems, models.FieldError{
				Field:    paramErr.Field,
				Value:    paramErr.Value,
				Expected: paramErr.Expected,
				Err:      err,
			})
		} else {
			problems = append(problems, models.FieldError{Field: "video", Err: err})
		}
	}
	if strings.TrimSpace(c.Video.Codec) == "" {
		problems = append(problems, models.FieldError{Field: "video.codec", Err: errors.New("codec is required")})
	}
	if strings.TrimSpace(c.Audio.Codec) == "" {
		problems = append(problems, models.FieldError{Field: "audio.codec", Err: errors.New("codec is required")})
	}
	if strings.TrimSpace(c.Audio.Bitrate) == "" {
		problems = append(problems, models.FieldError{Field: "audio.bitrate", Err: errors.New("bitrate is required")})
	}
	if c.Audio.SampleRate < 0 {
		problems = append(problems, models.FieldError{Field: "audio.sample_rate", Value: c.Audio.SampleRate, Expected: "0 or a rate in Hz"})
	}
	if c.Audio.Channels < 0 || c.Audio.Channels > 8 {
		problems = append(problems, models.FieldError{Field: "audio.channels", Value: c.Audio.Channels, Expected: "0 to 8"})
	}

	problems = append(problems, c.Logging.validate()...)

	return models.NewValidationError(problems)
}

func (c *Config) validateOutput() []models.FieldError {
	if c.Output == "" {
		return []models.FieldError{{Field: "output", Err: errors.New("output file is required")}}
	}

	var problems []models.FieldError
	if _, ok := planner.LookupContainer(c.Output); !ok {
		problems = append(problems, models.FieldError{
			Field:    "output",
			Value:    filepath.Ext(c.Output),
			Expected: "one of " + strings.Join(planner.SupportedExtensions(), ", "),
		})
	}
	if c.Input != "" && samePath(c.Input, c.Output) {
		problems = append(problems, models.FieldError{Field: "output", Err: errors.New("output must differ from input")})
	}
	return problems
}

func (lc LoggingConfig) validate() []models.FieldError {
	var problems []models.FieldError
	if lc.Level != "" {
		if level, err := zerolog.ParseLevel(strings.ToLower(lc.Level)); err != nil || level == zerolog.NoLevel {
			problems = append(problems, models.FieldError{Field: "log-level", Value: lc.Level, Expected: "debug, info, warn or error"})
		}
	}
	switch strings.ToLower(lc.Format) {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		problems = append(problems, models.FieldError{Field: "log-format", Value: lc.Format, Expected: "console or json"})
	}
	return problems
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	if absA == absB {
		return true
	}
	infoA, errA := os.Stat(absA)
	infoB, errB := os.Stat(absB)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}
