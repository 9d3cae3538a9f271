package models

import (
	"fmt"
	"strings"
	"time"
)

// EncodeResult represents the outcome of one ffmpeg invocation.
//
// Successful results must have an output path and no error, while failed
// results must have an error and no output path. Use NewEncodeResultSuccess
// to create a validated instance.
type EncodeResult struct {
	OutputPath string        `json:"output_path"`
	OutputSize int64         `json:"output_size"`
	Elapsed    time.Duration `json:"elapsed"`
	Success    bool          `json:"success"`
	Error      error         `json:"error"`
}

// NewEncodeResultSuccess creates a successful EncodeResult with validation.
func NewEncodeResultSuccess(outputPath string, size int64, elapsed time.Duration) (*EncodeResult, error) {
	er := &EncodeResult{
		OutputPath: outputPath,
		OutputSize: size,
		Elapsed:    elapsed,
		Success:    true,
	}
	if err := er.Validate(); err != nil {
		return nil, fmt.Errorf("invalid encode result: %w", err)
	}
	return er, nil
}

// Validate checks if the EncodeResult has consistent state.
func (er *EncodeResult) Validate() error {
	if er.Success && er.Error != nil {
		return fmt.Errorf("inconsistent state: Success is true but Error is not nil")
	}

	if !er.Success && er.Error == nil {
		return fmt.Errorf("failed result must have an error")
	}

	if er.Success && strings.TrimSpace(er.OutputPath) == "" {
		return fmt.Errorf("output_path cannot be empty for successful result")
	}

	if !er.Success && strings.TrimSpace(er.OutputPath) != "" {
		return fmt.Errorf("failed result should not have output_path")
	}

	return nil
}

// RealtimeFactor returns how many seconds of media were produced per second of wall time.
func (er *EncodeResult) RealtimeFactor(mediaSeconds float64) float64 {
	if er.Elapsed <= 0 {
		return 0
	}
	return mediaSeconds / er.Elapsed.Seconds()
}
