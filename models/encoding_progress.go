package models

import (
	"fmt"
	"time"
)

// EncodingProgress represents real-time metrics reported by ffmpeg's -progress output
type EncodingProgress struct {
	// Current position in the output timeline
	Frame   int64         // Frames written so far
	FPS     float64       // Frames per second being processed
	OutTime time.Duration // Output timestamp reached

	// Performance metrics
	Bitrate string  // Current bitrate (e.g., "1843.2kbits/s")
	Speed   float64 // Encoding speed multiplier (e.g., 2.34 means 2.34x realtime)

	// Size information
	TotalSize int64 // Bytes written to the output so far

	// Progress calculation
	TotalDuration float64 // Expected output duration in seconds
	Progress      float64 // Percentage complete (0-100)

	// Metadata
	State     ProgressState // Current state of the invocation
	StartTime time.Time     // When the invocation started
	UpdatedAt time.Time     // Last update timestamp
}

// ProgressState represents the current state of an invocation
type ProgressState string

const (
	ProgressStateStarting  ProgressState = "starting"  // Process spawned, no output yet
	ProgressStateEncoding  ProgressState = "encoding"  // Actively processing
	ProgressStateCompleted ProgressState = "completed" // Successfully finished
	ProgressStateFailed    ProgressState = "failed"    // Encountered an error
	ProgressStateCancelled ProgressState = "cancelled" // User cancelled
)

// ProgressCallback receives progress updates during an invocation.
// It is called from the goroutine that reads ffmpeg's output.
type ProgressCallback func(progress *EncodingProgress)

// NewEncodingProgress creates a new progress tracker for an output of the given length
func NewEncodingProgress(totalDuration float64) *EncodingProgress {
	now := time.Now()
	return &EncodingProgress{
		TotalDuration: totalDuration,
		State:         ProgressStateStarting,
		StartTime:     now,
		UpdatedAt:     now,
	}
}

// CalculateProgress updates the progress percentage based on current time
func (ep *EncodingProgress) CalculateProgress(currentSeconds float64) {
	if ep.TotalDuration > 0 {
		ep.Progress = (currentSeconds / ep.TotalDuration) * 100
		if ep.Progress > 100 {
			ep.Progress = 100
		}
		if ep.Progress < 0 {
			ep.Progress = 0
		}
	}
	ep.UpdatedAt = time.Now()
}

// Fraction returns progress in [0,1].
func (ep *EncodingProgress) Fraction() float64 {
	return ep.Progress / 100
}

// EstimatedTimeRemaining calculates ETA based on elapsed time and percentage done
func (ep *EncodingProgress) EstimatedTimeRemaining() time.Duration {
	if ep.Progress <= 0 {
		return 0
	}

	elapsed := ep.UpdatedAt.Sub(ep.StartTime)
	totalEstimated := time.Duration(float64(elapsed) / (ep.Progress / 100))
	remaining := totalEstimated - elapsed

	if remaining < 0 {
		return 0
	}
	return remaining
}

// FormatSummary returns a human-readable summary of the progress
func (ep *EncodingProgress) FormatSummary() string {
	eta := ep.EstimatedTimeRemaining()
	return fmt.Sprintf(
		"Progress: %.1f%% | Speed: %.2fx | FPS: %.1f | Size: %s | ETA: %s",
		ep.Progress,
		ep.Speed,
		ep.FPS,
		FormatBytes(ep.TotalSize),
		formatDuration(eta),
	)
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// formatDuration converts a duration to a human-readable string
func formatDuration(d time.Duration) string {
	if d == 0 {
		return "calculating..."
	}

	seconds := int(d.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	seconds = seconds % 60

	if minutes < 60 {
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}

	hours := minutes / 60
	minutes = minutes % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}
