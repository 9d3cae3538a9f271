package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEncodingProgress(t *testing.T) {
	p := NewEncodingProgress(120)
	assert.Equal(t, 120.0, p.TotalDuration)
	assert.Equal(t, ProgressStateStarting, p.State)
	assert.False(t, p.StartTime.IsZero())
}

func TestCalculateProgress(t *testing.T) {
	tests := []struct {
		name     string
		total    float64
		current  float64
		expected float64
	}{
		{"halfway", 100, 50, 50},
		{"clamped above", 10, 12, 100},
		{"clamped below", 10, -1, 0},
		{"unknown total", 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewEncodingProgress(tt.total)
			p.CalculateProgress(tt.current)
			assert.InDelta(t, tt.expected, p.Progress, 1e-9)
			assert.InDelta(t, tt.expected/100, p.Fraction(), 1e-9)
		})
	}
}

func TestEstimatedTimeRemaining(t *testing.T) {
	p := NewEncodingProgress(100)
	assert.Zero(t, p.EstimatedTimeRemaining())

	p.StartTime = time.Now().Add(-10 * time.Second)
	p.CalculateProgress(25)
	eta := p.EstimatedTimeRemaining()
	assert.InDelta(t, 30*time.Second, eta, float64(time.Second))
}

func TestFormatSummary(t *testing.T) {
	p := NewEncodingProgress(100)
	p.Speed = 1.5
	p.TotalSize = 2048
	summary := p.FormatSummary()
	assert.Contains(t, summary, "Speed: 1.50x")
	assert.Contains(t, summary, "Size: 2.0KiB")
	assert.Contains(t, summary, "ETA: calculating...")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512B", FormatBytes(512))
	assert.Equal(t, "1.5KiB", FormatBytes(1536))
	assert.Equal(t, "3.0MiB", FormatBytes(3*1024*1024))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "calculating...", formatDuration(0))
	assert.Equal(t, "42s", formatDuration(42*time.Second))
	assert.Equal(t, "2m5s", formatDuration(125*time.Second))
	assert.Equal(t, "1h1m1s", formatDuration(3661*time.Second))
}

func TestEncodeResult(t *testing.T) {
	ok, err := NewEncodeResultSuccess("/out/video.mp4", 1024, 2*time.Second)
	require.NoError(t, err)
	assert.True(t, ok.Success)
	assert.InDelta(t, 5.0, ok.RealtimeFactor(10), 1e-9)

	_, err = NewEncodeResultSuccess("  ", 0, 0)
	assert.ErrorContains(t, err, "output_path cannot be empty")

	failed := &EncodeResult{Success: false, Error: assert.AnError}
	assert.NoError(t, failed.Validate())
	assert.Zero(t, failed.RealtimeFactor(10))

	assert.ErrorContains(t, (&EncodeResult{Success: false}).Validate(), "must have an error")
	assert.ErrorContains(t, (&EncodeResult{Success: true, OutputPath: "/x", Error: assert.AnError}).Validate(), "inconsistent state")

	bad := &EncodeResult{Success: false, Error: assert.AnError, OutputPath: "/x"}
	assert.ErrorContains(t, bad.Validate(), "should not have output_path")
}
