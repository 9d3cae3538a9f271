// Package timeutil provides time formatting and conversion helpers for ffmpeg I/O.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatSeconds converts seconds to HH:MM:SS.MS format.
//
// Example:
//
//	FormatSeconds(0)      // "00:00:00.00"
//	FormatSeconds(90)     // "00:01:30.00"
//	FormatSeconds(3661)   // "01:01:01.00"
//	FormatSeconds(30.53)  // "00:00:30.53"
func FormatSeconds(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	secs := seconds - float64(hours*3600) - float64(minutes*60)
	return fmt.Sprintf("%02d:%02d:%05.2f", hours, minutes, secs)
}

// ParseClock converts an ffmpeg clock value (HH:MM:SS.ffffff) to seconds.
// Returns false when the value is not a clock, including ffmpeg's "N/A".
func ParseClock(value string) (float64, bool) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0, false
	}

	hours, err1 := strconv.ParseFloat(parts[0], 64)
	minutes, err2 := strconv.ParseFloat(parts[1], 64)
	seconds, err3 := strconv.ParseFloat(parts[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}

	total := hours*3600 + minutes*60 + seconds
	if total < 0 {
		return 0, false
	}
	return total, true
}

// TargetDuration returns the output duration in seconds after a speed change.
// A speed of exactly 1 or a non-positive speed leaves the duration unchanged.
func TargetDuration(originalSeconds, speed float64) float64 {
	if speed <= 0 || speed == 1 {
		return originalSeconds
	}
	return originalSeconds / speed
}
