package planner

import (
	"fmt"
	"slices"
	"strings"
)

const (
	MinCRF = 0
	MaxCRF = 51
)

// Presets is the ordered x264/x265 speed preset set, fastest first.
var Presets = []string{
	"ultrafast", "superfast", "veryfast", "faster", "fast",
	"medium", "slow", "slower", "veryslow", "placebo",
}

// EncodeParameters are the validated video rate-control settings.
type EncodeParameters struct {
	CRF     int
	Preset  string
	Threads int // 0 lets the encoder decide
}

// ResolveEncodeParams validates the user-supplied values and returns them
// unchanged apart from preset case folding.
func ResolveEncodeParams(crf int, preset string, threads int) (EncodeParameters, error) {
	if crf < MinCRF || crf > MaxCRF {
		return EncodeParameters{}, &InvalidEncodeParameterError{
			Field:    "crf",
			Value:    crf,
			Expected: fmt.Sprintf("integer between %d and %d", MinCRF, MaxCRF),
		}
	}

	normalized := strings.ToLower(strings.TrimSpace(preset))
	if !slices.Contains(Presets, normalized) {
		return EncodeParameters{}, &InvalidEncodeParameterError{
			Field:    "preset",
			Value:    preset,
			Expected: "one of " + strings.Join(Presets, ", "),
		}
	}

	if threads < 0 {
		return EncodeParameters{}, &InvalidEncodeParameterError{
			Field:    "threads",
			Value:    threads,
			Expected: "non-negative integer (0 = automatic)",
		}
	}

	return EncodeParameters{CRF: crf, Preset: normalized, Threads: threads}, nil
}
