package config

import (
	"path/filepath"
	"strconv"
	"strings"

	"enhancer/planner"
)

// DefaultOutputPath returns <dir>/<stem>_enhanced_speed<S>.<ext> beside the
// input. The input's extension is kept when it is a supported output
// container, otherwise .mp4 is used.
func DefaultOutputPath(input string, speed float64) string {
	dir := filepath.Dir(input)
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(filepath.Base(input), ext)

	if _, ok := planner.LookupContainer(ext); !ok {
		ext = ".mp4"
	}

	name := stem + "_enhanced_speed" + strconv.FormatFloat(speed, 'f', -1, 64) + ext
	return filepath.Join(dir, name)
}
