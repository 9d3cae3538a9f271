package ffmpeg

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"enhancer/internal/timeutil"
	"enhancer/models"
)

// ProgressParser parses the key=value report blocks that ffmpeg writes with
// -progress. Each block ends with a "progress=continue" or "progress=end" line.
type ProgressParser struct {
	keyValueRegex *regexp.Regexp
	speedRegex    *regexp.Regexp
}

// NewProgressParser creates a new parser for ffmpeg progress output
func NewProgressParser() *ProgressParser {
	return &ProgressParser{
		keyValueRegex: regexp.MustCompile(`^([a-z0-9_]+)=\s*(.*)$`),
		// "2.34x", " 2.34x" or "N/A"
		speedRegex: regexp.MustCompile(`^([0-9.]+)x?$`),
	}
}

// ParseLine applies one line of progress output. It returns true when the
// line closes a report block.
func (pp *ProgressParser) ParseLine(line string, progress *models.EncodingProgress) bool {
	matches := pp.keyValueRegex.FindStringSubmatch(strings.TrimSpace(line))
	if len(matches) != 3 {
		return false
	}
	key, value := matches[1], strings.TrimSpace(matches[2])
	if value == "N/A" {
		return false
	}

	switch key {
	case "frame":
		if frame, err := strconv.ParseInt(value, 10, 64); err == nil {
			progress.Frame = frame
		}
	case "fps":
		if fps, err := strconv.ParseFloat(value, 64); err == nil {
			progress.FPS = fps
		}
	case "bitrate":
		progress.Bitrate = value
	case "total_size":
		if size, err := strconv.ParseInt(value, 10, 64); err == nil {
			progress.TotalSize = size
		}
	// out_time_ms carries microseconds as well
	case "out_time_us", "out_time_ms":
		if us, err := strconv.ParseInt(value, 10, 64); err == nil && us >= 0 {
			pp.setOutTime(progress, time.Duration(us)*time.Microsecond)
		}
	case "out_time":
		if seconds, ok := timeutil.ParseClock(value); ok {
			pp.setOutTime(progress, time.Duration(seconds*float64(time.Second)))
		}
	case "speed":
		if m := pp.speedRegex.FindStringSubmatch(value); len(m) > 1 {
			if speed, err := strconv.ParseFloat(m[1], 64); err == nil {
				progress.Speed = speed
			}
		}
	case "progress":
		progress.State = models.ProgressStateEncoding
		if value == "end" && progress.TotalDuration > 0 {
			progress.CalculateProgress(progress.TotalDuration)
		}
		return true
	}

	return false
}

func (pp *ProgressParser) setOutTime(progress *models.EncodingProgress, d time.Duration) {
	progress.OutTime = d
	progress.CalculateProgress(d.Seconds())
}

// StreamProgress reads ffmpeg -progress output until EOF and invokes the
// callback once per completed report block.
func (pp *ProgressParser) StreamProgress(reader io.Reader, progress *models.EncodingProgress, callback models.ProgressCallback) error {
	scanner := bufio.NewScanner(reader)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		if pp.ParseLine(scanner.Text(), progress) && callback != nil {
			callback(progress)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading ffmpeg progress: %w", err)
	}
	return nil
}

// FormatProgressJSON converts progress to single-line JSON for logging
func FormatProgressJSON(progress *models.EncodingProgress) (string, error) {
	data, err := json.Marshal(progress)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
