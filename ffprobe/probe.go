// Package ffprobe provides utilities for extracting metadata from media files
// using the ffprobe command-line tool.
package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"enhancer/internal/logging"
	"enhancer/models"
)

// ProbeError reports that an input could not be inspected.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// Stream represents a media stream (audio, video, subtitle, etc.)
type Stream struct {
	Index         int            `json:"index"`
	CodecName     string         `json:"codec_name"`
	CodecType     string         `json:"codec_type"`
	CodecLongName string         `json:"codec_long_name"`
	Width         int            `json:"width,omitempty"`
	Height        int            `json:"height,omitempty"`
	SampleRate    string         `json:"sample_rate,omitempty"`
	Channels      int            `json:"channels,omitempty"`
	Duration      string         `json:"duration,omitempty"`
	Disposition   map[string]int `json:"disposition,omitempty"`
}

// IsAttachedPicture reports whether a video stream is embedded cover art
// rather than moving picture.
func (s Stream) IsAttachedPicture() bool {
	return s.Disposition["attached_pic"] == 1
}

// Format represents the container format information.
type Format struct {
	Filename       string `json:"filename"`
	FormatName     string `json:"format_name"`
	FormatLongName string `json:"format_long_name"`
	Duration       string `json:"duration"`
	Size           string `json:"size"`
	BitRate        string `json:"bit_rate"`
}

// ProbeResult holds the metadata extracted from a media file.
type ProbeResult struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// GetDuration returns the duration of the media file in seconds.
//
// Returns an error if the duration cannot be parsed.
func (pr *ProbeResult) GetDuration() (float64, error) {
	if pr.Format.Duration == "" {
		return 0, fmt.Errorf("duration not available in format metadata")
	}

	duration, err := strconv.ParseFloat(pr.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration '%s': %w", pr.Format.Duration, err)
	}

	return duration, nil
}

// GetVideoStreams returns all video streams, excluding cover art.
func (pr *ProbeResult) GetVideoStreams() []Stream {
	var videoStreams []Stream
	for _, stream := range pr.Streams {
		if stream.CodecType == "video" && !stream.IsAttachedPicture() {
			videoStreams = append(videoStreams, stream)
		}
	}
	return videoStreams
}

// GetAudioStreams returns all audio streams from the media file.
func (pr *ProbeResult) GetAudioStreams() []Stream {
	var audioStreams []Stream
	for _, stream := range pr.Streams {
		if stream.CodecType == "audio" {
			audioStreams = append(audioStreams, stream)
		}
	}
	return audioStreams
}

// CodecInfo returns the codec name and absolute index of the first video
// stream that is not cover art and of the first audio stream. Absent
// streams yield empty names.
func (pr *ProbeResult) CodecInfo() models.StreamCodecInfo {
	var info models.StreamCodecInfo
	if v := pr.GetVideoStreams(); len(v) > 0 {
		info.VideoCodec = normalizeCodec(v[0].CodecName)
		info.VideoIndex = v[0].Index
	}
	if a := pr.GetAudioStreams(); len(a) > 0 {
		info.AudioCodec = normalizeCodec(a[0].CodecName)
		info.AudioIndex = a[0].Index
	}
	return info
}

// normalizeCodec lower-cases a codec name. A stream whose decoder ffprobe
// does not know reports no name; "unknown" keeps it distinct from absent.
func normalizeCodec(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "unknown"
	}
	return name
}

// Prober runs ffprobe.
type Prober struct {
	binary string
	logger zerolog.Logger
}

// NewProber returns a Prober for the given executable. An empty path
// resolves "ffprobe" from PATH at call time.
func NewProber(binary string, logger zerolog.Logger) *Prober {
	if binary == "" {
		binary = "ffprobe"
	}
	return &Prober{
		binary: binary,
		logger: logging.WithComponent(logger, "probe"),
	}
}

// Probe analyzes a media file and extracts its metadata.
//
// Every failure is returned as a *ProbeError. An input with neither a video
// nor an audio stream fails with models.ErrNoStreams.
//
// Example:
//
//	result, err := ffprobe.NewProber("", logger).Probe(ctx, "/path/to/video.mp4")
//	if err != nil {
//	    return err
//	}
//	duration, _ := result.GetDuration()
func (p *Prober) Probe(ctx context.Context, sourcePath string) (*ProbeResult, error) {
	if sourcePath == "" {
		return nil, &ProbeError{Path: sourcePath, Err: fmt.Errorf("source path cannot be empty")}
	}

	// -v error: only report real problems on stderr
	// -print_format json: output in JSON format
	// -show_streams / -show_format: stream and container information
	args := []string{
		"-v", "error",
		"-print_format", "json",
		"-show_streams",
		"-show_format",
		sourcePath,
	}

	p.logger.Debug().Str("binary", p.binary).Str("input", sourcePath).Msg("running ffprobe")

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.binary, args...)
	cmd.Stderr = &stderr

	start := time.Now()
	output, err := cmd.Output()
	elapsed := time.Since(start)
	if err != nil {
		p.logger.Debug().Err(err).Dur("elapsed", elapsed).Msg("ffprobe failed")
		if ctx.Err() != nil {
			return nil, &ProbeError{Path: sourcePath, Err: ctx.Err()}
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("ffprobe failed: %w: %s", err, msg)
		} else {
			err = fmt.Errorf("ffprobe failed: %w", err)
		}
		return nil, &ProbeError{Path: sourcePath, Err: err}
	}

	result, err := ParseOutput(output)
	if err != nil {
		return nil, &ProbeError{Path: sourcePath, Err: err}
	}
	p.logger.Debug().
		Int("streams", len(result.Streams)).
		Str("format", result.Format.FormatName).
		Dur("elapsed", elapsed).
		Msg("input inspected")
	return result, nil
}

// ParseOutput decodes ffprobe JSON and checks that at least one usable
// stream is present.
func ParseOutput(data []byte) (*ProbeResult, error) {
	var result ProbeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe JSON output: %w", err)
	}

	info := result.CodecInfo()
	if !info.HasVideo() && !info.HasAudio() {
		return nil, models.ErrNoStreams
	}
	return &result, nil
}
