package video

import (
	"strconv"

	"enhancer/command"
)

// Mode selects how the mapped video stream is written.
type Mode int

const (
	ModeDisabled Mode = iota // -vn
	ModeCopy                 // -c:v copy
	ModeEncode               // filter and re-encode
)

// VideoBuilder emits the video fragment of a transcode invocation.
type VideoBuilder struct {
	mode   Mode
	stream string // -map specifier

	// Encoding settings
	encoder     string
	crf         int
	preset      string
	pixelFormat string
	threads     int

	// Comma-joined filter chain, applied only when encoding
	filters string
}

// NewVideoBuilder creates a builder that encodes with libx264 at CRF 17,
// preset slow, yuv420p.
func NewVideoBuilder() *VideoBuilder {
	return &VideoBuilder{
		mode:        ModeEncode,
		stream:      "0:v:0",
		encoder:     "libx264",
		crf:         17,
		preset:      "slow",
		pixelFormat: "yuv420p",
	}
}

// MapStream selects the input stream by absolute index. By default the
// first video stream is used, which may be embedded cover art.
func (v *VideoBuilder) MapStream(index int) *VideoBuilder {
	v.stream = "0:" + strconv.Itoa(index)
	return v
}

// Disable drops video from the output.
func (v *VideoBuilder) Disable() *VideoBuilder {
	v.mode = ModeDisabled
	return v
}

// Copy passes the video stream through without re-encoding.
func (v *VideoBuilder) Copy() *VideoBuilder {
	v.mode = ModeCopy
	return v
}

// Encode re-encodes the video stream with the given encoder (e.g. "libx264").
func (v *VideoBuilder) Encode(encoder string) *VideoBuilder {
	v.mode = ModeEncode
	if encoder != "" {
		v.encoder = encoder
	}
	return v
}

// SetCRF sets the Constant Rate Factor (0-51, lower is better quality)
func (v *VideoBuilder) SetCRF(crf int) *VideoBuilder {
	v.crf = crf
	return v
}

// SetPreset sets the encoding preset (ultrafast ... placebo)
func (v *VideoBuilder) SetPreset(preset string) *VideoBuilder {
	v.preset = preset
	return v
}

// SetPixelFormat sets the pixel format (e.g., "yuv420p", "yuv444p", "p010le")
func (v *VideoBuilder) SetPixelFormat(pixfmt string) *VideoBuilder {
	v.pixelFormat = pixfmt
	return v
}

// SetThreads sets the thread count. Zero is emitted as-is when encoding,
// letting the encoder pick, and omitted when copying.
func (v *VideoBuilder) SetThreads(threads int) *VideoBuilder {
	v.threads = threads
	return v
}

// SetFilters sets the -vf chain.
func (v *VideoBuilder) SetFilters(chain string) *VideoBuilder {
	v.filters = chain
	return v
}

// Mode returns the configured mode.
func (v *VideoBuilder) Mode() Mode {
	return v.mode
}

// BuildArgs constructs the video arguments.
func (v *VideoBuilder) BuildArgs() []string {
	switch v.mode {
	case ModeDisabled:
		return []string{"-vn"}
	case ModeCopy:
		args := []string{"-map", v.stream, "-c:v", "copy"}
		if v.threads > 0 {
			args = append(args, "-threads", strconv.Itoa(v.threads))
		}
		return args
	}

	args := []string{"-map", v.stream}
	if v.filters != "" {
		args = append(args, "-vf", v.filters)
	}
	args = append(args,
		"-c:v", v.encoder,
		"-crf", strconv.Itoa(v.crf),
		"-preset", v.preset,
	)
	if v.pixelFormat != "" {
		args = append(args, "-pix_fmt", v.pixelFormat)
	}
	args = append(args, "-threads", strconv.Itoa(v.threads))
	return args
}

var _ command.Fragment = (*VideoBuilder)(nil)
