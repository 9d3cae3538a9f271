package audio

import (
	"strconv"
	"strings"

	"enhancer/command"
)

// Mode selects how the mapped audio stream is written.
type Mode int

const (
	ModeDisabled Mode = iota // -an
	ModeCopy                 // -c:a copy
	ModeEncode               // filter and re-encode
)

// AudioBuilder emits the audio fragment of a transcode invocation.
type AudioBuilder struct {
	mode       Mode
	stream     string // -map specifier
	codec      string
	bitrate    string
	sampleRate int
	channels   int
	filters    []string
}

// NewAudioBuilder creates a builder that encodes AAC at 192k.
func NewAudioBuilder() *AudioBuilder {
	return &AudioBuilder{
		mode:    ModeEncode,
		stream:  "0:a:0",
		codec:   "aac",  // Default codec
		bitrate: "192k", // Default bitrate
	}
}

// MapStream selects the input stream by absolute index instead of the first
// audio stream.
func (a *AudioBuilder) MapStream(index int) *AudioBuilder {
	a.stream = "0:" + strconv.Itoa(index)
	return a
}

// Disable drops audio from the output.
func (a *AudioBuilder) Disable() *AudioBuilder {
	a.mode = ModeDisabled
	return a
}

// Copy passes the audio stream through without re-encoding.
func (a *AudioBuilder) Copy() *AudioBuilder {
	a.mode = ModeCopy
	return a
}

// Encode re-encodes the audio stream.
func (a *AudioBuilder) Encode() *AudioBuilder {
	a.mode = ModeEncode
	return a
}

// SetCodec sets the audio codec (e.g., "aac", "libopus", "libmp3lame").
func (a *AudioBuilder) SetCodec(codec string) *AudioBuilder {
	a.codec = codec
	return a
}

// SetBitrate sets the audio bitrate (e.g., "128k", "192k").
func (a *AudioBuilder) SetBitrate(bitrate string) *AudioBuilder {
	a.bitrate = bitrate
	return a
}

// SetSampleRate sets the audio sample rate in Hz (e.g., 48000, 44100).
func (a *AudioBuilder) SetSampleRate(rate int) *AudioBuilder {
	a.sampleRate = rate
	return a
}

// SetChannels sets the number of audio channels (e.g., 1 for mono, 2 for stereo).
func (a *AudioBuilder) SetChannels(channels int) *AudioBuilder {
	a.channels = channels
	return a
}

// SetFilters appends an audio filter chain (e.g., "atempo=1.25").
func (a *AudioBuilder) SetFilters(filter string) *AudioBuilder {
	if filter != "" {
		a.filters = append(a.filters, filter)
	}
	return a
}

// Mode returns the configured mode.
func (a *AudioBuilder) Mode() Mode {
	return a.mode
}

// BuildArgs constructs the audio arguments.
func (a *AudioBuilder) BuildArgs() []string {
	switch a.mode {
	case ModeDisabled:
		return []string{"-an"}
	case ModeCopy:
		return []string{"-map", a.stream, "-c:a", "copy"}
	}

	args := []string{"-map", a.stream}
	if len(a.filters) > 0 {
		args = append(args, "-af", strings.Join(a.filters, ","))
	}
	args = append(args, "-c:a", a.codec)
	if a.bitrate != "" {
		args = append(args, "-b:a", a.bitrate)
	}
	if a.sampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(a.sampleRate))
	}
	if a.channels > 0 {
		args = append(args, "-ac", strconv.Itoa(a.channels))
	}
	return args
}

var _ command.Fragment = (*AudioBuilder)(nil)
