package planner

import (
	"path/filepath"
	"slices"
	"strings"
)

// Container describes an output container and the codecs it can carry
// without re-encoding.
type Container struct {
	Extension string // Lower-case, with leading dot
	Muxer     string // ffmpeg -f value
	FastStart bool   // Move the index to the front for progressive playback

	// Codecs that may be stream-copied. A nil set accepts every codec.
	VideoCodecs []string
	AudioCodecs []string
}

var (
	isoVideoCodecs = []string{"h264", "hevc", "av1", "mpeg4"}
	isoAudioCodecs = []string{"aac", "mp3", "ac3", "eac3", "alac"}

	movVideoCodecs = []string{"h264", "hevc", "mpeg4", "prores", "mjpeg"}
	movAudioCodecs = []string{"aac", "mp3", "ac3", "alac", "pcm_s16le", "pcm_s24le"}
)

var containers = map[string]Container{
	".mp4": {Extension: ".mp4", Muxer: "mp4", FastStart: true, VideoCodecs: isoVideoCodecs, AudioCodecs: isoAudioCodecs},
	".m4v": {Extension: ".m4v", Muxer: "mp4", FastStart: true, VideoCodecs: isoVideoCodecs, AudioCodecs: isoAudioCodecs},
	".mov": {Extension: ".mov", Muxer: "mov", FastStart: true, VideoCodecs: movVideoCodecs, AudioCodecs: movAudioCodecs},
	".mkv": {Extension: ".mkv", Muxer: "matroska"},
}

// LookupContainer returns the container for a file path or bare extension.
func LookupContainer(pathOrExt string) (Container, bool) {
	ext := strings.ToLower(filepath.Ext(pathOrExt))
	if ext == "" && strings.HasPrefix(pathOrExt, ".") {
		ext = strings.ToLower(pathOrExt)
	}
	c, ok := containers[ext]
	return c, ok
}

// SupportedExtensions lists every output extension in sorted order.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(containers))
	for ext := range containers {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Accepts reports whether a stream of the given codec can be copied into c.
func (c Container) Accepts(kind StreamKind, codec string) bool {
	var allowed []string
	switch kind {
	case StreamVideo:
		allowed = c.VideoCodecs
	case StreamAudio:
		allowed = c.AudioCodecs
	default:
		return false
	}
	if allowed == nil {
		return true
	}
	return slices.Contains(allowed, strings.ToLower(strings.TrimSpace(codec)))
}

// CheckCopy returns an UnsupportedContainerForCopyError when a stream of the
// given codec cannot be copied into c.
func CheckCopy(kind StreamKind, codec string, c Container) error {
	if c.Accepts(kind, codec) {
		return nil
	}
	return &UnsupportedContainerForCopyError{Stream: kind, Codec: codec, Container: c.Extension}
}
