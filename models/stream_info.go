package models

import (
	"errors"
	"strings"
)

// ErrNoStreams is returned when an input carries neither video nor audio.
var ErrNoStreams = errors.New("input has no video or audio stream")

// StreamCodecInfo is a read-only snapshot of the primary streams of an input.
//
// An empty codec name means the stream is absent. The indexes are absolute
// stream positions in the input, as ffmpeg's -map 0:<index> expects, and are
// meaningful only when the matching codec is set.
type StreamCodecInfo struct {
	VideoCodec string `json:"video_codec"`
	VideoIndex int    `json:"video_index"`
	AudioCodec string `json:"audio_codec"`
	AudioIndex int    `json:"audio_index"`
}

// HasVideo reports whether the input carries a video stream.
func (s StreamCodecInfo) HasVideo() bool {
	return strings.TrimSpace(s.VideoCodec) != ""
}

// HasAudio reports whether the input carries an audio stream.
func (s StreamCodecInfo) HasAudio() bool {
	return strings.TrimSpace(s.AudioCodec) != ""
}
