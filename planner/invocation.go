package planner

import (
	"fmt"

	"enhancer/command/audio"
	"enhancer/command/transcode"
	"enhancer/command/video"
)

// Encoders names the ffmpeg encoders and fixed settings used for Encode
// actions.
type Encoders struct {
	Video        string
	PixelFormat  string
	Audio        string
	AudioBitrate string
	SampleRate   int // Hz, 0 keeps the source rate
	Channels     int // 0 keeps the source layout
}

// DefaultEncoders returns libx264/yuv420p video and 192k AAC audio.
func DefaultEncoders() Encoders {
	return Encoders{
		Video:        "libx264",
		PixelFormat:  "yuv420p",
		Audio:        "aac",
		AudioBitrate: "192k",
	}
}

// InvocationOptions holds everything about the run that is not part of the plan.
type InvocationOptions struct {
	FFmpegPath string
	InputPath  string
	OutputPath string
	Encoders   Encoders
	Verbose    bool
	Progress   bool
}

// BuildInvocation serializes a plan into a transcode builder. Streams are
// mapped by the absolute index the decision was made for, so cover art ahead
// of the main video is never picked up. Copied streams never receive filters
// or encoder settings.
func BuildInvocation(plan *EncodePlan, opts InvocationOptions) (*transcode.Builder, error) {
	if plan == nil {
		return nil, fmt.Errorf("nil plan")
	}

	enc := opts.Encoders
	if enc.Video == "" && enc.Audio == "" {
		enc = DefaultEncoders()
	}

	vb := video.NewVideoBuilder()
	switch act := plan.Video.(type) {
	case Skip:
		vb.Disable()
	case Copy:
		vb.MapStream(plan.Streams.VideoIndex).Copy().SetThreads(plan.Params.Threads)
	case Encode:
		vb.MapStream(plan.Streams.VideoIndex).
			Encode(enc.Video).
			SetFilters(act.Filters.String()).
			SetCRF(plan.Params.CRF).
			SetPreset(plan.Params.Preset).
			SetPixelFormat(enc.PixelFormat).
			SetThreads(plan.Params.Threads)
	default:
		return nil, fmt.Errorf("unknown video action %T", plan.Video)
	}

	ab := audio.NewAudioBuilder()
	switch act := plan.Audio.(type) {
	case Skip:
		ab.Disable()
	case Copy:
		ab.MapStream(plan.Streams.AudioIndex).Copy()
	case Encode:
		ab.MapStream(plan.Streams.AudioIndex).
			Encode().
			SetFilters(act.Filters.String()).
			SetBitrate(enc.AudioBitrate).
			SetSampleRate(enc.SampleRate).
			SetChannels(enc.Channels)
		if enc.Audio != "" {
			ab.SetCodec(enc.Audio)
		}
	default:
		return nil, fmt.Errorf("unknown audio action %T", plan.Audio)
	}

	builder := transcode.NewBuilder(opts.InputPath, opts.OutputPath).
		SetBinary(opts.FFmpegPath).
		SetVideo(vb).
		SetAudio(ab).
		SetMuxer(plan.Container.Muxer).
		SetFastStart(plan.Container.FastStart).
		SetVerbose(opts.Verbose).
		SetProgress(opts.Progress)

	if err := builder.Validate(); err != nil {
		return nil, fmt.Errorf("invalid invocation: %w", err)
	}
	return builder, nil
}
