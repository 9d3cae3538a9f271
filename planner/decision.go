package planner

import (
	"enhancer/filters"
	"enhancer/models"
)

// StreamKind identifies a media stream class.
type StreamKind string

const (
	StreamVideo StreamKind = "video"
	StreamAudio StreamKind = "audio"
)

// Mode is the handling chosen for a stream.
type Mode string

const (
	ModeSkip   Mode = "skip"
	ModeCopy   Mode = "copy"
	ModeEncode Mode = "encode"
)

// Reason records why a stream is re-encoded.
type Reason string

const (
	ReasonFilters   Reason = "filters"
	ReasonContainer Reason = "container"
)

// Action is one of Skip, Copy or Encode.
type Action interface {
	Mode() Mode
	isAction()
}

// Skip means the stream is absent from the input and is left out of the output.
type Skip struct{}

// Copy passes the compressed stream through untouched.
type Copy struct {
	Codec string
}

// Encode decodes, filters and re-compresses the stream.
type Encode struct {
	Filters filters.Chain
	Codec   string // Source codec
	Reason  Reason
}

func (Skip) Mode() Mode   { return ModeSkip }
func (Copy) Mode() Mode   { return ModeCopy }
func (Encode) Mode() Mode { return ModeEncode }

func (Skip) isAction()   {}
func (Copy) isAction()   {}
func (Encode) isAction() {}

// Decision holds the per-stream actions and any recoverable fallbacks.
type Decision struct {
	Video    Action
	Audio    Action
	Warnings []error
}

// Decide chooses how each stream is handled. A stream whose filter chain is
// empty is copied when the container accepts its codec and encoded
// otherwise; the latter case adds an UnsupportedContainerForCopyError to
// Warnings.
func Decide(graph filters.Graph, info models.StreamCodecInfo, container Container) Decision {
	var d Decision
	var warn error

	d.Video, warn = decideStream(StreamVideo, info.HasVideo(), info.VideoCodec, graph.Video, container)
	if warn != nil {
		d.Warnings = append(d.Warnings, warn)
	}
	d.Audio, warn = decideStream(StreamAudio, info.HasAudio(), info.AudioCodec, graph.Audio, container)
	if warn != nil {
		d.Warnings = append(d.Warnings, warn)
	}
	return d
}

func decideStream(kind StreamKind, present bool, codec string, chain filters.Chain, container Container) (Action, error) {
	if !present {
		return Skip{}, nil
	}
	if !chain.Empty() {
		return Encode{Filters: chain, Codec: codec, Reason: ReasonFilters}, nil
	}
	if err := CheckCopy(kind, codec, container); err != nil {
		return Encode{Codec: codec, Reason: ReasonContainer}, err
	}
	return Copy{Codec: codec}, nil
}
