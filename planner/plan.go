package planner

import (
	"math"

	"enhancer/filters"
	"enhancer/models"
)

// Request carries the user's enhancement choices for one file.
type Request struct {
	Adjustments models.AdjustmentRequest
	Speed       float64
	ScaleHeight int // 0 keeps the source height

	CRF     int
	Preset  string
	Threads int
}

// EncodePlan is the complete, validated description of one ffmpeg run.
type EncodePlan struct {
	Graph     filters.Graph
	Streams   models.StreamCodecInfo
	Video     Action
	Audio     Action
	Params    EncodeParameters
	Container Container
	Speed     float64

	// Recoverable decisions the user should hear about, such as a copy
	// that had to become an encode.
	Warnings []error
}

// Validate checks everything about the request that does not depend on the
// input file and returns the resolved encode parameters.
//
// Encode parameters are resolved even when nothing will be encoded so that
// invalid values are reported before any subprocess is started.
func (r Request) Validate() (EncodeParameters, error) {
	if r.Speed <= 0 || math.IsNaN(r.Speed) || math.IsInf(r.Speed, 0) {
		return EncodeParameters{}, models.NewValidationError([]models.FieldError{{
			Field:    "speed",
			Value:    r.Speed,
			Expected: "finite number greater than 0",
		}})
	}
	if problems := r.Adjustments.Validate(); len(problems) > 0 {
		return EncodeParameters{}, models.NewValidationError(problems)
	}
	return ResolveEncodeParams(r.CRF, r.Preset, r.Threads)
}

// Plan validates the request and decides how every stream is handled.
func Plan(req Request, info models.StreamCodecInfo, container Container) (*EncodePlan, error) {
	params, err := req.Validate()
	if err != nil {
		return nil, err
	}

	if !info.HasVideo() && !info.HasAudio() {
		return nil, models.ErrNoStreams
	}

	graph := filters.Compose(filters.Map(req.Adjustments).WithScale(req.ScaleHeight), req.Speed)
	decision := Decide(graph, info, container)

	return &EncodePlan{
		Graph:     graph,
		Streams:   info,
		Video:     decision.Video,
		Audio:     decision.Audio,
		Params:    params,
		Container: container,
		Speed:     req.Speed,
		Warnings:  decision.Warnings,
	}, nil
}

// RequiresEncode reports whether any stream is re-encoded.
func (p *EncodePlan) RequiresEncode() bool {
	return p.Video.Mode() == ModeEncode || p.Audio.Mode() == ModeEncode
}
