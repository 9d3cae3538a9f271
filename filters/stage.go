package filters

import (
	"fmt"
	"strconv"
	"strings"
)

// StageKind identifies a stage independent of its parameters.
type StageKind string

const (
	StageDenoise StageKind = "denoise"
	StageSharpen StageKind = "sharpen"
	StageColor   StageKind = "color"
	StageScale   StageKind = "scale"
	StageSpeed   StageKind = "speed"
)

// Stage is a single filter in a chain.
type Stage interface {
	Kind() StageKind
	// Filter returns the stage in ffmpeg filtergraph syntax.
	Filter() string
}

// Denoise is an hqdn3d stage.
type Denoise struct {
	Spatial  float64
	Temporal float64
}

func (d Denoise) Kind() StageKind { return StageDenoise }

func (d Denoise) Filter() string {
	return fmt.Sprintf("hqdn3d=%.3f:%.3f:%.3f:%.3f", d.Spatial, d.Spatial, d.Temporal, d.Temporal)
}

// Sharpen is a 7x7 luma unsharp stage. Negative amounts blur.
type Sharpen struct {
	Amount float64
}

func (s Sharpen) Kind() StageKind { return StageSharpen }

func (s Sharpen) Filter() string {
	return fmt.Sprintf("unsharp=luma_msize_x=7:luma_msize_y=7:luma_amount=%.3f", s.Amount)
}

// Color is a combined eq stage for brightness, contrast and saturation.
type Color struct {
	Brightness float64
	Contrast   float64
	Saturation float64
}

func (c Color) Kind() StageKind { return StageColor }

func (c Color) Filter() string {
	return fmt.Sprintf("eq=contrast=%.6f:saturation=%.6f:brightness=%.6f", c.Contrast, c.Saturation, c.Brightness)
}

// Scale resizes to a fixed height, keeping aspect with an even width.
type Scale struct {
	Height int
}

func (s Scale) Kind() StageKind { return StageScale }

func (s Scale) Filter() string {
	return fmt.Sprintf("scale=-2:%d", s.Height)
}

// VideoSpeed rescales presentation timestamps by 1/Speed.
type VideoSpeed struct {
	Speed float64
}

func (v VideoSpeed) Kind() StageKind { return StageSpeed }

// Factor is the multiplier applied to every timestamp.
func (v VideoSpeed) Factor() float64 {
	return 1 / v.Speed
}

func (v VideoSpeed) Filter() string {
	return "setpts=PTS/" + formatFactor(v.Speed)
}

// AudioTempo changes audio tempo by Speed without altering pitch.
//
// atempo accepts factors in [0.5, 2.0]; larger changes are expressed as a
// chain of atempo filters whose product equals Speed.
type AudioTempo struct {
	Speed float64
}

// Tempo limits of a single atempo filter.
const (
	MinTempo = 0.5
	MaxTempo = 2.0
)

func (a AudioTempo) Kind() StageKind { return StageSpeed }

// Factors splits Speed into atempo factors each within [MinTempo, MaxTempo].
func (a AudioTempo) Factors() []float64 {
	s := a.Speed
	var factors []float64
	for s > MaxTempo {
		factors = append(factors, MaxTempo)
		s /= MaxTempo
	}
	for s < MinTempo {
		factors = append(factors, MinTempo)
		s /= MinTempo
	}
	return append(factors, s)
}

func (a AudioTempo) Filter() string {
	factors := a.Factors()
	parts := make([]string, len(factors))
	for i, f := range factors {
		parts[i] = "atempo=" + formatFactor(f)
	}
	return strings.Join(parts, ",")
}

// formatFactor renders a factor in its shortest exact decimal form.
func formatFactor(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
