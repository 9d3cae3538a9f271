package filters

import "strings"

// Chain is an ordered list of stages applied to one stream.
type Chain []Stage

// Empty reports whether the chain has no stages.
func (c Chain) Empty() bool {
	return len(c) == 0
}

// Kinds returns the kind of every stage in order.
func (c Chain) Kinds() []StageKind {
	kinds := make([]StageKind, len(c))
	for i, s := range c {
		kinds[i] = s.Kind()
	}
	return kinds
}

// String serializes the chain into ffmpeg filtergraph syntax.
func (c Chain) String() string {
	parts := make([]string, len(c))
	for i, s := range c {
		parts[i] = s.Filter()
	}
	return strings.Join(parts, ",")
}

// Graph holds the video and audio chains of one invocation.
type Graph struct {
	Video Chain
	Audio Chain
}

// Empty reports whether neither stream needs filtering.
func (g Graph) Empty() bool {
	return g.Video.Empty() && g.Audio.Empty()
}

// Compose builds the filter graph for the given parameters and speed.
//
// Video stages always appear as denoise, sharpen, color, scale, speed. A
// speed other than exactly 1 adds a timestamp stage to the video chain and a
// tempo stage to the audio chain, both derived from the same value.
func Compose(p Parameters, speed float64) Graph {
	var g Graph

	if p.Denoise != nil {
		g.Video = append(g.Video, *p.Denoise)
	}
	if p.Sharpen != nil {
		g.Video = append(g.Video, *p.Sharpen)
	}
	if p.Color != nil {
		g.Video = append(g.Video, *p.Color)
	}
	if p.Scale != nil {
		g.Video = append(g.Video, *p.Scale)
	}

	if speed != 1 {
		g.Video = append(g.Video, VideoSpeed{Speed: speed})
		g.Audio = append(g.Audio, AudioTempo{Speed: speed})
	}

	return g
}
