// Package filters maps user-facing picture controls onto ffmpeg filter
// parameters and composes them into ordered video and audio filter chains.
//
// Every control is an integer in [0,100] with 50 as the identity point. A
// control at identity produces no stage at all, so an untouched request
// yields empty chains and the caller can fall back to stream copy.
package filters

import "enhancer/models"

// Native ranges for each control. A control at 100 reaches the upper bound
// and a control at 0 the lower bound; 50 is always the exact no-op value.
const (
	BrightnessSpan = 0.30 // eq brightness offset, [-0.30, +0.30]
	ContrastSpan   = 0.50 // eq contrast multiplier, [0.5, 1.5]
	SaturationMax  = 3.0  // eq saturation multiplier, [0.0, 3.0]
	SharpenMax     = 1.0  // unsharp luma amount, [-1.0, +1.0]; negative blurs
	DenoiseLumaMax = 1.8  // hqdn3d spatial strength at 100
	DenoiseTempMax = 9.0  // hqdn3d temporal strength at 100
)

// Identity values of the native parameters.
const (
	NeutralBrightness = 0.0
	NeutralContrast   = 1.0
	NeutralSaturation = 1.0
	NeutralSharpen    = 0.0
)

// Parameters is the mapped native parameter set. A nil stage is omitted
// from the composed chain.
type Parameters struct {
	Denoise *Denoise
	Sharpen *Sharpen
	Color   *Color
	Scale   *Scale
}

// Map converts a validated adjustment request into native filter parameters.
func Map(req models.AdjustmentRequest) Parameters {
	var p Parameters
	if req.IsNeutral() {
		return p
	}

	if req.Denoise > models.ControlIdentity {
		p.Denoise = &Denoise{
			Spatial:  MapDenoiseSpatial(req.Denoise),
			Temporal: MapDenoiseTemporal(req.Denoise),
		}
	}

	if req.Sharpen != models.ControlIdentity {
		p.Sharpen = &Sharpen{Amount: MapSharpen(req.Sharpen)}
	}

	if req.Brightness != models.ControlIdentity ||
		req.Contrast != models.ControlIdentity ||
		req.Saturation != models.ControlIdentity {
		p.Color = &Color{
			Brightness: MapBrightness(req.Brightness),
			Contrast:   MapContrast(req.Contrast),
			Saturation: MapSaturation(req.Saturation),
		}
	}

	return p
}

// WithScale returns a copy of p that resizes to the given height.
// A height of zero removes the scale stage.
func (p Parameters) WithScale(height int) Parameters {
	if height <= 0 {
		p.Scale = nil
		return p
	}
	p.Scale = &Scale{Height: height}
	return p
}

// centerNorm maps [0,100] onto [-1,+1] with 50 at exactly zero.
func centerNorm(v int) float64 {
	return float64(v-models.ControlIdentity) / float64(models.ControlIdentity)
}

// MapBrightness returns the eq brightness offset for a control value.
func MapBrightness(v int) float64 {
	return centerNorm(v) * BrightnessSpan
}

// MapContrast returns the eq contrast multiplier for a control value.
func MapContrast(v int) float64 {
	return NeutralContrast + centerNorm(v)*ContrastSpan
}

// MapSaturation returns the eq saturation multiplier for a control value.
// The lower half spans [0,1] and the upper half [1,SaturationMax].
func MapSaturation(v int) float64 {
	if v <= models.ControlIdentity {
		return float64(v) / float64(models.ControlIdentity)
	}
	return NeutralSaturation + centerNorm(v)*(SaturationMax-NeutralSaturation)
}

// MapSharpen returns the unsharp luma amount for a control value.
func MapSharpen(v int) float64 {
	return centerNorm(v) * SharpenMax
}

// MapDenoiseSpatial returns the hqdn3d spatial strength; zero at or below 50.
func MapDenoiseSpatial(v int) float64 {
	return max(0, centerNorm(v)) * DenoiseLumaMax
}

// MapDenoiseTemporal returns the hqdn3d temporal strength; zero at or below 50.
func MapDenoiseTemporal(v int) float64 {
	return max(0, centerNorm(v)) * DenoiseTempMax
}
