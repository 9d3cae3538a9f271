// Package enhance runs one enhancement from configuration to finished file.
package enhance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"enhancer/config"
	"enhancer/ffmpeg"
	"enhancer/ffprobe"
	"enhancer/internal/logging"
	"enhancer/internal/timeutil"
	"enhancer/models"
	"enhancer/planner"
)

// Prober reads stream metadata from an input file.
type Prober interface {
	Probe(ctx context.Context, path string) (*ffprobe.ProbeResult, error)
}

// Executor runs a built ffmpeg invocation.
type Executor interface {
	Run(ctx context.Context, inv ffmpeg.Invocation, totalSeconds float64, onProgress models.ProgressCallback) (*models.EncodeResult, error)
}

// ProgressFactory returns the callback for a run whose output is expected
// to last totalSeconds (0 when unknown).
type ProgressFactory func(totalSeconds float64) models.ProgressCallback

// Outcome describes what a pipeline run decided and produced.
type Outcome struct {
	Plan          *planner.EncodePlan
	Command       string  // shell-quoted ffmpeg command line
	SourceSeconds float64 // probed input duration, 0 when unknown
	TargetSeconds float64 // expected output duration
	Result        *models.EncodeResult
	DryRun        bool
}

// Pipeline wires probing, planning and execution together.
type Pipeline struct {
	prober   Prober
	executor Executor
	progress ProgressFactory
	logger   zerolog.Logger
	planLog  zerolog.Logger
}

// NewPipeline creates a pipeline over the given collaborators.
func NewPipeline(prober Prober, executor Executor, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		prober:   prober,
		executor: executor,
		logger:   logging.WithComponent(logger, "pipeline"),
		planLog:  logging.WithComponent(logger, "planner"),
	}
}

// SetProgress installs a progress factory. A nil factory disables progress.
func (p *Pipeline) SetProgress(f ProgressFactory) *Pipeline {
	p.progress = f
	return p
}

// Run enhances cfg.Input into cfg.Output using the ffmpeg binary at ffmpegPath.
//
// The request is validated before the input is probed, so bad controls or
// encode parameters never start a subprocess. With cfg.DryRun set, the plan
// and command are returned without running ffmpeg.
func (p *Pipeline) Run(ctx context.Context, cfg *config.Config, ffmpegPath string) (*Outcome, error) {
	req := planner.Request{
		Adjustments: cfg.Adjustments,
		Speed:       cfg.Speed,
		ScaleHeight: cfg.ScaleHeight,
		CRF:         cfg.Video.CRF,
		Preset:      cfg.Video.Preset,
		Threads:     cfg.Video.Threads,
	}
	if _, err := req.Validate(); err != nil {
		return nil, err
	}

	container, ok := planner.LookupContainer(cfg.Output)
	if !ok {
		return nil, models.NewValidationError([]models.FieldError{{
			Field:    "output",
			Value:    cfg.Output,
			Expected: fmt.Sprintf("one of %v", planner.SupportedExtensions()),
		}})
	}

	// Phase 1: media analysis
	p.logger.Debug().Str("input", cfg.Input).Msg("probing input")
	probe, err := p.prober.Probe(ctx, cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("media analysis failed: %w", err)
	}
	info := probe.CodecInfo()

	out := &Outcome{DryRun: cfg.DryRun}
	if d, err := probe.GetDuration(); err == nil {
		out.SourceSeconds = d
	} else {
		p.logger.Debug().Err(err).Msg("input duration unknown, progress will not show a percentage")
	}
	out.TargetSeconds = timeutil.TargetDuration(out.SourceSeconds, cfg.Speed)

	p.logger.Info().
		Str("video", orNone(info.VideoCodec)).
		Str("audio", orNone(info.AudioCodec)).
		Str("duration", timeutil.FormatSeconds(out.SourceSeconds)).
		Msg("input analysed")

	// Phase 2: planning
	plan, err := planner.Plan(req, info, container)
	if err != nil {
		if errors.Is(err, models.ErrNoStreams) {
			return nil, &ffprobe.ProbeError{Path: cfg.Input, Err: err}
		}
		return nil, err
	}
	out.Plan = plan
	p.logWarnings(plan)

	p.planLog.Info().
		Str("video", string(plan.Video.Mode())).
		Str("video_stages", stageList(plan.Video)).
		Str("audio", string(plan.Audio.Mode())).
		Str("audio_stages", stageList(plan.Audio)).
		Str("container", container.Extension).
		Msg("plan ready")

	// Phase 3: invocation
	inv, err := planner.BuildInvocation(plan, planner.InvocationOptions{
		FFmpegPath: ffmpegPath,
		InputPath:  cfg.Input,
		OutputPath: cfg.Output,
		Encoders: planner.Encoders{
			Video:        cfg.Video.Codec,
			PixelFormat:  cfg.Video.PixelFormat,
			Audio:        cfg.Audio.Codec,
			AudioBitrate: cfg.Audio.Bitrate,
			SampleRate:   cfg.Audio.SampleRate,
			Channels:     cfg.Audio.Channels,
		},
		Verbose:  cfg.Verbose,
		Progress: true,
	})
	if err != nil {
		return nil, err
	}
	out.Command, err = inv.DryRun()
	if err != nil {
		return nil, err
	}
	p.logger.Debug().Str("command", out.Command).Msg("ffmpeg command")

	if cfg.DryRun {
		return out, nil
	}

	// Phase 4: encoding
	var onProgress models.ProgressCallback
	if p.progress != nil {
		onProgress = p.progress(out.TargetSeconds)
	}
	result, err := p.executor.Run(ctx, inv, out.TargetSeconds, onProgress)
	if err != nil {
		return nil, err
	}
	out.Result = result

	p.logger.Info().
		Str("output", result.OutputPath).
		Str("size", models.FormatBytes(result.OutputSize)).
		Dur("elapsed", result.Elapsed).
		Float64("realtime", result.RealtimeFactor(out.TargetSeconds)).
		Msg("enhancement complete")

	return out, nil
}

func (p *Pipeline) logWarnings(plan *planner.EncodePlan) {
	for _, w := range plan.Warnings {
		var uc *planner.UnsupportedContainerForCopyError
		if errors.As(w, &uc) {
			p.planLog.Warn().
				Str("stream", string(uc.Stream)).
				Str("codec", uc.Codec).
				Str("container", uc.Container).
				Msg(w.Error())
			continue
		}
		p.planLog.Warn().Err(w).Msg("plan warning")
	}
}

// stageList names the filter stages of an encode action, joined by "+".
func stageList(a planner.Action) string {
	enc, ok := a.(planner.Encode)
	if !ok || enc.Filters.Empty() {
		return "none"
	}
	kinds := enc.Filters.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, "+")
}

func orNone(codec string) string {
	if codec == "" {
		return "none"
	}
	return codec
}
