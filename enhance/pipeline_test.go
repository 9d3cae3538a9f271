package enhance

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enhancer/config"
	"enhancer/ffmpeg"
	"enhancer/ffprobe"
	"enhancer/models"
	"enhancer/planner"
)

type fakeProber struct {
	result *ffprobe.ProbeResult
	err    error
	calls  int
}

func (f *fakeProber) Probe(_ context.Context, _ string) (*ffprobe.ProbeResult, error) {
	f.calls++
	return f.result, f.err
}

type fakeExecutor struct {
	err   error
	calls int
	args  []string
	total float64
}

func (f *fakeExecutor) Run(_ context.Context, inv ffmpeg.Invocation, totalSeconds float64, onProgress models.ProgressCallback) (*models.EncodeResult, error) {
	f.calls++
	f.args = inv.BuildArgsTo(inv.GetOutputPath())
	f.total = totalSeconds
	if f.err != nil {
		return nil, f.err
	}
	if onProgress != nil {
		ep := models.NewEncodingProgress(totalSeconds)
		ep.State = models.ProgressStateCompleted
		onProgress(ep)
	}
	return models.NewEncodeResultSuccess(inv.GetOutputPath(), 1024, 2*time.Second)
}

func probeResult(video, audio string, duration string) *ffprobe.ProbeResult {
	pr := &ffprobe.ProbeResult{Format: ffprobe.Format{Duration: duration}}
	if video != "" {
		pr.Streams = append(pr.Streams, ffprobe.Stream{Index: 0, CodecType: "video", CodecName: video})
	}
	if audio != "" {
		pr.Streams = append(pr.Streams, ffprobe.Stream{Index: 1, CodecType: "audio", CodecName: audio})
	}
	return pr
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Input = "/media/in.mov"
	cfg.Output = "/media/out.mp4"
	return cfg
}

func newTestPipeline(prober Prober, exec Executor, logs *bytes.Buffer) *Pipeline {
	return NewPipeline(prober, exec, zerolog.New(logs))
}

func TestRun_InvalidParametersStartNoSubprocess(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		check  func(t *testing.T, err error)
	}{
		{
			name:   "crf out of range",
			mutate: func(c *config.Config) { c.Video.CRF = 60 },
			check: func(t *testing.T, err error) {
				var pe *planner.InvalidEncodeParameterError
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, "crf", pe.Field)
			},
		},
		{
			name:   "unknown preset",
			mutate: func(c *config.Config) { c.Video.Preset = "turbo" },
			check: func(t *testing.T, err error) {
				var pe *planner.InvalidEncodeParameterError
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, "preset", pe.Field)
			},
		},
		{
			name:   "control out of range",
			mutate: func(c *config.Config) { c.Adjustments.Brightness = 150 },
			check: func(t *testing.T, err error) {
				var ve *models.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.True(t, ve.HasField("brightness"))
			},
		},
		{
			name:   "zero speed",
			mutate: func(c *config.Config) { c.Speed = 0 },
			check: func(t *testing.T, err error) {
				var ve *models.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.True(t, ve.HasField("speed"))
			},
		},
		{
			name:   "unsupported output container",
			mutate: func(c *config.Config) { c.Output = "/media/out.avi" },
			check: func(t *testing.T, err error) {
				var ve *models.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.True(t, ve.HasField("output"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prober := &fakeProber{result: probeResult("h264", "aac", "10")}
			exec := &fakeExecutor{}
			cfg := testConfig()
			tt.mutate(cfg)

			var logs bytes.Buffer
			_, err := newTestPipeline(prober, exec, &logs).Run(context.Background(), cfg, "ffmpeg")
			require.Error(t, err)
			tt.check(t, err)
			assert.Zero(t, prober.calls, "prober must not run")
			assert.Zero(t, exec.calls, "ffmpeg must not run")
		})
	}
}

func TestRun_NeutralCopiesStreams(t *testing.T) {
	prober := &fakeProber{result: probeResult("h264", "aac", "10")}
	exec := &fakeExecutor{}

	var logs bytes.Buffer
	out, err := newTestPipeline(prober, exec, &logs).Run(context.Background(), testConfig(), "ffmpeg")
	require.NoError(t, err)

	assert.Equal(t, 1, exec.calls)
	joined := strings.Join(exec.args, " ")
	assert.Contains(t, joined, "-c:v copy")
	assert.Contains(t, joined, "-c:a copy")
	assert.NotContains(t, joined, "-vf")
	assert.Equal(t, "/media/out.mp4", out.Result.OutputPath)
	assert.InDelta(t, 10.0, out.TargetSeconds, 1e-9)
	assert.Contains(t, logs.String(), "enhancement complete")
}

func TestRun_SpeedScalesTargetDuration(t *testing.T) {
	prober := &fakeProber{result: probeResult("h264", "aac", "10")}
	exec := &fakeExecutor{}
	cfg := testConfig()
	cfg.Speed = 2

	var got float64
	var logs bytes.Buffer
	p := newTestPipeline(prober, exec, &logs).SetProgress(func(total float64) models.ProgressCallback {
		got = total
		return func(*models.EncodingProgress) {}
	})

	out, err := p.Run(context.Background(), cfg, "ffmpeg")
	require.NoError(t, err)
	assert.InDelta(t, 5.0, got, 1e-9)
	assert.InDelta(t, 5.0, exec.total, 1e-9)
	assert.True(t, out.Plan.RequiresEncode())
	assert.Contains(t, strings.Join(exec.args, " "), "atempo=2")
}

func TestRun_ContainerFallbackWarns(t *testing.T) {
	prober := &fakeProber{result: probeResult("vp9", "opus", "3")}
	exec := &fakeExecutor{}

	var logs bytes.Buffer
	out, err := newTestPipeline(prober, exec, &logs).Run(context.Background(), testConfig(), "ffmpeg")
	require.NoError(t, err)

	assert.Len(t, out.Plan.Warnings, 2)
	joined := strings.Join(exec.args, " ")
	assert.Contains(t, joined, "-c:v libx264")
	assert.Contains(t, joined, "-c:a aac")

	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.Contains(t, logs.String(), `"component":"planner"`)
	assert.Contains(t, logs.String(), `"stream":"video"`)
	assert.Contains(t, logs.String(), `"codec":"opus"`)
	assert.Contains(t, logs.String(), `"container":".mp4"`)
}

func TestRun_PlanLogNamesFilterStages(t *testing.T) {
	prober := &fakeProber{result: probeResult("h264", "aac", "10")}
	exec := &fakeExecutor{}
	cfg := testConfig()
	cfg.Adjustments.Denoise = 80
	cfg.Adjustments.Saturation = 30
	cfg.Speed = 1.5

	var logs bytes.Buffer
	_, err := newTestPipeline(prober, exec, &logs).Run(context.Background(), cfg, "ffmpeg")
	require.NoError(t, err)

	assert.Contains(t, logs.String(), `"component":"planner"`)
	assert.Contains(t, logs.String(), `"video_stages":"denoise+color+speed"`)
	assert.Contains(t, logs.String(), `"audio_stages":"speed"`)
}

func TestRun_CoverArtAheadOfVideoIsNotMapped(t *testing.T) {
	prober := &fakeProber{result: &ffprobe.ProbeResult{
		Format: ffprobe.Format{Duration: "10"},
		Streams: []ffprobe.Stream{
			{Index: 0, CodecType: "video", CodecName: "mjpeg", Disposition: map[string]int{"attached_pic": 1}},
			{Index: 1, CodecType: "video", CodecName: "h264"},
			{Index: 2, CodecType: "audio", CodecName: "aac"},
		},
	}}
	exec := &fakeExecutor{}

	var logs bytes.Buffer
	_, err := newTestPipeline(prober, exec, &logs).Run(context.Background(), testConfig(), "ffmpeg")
	require.NoError(t, err)

	joined := strings.Join(exec.args, " ")
	assert.Contains(t, joined, "-map 0:1 -c:v copy")
	assert.Contains(t, joined, "-map 0:2 -c:a copy")
	assert.NotContains(t, joined, "-map 0:0")
	assert.NotContains(t, joined, "0:v:0")
}

func TestRun_DryRunDoesNotExecute(t *testing.T) {
	prober := &fakeProber{result: probeResult("h264", "", "")}
	exec := &fakeExecutor{}
	cfg := testConfig()
	cfg.DryRun = true
	cfg.Adjustments.Contrast = 70

	var logs bytes.Buffer
	out, err := newTestPipeline(prober, exec, &logs).Run(context.Background(), cfg, "/usr/bin/ffmpeg")
	require.NoError(t, err)

	assert.Zero(t, exec.calls)
	assert.True(t, out.DryRun)
	assert.Nil(t, out.Result)
	assert.True(t, strings.HasPrefix(out.Command, "/usr/bin/ffmpeg "))
	assert.Contains(t, out.Command, "-an")
	assert.Contains(t, out.Command, "/media/out.mp4")
	assert.Zero(t, out.TargetSeconds)
}

func TestRun_ProbeErrorStopsPipeline(t *testing.T) {
	probeErr := &ffprobe.ProbeError{Path: "/media/in.mov", Err: errors.New("moov atom not found")}
	prober := &fakeProber{err: probeErr}
	exec := &fakeExecutor{}

	var logs bytes.Buffer
	_, err := newTestPipeline(prober, exec, &logs).Run(context.Background(), testConfig(), "ffmpeg")

	var pe *ffprobe.ProbeError
	require.ErrorAs(t, err, &pe)
	assert.Zero(t, exec.calls)
}

func TestRun_NoStreamsIsProbeError(t *testing.T) {
	prober := &fakeProber{result: &ffprobe.ProbeResult{Streams: []ffprobe.Stream{{CodecType: "subtitle", CodecName: "mov_text"}}}}
	exec := &fakeExecutor{}

	var logs bytes.Buffer
	_, err := newTestPipeline(prober, exec, &logs).Run(context.Background(), testConfig(), "ffmpeg")

	var pe *ffprobe.ProbeError
	require.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, err, models.ErrNoStreams)
	assert.Zero(t, exec.calls)
}

func TestRun_ExecutorErrorPropagates(t *testing.T) {
	prober := &fakeProber{result: probeResult("h264", "aac", "10")}
	exec := &fakeExecutor{err: &ffmpeg.ProcessExecutionError{ExitCode: 1, Stderr: "boom"}}

	var logs bytes.Buffer
	_, err := newTestPipeline(prober, exec, &logs).Run(context.Background(), testConfig(), "ffmpeg")

	var pe *ffmpeg.ProcessExecutionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.ExitCode)
}
