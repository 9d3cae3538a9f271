// Package ffmpeg runs ffmpeg invocations and interprets their progress output.
package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"enhancer/models"
)

// Invocation is a fully planned ffmpeg command line.
type Invocation interface {
	Binary() string
	BuildArgsTo(outputPath string) []string
	GetOutputPath() string
}

type pendingOutput interface {
	Name() string
	Commit() error
	Discard() error
}

const (
	defaultWaitDelay = 5 * time.Second
	defaultTailLines = 20
)

// Runner executes invocations one at a time.
type Runner struct {
	logger    zerolog.Logger
	waitDelay time.Duration
	tailLines int
}

// NewRunner returns a Runner that logs through logger.
func NewRunner(logger zerolog.Logger) *Runner {
	return &Runner{
		logger:    logger.With().Str("component", "ffmpeg").Logger(),
		waitDelay: defaultWaitDelay,
		tailLines: defaultTailLines,
	}
}

// Run executes inv, writing to a temporary file beside the final output and
// renaming it into place only after ffmpeg exits successfully. Cancellation
// or failure removes the temporary file, so the destination is either
// untouched or complete.
//
// totalSeconds is the expected output duration used for percentages; pass 0
// when unknown. onProgress may be nil.
func (r *Runner) Run(ctx context.Context, inv Invocation, totalSeconds float64, onProgress models.ProgressCallback) (*models.EncodeResult, error) {
	start := time.Now()
	outputPath := inv.GetOutputPath()

	pending, err := newPendingOutput(outputPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := pending.Discard(); err != nil {
			r.logger.Debug().Err(err).Str("temp", pending.Name()).Msg("discard pending output")
		}
	}()

	args := inv.BuildArgsTo(pending.Name())
	cmd := exec.CommandContext(ctx, inv.Binary(), args...)
	cmd.Cancel = func() error {
		// Let ffmpeg close the output cleanly; WaitDelay kills it if it does not exit.
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = r.waitDelay

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &ProcessSpawnError{Binary: inv.Binary(), Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, &ProcessSpawnError{Binary: inv.Binary(), Err: err}
	}

	r.logger.Debug().Str("command", cmd.String()).Msg("starting ffmpeg")
	if err := cmd.Start(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("encoding cancelled: %w", ctx.Err())
		}
		return nil, &ProcessSpawnError{Binary: inv.Binary(), Err: err}
	}

	progress := models.NewEncodingProgress(totalSeconds)
	tail := NewLineRing(r.tailLines)

	var g errgroup.Group
	g.Go(func() error {
		return NewProgressParser().StreamProgress(stdout, progress, func(p *models.EncodingProgress) {
			r.logProgress(p)
			if onProgress != nil {
				onProgress(p)
			}
		})
	})
	g.Go(func() error {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			line := scanner.Text()
			tail.Add(line)
			r.logger.Debug().Str("stream", "stderr").Msg(line)
		}
		return scanner.Err()
	})

	pumpErr := g.Wait()
	waitErr := cmd.Wait()
	elapsed := time.Since(start)

	finish := func(state models.ProgressState) {
		progress.State = state
		progress.UpdatedAt = time.Now()
		if onProgress != nil {
			onProgress(progress)
		}
	}

	if ctx.Err() != nil {
		finish(models.ProgressStateCancelled)
		r.logger.Info().Dur("elapsed", elapsed).Msg("ffmpeg interrupted, partial output discarded")
		return nil, fmt.Errorf("encoding cancelled: %w", ctx.Err())
	}

	if waitErr != nil {
		finish(models.ProgressStateFailed)
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return nil, &ProcessExecutionError{ExitCode: exitCode, Stderr: tail.String(), Err: waitErr}
	}

	if pumpErr != nil {
		r.logger.Warn().Err(pumpErr).Msg("ffmpeg output was not fully read")
	}

	if err := pending.Commit(); err != nil {
		finish(models.ProgressStateFailed)
		return nil, fmt.Errorf("move output into place: %w", err)
	}

	var size int64
	if info, err := os.Stat(outputPath); err == nil {
		size = info.Size()
	}

	if totalSeconds > 0 {
		progress.CalculateProgress(totalSeconds)
	}
	finish(models.ProgressStateCompleted)

	return models.NewEncodeResultSuccess(outputPath, size, elapsed)
}

// logProgress writes each parsed progress block at debug level.
func (r *Runner) logProgress(p *models.EncodingProgress) {
	ev := r.logger.Debug()
	if !ev.Enabled() {
		return
	}
	data, err := FormatProgressJSON(p)
	if err != nil {
		ev.Discard()
		return
	}
	ev.RawJSON("progress", []byte(data)).Msg("ffmpeg progress")
}
