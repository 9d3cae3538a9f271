// Package display renders progress and plans for the terminal.
package display

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"enhancer/models"
)

const barSteps = 1000

// StageMessage returns the status shown for a completion fraction in [0,1].
func StageMessage(fraction float64) string {
	switch {
	case fraction < 0.10:
		return "Preparing filters"
	case fraction < 0.65:
		return "Encoding video"
	case fraction < 0.95:
		return "Adjusting audio"
	default:
		return "Finalizing and muxing"
	}
}

// Progress shows encoding progress either as a bar on a terminal or as
// periodic log lines. Update has the signature of models.ProgressCallback.
type Progress struct {
	mu     sync.Mutex
	bar    *progressbar.ProgressBar
	logger zerolog.Logger

	lastBucket int
	done       bool
}

// NewProgress returns a bar writing to w when interactive is set, otherwise
// a reporter that logs every 10%. totalSeconds of 0 shows a spinner.
func NewProgress(w io.Writer, logger zerolog.Logger, interactive bool, totalSeconds float64) *Progress {
	p := &Progress{logger: logger, lastBucket: -1}
	if !interactive {
		return p
	}

	steps := barSteps
	if totalSeconds <= 0 {
		steps = -1
	}
	p.bar = progressbar.NewOptions(steps,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(StageMessage(0)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "▐",
			BarEnd:        "▌",
		}),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(w, "\n") }),
	)
	return p
}

// Update renders one progress snapshot.
func (p *Progress) Update(ep *models.EncodingProgress) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done {
		return
	}

	switch ep.State {
	case models.ProgressStateCompleted:
		p.finishLocked(true)
		return
	case models.ProgressStateFailed, models.ProgressStateCancelled:
		p.finishLocked(false)
		return
	}

	fraction := ep.Fraction()
	if p.bar != nil {
		p.bar.Describe(StageMessage(fraction))
		if ep.TotalDuration > 0 {
			_ = p.bar.Set(int(math.Round(fraction * barSteps)))
		} else {
			_ = p.bar.Add(1)
		}
		return
	}

	bucket := int(fraction * 10)
	if bucket <= p.lastBucket {
		return
	}
	p.lastBucket = bucket
	p.logger.Info().
		Float64("percent", math.Round(ep.Progress*10)/10).
		Str("stage", StageMessage(fraction)).
		Float64("speed", ep.Speed).
		Msg(ep.FormatSummary())
}

// Abort stops the bar at its current position. It is a no-op once a
// terminal update has been rendered.
func (p *Progress) Abort() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finishLocked(false)
}

func (p *Progress) finishLocked(success bool) {
	if p.done {
		return
	}
	p.done = true
	if p.bar == nil {
		return
	}
	if success {
		p.bar.Describe(StageMessage(1))
		_ = p.bar.Finish()
	} else {
		_ = p.bar.Exit()
	}
}
