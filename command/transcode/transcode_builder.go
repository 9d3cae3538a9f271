// Package transcode assembles a complete single-input ffmpeg invocation from
// the video and audio stream fragments.
package transcode

import (
	"errors"
	"path/filepath"

	"enhancer/command"
	"enhancer/command/audio"
	"enhancer/command/video"
)

// Builder constructs an ffmpeg command that reads one input and writes one
// output container.
//
// Argument order is fixed: global flags, input, video fragment, audio
// fragment, container options, output path.
type Builder struct {
	binary     string
	inputPath  string
	outputPath string

	video *video.VideoBuilder
	audio *audio.AudioBuilder

	// Container options
	muxer     string
	fastStart bool

	verbose  bool
	progress bool
}

// NewBuilder creates a builder that encodes both streams with the default
// stream settings and reports progress on stdout.
func NewBuilder(inputPath, outputPath string) *Builder {
	return &Builder{
		binary:     "ffmpeg",
		inputPath:  inputPath,
		outputPath: outputPath,
		video:      video.NewVideoBuilder(),
		audio:      audio.NewAudioBuilder(),
		progress:   true,
	}
}

// SetBinary sets the ffmpeg executable shown by DryRun.
func (b *Builder) SetBinary(path string) *Builder {
	if path != "" {
		b.binary = path
	}
	return b
}

// SetVideo replaces the video fragment.
func (b *Builder) SetVideo(v *video.VideoBuilder) *Builder {
	b.video = v
	return b
}

// SetAudio replaces the audio fragment.
func (b *Builder) SetAudio(a *audio.AudioBuilder) *Builder {
	b.audio = a
	return b
}

// SetMuxer forces the output format (ffmpeg -f). Required when the output
// path does not end in the container's extension.
func (b *Builder) SetMuxer(muxer string) *Builder {
	b.muxer = muxer
	return b
}

// SetFastStart moves the moov atom to the front of ISO-BMFF outputs.
func (b *Builder) SetFastStart(enabled bool) *Builder {
	b.fastStart = enabled
	return b
}

// SetVerbose keeps ffmpeg's banner and info-level logging.
func (b *Builder) SetVerbose(verbose bool) *Builder {
	b.verbose = verbose
	return b
}

// SetProgress toggles machine-readable progress on stdout.
func (b *Builder) SetProgress(enabled bool) *Builder {
	b.progress = enabled
	return b
}

// Validate checks that the builder describes a runnable command.
func (b *Builder) Validate() error {
	if b.inputPath == "" {
		return errors.New("input path is required")
	}
	if b.outputPath == "" {
		return errors.New("output path is required")
	}
	if filepath.Clean(b.inputPath) == filepath.Clean(b.outputPath) {
		return errors.New("output path must differ from input path")
	}
	if b.videoDisabled() && b.audioDisabled() {
		return errors.New("at least one of video or audio must be written")
	}
	return nil
}

func (b *Builder) videoDisabled() bool {
	return b.video == nil || b.video.Mode() == video.ModeDisabled
}

func (b *Builder) audioDisabled() bool {
	return b.audio == nil || b.audio.Mode() == audio.ModeDisabled
}

// BuildArgs constructs the ffmpeg command arguments for the final output path.
func (b *Builder) BuildArgs() []string {
	return b.BuildArgsTo(b.outputPath)
}

// BuildArgsTo constructs the arguments with a different destination, such as
// a temporary file that is renamed into place once ffmpeg succeeds.
func (b *Builder) BuildArgsTo(outputPath string) []string {
	args := []string{}

	if !b.verbose {
		args = append(args, "-hide_banner", "-loglevel", "error")
	}
	args = append(args, "-nostdin", "-y")
	if b.progress {
		args = append(args, "-progress", "pipe:1", "-nostats")
	}

	args = append(args, "-i", b.inputPath)

	if b.video != nil {
		args = append(args, b.video.BuildArgs()...)
	} else {
		args = append(args, "-vn")
	}
	if b.audio != nil {
		args = append(args, b.audio.BuildArgs()...)
	} else {
		args = append(args, "-an")
	}

	if b.fastStart {
		args = append(args, "-movflags", "+faststart")
	}
	if b.muxer != "" {
		args = append(args, "-f", b.muxer)
	}

	args = append(args, outputPath)

	return args
}

// DryRun returns the command that would be executed without running it.
func (b *Builder) DryRun() (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}
	return command.QuoteArgs(append([]string{b.binary}, b.BuildArgs()...)), nil
}

// Binary returns the ffmpeg executable path.
func (b *Builder) Binary() string {
	return b.binary
}

// GetInputPath returns the input path.
func (b *Builder) GetInputPath() string {
	return b.inputPath
}

// GetOutputPath returns the output file path.
func (b *Builder) GetOutputPath() string {
	return b.outputPath
}

var _ command.Command = (*Builder)(nil)
