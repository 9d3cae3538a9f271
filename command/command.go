// Package command provides the interfaces shared by the ffmpeg argument
// builders.
//
// Stream builders (video, audio) emit the per-stream fragment of an
// invocation. The transcode builder assembles the fragments together with the
// global, input and container options into a complete command line.
package command

import (
	"strconv"
	"strings"
)

// Fragment is a piece of an ffmpeg argument list.
type Fragment interface {
	// BuildArgs returns the arguments contributed by this fragment, in order.
	BuildArgs() []string
}

// Command represents a complete FFmpeg command that can be built or previewed.
//
// Example usage:
//
//	cmd := transcode.NewBuilder("input.mov", "output.mp4").
//		SetVideo(video.NewVideoBuilder().Copy()).
//		SetAudio(audio.NewAudioBuilder().Copy())
//
//	preview, _ := cmd.DryRun()
type Command interface {
	Fragment

	// DryRun returns the command as a shell-quoted string without executing it.
	// Returns an error if the command cannot be built (e.g., missing input).
	DryRun() (string, error)

	// GetInputPath returns the input file path for this command.
	GetInputPath() string

	// GetOutputPath returns the final output file path for this command.
	GetOutputPath() string
}

// QuoteArgs joins args into a single line, quoting any argument that a POSIX
// shell would split or expand.
func QuoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = quoteArg(arg)
	}
	return strings.Join(quoted, " ")
}

func quoteArg(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsAny(arg, " \t\n'\"\\$`*?[]{}()<>|&;#~!") {
		return arg
	}
	if !strings.Contains(arg, "'") {
		return "'" + arg + "'"
	}
	return strconv.Quote(arg)
}
