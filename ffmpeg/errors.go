package ffmpeg

import (
	"fmt"
	"strings"
)

// ProcessSpawnError reports that the ffmpeg executable could not be started.
type ProcessSpawnError struct {
	Binary string
	Err    error
}

func (e *ProcessSpawnError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Binary, e.Err)
}

func (e *ProcessSpawnError) Unwrap() error {
	return e.Err
}

// ProcessExecutionError reports that ffmpeg ran but exited unsuccessfully.
// Stderr holds the tail of its diagnostic output.
type ProcessExecutionError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ProcessExecutionError) Error() string {
	msg := fmt.Sprintf("ffmpeg exited with code %d", e.ExitCode)
	if last := lastLine(e.Stderr); last != "" {
		msg += ": " + last
	}
	return msg
}

func (e *ProcessExecutionError) Unwrap() error {
	return e.Err
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}
