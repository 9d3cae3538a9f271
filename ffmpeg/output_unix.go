//go:build !windows

package ffmpeg

import (
	"fmt"

	"github.com/google/renameio/v2"
)

// renameioOutput reserves a hidden temporary file next to the destination.
// ffmpeg writes into it by name; Commit fsyncs and renames it into place.
type renameioOutput struct {
	file *renameio.PendingFile
}

func newPendingOutput(path string) (pendingOutput, error) {
	file, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return nil, fmt.Errorf("create pending output: %w", err)
	}
	return &renameioOutput{file: file}, nil
}

func (o *renameioOutput) Name() string {
	return o.file.Name()
}

func (o *renameioOutput) Commit() error {
	return o.file.CloseAtomicallyReplace()
}

// Discard removes the temporary file. It is a no-op after Commit.
func (o *renameioOutput) Discard() error {
	return o.file.Cleanup()
}
