//go:build windows

package ffmpeg

import (
	"fmt"
	"os"
	"path/filepath"
)

type tempOutput struct {
	path      string
	temp      string
	committed bool
}

func newPendingOutput(path string) (pendingOutput, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"*")
	if err != nil {
		return nil, fmt.Errorf("create pending output: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return nil, fmt.Errorf("create pending output: %w", err)
	}
	return &tempOutput{path: path, temp: name}, nil
}

func (o *tempOutput) Name() string {
	return o.temp
}

func (o *tempOutput) Commit() error {
	if err := os.Rename(o.temp, o.path); err != nil {
		return err
	}
	o.committed = true
	return nil
}

func (o *tempOutput) Discard() error {
	if o.committed {
		return nil
	}
	if err := os.Remove(o.temp); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
