package config

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"enhancer/ffmpeg"
)

// Tools holds resolved executable paths
type Tools struct {
	FFmpeg  string
	FFprobe string
}

// ResolveTools locates ffmpeg and ffprobe.
//
// An explicit path must name an existing regular file. When only ffmpeg is
// given, an ffprobe beside it is preferred over PATH. Failures are returned
// as *ffmpeg.ProcessSpawnError since neither tool could be started.
func (tc ToolsConfig) ResolveTools() (Tools, error) {
	var tools Tools
	var err error

	if tools.FFmpeg, err = resolveBinary(tc.FFmpeg, "ffmpeg"); err != nil {
		return Tools{}, err
	}

	probe := tc.FFprobe
	if probe == "" && tc.FFmpeg != "" {
		sibling := filepath.Join(filepath.Dir(tools.FFmpeg), siblingName(tools.FFmpeg, "ffmpeg", "ffprobe"))
		if isRegularFile(sibling) {
			probe = sibling
		}
	}
	if tools.FFprobe, err = resolveBinary(probe, "ffprobe"); err != nil {
		return Tools{}, err
	}

	return tools, nil
}

func resolveBinary(explicit, name string) (string, error) {
	if explicit != "" {
		info, err := os.Stat(explicit)
		if err != nil {
			return "", &ffmpeg.ProcessSpawnError{Binary: explicit, Err: err}
		}
		if !info.Mode().IsRegular() {
			return "", &ffmpeg.ProcessSpawnError{Binary: explicit, Err: errors.New("not a regular file")}
		}
		return explicit, nil
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", &ffmpeg.ProcessSpawnError{Binary: name, Err: fmt.Errorf("%s not found in PATH: %w", name, err)}
	}
	return path, nil
}

// siblingName maps "ffmpeg" to "ffprobe" in a file name, keeping any suffix
// such as ".exe" or a version tag.
func siblingName(path, from, to string) string {
	base := filepath.Base(path)
	if strings.Contains(base, from) {
		return strings.Replace(base, from, to, 1)
	}
	return to + filepath.Ext(base)
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
