package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enhancer/config"
	"enhancer/models"
)

// isolate keeps config search away from the developer's real files.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestExitCode(t *testing.T) {
	var w bytes.Buffer
	assert.Equal(t, exitOK, exitCode(context.Background(), nil, &w))
	assert.Empty(t, w.String())

	assert.Equal(t, exitError, exitCode(context.Background(), errors.New("boom"), &w))
	assert.Contains(t, w.String(), "Error: boom")

	w.Reset()
	wrapped := fmt.Errorf("encoding cancelled: %w", context.Canceled)
	assert.Equal(t, exitInterrupted, exitCode(context.Background(), wrapped, &w))
	assert.Contains(t, w.String(), "cancelled")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, exitInterrupted, exitCode(ctx, errors.New("signal: interrupt"), &w))
}

func TestRoot_MissingInputIsValidationError(t *testing.T) {
	isolate(t)

	_, stderr, err := execute(t)
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.HasField("input"))
	assert.Contains(t, stderr, "Usage:")
	assert.Contains(t, stderr, "--input")
}

func TestRoot_UnreadableInputSkipsUsage(t *testing.T) {
	dir := isolate(t)

	_, stderr, err := execute(t, "-i", filepath.Join(dir, "absent.mp4"))
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.HasField("input"))
	assert.NotContains(t, stderr, "Usage:")
}

func TestRoot_RejectsPositionalArgs(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "clip.mp4")
	require.Error(t, err)
}

func TestConfigInit_WritesEffectiveConfig(t *testing.T) {
	dir := isolate(t)
	target := filepath.Join(dir, "profiles", "warm.yaml")

	_, _, err := execute(t, "config", "init", target, "--brightness", "65", "--crf", "20", "-i", "clip.mov")
	require.NoError(t, err)

	cfg, err := config.LoadConfigFile(target)
	require.NoError(t, err)
	assert.Equal(t, 65, cfg.Adjustments.Brightness)
	assert.Equal(t, 20, cfg.Video.CRF)
	assert.Empty(t, cfg.Input)

	_, _, err = execute(t, "config", "init", target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "config", "init", target, "--overwrite")
	require.NoError(t, err)
	cfg, err = config.LoadConfigFile(target)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Adjustments.Brightness)
}

func TestConfigShow_ReportsSourceAndValues(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "enhancer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("speed: 1.5\nadjustments:\n  saturation: 80\n"), 0o644))

	out, _, err := execute(t, "config", "show", "--preset", "veryslow")
	require.NoError(t, err)

	assert.Contains(t, out, "enhancer.yaml")
	assert.Contains(t, out, "1.5")
	assert.Contains(t, out, "80")
	assert.Contains(t, out, "veryslow")
}

const fakeProbeJSON = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video"},
    {"index": 1, "codec_name": "aac", "codec_type": "audio"}
  ],
  "format": {"duration": "12.500000"}
}`

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestRoot_DryRunPrintsPlanAndCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script tools")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	dir := isolate(t)

	payload := filepath.Join(dir, "probe.json")
	require.NoError(t, os.WriteFile(payload, []byte(fakeProbeJSON), 0o644))
	ffprobe := writeScript(t, dir, "ffprobe", "cat '"+payload+"'\n")
	// ffmpeg must never run during a dry run.
	ffmpeg := writeScript(t, dir, "ffmpeg", "touch '"+filepath.Join(dir, "ran")+"'\nexit 1\n")

	input := filepath.Join(dir, "clip.mov")
	require.NoError(t, os.WriteFile(input, []byte("not really a movie"), 0o644))

	out, _, err := execute(t,
		"-i", input,
		"--speed", "1.5",
		"--brightness", "60",
		"--ffmpeg", ffmpeg,
		"--ffprobe", ffprobe,
		"--dry-run",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Encode plan")
	assert.Contains(t, out, "atempo=1.5")
	assert.Contains(t, out, ffmpeg+" -hide_banner")
	assert.Contains(t, out, "clip_enhanced_speed1.5.mov")

	assert.NoFileExists(t, filepath.Join(dir, "ran"))
	assert.NoFileExists(t, filepath.Join(dir, "clip_enhanced_speed1.5.mov"))
}
