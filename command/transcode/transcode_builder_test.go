package transcode

import (
	"slices"
	"strings"
	"testing"

	"enhancer/command"
	"enhancer/command/audio"
	"enhancer/command/video"
)

func TestNewBuilder(t *testing.T) {
	builder := NewBuilder("/input/clip.mov", "/output/clip.mp4")
	var cmd command.Command = builder

	if cmd.GetInputPath() != "/input/clip.mov" {
		t.Error("Expected input path to be set")
	}
	if cmd.GetOutputPath() != "/output/clip.mp4" {
		t.Error("Expected output path to be set")
	}
	if builder.Binary() != "ffmpeg" {
		t.Errorf("Expected default binary ffmpeg, got %s", builder.Binary())
	}
}

func TestBuilder_StreamCopy(t *testing.T) {
	builder := NewBuilder("in.mp4", "out.mp4").
		SetVideo(video.NewVideoBuilder().Copy()).
		SetAudio(audio.NewAudioBuilder().Copy()).
		SetMuxer("mp4").
		SetFastStart(true)

	want := []string{
		"-hide_banner", "-loglevel", "error",
		"-nostdin", "-y",
		"-progress", "pipe:1", "-nostats",
		"-i", "in.mp4",
		"-map", "0:v:0", "-c:v", "copy",
		"-map", "0:a:0", "-c:a", "copy",
		"-movflags", "+faststart",
		"-f", "mp4",
		"out.mp4",
	}
	if got := builder.BuildArgs(); !slices.Equal(got, want) {
		t.Errorf("BuildArgs() =\n  %v\nwant\n  %v", got, want)
	}
}

func TestBuilder_InputBeforeStreamOptions(t *testing.T) {
	args := NewBuilder("in.mp4", "out.mkv").
		SetVideo(video.NewVideoBuilder().SetFilters("setpts=PTS/2")).
		SetAudio(audio.NewAudioBuilder().SetFilters("atempo=2")).
		BuildArgs()

	input := slices.Index(args, "-i")
	vf := slices.Index(args, "-vf")
	af := slices.Index(args, "-af")
	if input < 0 || vf < input || af < vf {
		t.Errorf("Expected -i before -vf before -af, got %v", args)
	}
	if args[len(args)-1] != "out.mkv" {
		t.Errorf("Expected output last, got %v", args)
	}
}

func TestBuilder_BuildArgsTo(t *testing.T) {
	builder := NewBuilder("in.mp4", "out.mp4").SetMuxer("mp4")

	args := builder.BuildArgsTo("/tmp/.out.mp4123")
	if args[len(args)-1] != "/tmp/.out.mp4123" {
		t.Errorf("Expected temp destination last, got %v", args)
	}
	if builder.GetOutputPath() != "out.mp4" {
		t.Error("BuildArgsTo must not change the final output path")
	}
}

func TestBuilder_Verbose(t *testing.T) {
	argsStr := strings.Join(NewBuilder("in.mp4", "out.mp4").SetVerbose(true).BuildArgs(), " ")
	if strings.Contains(argsStr, "-hide_banner") || strings.Contains(argsStr, "-loglevel") {
		t.Errorf("Verbose mode should keep ffmpeg output, got %s", argsStr)
	}
}

func TestBuilder_NoProgress(t *testing.T) {
	argsStr := strings.Join(NewBuilder("in.mp4", "out.mp4").SetProgress(false).BuildArgs(), " ")
	if strings.Contains(argsStr, "-progress") {
		t.Errorf("Expected no -progress, got %s", argsStr)
	}
}

func TestBuilder_DisabledStreams(t *testing.T) {
	args := NewBuilder("in.mp4", "out.mp4").
		SetVideo(nil).
		SetAudio(audio.NewAudioBuilder().Copy()).
		BuildArgs()
	if !slices.Contains(args, "-vn") {
		t.Errorf("Expected -vn for missing video fragment, got %v", args)
	}
}

func TestBuilder_Validate(t *testing.T) {
	tests := []struct {
		name    string
		builder *Builder
		wantErr string
	}{
		{"valid", NewBuilder("in.mp4", "out.mp4"), ""},
		{"no input", NewBuilder("", "out.mp4"), "input path"},
		{"no output", NewBuilder("in.mp4", ""), "output path"},
		{"same path", NewBuilder("dir/in.mp4", "dir/./in.mp4"), "differ"},
		{
			"nothing to write",
			NewBuilder("in.mp4", "out.mp4").
				SetVideo(video.NewVideoBuilder().Disable()).
				SetAudio(audio.NewAudioBuilder().Disable()),
			"at least one",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.builder.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v; want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestBuilder_DryRun(t *testing.T) {
	cmd, err := NewBuilder("my clip.mov", "out.mp4").
		SetBinary("/opt/ffmpeg/bin/ffmpeg").
		SetProgress(false).
		SetVideo(video.NewVideoBuilder().Copy()).
		SetAudio(audio.NewAudioBuilder().Disable()).
		DryRun()
	if err != nil {
		t.Fatalf("DryRun() error: %v", err)
	}

	want := "/opt/ffmpeg/bin/ffmpeg -hide_banner -loglevel error -nostdin -y -i 'my clip.mov' -map 0:v:0 -c:v copy -an out.mp4"
	if cmd != want {
		t.Errorf("DryRun() =\n  %s\nwant\n  %s", cmd, want)
	}

	if _, err := NewBuilder("", "out.mp4").DryRun(); err == nil {
		t.Error("Expected DryRun to fail without input")
	}
}
