package command

import "testing"

func TestQuoteArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"plain", []string{"ffmpeg", "-i", "in.mp4"}, "ffmpeg -i in.mp4"},
		{"space", []string{"-i", "my video.mp4"}, "-i 'my video.mp4'"},
		{"empty", []string{"-metadata", ""}, "-metadata ''"},
		{"filter commas are safe", []string{"-vf", "eq=contrast=1.1,scale=-2:720"}, "-vf eq=contrast=1.1,scale=-2:720"},
		{"single quote", []string{"it's.mp4"}, `"it's.mp4"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuoteArgs(tt.args); got != tt.want {
				t.Errorf("QuoteArgs(%q) = %q; want %q", tt.args, got, tt.want)
			}
		})
	}
}
