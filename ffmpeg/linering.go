package ffmpeg

import (
	"strings"
	"sync"
)

// LineRing keeps the last N lines written to it. It is safe for concurrent use.
type LineRing struct {
	mu    sync.RWMutex
	lines []string
	head  int
	count int
}

// NewLineRing creates a LineRing with the specified capacity.
func NewLineRing(capacity int) *LineRing {
	if capacity < 1 {
		capacity = 20
	}
	return &LineRing{lines: make([]string, capacity)}
}

// Add records one line. Blank lines are ignored.
func (r *LineRing) Add(line string) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lines[r.head] = line
	r.head = (r.head + 1) % len(r.lines)
	if r.count < len(r.lines) {
		r.count++
	}
}

// Lines returns the retained lines, oldest first.
func (r *LineRing) Lines() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, r.count)
	start := (r.head - r.count + len(r.lines)) % len(r.lines)
	for i := 0; i < r.count; i++ {
		out = append(out, r.lines[(start+i)%len(r.lines)])
	}
	return out
}

// String joins the retained lines with newlines.
func (r *LineRing) String() string {
	return strings.Join(r.Lines(), "\n")
}
