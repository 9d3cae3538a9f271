package ffmpeg

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineRing_KeepsLastLines(t *testing.T) {
	ring := NewLineRing(3)
	for i := 1; i <= 5; i++ {
		ring.Add(fmt.Sprintf("line %d", i))
	}

	assert.Equal(t, []string{"line 3", "line 4", "line 5"}, ring.Lines())
	assert.Equal(t, "line 3\nline 4\nline 5", ring.String())
}

func TestLineRing_PartiallyFilled(t *testing.T) {
	ring := NewLineRing(5)
	ring.Add("first\n")
	ring.Add("   ")
	ring.Add("second\r\n")

	assert.Equal(t, []string{"first", "second"}, ring.Lines())
}

func TestLineRing_Empty(t *testing.T) {
	ring := NewLineRing(0)
	assert.Empty(t, ring.Lines())
	assert.Equal(t, "", ring.String())
}

func TestLineRing_Concurrent(t *testing.T) {
	ring := NewLineRing(10)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				ring.Add(fmt.Sprintf("%d-%d", n, j))
				_ = ring.Lines()
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, ring.Lines(), 10)
}
