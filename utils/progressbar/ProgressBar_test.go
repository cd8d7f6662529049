package progressbar

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIncrementIsSafeAcrossGoroutines(t *testing.T) {
	p := New(20, 1000, time.Millisecond, true)
	p.Display()

	const workers = 8
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 150; i++ {
				p.Increment()
			}
		}()
	}
	wg.Wait()
	p.Close()

	// 1200 attempted increments against a capacity of 1000: the
	// counter must land exactly on capacity, never past it.
	assert.Equal(t, int64(1000), p.current.Load())
}

func TestIncrementStopsAtCapacity(t *testing.T) {
	p := New(10, 3, time.Millisecond, false)
	for i := 0; i < 10; i++ {
		p.Increment()
	}
	assert.Equal(t, int64(3), p.current.Load())
}

func TestCloseTwicePanics(t *testing.T) {
	p := New(10, 3, time.Millisecond, false)
	p.Close()
	assert.Panics(t, func() { p.Close() })
}
