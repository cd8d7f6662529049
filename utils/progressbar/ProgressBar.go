// Package progressbar prints a terminal progress bar that updates
// concurrently with the work it measures.
package progressbar

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// ProgressBar renders a bar of the form
//
//	|████████        | [50.00% | elapsed: 4s]
//
// redrawn in place. The counter is atomic and redraw signals are
// non-blocking, so Increment may be called from any goroutine and
// never waits on terminal output.
type ProgressBar struct {
	width float64

	// max is the number of Increment calls that fill the bar.
	max     int64
	current atomic.Int64

	incremented chan struct{}
	done        chan struct{}
	closed      bool

	updateEvery       time.Duration
	updateAtIncrement bool
}

// New returns a progress bar that is width characters wide and fills
// after max Increment calls. The bar redraws every updateEvery, and
// additionally on each Increment when updateAtIncrement is set.
func New(width, max int, updateEvery time.Duration,
	updateAtIncrement bool) *ProgressBar {
	return &ProgressBar{
		width:             float64(width),
		max:               int64(max),
		incremented:       make(chan struct{}, 1),
		done:              make(chan struct{}),
		updateEvery:       updateEvery,
		updateAtIncrement: updateAtIncrement,
	}
}

// Increment records one completed unit of work. Increments past the
// bar's capacity are ignored.
func (p *ProgressBar) Increment() {
	for {
		current := p.current.Load()
		if current >= p.max {
			return
		}
		if p.current.CompareAndSwap(current, current+1) {
			break
		}
	}

	// Coalesce redraw signals; a full channel already has one pending.
	select {
	case p.incremented <- struct{}{}:
	default:
	}
}

// Close stops the render loop and releases the bar's resources. It
// panics when called twice.
func (p *ProgressBar) Close() {
	if p.closed {
		panic("close: close on closed progress bar")
	}
	close(p.done)
	p.closed = true
	fmt.Println()
}

// Display starts rendering the bar. Call it once, before the first
// Increment.
func (p *ProgressBar) Display() {
	go func() {
		tick := time.NewTicker(p.updateEvery)
		defer tick.Stop()

		var elapsed time.Duration
		var bar strings.Builder

		for {
			select {
			case <-p.incremented:
				if !p.updateAtIncrement {
					continue
				}

			case <-tick.C:
				elapsed += p.updateEvery

			case <-p.done:
				return
			}

			current := float64(p.current.Load())

			bar.Reset()
			bar.WriteString("|")

			filled := current / float64(p.max) * p.width
			for i := 0.0; i < filled; i++ {
				bar.WriteString("█")
			}
			for i := filled; i < p.width; i++ {
				bar.WriteString(" ")
			}
			fmt.Fprintf(&bar, "| [%.2f%% | elapsed: %v]",
				current/float64(p.max)*100, elapsed)

			fmt.Printf("\n\033[1A\033[K%v", bar.String())
		}
	}()
}
