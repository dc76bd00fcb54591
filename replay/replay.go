// Package replay walks recorded track points in report order, either flat
// out or pacing emission to the gaps between report timestamps.
package replay

import (
	"sort"
	"sync"
	"time"

	"github.com/signalsfoundry/radar-geodesy/track"
)

// Mode describes how the Player advances between reports.
type Mode int

const (
	// Immediate emits points as fast as the loop runs.
	Immediate Mode = iota
	// Paced sleeps out the gap between consecutive report times, divided
	// by the speedup factor.
	Paced
)

// Player drives point emission and notifies registered listeners. Now
// exposes the report time of the last emitted point, so consumers can
// render replay progress without tracking it themselves.
type Player struct {
	mu      sync.RWMutex
	Mode    Mode
	Speedup float64

	current   time.Time
	listeners []func(track.Point)
}

// NewPlayer constructs a player. A speedup of zero or less means real time.
func NewPlayer(mode Mode, speedup float64) *Player {
	if speedup <= 0 {
		speedup = 1
	}
	return &Player{Mode: mode, Speedup: speedup}
}

// Now returns the report time of the last emitted point.
func (p *Player) Now() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// AddListener registers a callback invoked for every emitted point.
func (p *Player) AddListener(fn func(track.Point)) {
	p.listeners = append(p.listeners, fn)
}

// Play emits the points in report order in a separate goroutine. It returns
// a channel that is closed when the replay finishes. The input slice is not
// modified.
func (p *Player) Play(points []track.Point) <-chan struct{} {
	ordered := make([]track.Point, len(points))
	copy(ordered, points)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].At.Before(ordered[j].At)
	})

	done := make(chan struct{})
	go func() {
		defer close(done)

		var prev time.Time
		for i, pt := range ordered {
			if p.Mode == Paced && i > 0 {
				if gap := pt.At.Sub(prev); gap > 0 {
					time.Sleep(time.Duration(float64(gap) / p.Speedup))
				}
			}
			prev = pt.At

			p.mu.Lock()
			p.current = pt.At
			p.mu.Unlock()

			for _, fn := range p.listeners {
				fn(pt)
			}
		}
	}()
	return done
}
