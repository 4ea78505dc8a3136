package render

import (
	"math"
	"time"
)

// Clock drives the highlight animation.
type Clock interface {
	Elapsed() time.Duration
}

type wallClock struct{ start time.Time }

// NewWallClock starts a clock at the current time.
func NewWallClock() Clock { return wallClock{start: time.Now()} }

func (c wallClock) Elapsed() time.Duration { return time.Since(c.start) }

// FixedClock always reports the same time.
type FixedClock time.Duration

func (c FixedClock) Elapsed() time.Duration { return time.Duration(c) }

// HighlightPulse is the shading multiplier of the highlighted object at
// elapsed time t.
func HighlightPulse(t time.Duration) float32 {
	ms := float64(t) / float64(time.Millisecond)
	return float32(0.15*math.Sin(ms/180) + 1.0)
}
