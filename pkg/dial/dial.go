// Package dial implements the sampling policy that decides which fraction of
// mutating operations receive a shadow write against the origin cluster.
//
// A Dial is a predicate over operation keys. The threshold it compares against
// is a percentage in [0,100] and may be retuned at runtime by an operator;
// retuning must be visible to the very next InRange call from any goroutine.
package dial

import (
	"sync/atomic"
	"time"
)

// Dial decides, per key, whether an operation qualifies for shadowing.
//
// Implementations must make InRange non-blocking and SetRange safe to call
// concurrently with InRange without external locking.
type Dial interface {
	// InRange reports whether the operation for the given key should be
	// shadowed under the current threshold.
	InRange(key string) bool

	// SetRange overwrites the threshold percentage. Values outside [0,100]
	// are clamped.
	SetRange(pct int)
}

// TimestampDial is the default Dial. It presumes no knowledge of the key and
// compares the threshold against the current wall-clock milliseconds mod 100.
//
// Inclusion is therefore a function of time, not of the key: every call made
// within the same millisecond gets the same verdict, which correlates shadow
// decisions across concurrent operations. This is the contracted behavior;
// use KeyHashDial when a deterministic per-key decision is wanted instead.
type TimestampDial struct {
	threshold atomic.Int32

	// now is swappable so the sampling distribution is testable without
	// sleeping across wall-clock milliseconds.
	now func() time.Time
}

// NewTimestampDial returns a TimestampDial at the given initial percentage.
func NewTimestampDial(pct int) *TimestampDial {
	d := &TimestampDial{now: time.Now}
	d.SetRange(pct)
	return d
}

func (d *TimestampDial) InRange(_ string) bool {
	return d.threshold.Load() > int32(d.now().UnixMilli()%100)
}

func (d *TimestampDial) SetRange(pct int) {
	d.threshold.Store(int32(clamp(pct)))
}

func clamp(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
