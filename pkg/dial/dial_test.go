package dial

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock steps one millisecond per call so a sampling loop sweeps the full
// modulus space deterministically.
type fakeClock struct {
	ms int64
}

func (c *fakeClock) now() time.Time {
	c.ms++
	return time.UnixMilli(c.ms)
}

func newTestTimestampDial(pct int) (*TimestampDial, *fakeClock) {
	clock := &fakeClock{}
	d := NewTimestampDial(pct)
	d.now = clock.now
	return d, clock
}

func TestTimestampDialBoundaries(t *testing.T) {
	const samples = 10_000

	full, _ := newTestTimestampDial(100)
	for i := 0; i < samples; i++ {
		require.True(t, full.InRange("any"), "threshold 100 must include every timestamp")
	}

	closed, _ := newTestTimestampDial(0)
	for i := 0; i < samples; i++ {
		require.False(t, closed.InRange("any"), "threshold 0 must exclude every timestamp")
	}
}

func TestTimestampDialDistribution(t *testing.T) {
	const samples = 10_000

	d, _ := newTestTimestampDial(50)

	inRange := 0
	for i := 0; i < samples; i++ {
		if d.InRange("any") {
			inRange++
		}
	}

	// ±5% band per the sampling contract.
	assert.InDelta(t, samples/2, inRange, samples*5/100)
}

func TestTimestampDialIgnoresKey(t *testing.T) {
	d, _ := newTestTimestampDial(50)

	// Pin the clock: every call within the same millisecond must agree,
	// whatever the key.
	d.now = func() time.Time { return time.UnixMilli(42) }

	verdict := d.InRange("a")
	for _, key := range []string{"b", "c", "userA", ""} {
		assert.Equal(t, verdict, d.InRange(key))
	}
}

func TestSetRangeImmediatelyVisible(t *testing.T) {
	d, _ := newTestTimestampDial(100)
	require.True(t, d.InRange("k"))

	d.SetRange(0)
	assert.False(t, d.InRange("k"), "SetRange(0) must be observable on the very next call")

	d.SetRange(100)
	assert.True(t, d.InRange("k"))
}

func TestSetRangeClamps(t *testing.T) {
	d, _ := newTestTimestampDial(50)

	d.SetRange(1000)
	assert.True(t, d.InRange("k"))

	d.SetRange(-3)
	assert.False(t, d.InRange("k"))
}

func TestSetRangeConcurrentWithInRange(t *testing.T) {
	d, _ := newTestTimestampDial(50)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
				d.SetRange(i % 101)
			}
		}
	}()

	for i := 0; i < 100_000; i++ {
		d.InRange("k")
	}
	close(stop)
	wg.Wait()
}

func TestKeyHashDialDeterministic(t *testing.T) {
	d := NewKeyHashDial(50)

	for i := 0; i < 20; i++ {
		key := fmt.Sprintf("user%d", i)
		first := d.InRange(key)
		for j := 0; j < 100; j++ {
			require.Equal(t, first, d.InRange(key), "verdict for %q must not vary over time", key)
		}
	}
}

func TestKeyHashDialBoundaries(t *testing.T) {
	full := NewKeyHashDial(100)
	closed := NewKeyHashDial(0)

	for i := 0; i < 1000; i++ {
		key := fmt.Sprintf("key%d", i)
		assert.True(t, full.InRange(key))
		assert.False(t, closed.InRange(key))
	}
}

func TestKeyHashDialDistribution(t *testing.T) {
	const samples = 10_000

	d := NewKeyHashDial(50)

	inRange := 0
	for i := 0; i < samples; i++ {
		if d.InRange(fmt.Sprintf("key%d", i)) {
			inRange++
		}
	}

	assert.InDelta(t, samples/2, inRange, samples*5/100)
}
