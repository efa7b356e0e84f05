package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	c := NewCounter("test.counter")
	assert.Zero(t, c.Value())
	c.Inc()
	c.Add(9)
	c.Add(-5)
	c.Add(0)
	assert.Equal(t, int64(10), c.Value())
	assert.Equal(t, "test.counter", c.Name())
}

func TestGauge(t *testing.T) {
	g := NewGauge("test.gauge")
	g.Set(42)
	g.Add(1)
	g.Add(-3)
	assert.Equal(t, int64(40), g.Value())
	g.Set(-10)
	assert.Equal(t, int64(-10), g.Value())
}

func TestHistogram(t *testing.T) {
	h := NewHistogram("test.hist")
	assert.Equal(t, HistogramSnapshot{}, h.Snapshot())

	for _, v := range []float64{4, 1, 7} {
		h.Observe(v)
	}
	assert.Equal(t, HistogramSnapshot{Count: 3, Sum: 12, Min: 1, Max: 7, Mean: 4}, h.Snapshot())
}

func TestTimer(t *testing.T) {
	h := NewHistogram("test.timer")
	timer := NewTimer(h)
	time.Sleep(2 * time.Millisecond)
	d := timer.Stop()

	assert.GreaterOrEqual(t, d, 2*time.Millisecond)
	snap := h.Snapshot()
	assert.Equal(t, int64(1), snap.Count)
	assert.GreaterOrEqual(t, snap.Sum, 2000.0)

	// A timer without a histogram only measures.
	assert.Positive(t, NewTimer(nil).Stop())
}

func TestConcurrentUpdates(t *testing.T) {
	c := NewCounter("c")
	g := NewGauge("g")
	h := NewHistogram("h")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Inc()
				g.Add(1)
				g.Add(-1)
				h.Observe(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1600), c.Value())
	assert.Zero(t, g.Value())
	assert.Equal(t, int64(1600), h.Snapshot().Count)
}
