package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGetOrCreate(t *testing.T) {
	r := NewRegistry()
	c := r.Counter("a")
	assert.Same(t, c, r.Counter("a"))
	assert.NotSame(t, c, r.Counter("b"))
	assert.Same(t, r.Gauge("a"), r.Gauge("a"))
	assert.Same(t, r.Histogram("a"), r.Histogram("a"))
}

func TestRegistryConcurrentLookup(t *testing.T) {
	r := NewRegistry()
	got := make([]*Counter, 32)
	var wg sync.WaitGroup
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = r.Counter("shared")
			got[i].Inc()
		}()
	}
	wg.Wait()
	for _, c := range got {
		require.Same(t, got[0], c)
	}
	assert.Equal(t, int64(32), got[0].Value())
}

func TestRegistrySnapshot(t *testing.T) {
	r := NewRegistry()
	r.Counter("c").Add(3)
	r.Gauge("g").Set(-2)
	r.Histogram("h").Observe(5)

	snap := r.Snapshot()
	assert.Len(t, snap, 3)
	assert.Equal(t, int64(3), snap["c"])
	assert.Equal(t, int64(-2), snap["g"])
	assert.Equal(t, HistogramSnapshot{Count: 1, Sum: 5, Min: 5, Max: 5, Mean: 5}, snap["h"])
}

func TestStandardMetricsRegistered(t *testing.T) {
	assert.Same(t, SignerRecoveries, DefaultRegistry.Counter("crypto.recoveries"))
	assert.Same(t, RecoverBatchTime, DefaultRegistry.Histogram("crypto.recover_batch_us"))
	assert.Contains(t, DefaultRegistry.Snapshot(), "crypto.recoveries_inflight")
}
