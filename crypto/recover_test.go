package crypto

import (
	"context"
	"math/big"
	"sync"
	"testing"

	"github.com/eth2030/ethutil/common"
	"github.com/eth2030/ethutil/core/types"
	"github.com/eth2030/ethutil/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signedRequests signs n distinct hashes with fresh keys and returns the
// requests together with the expected signers.
func signedRequests(t *testing.T, n int, chainID *big.Int) ([]RecoverRequest, []types.Address) {
	t.Helper()
	reqs := make([]RecoverRequest, n)
	want := make([]types.Address, n)
	for i := range reqs {
		key, err := GenerateKey()
		require.NoError(t, err)
		want[i], err = PrivateToAddress(key)
		require.NoError(t, err)

		hash := Keccak256([]byte{byte(i), byte(i >> 8)})
		sig, err := Sign(hash, key, chainID)
		require.NoError(t, err)
		reqs[i] = RecoverRequest{Hash: hash, Sig: sig, ChainID: chainID}
	}
	return reqs, want
}

func TestRecoverAddresses(t *testing.T) {
	reqs, want := signedRequests(t, 32, big.NewInt(1))
	got, err := RecoverAddresses(context.Background(), reqs)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRecoverAddressesEmpty(t *testing.T) {
	got, err := RecoverAddresses(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecoverAddressesReportsFailingIndex(t *testing.T) {
	reqs, _ := signedRequests(t, 8, nil)
	reqs[5].Sig = &Signature{V: big.NewInt(29), R: reqs[5].Sig.R, S: reqs[5].Sig.S}

	_, err := NewRecoverer(nil, 2).RecoverAddresses(context.Background(), reqs)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidSignature)
	assert.Contains(t, err.Error(), "request 5")
}

func TestRecoverAddressesCancelled(t *testing.T) {
	reqs, _ := signedRequests(t, 4, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RecoverAddresses(ctx, reqs)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecovererInvalidRequest(t *testing.T) {
	rc := NewRecoverer(nil, 1)
	_, err := rc.Recover(RecoverRequest{Hash: ecHash})
	assert.ErrorIs(t, err, common.ErrInvalidSignature)

	sig, err := Sign(ecHash, ecPrivKey, nil)
	require.NoError(t, err)
	_, err = rc.Recover(RecoverRequest{Hash: ecHash[:16], Sig: sig})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestRecovererUsesCache(t *testing.T) {
	cache := NewRecoveryCache(16)
	rc := NewRecoverer(cache, 4)
	require.Same(t, cache, rc.Cache())

	reqs, want := signedRequests(t, 4, nil)
	got, err := rc.RecoverAddresses(context.Background(), reqs)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 4, cache.Len())
	assert.Equal(t, int64(4), cache.Misses())
	assert.Equal(t, int64(0), cache.Hits())

	got, err = rc.RecoverAddresses(context.Background(), reqs)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, int64(4), cache.Hits())
	assert.InDelta(t, 0.5, cache.HitRate(), 1e-9)
}

func TestRecovererConcurrentCacheAccess(t *testing.T) {
	rc := NewRecoverer(NewRecoveryCache(4), 0)
	reqs, want := signedRequests(t, 8, nil)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, req := range reqs {
				addr, err := rc.Recover(req)
				assert.NoError(t, err)
				assert.Equal(t, want[i], addr)
			}
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, rc.Cache().Len(), 4)
}

func TestRecovererMetrics(t *testing.T) {
	reqs, _ := signedRequests(t, 3, nil)
	reqs = append(reqs, reqs[0], RecoverRequest{Hash: ecHash})

	recoveries := metrics.SignerRecoveries.Value()
	failures := metrics.SignerRecoveryFailures.Value()
	hits := metrics.RecoveryCacheHits.Value()
	batches := metrics.RecoverBatchTime.Snapshot().Count

	rc := NewRecoverer(NewRecoveryCache(8), 1)
	for _, req := range reqs {
		_, _ = rc.Recover(req)
	}
	_, err := rc.RecoverAddresses(context.Background(), reqs[:3])
	require.NoError(t, err)

	assert.Equal(t, recoveries+8, metrics.SignerRecoveries.Value())
	assert.Equal(t, failures+1, metrics.SignerRecoveryFailures.Value())
	assert.Equal(t, hits+4, metrics.RecoveryCacheHits.Value())
	assert.Equal(t, batches+1, metrics.RecoverBatchTime.Snapshot().Count)
	assert.Zero(t, metrics.RecoveriesInFlight.Value())
}
