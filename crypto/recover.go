package crypto

import (
	"context"
	"math/big"
	"runtime"

	"github.com/eth2030/ethutil/common"
	"github.com/eth2030/ethutil/core/types"
	"github.com/eth2030/ethutil/metrics"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// RecoverRequest is one signer recovery: the signed hash, the signature and
// the chain ID its V is encoded for (nil for 27/28).
type RecoverRequest struct {
	Hash    []byte
	Sig     *Signature
	ChainID *big.Int
}

// Recoverer recovers signer addresses, optionally through a RecoveryCache.
// It is safe for concurrent use.
type Recoverer struct {
	cache   *RecoveryCache
	workers int
}

// NewRecoverer returns a Recoverer running at most workers recoveries at a
// time (GOMAXPROCS when workers <= 0). cache may be nil.
func NewRecoverer(cache *RecoveryCache, workers int) *Recoverer {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Recoverer{cache: cache, workers: workers}
}

// Cache returns the recoverer's cache, or nil.
func (rc *Recoverer) Cache() *RecoveryCache { return rc.cache }

// Recover returns the address that produced req.Sig over req.Hash.
func (rc *Recoverer) Recover(req RecoverRequest) (types.Address, error) {
	metrics.SignerRecoveries.Inc()
	addr, err := rc.recover(req)
	if err != nil {
		metrics.SignerRecoveryFailures.Inc()
	}
	return addr, err
}

func (rc *Recoverer) recover(req RecoverRequest) (types.Address, error) {
	if req.Sig == nil {
		return types.Address{}, errors.Wrap(common.ErrInvalidSignature, "nil signature")
	}
	if len(req.Hash) != 32 {
		return types.Address{}, errors.Wrapf(common.ErrInvalidInput, "hash must be 32 bytes, got %d", len(req.Hash))
	}
	recid, err := req.Sig.RecoveryID(req.ChainID)
	if err != nil {
		return types.Address{}, err
	}

	var key types.Hash
	if rc.cache != nil {
		key = RecoveryCacheKey(req.Hash, recid, req.Sig.R, req.Sig.S)
		if addr, ok := rc.cache.Get(key); ok {
			metrics.RecoveryCacheHits.Inc()
			return addr, nil
		}
	}
	pub, err := recoverPublic(req.Hash, recid, req.Sig.R[:], req.Sig.S[:])
	if err != nil {
		return types.Address{}, err
	}
	addr, err := PubkeyToAddress(pub)
	if err != nil {
		return types.Address{}, err
	}
	if rc.cache != nil {
		rc.cache.Add(key, addr)
	}
	return addr, nil
}

// RecoverAddresses recovers the signers of reqs concurrently. The result is
// in request order. The first failure cancels the remaining work and is
// returned annotated with its request index.
func (rc *Recoverer) RecoverAddresses(ctx context.Context, reqs []RecoverRequest) ([]types.Address, error) {
	defer metrics.NewTimer(metrics.RecoverBatchTime).Stop()

	out := make([]types.Address, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rc.workers)
	for i := range reqs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			metrics.RecoveriesInFlight.Add(1)
			defer metrics.RecoveriesInFlight.Add(-1)

			addr, err := rc.Recover(reqs[i])
			if err != nil {
				return errors.Wrapf(err, "request %d", i)
			}
			out[i] = addr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// The loop may stop early on a cancelled parent without any goroutine
	// reporting it.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// RecoverAddresses recovers the signers of reqs concurrently without caching.
func RecoverAddresses(ctx context.Context, reqs []RecoverRequest) ([]types.Address, error) {
	return NewRecoverer(nil, 0).RecoverAddresses(ctx, reqs)
}
