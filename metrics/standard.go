package metrics

// Signer recovery metrics, updated by crypto.Recoverer.
var (
	// SignerRecoveries counts recovery attempts, cached or not.
	SignerRecoveries = DefaultRegistry.Counter("crypto.recoveries")
	// SignerRecoveryFailures counts attempts that returned an error.
	SignerRecoveryFailures = DefaultRegistry.Counter("crypto.recovery_failures")
	// RecoveryCacheHits counts recoveries answered from a RecoveryCache.
	RecoveryCacheHits = DefaultRegistry.Counter("crypto.recovery_cache_hits")
	// RecoveriesInFlight tracks recoveries currently running in batches.
	RecoveriesInFlight = DefaultRegistry.Gauge("crypto.recoveries_inflight")
	// RecoverBatchTime records batch recovery wall time in microseconds.
	RecoverBatchTime = DefaultRegistry.Histogram("crypto.recover_batch_us")
)
