package main

import "runtime"

// Worker count bounds.
const (
	MaxWorkers     = 64 // Upper bound accepted by --workers
	maxAutoWorkers = 16 // Cap for the GOMAXPROCS-based default
)

// resolveWorkerCount determines the number of batch workers.
// Priority: explicit flag > MD2TEX_WORKERS > GOMAXPROCS-based calculation.
func resolveWorkerCount(flagWorkers, envWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if envWorkers > 0 {
		return min(envWorkers, MaxWorkers)
	}

	// One worker per proc (GOMAXPROCS honors container quotas via automaxprocs)
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	return min(n, maxAutoWorkers)
}
