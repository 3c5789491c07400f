package indexer

import (
	"errors"
	"sync/atomic"
)

// ErrIngestInProgress indicates that a directory ingestion is already
// running for the repository
var ErrIngestInProgress = errors.New("ingestion already in progress")

// IngestLock provides non-blocking lock semantics using atomic operations.
// One lock exists per repository id so concurrent directory ingestions of
// the same repository are rejected instead of interleaving their stats.
type IngestLock struct {
	state atomic.Int32 // 0 = unlocked, 1 = locked
}

// TryAcquire attempts to acquire the lock without blocking.
// Returns true if the lock was successfully acquired, false otherwise.
func (l *IngestLock) TryAcquire() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Release releases the lock.
// Must only be called by the goroutine that successfully acquired the lock.
func (l *IngestLock) Release() {
	l.state.Store(0)
}
