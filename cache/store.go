package cache

// Store is the durable transactional mapping from opaque key bytes to opaque
// value bytes. Implementations live under internal/ and must be safe for
// concurrent use: multiple readers may run in parallel, writers are
// serialized, and no reader ever observes a partially committed entry.
//
// The cache is strictly advisory. Nothing a Store does can change the result
// a caller receives; its unavailability costs recomputation, never
// correctness. Entries are never evicted or expired by this engine.
type Store interface {
	// Lookup runs a read transaction for key. Every internal failure --
	// a missing table, an I/O error, corruption -- degrades to a miss
	// (nil, false) rather than propagating, so callers always have a safe
	// fallback to recomputation.
	Lookup(key []byte) (value []byte, found bool)

	// Store writes value under key in one atomic write transaction.
	// Failures surface as a *StoreError, which callers swallow after
	// reporting: the freshly computed result still stands.
	//
	// Duplicate writes under the same key are idempotent. A memoized
	// function recomputes the same bytes for the same key, so last write
	// wins is safe when two callers race on a cold entry.
	Store(key, value []byte) error
}
