// Package memoize transparently persists the results of pure functions so
// that repeated calls with equal inputs skip recomputation, across calls and
// across process restarts.
//
// # Overview
//
// This package implements the wrapping layer and the per-call orchestrator.
// A function is registered once with Func1, Func2, or Func3 together with a
// fingerprint of its implementation; the returned callable has the same
// signature and runs the state machine on every call:
//
//  1. Build the canonical cache key from the fingerprint and arguments
//  2. Look the key up in the persistent store
//  3. On a hit that decodes cleanly, return the cached result
//  4. Otherwise invoke the underlying function exactly once
//  5. Encode the result, attempt to store it, and return it
//
// # Basic Usage
//
// Recursive functions memoize every level when the wrapped variable is what
// recurses:
//
//	var fib func(int) int
//	fib = memoize.MustFunc1(memoize.Default(), cache.FingerprintOf(fibSrc),
//		func(n int) int {
//			if n <= 1 {
//				return n
//			}
//			return fib(n-1) + fib(n-2)
//		})
//
// After fib(10), entries exist for inputs 0 through 10 and fib(5) is a pure
// hit.
//
// # Registration Validation
//
// Argument and result types are validated once at registration, never per
// call. A parameter that behaves like a mutable alias (one that is or
// contains a channel, function, or unsafe pointer) fails registration with a
// *cache.PurityError; types without a canonical encoding fail with a
// *cache.EncodingError. No invalid registration ever produces a callable, so
// no invalid call can reach the store.
//
// Purity of the function body remains the caller's contract: the engine can
// reject alias-shaped signatures, but it cannot prove a body free of I/O or
// global state.
//
// # Degradation
//
// The cache is strictly advisory. A failed lookup or a corrupt entry is a
// miss; a failed write is reported to the WithObserver callback and
// otherwise ignored. Neither can change the value the caller receives.
// Opening the default store is the one hard dependency: Default panics with
// a *cache.StoreOpenError when the cache directory cannot be created.
//
// # Concurrency
//
// There is deliberately no lock around the lookup-compute-store sequence and
// no single-flight suppression: two concurrent callers racing on a cold key
// both compute, and the duplicate write of identical bytes is harmless. This
// keeps the hot path free of cross-caller coordination. The store itself
// serializes writers and gives readers snapshot isolation.
//
// # Growth
//
// Entries are never evicted, expired, or invalidated by this engine.
// Changing a function's implementation changes its fingerprint, which
// strands the old entries rather than purging them; pruning is an external
// concern.
package memoize
