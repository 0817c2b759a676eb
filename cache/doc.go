// Package cache provides the building blocks of the persistent memoization
// engine: canonical serialization, function fingerprints, cache key encoding,
// purity validation, and the store contract.
//
// # Overview
//
// This package exports the pieces the memoize package assembles into a
// per-call state machine:
//
//   - Codec: canonical byte encoding and decoding of typed values
//   - Fingerprint / FingerprintOf: a stable identity digest for a function's
//     implementation
//   - KeyEncoder: combines a fingerprint and argument values into canonical
//     key bytes
//   - Store: the durable transactional byte-key/byte-value contract
//   - ValidateArgType / ValidateResultType: registration-time purity checks
//
// # Key Determinism
//
// Everything here is built around one invariant: key bytes are a pure
// function of the fingerprint and the argument values. The default codec and
// key encoder use canonical msgpack (sorted map keys, compact numbers), so
// content-equal inputs produce byte-identical keys across runs, processes,
// and machine architectures. Pointer arguments encode by pointee, never by
// address.
//
// # Fingerprints
//
// A fingerprint scopes cache validity to one version of an implementation.
// FingerprintOf hashes the token sequence of Go-like source, so reformatting
// a function does not invalidate its entries but any token-level edit does.
// Callers with a build-assigned digest can supply it via ParseFingerprint
// instead; the only contract is that the value changes when the function's
// observable behavior may have changed.
//
// # Error Taxonomy
//
// Five error kinds cover the engine:
//
//   - EncodingError: a value has no canonical representation; surfaced to
//     the caller because no key or entry could be formed
//   - DecodeError: stored bytes do not match the expected shape; downgraded
//     to a cache miss, never surfaced
//   - StoreError: a write transaction failed; caching silently degrades
//   - StoreOpenError: the backing store could not be opened; fatal for the
//     default process-wide engine
//   - PurityError: a registration-time rejection of a mutable-alias
//     parameter, raised before any call can execute
//
// Once a function is validly registered, nothing in the cache path can cause
// an incorrect result to reach the caller. The cache is strictly advisory.
//
// # See Also
//
// For the orchestrator and the function-wrapping API, see the memoize
// package. For the bbolt and SQLite store backends, see internal/boltstore
// and internal/bunstore.
package cache
