// Package testsupport provides shared fixtures for exercising the
// memoization engine in tests: isolated on-disk stores, invocation counters,
// and misbehaving store doubles.
package testsupport

import (
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"github.com/andrewgazelka/smart-cache/cache"
	"github.com/andrewgazelka/smart-cache/memoize"
)

// StoreDir returns a fresh directory for one test's cache file. The uuid
// segment keeps parallel subtests from sharing a store even under the same
// temp root.
func StoreDir(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), uuid.NewString())
}

// NewEngine builds an engine backed by an isolated on-disk store.
func NewEngine(t *testing.T, opts ...memoize.Option) *memoize.Engine {
	t.Helper()

	opts = append([]memoize.Option{memoize.WithDir(StoreDir(t))}, opts...)
	engine, err := memoize.New(opts...)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	t.Cleanup(func() { _ = engine.Close() })
	return engine
}

// Counter counts underlying invocations of a memoized function, so tests can
// observe whether a call recomputed or hit.
type Counter struct {
	n atomic.Int64
}

// Inc records one underlying invocation.
func (c *Counter) Inc() { c.n.Add(1) }

// Count returns the number of underlying invocations so far.
func (c *Counter) Count() int64 { return c.n.Load() }

// FailingStore is a cache.Store whose writes always fail and whose lookups
// always miss, simulating an unwritable cache location.
type FailingStore struct {
	// Lookups counts Lookup calls.
	Lookups atomic.Int64
	// Writes counts Store calls.
	Writes atomic.Int64
}

// Lookup implements cache.Store.
func (s *FailingStore) Lookup([]byte) ([]byte, bool) {
	s.Lookups.Add(1)
	return nil, false
}

// Store implements cache.Store.
func (s *FailingStore) Store([]byte, []byte) error {
	s.Writes.Add(1)
	return &cache.StoreError{Op: "put", Cause: errReadOnly}
}

// CorruptStore is a cache.Store that reports a hit with garbage bytes for
// every key, simulating a corrupted cache file.
type CorruptStore struct{}

// Lookup implements cache.Store.
func (CorruptStore) Lookup([]byte) ([]byte, bool) {
	return []byte("not a cache entry"), true
}

// Store implements cache.Store.
func (CorruptStore) Store([]byte, []byte) error { return nil }

var (
	_ cache.Store = (*FailingStore)(nil)
	_ cache.Store = CorruptStore{}
)

var errReadOnly = &readOnlyError{}

type readOnlyError struct{}

func (*readOnlyError) Error() string { return "store is read-only" }
