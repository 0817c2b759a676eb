// Package boltstore implements the cache.Store contract on a single-file
// bbolt database: durable, transactional, safe for concurrent readers with
// serialized writers. It is the primary backend for the memoization engine.
package boltstore

import (
	"errors"
	"os"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/andrewgazelka/smart-cache/cache"
)

var errBucketMissing = errors.New("cache bucket is missing")

// Store is a bbolt-backed cache.Store. The zero value is not usable; create
// instances with Open.
type Store struct {
	db     *bbolt.DB
	bucket []byte
	logger *zap.Logger
}

var _ cache.Store = (*Store)(nil)

// Open opens or creates the store file described by cfg, creating the cache
// directory and bucket if absent. Every failure is reported as a
// *cache.StoreOpenError; callers decide whether that is fatal.
func Open(cfg Config, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, &cache.StoreOpenError{Path: cfg.Dir, Cause: err}
	}

	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		return nil, &cache.StoreOpenError{Path: cfg.Dir, Cause: err}
	}

	path := cfg.Path()
	db, err := bbolt.Open(path, cfg.FileMode, &bbolt.Options{Timeout: cfg.Timeout})
	if err != nil {
		return nil, &cache.StoreOpenError{Path: path, Cause: err}
	}

	store := &Store{db: db, bucket: []byte(cfg.Bucket), logger: logger}
	if err := store.ensureBucket(); err != nil {
		_ = db.Close()
		return nil, &cache.StoreOpenError{Path: path, Cause: err}
	}

	logger.Debug("cache store opened", zap.String("path", path))
	return store, nil
}

// Lookup implements cache.Store. It runs one read transaction; bbolt gives
// readers an MVCC snapshot, so a concurrent write is observed either fully or
// not at all. Any internal failure degrades to a miss.
func (s *Store) Lookup(key []byte) ([]byte, bool) {
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return errBucketMissing
		}
		// The slice bbolt returns is only valid inside the
		// transaction; copy before the snapshot is released.
		if v := b.Get(key); v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		s.logger.Debug("cache lookup failed", zap.Error(err))
		return nil, false
	}
	if value == nil {
		s.logger.Debug("cache miss")
		return nil, false
	}
	s.logger.Debug("cache hit", zap.Int("bytes", len(value)))
	return value, true
}

// Store implements cache.Store. The write runs in a single transaction that
// bbolt serializes against all other writers; it is fully applied on commit
// or not observed at all.
func (s *Store) Store(key, value []byte) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return errBucketMissing
		}
		return b.Put(key, value)
	})
	if err != nil {
		return &cache.StoreError{Op: "put", Cause: err}
	}
	s.logger.Debug("cache entry stored", zap.Int("bytes", len(value)))
	return nil
}

// Len returns the number of entries in the store bucket. Intended for
// diagnostics and tests.
func (s *Store) Len() int {
	var n int
	_ = s.db.View(func(tx *bbolt.Tx) error {
		if b := tx.Bucket(s.bucket); b != nil {
			n = b.Stats().KeyN
		}
		return nil
	})
	return n
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.db.Path()
}

// Close closes the backing database. The engine itself never closes its
// process-wide store; this exists for tests and explicit engine owners.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureBucket() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	})
}
