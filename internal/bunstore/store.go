// Package bunstore implements the cache.Store contract on a SQLite file via
// the bun query builder. It is an alternative to the bbolt backend for
// deployments that want the cache in a SQL file they can inspect with
// standard tooling; the store contract is identical.
package bunstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"go.uber.org/zap"

	_ "github.com/mattn/go-sqlite3"

	"github.com/andrewgazelka/smart-cache/cache"
)

// entry is one cache row: opaque key bytes mapped to opaque value bytes.
type entry struct {
	bun.BaseModel `bun:"table:cache,alias:c"`

	Key   []byte `bun:"key,pk,type:blob"`
	Value []byte `bun:"value,notnull,type:blob"`
}

// Store is a SQLite-backed cache.Store. Create instances with Open.
type Store struct {
	db     *bun.DB
	logger *zap.Logger
}

var _ cache.Store = (*Store)(nil)

// Open opens or creates a SQLite store at path and ensures the cache table
// exists. WAL mode keeps readers unblocked while a writer commits, matching
// the snapshot semantics of the bbolt backend.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	sqldb, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=1000")
	if err != nil {
		return nil, &cache.StoreOpenError{Path: path, Cause: err}
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if _, err := db.NewCreateTable().
		Model((*entry)(nil)).
		IfNotExists().
		Exec(context.Background()); err != nil {
		_ = db.Close()
		return nil, &cache.StoreOpenError{Path: path, Cause: err}
	}

	logger.Debug("cache store opened", zap.String("path", path))
	return &Store{db: db, logger: logger}, nil
}

// Lookup implements cache.Store. A missing row and any query failure both
// degrade to a miss.
func (s *Store) Lookup(key []byte) ([]byte, bool) {
	var e entry
	err := s.db.NewSelect().
		Model(&e).
		Where("key = ?", key).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Debug("cache miss")
		return nil, false
	}
	if err != nil {
		s.logger.Debug("cache lookup failed", zap.Error(err))
		return nil, false
	}
	s.logger.Debug("cache hit", zap.Int("bytes", len(e.Value)))
	return e.Value, true
}

// Store implements cache.Store. The upsert runs as one implicit transaction;
// a racing duplicate write simply overwrites with identical bytes.
func (s *Store) Store(key, value []byte) error {
	e := entry{Key: key, Value: value}
	_, err := s.db.NewInsert().
		Model(&e).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(context.Background())
	if err != nil {
		return &cache.StoreError{Op: "put", Cause: err}
	}
	s.logger.Debug("cache entry stored", zap.Int("bytes", len(value)))
	return nil
}

// Len returns the number of cached entries. Intended for diagnostics and
// tests.
func (s *Store) Len() int {
	n, err := s.db.NewSelect().Model((*entry)(nil)).Count(context.Background())
	if err != nil {
		return 0
	}
	return n
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
