package memoize

import (
	"encoding/hex"
	"io"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"

	"github.com/andrewgazelka/smart-cache/cache"
	"github.com/andrewgazelka/smart-cache/internal/boltstore"
)

// Engine owns the pieces of the memoization state machine: the persistent
// store handle, the canonical codec, and the key encoder. One Engine is one
// store handle; the usual setup is a single process-wide Engine obtained
// from Default.
//
// Engines are safe for concurrent and reentrant use. Recursive memoized
// calls work because no engine state is held across the user computation;
// isolation comes from the store's own transactions.
type Engine struct {
	store   cache.Store
	codec   cache.Codec
	keys    cache.KeyEncoder
	logger  *zap.Logger
	observe func(error)

	// written tracks keys this engine has stored, for diagnostics only.
	written *xsync.MapOf[string, struct{}]
}

// New creates an Engine. Without WithStore, it lazily opens the default
// bbolt store under the per-application cache directory, creating it if
// absent; that failure is returned as a *cache.StoreOpenError.
func New(opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.store == nil {
		cfg := boltstore.DefaultConfig(o.appName)
		if o.dir != "" {
			cfg.Dir = o.dir
		}
		store, err := boltstore.Open(cfg, o.logger)
		if err != nil {
			return nil, err
		}
		o.store = store
	}

	return &Engine{
		store:   o.store,
		codec:   o.codec,
		keys:    o.keys,
		logger:  o.logger,
		observe: o.observe,
		written: xsync.NewMapOf[string, struct{}](),
	}, nil
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns the process-wide Engine, opening its store on first use
// and reusing the handle for the process lifetime. The store is required
// infrastructure, so a failure to open or create it panics with the
// *cache.StoreOpenError.
func Default() *Engine {
	defaultOnce.Do(func() {
		engine, err := New()
		if err != nil {
			panic(err)
		}
		defaultEngine = engine
	})
	return defaultEngine
}

// Close releases the engine's store handle when the backend supports it.
// The default process-wide engine is never closed; this exists for tests and
// callers that own an explicit Engine with a bounded lifetime.
func (e *Engine) Close() error {
	if closer, ok := e.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// KeyCount reports how many distinct keys this engine has successfully
// written since creation. Diagnostics only; it says nothing about what is
// already on disk.
func (e *Engine) KeyCount() int {
	return e.written.Size()
}

// call drives the per-call state machine shared by every arity wrapper:
// build key, look up, decode on hit, otherwise compute once, encode, and
// attempt to store.
func call[O any](e *Engine, fp cache.Fingerprint, args []cache.Arg, compute func() O) O {
	key, err := e.keys.EncodeKey(fp, args)
	if err != nil {
		// Registration validated every argument type, so the encoder
		// met a value it cannot carry. No key exists; the call must
		// not proceed.
		panic(err)
	}
	e.logger.Debug("memoized call",
		zap.String("key", hex.EncodeToString(key)),
		zap.Int("args", len(args)))

	if raw, found := e.store.Lookup(key); found {
		var out O
		err := e.codec.Unmarshal(raw, &out)
		if err == nil {
			return out
		}
		// Stale or corrupt entry: report and fall through to
		// recomputation, which overwrites it.
		e.report(err)
	}

	out := compute()

	raw, err := e.codec.Marshal(out)
	if err != nil {
		// Result types are also validated at registration; an
		// unencodable result means no entry can be formed.
		panic(err)
	}
	if err := e.store.Store(key, raw); err != nil {
		e.report(err)
	} else {
		e.written.Store(string(key), struct{}{})
	}
	return out
}

func (e *Engine) report(err error) {
	e.logger.Debug("caching degraded", zap.Error(err))
	e.observe(err)
}
