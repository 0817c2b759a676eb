package memoize

import (
	"go.uber.org/zap"

	"github.com/andrewgazelka/smart-cache/cache"
)

// Option configures an Engine.
type Option func(*options)

type options struct {
	appName string
	dir     string
	store   cache.Store
	codec   cache.Codec
	keys    cache.KeyEncoder
	logger  *zap.Logger
	observe func(error)
}

func defaultOptions() options {
	return options{
		appName: "smart-cache",
		codec:   cache.NewCanonicalCodec(),
		keys:    cache.NewKeyEncoder(),
		logger:  zap.NewNop(),
		observe: func(error) {},
	}
}

// WithAppName sets the application name used to locate the default store
// directory under the platform cache directory. Default: "smart-cache".
func WithAppName(name string) Option {
	return func(o *options) { o.appName = name }
}

// WithDir overrides the directory holding the default store file. It has no
// effect when WithStore supplies a store directly.
func WithDir(dir string) Option {
	return func(o *options) { o.dir = dir }
}

// WithStore replaces the default bbolt backend with any cache.Store, such as
// the SQLite backend or a test double.
func WithStore(store cache.Store) Option {
	return func(o *options) { o.store = store }
}

// WithCodec replaces the canonical msgpack codec used for cache entries.
func WithCodec(codec cache.Codec) Option {
	return func(o *options) { o.codec = codec }
}

// WithKeyEncoder replaces the canonical key encoder.
func WithKeyEncoder(keys cache.KeyEncoder) Option {
	return func(o *options) { o.keys = keys }
}

// WithLogger sets the logger used for hit/miss and degradation diagnostics.
// Default: a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver registers a callback invoked whenever caching degrades for a
// call: a decode failure treated as a miss, or a swallowed store error. The
// callback must not assume the call failed -- by contract the caller still
// receives a correct result.
func WithObserver(fn func(error)) Option {
	return func(o *options) {
		if fn != nil {
			o.observe = fn
		}
	}
}
