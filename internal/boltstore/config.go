package boltstore

import (
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FileName is the store file created inside the configured directory.
const FileName = "cache.db"

// Config holds the configuration for the bbolt store backend.
type Config struct {
	// Dir is the directory holding the cache file. It is created if
	// absent. Required.
	Dir string

	// Bucket is the bbolt bucket mapping key bytes to value bytes.
	// Required. Default: "cache".
	Bucket string

	// FileMode is the permission mode for the store file.
	// Default: 0600.
	FileMode os.FileMode

	// Timeout bounds how long Open waits for the file lock held by
	// another process. Must be non-negative. Default: 1s.
	Timeout time.Duration
}

// envOverrides are read once when building the default configuration.
type envOverrides struct {
	// Dir overrides the platform cache directory.
	Dir string `env:"SMART_CACHE_DIR"`
}

// DefaultConfig returns a Config pointing at the per-application cache
// directory: $SMART_CACHE_DIR if set, otherwise the platform user cache
// directory under an application-named subdirectory, falling back to a local
// .cache directory when no user cache directory is known.
func DefaultConfig(appName string) Config {
	if appName == "" {
		appName = "smart-cache"
	}

	return Config{
		Dir:      defaultDir(appName),
		Bucket:   "cache",
		FileMode: 0o600,
		Timeout:  time.Second,
	}
}

func defaultDir(appName string) string {
	var overrides envOverrides
	if err := env.Parse(&overrides); err == nil && overrides.Dir != "" {
		return overrides.Dir
	}

	base, err := os.UserCacheDir()
	if err != nil {
		base = ".cache"
	}
	return filepath.Join(base, appName)
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.Bucket, validation.Required),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// Path returns the full path of the store file for this configuration.
func (c Config) Path() string {
	return filepath.Join(c.Dir, FileName)
}
