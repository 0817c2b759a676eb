package boltstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andrewgazelka/smart-cache/cache"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig("smart-cache-test")
	cfg.Dir = filepath.Join(t.TempDir(), "store")
	return cfg
}

func TestStoreRoundTrip(t *testing.T) {
	store, err := Open(testConfig(t), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	key := []byte("key-1")
	value := []byte("value-1")

	if _, found := store.Lookup(key); found {
		t.Fatal("expected a miss before the first write")
	}

	if err := store.Store(key, value); err != nil {
		t.Fatalf("store entry: %v", err)
	}

	got, found := store.Lookup(key)
	if !found {
		t.Fatal("expected a hit after the write")
	}
	if string(got) != string(value) {
		t.Fatalf("expected value %q, got %q", value, got)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", store.Len())
	}
}

func TestStoreOverwrite(t *testing.T) {
	store, err := Open(testConfig(t), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	key := []byte("key-1")
	if err := store.Store(key, []byte("first")); err != nil {
		t.Fatalf("store entry: %v", err)
	}
	if err := store.Store(key, []byte("second")); err != nil {
		t.Fatalf("overwrite entry: %v", err)
	}

	got, found := store.Lookup(key)
	if !found {
		t.Fatal("expected a hit")
	}
	if string(got) != "second" {
		t.Fatalf("expected last write to win, got %q", got)
	}
	if store.Len() != 1 {
		t.Fatalf("expected a whole-value overwrite, got %d entries", store.Len())
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	cfg := testConfig(t)

	store, err := Open(cfg, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Store([]byte("key"), []byte("survives")); err != nil {
		t.Fatalf("store entry: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := Open(cfg, nil)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	got, found := reopened.Lookup([]byte("key"))
	if !found {
		t.Fatal("expected the entry to survive a reopen")
	}
	if string(got) != "survives" {
		t.Fatalf("expected value %q, got %q", "survives", got)
	}
}

func TestStoreDegradesAfterClose(t *testing.T) {
	store, err := Open(testConfig(t), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Store([]byte("key"), []byte("value")); err != nil {
		t.Fatalf("store entry: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	// Lookup failures degrade to a miss, write failures surface as a
	// StoreError; neither may panic.
	if _, found := store.Lookup([]byte("key")); found {
		t.Error("expected a closed store to report a miss")
	}

	err = store.Store([]byte("key"), []byte("value"))
	var storeErr *cache.StoreError
	if !errors.As(err, &storeErr) {
		t.Errorf("expected *cache.StoreError, got %v", err)
	}
}

func TestOpenFailsOnUnwritableDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	parent := t.TempDir()
	if err := os.Chmod(parent, 0o500); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(parent, 0o700) })

	cfg := DefaultConfig("smart-cache-test")
	cfg.Dir = filepath.Join(parent, "nested")

	_, err := Open(cfg, nil)
	var openErr *cache.StoreOpenError
	if !errors.As(err, &openErr) {
		t.Fatalf("expected *cache.StoreOpenError, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing dir", mutate: func(c *Config) { c.Dir = "" }, wantErr: true},
		{name: "missing bucket", mutate: func(c *Config) { c.Bucket = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig("smart-cache-test")
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected a validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("my-app")

	if cfg.Bucket != "cache" {
		t.Errorf("expected bucket %q, got %q", "cache", cfg.Bucket)
	}
	if cfg.FileMode != 0o600 {
		t.Errorf("expected file mode 0600, got %o", cfg.FileMode)
	}
	if cfg.Timeout != time.Second {
		t.Errorf("expected timeout 1s, got %v", cfg.Timeout)
	}
	if filepath.Base(cfg.Dir) != "my-app" {
		t.Errorf("expected an application-named directory, got %q", cfg.Dir)
	}
	if filepath.Base(cfg.Path()) != FileName {
		t.Errorf("expected store file %q, got %q", FileName, cfg.Path())
	}
}

func TestDefaultConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SMART_CACHE_DIR", dir)

	cfg := DefaultConfig("ignored-app")
	if cfg.Dir != dir {
		t.Errorf("expected SMART_CACHE_DIR to win, got %q", cfg.Dir)
	}
}
