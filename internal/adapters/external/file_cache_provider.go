package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

const fileCacheExt = ".json"

// FileCacheProvider stores one pretty-printed JSON document per key under a directory.
type FileCacheProvider struct {
	dir   string
	stats cacheCounters
}

// fileCacheEnvelope wraps the stored payload with its expiry
type fileCacheEnvelope struct {
	StoredAt  time.Time       `json:"stored_at"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Raw       []byte          `json:"raw,omitempty"`
}

func (e *fileCacheEnvelope) value() []byte {
	if e.Raw != nil {
		return e.Raw
	}
	return []byte(e.Payload)
}

// NewFileCacheProvider creates the cache directory if needed
func NewFileCacheProvider(dir string) (*FileCacheProvider, error) {
	if dir == "" {
		return nil, errors.NewConfigurationError("cache directory cannot be empty", nil)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.NewStorageError("failed to create cache directory", err)
	}
	return &FileCacheProvider{dir: dir}, nil
}

// Dir returns the directory holding the cache files
func (c *FileCacheProvider) Dir() string {
	return c.dir
}

func (c *FileCacheProvider) path(key string) (string, error) {
	if key == "" {
		return "", errors.NewValidationError("cache key cannot be empty")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", errors.NewValidationError(fmt.Sprintf("cache key %q is not a valid file name", key))
	}
	return filepath.Join(c.dir, key+fileCacheExt), nil
}

func (c *FileCacheProvider) read(key string) (*fileCacheEnvelope, error) {
	path, err := c.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewStorageError("failed to read cache file", err)
	}

	var envelope fileCacheEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("corrupt cache file %s", filepath.Base(path)), err)
	}
	return &envelope, nil
}

func (c *FileCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	defer func() { c.stats.recordOperation("get", time.Since(start)) }()

	envelope, err := c.read(key)
	if err != nil {
		return nil, err
	}
	if envelope == nil || (envelope.ExpiresAt != nil && time.Now().After(*envelope.ExpiresAt)) {
		c.stats.recordMiss()
		return nil, errors.NewNotFoundError("cache miss")
	}

	c.stats.recordHit()
	return envelope.value(), nil
}

// Set writes the entry to a temp file in the cache directory and renames it
// over the target.
func (c *FileCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	start := time.Now()
	defer func() { c.stats.recordOperation("set", time.Since(start)) }()

	path, err := c.path(key)
	if err != nil {
		return err
	}
	if value == nil {
		return errors.NewValidationError("cache value cannot be nil")
	}

	envelope := fileCacheEnvelope{StoredAt: time.Now().UTC()}
	if json.Valid(value) {
		envelope.Payload = json.RawMessage(value)
	} else {
		envelope.Raw = value
	}
	if ttl > 0 {
		expiresAt := envelope.StoredAt.Add(ttl)
		envelope.ExpiresAt = &expiresAt
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(envelope); err != nil {
		return errors.NewStorageError("failed to encode cache entry", err)
	}

	tmp, err := os.CreateTemp(c.dir, "."+key+"-*.tmp")
	if err != nil {
		return errors.NewStorageError("failed to create cache temp file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.NewStorageError("failed to write cache file", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.NewStorageError("failed to close cache file", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errors.NewStorageError("failed to move cache file into place", err)
	}
	return nil
}

func (c *FileCacheProvider) Delete(ctx context.Context, key string) error {
	path, err := c.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.NewStorageError("failed to delete cache file", err)
	}
	return nil
}

func (c *FileCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	envelope, err := c.read(key)
	if err != nil {
		return false, err
	}
	if envelope == nil {
		return false, nil
	}
	return envelope.ExpiresAt == nil || !time.Now().After(*envelope.ExpiresAt), nil
}

// Clear removes every cache file in the directory, leaving other files alone
func (c *FileCacheProvider) Clear(ctx context.Context) error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return errors.NewStorageError("failed to list cache directory", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != fileCacheExt {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return errors.NewStorageError("failed to clear cache file", err)
		}
	}
	return nil
}

func (c *FileCacheProvider) GetStats() ports.CacheStats {
	return c.stats.snapshot()
}

func (c *FileCacheProvider) RecordHit() {
	c.stats.recordHit()
}

func (c *FileCacheProvider) RecordMiss() {
	c.stats.recordMiss()
}

func (c *FileCacheProvider) RecordOperation(operation string, duration time.Duration) {
	c.stats.recordOperation(operation, duration)
}
