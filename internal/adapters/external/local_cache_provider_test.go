package external

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

type localCache interface {
	ports.CacheProvider
	ports.CacheMetrics
}

func localCacheBackends(t *testing.T) map[string]func() localCache {
	return map[string]func() localCache{
		"Memory": func() localCache { return NewMemoryCacheProvider() },
		"File": func() localCache {
			provider, err := NewFileCacheProvider(t.TempDir())
			require.NoError(t, err)
			return provider
		},
	}
}

func TestLocalCacheProviders_Contract(t *testing.T) {
	ctx := context.Background()

	for name, newCache := range localCacheBackends(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("SetAndGet", func(t *testing.T) {
				cache := newCache()
				value := []byte(`{"a":1}`)

				require.NoError(t, cache.Set(ctx, "k", value, 0))
				got, err := cache.Get(ctx, "k")
				require.NoError(t, err)
				assert.JSONEq(t, string(value), string(got))
			})

			t.Run("NonJSONValue", func(t *testing.T) {
				cache := newCache()
				value := []byte("plain \x00 bytes")

				require.NoError(t, cache.Set(ctx, "raw", value, 0))
				got, err := cache.Get(ctx, "raw")
				require.NoError(t, err)
				assert.Equal(t, value, got)
			})

			t.Run("Miss", func(t *testing.T) {
				cache := newCache()

				got, err := cache.Get(ctx, "absent")
				assert.Nil(t, got)
				assert.True(t, errors.IsNotFoundError(err))
			})

			t.Run("Expiry", func(t *testing.T) {
				cache := newCache()
				require.NoError(t, cache.Set(ctx, "short", []byte(`1`), 20*time.Millisecond))
				time.Sleep(40 * time.Millisecond)

				_, err := cache.Get(ctx, "short")
				assert.True(t, errors.IsNotFoundError(err))

				exists, err := cache.Exists(ctx, "short")
				require.NoError(t, err)
				assert.False(t, exists)
			})

			t.Run("OverwriteDeleteClear", func(t *testing.T) {
				cache := newCache()
				require.NoError(t, cache.Set(ctx, "a", []byte(`1`), 0))
				require.NoError(t, cache.Set(ctx, "a", []byte(`2`), 0))
				require.NoError(t, cache.Set(ctx, "b", []byte(`3`), 0))

				got, err := cache.Get(ctx, "a")
				require.NoError(t, err)
				assert.Equal(t, "2", string(got))

				require.NoError(t, cache.Delete(ctx, "a"))
				require.NoError(t, cache.Delete(ctx, "a"))
				exists, err := cache.Exists(ctx, "a")
				require.NoError(t, err)
				assert.False(t, exists)

				require.NoError(t, cache.Clear(ctx))
				exists, err = cache.Exists(ctx, "b")
				require.NoError(t, err)
				assert.False(t, exists)
			})

			t.Run("Validation", func(t *testing.T) {
				cache := newCache()

				assert.True(t, errors.IsValidationError(cache.Set(ctx, "", []byte(`1`), 0)))
				assert.True(t, errors.IsValidationError(cache.Set(ctx, "k", nil, 0)))
				_, err := cache.Get(ctx, "")
				assert.True(t, errors.IsValidationError(err))
			})

			t.Run("Stats", func(t *testing.T) {
				cache := newCache()
				require.NoError(t, cache.Set(ctx, "k", []byte(`1`), 0))
				_, _ = cache.Get(ctx, "k")
				_, _ = cache.Get(ctx, "missing")

				stats := cache.GetStats()
				assert.Equal(t, int64(1), stats.Hits)
				assert.Equal(t, int64(1), stats.Misses)
				assert.Equal(t, 0.5, stats.HitRatio)
			})
		})
	}
}

func TestMemoryCacheProvider_CopiesValues(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCacheProvider()

	value := []byte("abc")
	require.NoError(t, cache.Set(ctx, "k", value, 0))
	value[0] = 'z'

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestFileCacheProvider_OnDiskLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cache, err := NewFileCacheProvider(dir)
	require.NoError(t, err)

	require.NoError(t, cache.Set(ctx, "StormGlass_cascavel_2024", []byte(`[{"provider":"StormGlass"}]`), 0))

	data, err := os.ReadFile(filepath.Join(dir, "StormGlass_cascavel_2024.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"payload\": [")

	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &envelope))
	assert.Contains(t, envelope, "stored_at")
	assert.NotContains(t, envelope, "expires_at")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasSuffix(entry.Name(), ".tmp"), "temp file left behind: %s", entry.Name())
	}
}

func TestFileCacheProvider_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFileCacheProvider(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "k", []byte(`{"v":true}`), 0))

	second, err := NewFileCacheProvider(dir)
	require.NoError(t, err)
	got, err := second.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":true}`, string(got))
}

func TestFileCacheProvider_ClearKeepsForeignFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cache, err := NewFileCacheProvider(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0644))
	require.NoError(t, cache.Set(ctx, "k", []byte(`1`), 0))
	require.NoError(t, cache.Clear(ctx))

	_, err = os.Stat(filepath.Join(dir, "notes.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "k.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileCacheProvider_RejectsPathKeys(t *testing.T) {
	cache, err := NewFileCacheProvider(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../escape", `a\b`, ".", ".."} {
		err := cache.Set(context.Background(), key, []byte(`1`), 0)
		assert.True(t, errors.IsValidationError(err), key)
	}
}

func TestFileCacheProvider_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewFileCacheProvider(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0644))

	_, err = cache.Get(context.Background(), "bad")
	assert.True(t, errors.IsStorageError(err))
}
