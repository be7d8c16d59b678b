package rbs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCache() *Cache {
	return &Cache{
		Version:    "0.3.0",
		RBSVersion: "3.7.0",
		Timestamp:  time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC),
		Records: []Record{
			{ReceiverClass: "String", MethodName: "upcase", ReturnType: "String"},
			{ReceiverClass: "Array", MethodName: "each", ReturnType: "Array", BlockParamTypes: []string{"Elem"}},
		},
	}
}

func TestCacheRoundTrip(t *testing.T) {
	data, err := sampleCache().Encode()
	require.NoError(t, err)

	decoded, err := DecodeCache(data)
	require.NoError(t, err)
	assert.Equal(t, sampleCache(), decoded)
}

func TestDecodeCacheRejectsCorruption(t *testing.T) {
	data, err := sampleCache().Encode()
	require.NoError(t, err)

	data[len(data)-3] ^= 0xff
	_, err = DecodeCache(data)
	assert.Error(t, err)
}

func TestCacheValidity(t *testing.T) {
	c := sampleCache()

	assert.True(t, c.Valid("0.3.0", "3.7.0"))
	assert.True(t, c.Valid("v0.3.0", "3.7.0"), "semver canonical forms agree")
	assert.False(t, c.Valid("0.4.0", "3.7.0"))
	assert.False(t, c.Valid("0.3.0", "3.8.0"))
}

func TestCacheStoreSaveLoadClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewCacheStore(WithUserCacheDir(dir), WithBundledPath(""))

	_, err := store.Load(ctx)
	assert.Error(t, err, "empty store has no cache")

	require.NoError(t, store.Save(ctx, sampleCache()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleCache().Records, loaded.Records)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.Error(t, err)

	// clearing an already-empty store is fine
	assert.NoError(t, store.Clear(ctx))
}

func TestCacheStorePrefersBundled(t *testing.T) {
	ctx := context.Background()
	userDir := t.TempDir()
	bundledDir := t.TempDir()

	bundled := sampleCache()
	bundled.RBSVersion = "bundled"
	data, err := bundled.Encode()
	require.NoError(t, err)
	bundledPath := filepath.Join(bundledDir, CacheFileName)
	require.NoError(t, os.WriteFile(bundledPath, data, 0o644))

	store := NewCacheStore(WithUserCacheDir(userDir), WithBundledPath(bundledPath))
	require.NoError(t, store.Save(ctx, sampleCache()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bundled", loaded.RBSVersion)
}
