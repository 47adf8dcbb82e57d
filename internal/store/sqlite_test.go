package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKV(t *testing.T, driver string) KV {
	t.Helper()
	dir := t.TempDir()
	kv, err := Open(driver, filepath.Join(dir, "test."+driver))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

var allDrivers = []string{DriverSQLite, DriverBolt, DriverMemory}

func TestKVGetSetDelete(t *testing.T) {
	for _, driver := range allDrivers {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			kv := newTestKV(t, driver)

			_, found, err := kv.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, kv.Set(ctx, "k", "v1"))
			v, found, err := kv.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "v1", v)

			require.NoError(t, kv.Set(ctx, "k", "v2"))
			v, _, _ = kv.Get(ctx, "k")
			assert.Equal(t, "v2", v)

			require.NoError(t, kv.Set(ctx, "other", "x"))
			require.NoError(t, kv.Delete(ctx, "k", "other", "never-set"))

			_, found, _ = kv.Get(ctx, "k")
			assert.False(t, found)
			_, found, _ = kv.Get(ctx, "other")
			assert.False(t, found)
		})
	}
}

func TestKVPersistsAcrossReopen(t *testing.T) {
	for _, driver := range []string{DriverSQLite, DriverBolt} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), "persist."+driver)

			kv, err := Open(driver, path)
			require.NoError(t, err)
			require.NoError(t, kv.Set(ctx, MemoriesKey, `[]`))
			require.NoError(t, kv.Close())

			kv, err = Open(driver, path)
			require.NoError(t, err)
			defer kv.Close()

			v, found, err := kv.Get(ctx, MemoriesKey)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, `[]`, v)
		})
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteKV(dbPath)
	require.NoError(t, err)
	s.Close()

	_, err = os.Stat(dbPath)
	assert.False(t, os.IsNotExist(err), "expected db file to be created")
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("redis", "")
	require.ErrorIs(t, err, ErrUnknownDriver)
}
