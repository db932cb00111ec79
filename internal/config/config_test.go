package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing", func(t *testing.T) {
		c, err := Load(filepath.Join(dir, "none.json"))
		require.NoError(t, err)
		require.Equal(t, Default(), c)
	})

	t.Run("partial", func(t *testing.T) {
		path := filepath.Join(dir, "partial.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"log":{"level":"debug"},"store":{"backend":"pebble"}}`), 0600))

		c, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, slog.LevelDebug, c.Log.SLogLevel())
		require.Equal(t, "pebble", c.Store.Backend)
		require.Equal(t, "lists", c.Store.Bucket)
		require.Equal(t, "dlist/", c.Backup.Prefix)
	})

	t.Run("broken", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{`), 0600))

		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.json")

	c := Default()
	c.Metrics.Listen = "127.0.0.1:9100"
	c.Log.Level = "warning"
	require.NoError(t, c.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, c, got)
	require.Equal(t, slog.LevelWarn, got.Log.SLogLevel())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dlist", "config.json")

	c, err := Init(path)
	require.NoError(t, err)
	require.Equal(t, Default(), c)
	require.FileExists(t, path)

	c.Store.Backend = "pebble"
	require.NoError(t, c.Save(path))

	got, err := Init(path)
	require.NoError(t, err)
	require.Equal(t, "pebble", got.Store.Backend)
}

func TestOpenCache(t *testing.T) {
	for _, backend := range []string{"bbolt", "badger", "pebble", "memory"} {
		t.Run(backend, func(t *testing.T) {
			db, err := Store{Backend: backend}.OpenCache(t.TempDir())
			require.NoError(t, err)

			c := db.NewCache("lists")
			require.NoError(t, c.Put([]byte("k"), []byte("v")))
			v, err := c.Get([]byte("k"))
			require.NoError(t, err)
			require.Equal(t, []byte("v"), v)

			require.NoError(t, db.Close())
		})
	}

	_, err := Store{Backend: "redis"}.OpenCache(t.TempDir())
	require.Error(t, err)
}

func TestLogLevelFallback(t *testing.T) {
	require.Equal(t, slog.LevelInfo, Log{Level: "nonsense"}.SLogLevel())
}
