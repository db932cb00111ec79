package bbolt

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/Asutorufa/dlist/pkg/cache"
	"github.com/Asutorufa/dlist/pkg/cache/cachetest"
	"github.com/stretchr/testify/require"
)

func TestBBolt(t *testing.T) {
	c, err := Open(filepath.Join(t.TempDir(), "dlist.db"))
	require.NoError(t, err)
	defer c.Close()

	cachetest.Run(t, c)

	t.Run("missing bucket", func(t *testing.T) {
		err := c.NewCache("nothing").Range(func(k, v []byte) bool { return true })
		require.True(t, errors.Is(err, cache.ErrBucketNotExist))
	})

	t.Run("missing bucket reads empty", func(t *testing.T) {
		v, err := c.NewCache("nothing", "deeper").Get([]byte("k"))
		require.NoError(t, err)
		require.Nil(t, v)
		require.NoError(t, c.NewCache("nothing").Delete([]byte("k")))
		require.NoError(t, c.DeleteBucket("nothing", "deeper"))
		require.NoError(t, c.DeleteBucket("nothing"))
	})

	t.Run("root has no keys", func(t *testing.T) {
		require.ErrorIs(t, c.Put([]byte("k"), []byte("v")), errNoBucket)
	})

	t.Run("sub cache does not close db", func(t *testing.T) {
		sub := c.NewCache("x").(*Cache)
		require.NoError(t, sub.Close())
		require.NoError(t, c.NewCache("x").Put([]byte("k"), []byte("v")))
	})
}
