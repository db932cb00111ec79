// Package cachetest checks that a cache backend honours the cache.Cache
// contract.
package cachetest

import (
	"errors"
	"testing"
	"time"

	"github.com/Asutorufa/dlist/pkg/cache"
	"github.com/stretchr/testify/require"
)

func Run(t *testing.T, root cache.Cache) {
	t.Run("get put delete", func(t *testing.T) {
		c := root.NewCache("basic")

		v, err := c.Get([]byte("missing"))
		require.NoError(t, err)
		require.Nil(t, v)

		require.NoError(t, c.Put([]byte("a"), []byte("1")))
		v, err = c.Get([]byte("a"))
		require.NoError(t, err)
		require.Equal(t, []byte("1"), v)

		require.NoError(t, c.Put([]byte("a"), []byte("2")))
		v, err = c.Get([]byte("a"))
		require.NoError(t, err)
		require.Equal(t, []byte("2"), v)

		require.NoError(t, c.Delete([]byte("a")))
		v, err = c.Get([]byte("a"))
		require.NoError(t, err)
		require.Nil(t, v)
	})

	t.Run("range", func(t *testing.T) {
		c := root.NewCache("range")
		for _, k := range []string{"c", "a", "b"} {
			require.NoError(t, c.Put([]byte(k), []byte("v"+k)))
		}
		require.NoError(t, c.NewCache("nested").Put([]byte("x"), []byte("hidden")))

		var keys []string
		require.NoError(t, c.Range(func(k, v []byte) bool {
			keys = append(keys, string(k))
			require.Equal(t, "v"+string(k), string(v))
			return true
		}))
		require.Equal(t, []string{"a", "b", "c"}, keys)

		keys = keys[:0]
		require.NoError(t, c.Range(func(k, v []byte) bool {
			keys = append(keys, string(k))
			return false
		}))
		require.Len(t, keys, 1)
	})

	t.Run("buckets are isolated", func(t *testing.T) {
		a := root.NewCache("iso", "a")
		b := root.NewCache("iso", "b")

		require.NoError(t, a.Put([]byte("k"), []byte("a")))
		require.NoError(t, b.Put([]byte("k"), []byte("b")))

		v, err := a.Get([]byte("k"))
		require.NoError(t, err)
		require.Equal(t, []byte("a"), v)

		require.NoError(t, root.NewCache("iso").DeleteBucket("a"))
		v, err = a.Get([]byte("k"))
		require.NoError(t, err)
		require.Nil(t, v)

		v, err = b.Get([]byte("k"))
		require.NoError(t, err)
		require.Equal(t, []byte("b"), v)
	})

	t.Run("batch", func(t *testing.T) {
		c := root.NewCache("batch")
		require.NoError(t, c.Put([]byte("old"), []byte("1")))

		require.NoError(t, c.Batch(func(txn cache.Batch) error {
			if err := txn.Put([]byte("new"), []byte("2")); err != nil {
				return err
			}
			v, err := txn.Get([]byte("new"))
			if err != nil {
				return err
			}
			require.Equal(t, []byte("2"), v)

			v, err = txn.Get([]byte("none"))
			if err != nil {
				return err
			}
			require.Nil(t, v)
			return txn.Delete([]byte("old"))
		}))

		v, err := c.Get([]byte("new"))
		require.NoError(t, err)
		require.Equal(t, []byte("2"), v)
		v, err = c.Get([]byte("old"))
		require.NoError(t, err)
		require.Nil(t, v)

		errAbort := errors.New("abort")
		err = c.Batch(func(txn cache.Batch) error {
			if err := txn.Put([]byte("aborted"), []byte("3")); err != nil {
				return err
			}
			return errAbort
		})
		require.ErrorIs(t, err, errAbort)
		v, err = c.Get([]byte("aborted"))
		require.NoError(t, err)
		require.Nil(t, v)
	})

	t.Run("ttl option", func(t *testing.T) {
		c := root.NewCache("ttl")
		require.NoError(t, c.Put([]byte("k"), []byte("v"), cache.WithTTL(time.Hour)))
		v, err := c.Get([]byte("k"))
		require.NoError(t, err)
		require.Equal(t, []byte("v"), v)
	})
}
