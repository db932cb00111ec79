// Package pebble provides a cache implementation using pebble
package pebble

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Asutorufa/dlist/pkg/cache"
	"github.com/cockroachdb/pebble/v2"
)

var _ cache.DB = (*Cache)(nil)

type Cache struct {
	db     *pebble.DB
	prefix []byte
	owner  bool
}

func New(path string) (*Cache, error) {
	opts := &pebble.Options{
		MemTableSize: 2 << 20,
	}
	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("open pebble %s failed: %w", path, err)
	}
	return &Cache{db: db, owner: true}, nil
}

func (c *Cache) Get(k []byte) (v []byte, err error) {
	v, closer, err := c.db.Get(c.makeKey(k))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	defer closer.Close()
	return bytes.Clone(v), nil
}

func (c *Cache) Put(k []byte, v []byte, opts ...func(*cache.PutOptions)) error {
	// pebble does not support TTL on entries
	return c.db.Set(c.makeKey(k), v, pebble.Sync)
}

func (c *Cache) Delete(k []byte) error {
	return c.db.Delete(c.makeKey(k), pebble.Sync)
}

func (c *Cache) Range(f func(key []byte, value []byte) bool) error {
	it, err := c.db.NewIter(&pebble.IterOptions{
		LowerBound: c.prefix,
		UpperBound: upperBound(c.prefix),
	})
	if err != nil {
		return err
	}
	defer it.Close()

	for it.First(); it.Valid(); it.Next() {
		key := it.Key()[len(c.prefix):]
		if bytes.IndexByte(key, '/') >= 0 {
			// belongs to a nested bucket
			continue
		}
		if !f(bytes.Clone(key), bytes.Clone(it.Value())) {
			break
		}
	}
	return it.Error()
}

func (c *Cache) NewCache(str ...string) cache.Cache {
	if len(str) == 0 {
		return c
	}

	return &Cache{
		db:     c.db,
		prefix: c.cachePrefix(str...),
	}
}

func (c *Cache) DeleteBucket(str ...string) error {
	if len(str) == 0 {
		return nil
	}

	prefix := c.cachePrefix(str...)
	return c.db.DeleteRange(prefix, upperBound(prefix), pebble.Sync)
}

func (c *Cache) Batch(f func(txn cache.Batch) error) error {
	b := c.db.NewIndexedBatch()
	defer b.Close()

	if err := f(&batch{b: b, c: c}); err != nil {
		return err
	}

	return b.Commit(pebble.Sync)
}

func (c *Cache) Close() error {
	if !c.owner {
		return nil
	}
	if err := c.db.Flush(); err != nil {
		return err
	}
	return c.db.Close()
}

func (c *Cache) makeKey(k []byte) []byte {
	key := make([]byte, len(c.prefix)+len(k))
	copy(key, c.prefix)
	copy(key[len(c.prefix):], k)
	return key
}

func (c *Cache) cachePrefix(str ...string) []byte {
	totalLen := len(c.prefix)
	for _, s := range str {
		totalLen += len(s) + 1 // +1 for '/'
	}

	newPrefix := make([]byte, totalLen)
	off := copy(newPrefix, c.prefix)

	for _, s := range str {
		off += copy(newPrefix[off:], s)
		newPrefix[off] = '/'
		off++
	}

	return newPrefix
}

func upperBound(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}
	end := bytes.Clone(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil // overflow, basically no upper bound
}

type batch struct {
	b *pebble.Batch
	c *Cache
}

func (b *batch) Put(k []byte, v []byte, opts ...func(*cache.PutOptions)) error {
	return b.b.Set(b.c.makeKey(k), v, nil)
}

func (b *batch) Delete(k []byte) error {
	return b.b.Delete(b.c.makeKey(k), nil)
}

func (b *batch) Get(k []byte) ([]byte, error) {
	v, closer, err := b.b.Get(b.c.makeKey(k))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	defer closer.Close()
	return bytes.Clone(v), nil
}
