// Package badger stores buckets as key prefixes in one badger db.
package badger

import (
	"bytes"
	"errors"

	"github.com/Asutorufa/dlist/pkg/cache"
	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

var _ cache.DB = (*Cache)(nil)

var errBreak = errors.New("break")

// Cache maps buckets onto key prefixes joined by '/'.
type Cache struct {
	db     *badger.DB
	prefix []byte
	owner  bool
}

// New opens the db at path, or an in-memory one when path is empty.
func New(path string) (*Cache, error) {
	opts := badger.DefaultOptions(path).
		WithInMemory(path == "").
		WithValueLogFileSize(4 << 20).
		WithNumVersionsToKeep(1).
		WithMemTableSize(2 << 20).
		WithBaseTableSize(2 << 20).
		WithValueThreshold(256 << 10).
		WithNumMemtables(1).
		WithNumLevelZeroTables(2).
		WithNumLevelZeroTablesStall(4).
		WithCompression(options.None).
		WithBlockCacheSize(0).
		WithMetricsEnabled(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Cache{db: db, owner: true}, nil
}

func (c *Cache) key(k []byte) []byte {
	return append(bytes.Clone(c.prefix), k...)
}

func (c *Cache) sub(str []string) []byte {
	p := bytes.Clone(c.prefix)
	for _, s := range str {
		p = append(p, s...)
		p = append(p, '/')
	}
	return p
}

func (c *Cache) Get(k []byte) ([]byte, error) {
	var v []byte
	err := c.db.View(func(txn *badger.Txn) error {
		var err error
		v, err = get(txn, c.key(k))
		return err
	})
	return v, err
}

func (c *Cache) Put(k []byte, v []byte, opts ...func(*cache.PutOptions)) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return put(txn, c.key(k), v, opts)
	})
}

func (c *Cache) Delete(k []byte) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(c.key(k))
	})
}

func (c *Cache) Range(f func(key []byte, value []byte) bool) error {
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = c.prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := item.KeyCopy(nil)[len(c.prefix):]
			if bytes.IndexByte(key, '/') >= 0 {
				// nested bucket
				continue
			}
			v, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if !f(key, v) {
				return errBreak
			}
		}
		return nil
	})
	if errors.Is(err, errBreak) {
		return nil
	}
	return err
}

func (c *Cache) NewCache(str ...string) cache.Cache {
	if len(str) == 0 {
		return c
	}
	return &Cache{db: c.db, prefix: c.sub(str)}
}

func (c *Cache) DeleteBucket(str ...string) error {
	if len(str) == 0 {
		return nil
	}
	return c.db.DropPrefix(c.sub(str))
}

func (c *Cache) Batch(f func(txn cache.Batch) error) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return f(&batch{txn: txn, c: c})
	})
}

// Close closes the db only for the cache returned by New.
func (c *Cache) Close() error {
	if !c.owner {
		return nil
	}
	return c.db.Close()
}

func get(txn *badger.Txn, key []byte) ([]byte, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

func put(txn *badger.Txn, key, v []byte, opts []func(*cache.PutOptions)) error {
	e := badger.NewEntry(key, bytes.Clone(v))
	if ttl := cache.GetPutOptions(opts...).TTL; ttl > 0 {
		e = e.WithTTL(ttl)
	}
	return txn.SetEntry(e)
}

type batch struct {
	txn *badger.Txn
	c   *Cache
}

func (b *batch) Put(k []byte, v []byte, opts ...func(*cache.PutOptions)) error {
	return put(b.txn, b.c.key(k), v, opts)
}

func (b *batch) Delete(k []byte) error { return b.txn.Delete(b.c.key(k)) }

func (b *batch) Get(k []byte) ([]byte, error) { return get(b.txn, b.c.key(k)) }
