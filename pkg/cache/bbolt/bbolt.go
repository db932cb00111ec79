// Package bbolt stores each bucket path as nested bbolt buckets.
package bbolt

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/Asutorufa/dlist/pkg/cache"
	"go.etcd.io/bbolt"
)

var _ cache.DB = (*Cache)(nil)

var (
	errNoBucket = errors.New("bbolt: root has no bucket")
	errBreak    = errors.New("break")
)

type Cache struct {
	db    *bbolt.DB
	path  [][]byte
	owner bool
}

// Open opens or creates the bbolt file at path.
func Open(path string) (*Cache, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt %s failed: %w", path, err)
	}
	return &Cache{db: db, owner: true}, nil
}

func (c *Cache) sub(str []string) [][]byte {
	path := make([][]byte, 0, len(c.path)+len(str))
	path = append(path, c.path...)
	for _, s := range str {
		path = append(path, []byte(s))
	}
	return path
}

// find walks the bucket path without creating anything.
func (c *Cache) find(tx *bbolt.Tx) (*bbolt.Bucket, error) {
	if len(c.path) == 0 {
		return nil, errNoBucket
	}

	b := tx.Bucket(c.path[0])
	for _, name := range c.path[1:] {
		if b == nil {
			break
		}
		b = b.Bucket(name)
	}
	if b == nil {
		return nil, cache.ErrBucketNotExist
	}
	return b, nil
}

func (c *Cache) create(tx *bbolt.Tx) (*bbolt.Bucket, error) {
	if len(c.path) == 0 {
		return nil, errNoBucket
	}

	b, err := tx.CreateBucketIfNotExists(c.path[0])
	for _, name := range c.path[1:] {
		if err != nil {
			break
		}
		b, err = b.CreateBucketIfNotExists(name)
	}
	return b, err
}

func (c *Cache) Get(k []byte) (v []byte, err error) {
	err = c.db.View(func(tx *bbolt.Tx) error {
		b, err := c.find(tx)
		if errors.Is(err, cache.ErrBucketNotExist) {
			return nil
		}
		if err != nil {
			return err
		}
		v = bytes.Clone(b.Get(k))
		return nil
	})
	return v, err
}

func (c *Cache) Put(k []byte, v []byte, opts ...func(*cache.PutOptions)) error {
	return c.db.Batch(func(tx *bbolt.Tx) error {
		b, err := c.create(tx)
		if err != nil {
			return err
		}
		return b.Put(k, v)
	})
}

func (c *Cache) Delete(k []byte) error {
	return c.db.Batch(func(tx *bbolt.Tx) error {
		b, err := c.find(tx)
		if errors.Is(err, cache.ErrBucketNotExist) {
			return nil
		}
		if err != nil {
			return err
		}
		return b.Delete(k)
	})
}

// Range skips nested buckets, whose values read back as nil.
func (c *Cache) Range(f func(key []byte, value []byte) bool) error {
	err := c.db.View(func(tx *bbolt.Tx) error {
		b, err := c.find(tx)
		if err != nil {
			return err
		}

		return b.ForEach(func(k, v []byte) error {
			if v == nil {
				return nil
			}
			if !f(bytes.Clone(k), bytes.Clone(v)) {
				return errBreak
			}
			return nil
		})
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
	return &Cache{db: c.db, path: c.sub(str)}
}

func (c *Cache) DeleteBucket(str ...string) error {
	if len(str) == 0 {
		return nil
	}

	target := &Cache{path: c.sub(str)}
	parent, name := target.path[:len(target.path)-1], target.path[len(target.path)-1]

	return c.db.Update(func(tx *bbolt.Tx) error {
		if len(parent) == 0 {
			err := tx.DeleteBucket(name)
			if errors.Is(err, bbolt.ErrBucketNotFound) {
				return nil
			}
			return err
		}

		b, err := (&Cache{path: parent}).find(tx)
		if errors.Is(err, cache.ErrBucketNotExist) {
			return nil
		}
		if err != nil {
			return err
		}
		err = b.DeleteBucket(name)
		if errors.Is(err, bbolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
}

func (c *Cache) Batch(f func(txn cache.Batch) error) error {
	return c.db.Batch(func(tx *bbolt.Tx) error {
		b, err := c.create(tx)
		if err != nil {
			return err
		}
		return f(&batch{b})
	})
}

// Close closes the db only for the cache returned by Open.
func (c *Cache) Close() error {
	if !c.owner {
		return nil
	}
	return c.db.Close()
}

type batch struct {
	*bbolt.Bucket
}

func (b *batch) Put(k []byte, v []byte, opts ...func(*cache.PutOptions)) error {
	return b.Bucket.Put(k, v)
}

func (b *batch) Get(k []byte) ([]byte, error) {
	return bytes.Clone(b.Bucket.Get(k)), nil
}
