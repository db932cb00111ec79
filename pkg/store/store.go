// Package store keeps named lists in a cache bucket, one snapshot per name.
package store

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Asutorufa/dlist/pkg/cache"
	"github.com/Asutorufa/dlist/pkg/list"
	"github.com/Asutorufa/dlist/pkg/log"
	"github.com/Asutorufa/dlist/pkg/metrics"
	"github.com/Asutorufa/dlist/pkg/snapshot"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound    = errors.New("list not found")
	ErrInvalidName = errors.New("invalid list name")
)

type Store[T any] struct {
	cache cache.Cache
	codec snapshot.Codec[T]
	group singleflight.Group
}

func New[T any](c cache.Cache, codec snapshot.Codec[T]) *Store[T] {
	return &Store[T]{cache: c, codec: codec}
}

func checkName(name string) error {
	if name == "" || strings.ContainsRune(name, '/') {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func (s *Store[T]) Save(name string, l *list.List[T]) error {
	if err := checkName(name); err != nil {
		return err
	}

	data, err := snapshot.Marshal(l, s.codec)
	if err != nil {
		return fmt.Errorf("marshal list %s failed: %w", name, err)
	}

	if err := s.cache.Put([]byte(name), data); err != nil {
		return fmt.Errorf("save list %s failed: %w", name, err)
	}

	metrics.Counter.AddStoreSave(len(data))
	log.Debug("list saved", "name", name, "len", l.Len(), "bytes", len(data))
	return nil
}

// SaveAll writes every list in one batch; either all of them are stored
// or none.
func (s *Store[T]) SaveAll(lists map[string]*list.List[T]) error {
	encoded := make(map[string][]byte, len(lists))
	for name, l := range lists {
		if err := checkName(name); err != nil {
			return err
		}
		data, err := snapshot.Marshal(l, s.codec)
		if err != nil {
			return fmt.Errorf("marshal list %s failed: %w", name, err)
		}
		encoded[name] = data
	}

	err := s.cache.Batch(func(txn cache.Batch) error {
		for name, data := range encoded {
			if err := txn.Put([]byte(name), data); err != nil {
				return fmt.Errorf("save list %s failed: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for name, data := range encoded {
		metrics.Counter.AddStoreSave(len(data))
		log.Debug("list saved", "name", name, "bytes", len(data))
	}
	return nil
}

// Load decodes a fresh list on every call, so callers never share one.
func (s *Store[T]) Load(name string) (*list.List[T], error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	// concurrent loads of one name share a single read
	v, err, _ := s.group.Do(name, func() (any, error) {
		data, err := s.cache.Get([]byte(name))
		if err != nil {
			return nil, fmt.Errorf("load list %s failed: %w", name, err)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	data := v.([]byte)
	if data == nil {
		metrics.Counter.AddStoreLoad(false)
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	metrics.Counter.AddStoreLoad(true)

	l, err := snapshot.Unmarshal(data, s.codec)
	if err != nil {
		log.Warn("decode list failed", "name", name, "err", err)
		return nil, fmt.Errorf("decode list %s failed: %w", name, err)
	}
	return l, nil
}

// Raw returns the stored snapshot bytes, or ErrNotFound.
func (s *Store[T]) Raw(name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := s.cache.Get([]byte(name))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return data, nil
}

// PutRaw stores snapshot bytes after checking they decode.
func (s *Store[T]) PutRaw(name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	if _, err := snapshot.Unmarshal(data, s.codec); err != nil {
		return fmt.Errorf("list %s: %w", name, err)
	}
	if err := s.cache.Put([]byte(name), data); err != nil {
		return err
	}
	metrics.Counter.AddStoreSave(len(data))
	return nil
}

func (s *Store[T]) Delete(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := s.cache.Delete([]byte(name)); err != nil {
		return fmt.Errorf("delete list %s failed: %w", name, err)
	}
	metrics.Counter.AddStoreDelete()
	log.Debug("list deleted", "name", name)
	return nil
}

func (s *Store[T]) Names() ([]string, error) {
	var names []string
	err := s.cache.Range(func(key, _ []byte) bool {
		names = append(names, string(key))
		return true
	})
	if err != nil && !errors.Is(err, cache.ErrBucketNotExist) {
		return nil, err
	}
	slices.Sort(names)
	return names, nil
}
