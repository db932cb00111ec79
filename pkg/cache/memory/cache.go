package memory

import (
	"bytes"
	"slices"
	"sync"

	"github.com/Asutorufa/dlist/pkg/cache"
)

var _ cache.DB = (*MemoryCache)(nil)

type MemoryCache struct {
	mu       sync.RWMutex
	cache    map[string][]byte
	subStore map[string]*MemoryCache
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache:    map[string][]byte{},
		subStore: map[string]*MemoryCache{},
	}
}

func (m *MemoryCache) Get(k []byte) (v []byte, err error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return bytes.Clone(m.cache[string(k)]), nil
}

func (m *MemoryCache) Put(k []byte, v []byte, opts ...func(*cache.PutOptions)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache[string(k)] = bytes.Clone(v)
	return nil
}

func (m *MemoryCache) Delete(k []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cache, string(k))
	return nil
}

// Range visits keys in ascending order, like the disk backends.
func (m *MemoryCache) Range(f func(key []byte, value []byte) bool) error {
	m.mu.RLock()
	keys := make([]string, 0, len(m.cache))
	for k := range m.cache {
		keys = append(keys, k)
	}
	m.mu.RUnlock()

	slices.Sort(keys)

	for _, k := range keys {
		m.mu.RLock()
		v, ok := m.cache[k]
		m.mu.RUnlock()
		if !ok {
			continue
		}
		if !f([]byte(k), bytes.Clone(v)) {
			break
		}
	}
	return nil
}

func (m *MemoryCache) Close() error {
	return nil
}

func (m *MemoryCache) loadOrCreateBucket(str string) *MemoryCache {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.subStore[str]
	if !ok {
		s = NewMemoryCache()
		m.subStore[str] = s
	}
	return s
}

func (m *MemoryCache) NewCache(str ...string) cache.Cache {
	z := m
	for _, v := range str {
		z = z.loadOrCreateBucket(v)
	}
	return z
}

func (m *MemoryCache) Batch(f func(txn cache.Batch) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := &batch{
		txn:     m,
		puts:    map[string][]byte{},
		deletes: map[string]bool{},
	}
	if err := f(b); err != nil {
		return err
	}

	for k := range b.deletes {
		delete(m.cache, k)
	}
	for k, v := range b.puts {
		m.cache[k] = v
	}
	return nil
}

func (m *MemoryCache) DeleteBucket(str ...string) error {
	if len(str) == 0 {
		return nil
	}
	z := m
	for _, v := range str[:len(str)-1] {
		z = z.loadOrCreateBucket(v)
	}

	name := str[len(str)-1]
	z.mu.Lock()
	sub, ok := z.subStore[name]
	delete(z.subStore, name)
	z.mu.Unlock()

	if ok {
		// handles taken from NewCache earlier must see an empty bucket
		sub.reset()
	}
	return nil
}

func (m *MemoryCache) reset() {
	m.mu.Lock()
	subs := m.subStore
	m.cache = map[string][]byte{}
	m.subStore = map[string]*MemoryCache{}
	m.mu.Unlock()

	for _, s := range subs {
		s.reset()
	}
}

// batch buffers writes and applies them only when the batch function
// succeeds. The bucket lock is held by Batch.
type batch struct {
	txn     *MemoryCache
	puts    map[string][]byte
	deletes map[string]bool
}

func (b *batch) Put(k []byte, v []byte, opts ...func(*cache.PutOptions)) error {
	delete(b.deletes, string(k))
	b.puts[string(k)] = bytes.Clone(v)
	return nil
}

func (b *batch) Delete(k []byte) error {
	delete(b.puts, string(k))
	b.deletes[string(k)] = true
	return nil
}

func (b *batch) Get(k []byte) ([]byte, error) {
	if b.deletes[string(k)] {
		return nil, nil
	}
	if v, ok := b.puts[string(k)]; ok {
		return bytes.Clone(v), nil
	}
	return bytes.Clone(b.txn.cache[string(k)]), nil
}
