package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Asutorufa/dlist/pkg/cache"
	"github.com/Asutorufa/dlist/pkg/cache/badger"
	"github.com/Asutorufa/dlist/pkg/cache/bbolt"
	"github.com/Asutorufa/dlist/pkg/cache/memory"
	"github.com/Asutorufa/dlist/pkg/cache/pebble"
	"github.com/Asutorufa/dlist/pkg/log"
)

// OpenCache opens the configured backend under dir.
func (s Store) OpenCache(dir string) (cache.DB, error) {
	if s.Backend != "memory" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	var (
		db  cache.DB
		err error
	)
	switch s.Backend {
	case "bbolt", "":
		db, err = bbolt.Open(filepath.Join(dir, "dlist.db"))
	case "badger":
		db, err = badger.New(filepath.Join(dir, "badger"))
	case "pebble":
		db, err = pebble.New(filepath.Join(dir, "pebble"))
	case "memory":
		db = memory.NewMemoryCache()
	default:
		return nil, fmt.Errorf("unknown store backend: %q", s.Backend)
	}
	if err != nil {
		return nil, err
	}

	log.Info("store opened", "backend", s.Backend, "dir", dir)
	return db, nil
}
