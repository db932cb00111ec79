// Package backup copies stored list snapshots to and from object storage.
package backup

import (
	"context"
	"errors"
	"fmt"

	"github.com/Asutorufa/dlist/pkg/log"
)

var ErrNoObject = errors.New("object not found")

type Uploader interface {
	Put(ctx context.Context, data []byte, key string) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// Source is the part of store.Store that backup needs.
type Source interface {
	Names() ([]string, error)
	Raw(name string) ([]byte, error)
	PutRaw(name string, data []byte) error
}

// Backup uploads the named snapshots, or every stored one when names is
// empty, under prefix+name+".pb". It returns the names uploaded.
func Backup(ctx context.Context, src Source, up Uploader, prefix string, names ...string) ([]string, error) {
	if len(names) == 0 {
		var err error
		names, err = src.Names()
		if err != nil {
			return nil, err
		}
	}

	done := make([]string, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return done, err
		}

		data, err := src.Raw(name)
		if err != nil {
			return done, err
		}

		if err := up.Put(ctx, data, objectKey(prefix, name)); err != nil {
			return done, fmt.Errorf("upload %s failed: %w", name, err)
		}

		log.Info("list backed up", "name", name, "key", objectKey(prefix, name), "bytes", len(data))
		done = append(done, name)
	}
	return done, nil
}

// Restore downloads the named snapshots and stores them.
func Restore(ctx context.Context, dst Source, up Uploader, prefix string, names ...string) error {
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := up.Get(ctx, objectKey(prefix, name))
		if err != nil {
			return fmt.Errorf("download %s failed: %w", name, err)
		}

		if err := dst.PutRaw(name, data); err != nil {
			return err
		}
		log.Info("list restored", "name", name, "bytes", len(data))
	}
	return nil
}

func objectKey(prefix, name string) string { return prefix + name + ".pb" }
