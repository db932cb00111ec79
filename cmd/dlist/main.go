package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Asutorufa/dlist/internal/config"
	"github.com/Asutorufa/dlist/internal/shell"
	"github.com/Asutorufa/dlist/pkg/backup"
	"github.com/Asutorufa/dlist/pkg/cache/badger"
	"github.com/Asutorufa/dlist/pkg/log"
	"github.com/Asutorufa/dlist/pkg/metrics"
	"github.com/Asutorufa/dlist/pkg/snapshot"
	"github.com/Asutorufa/dlist/pkg/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

func main() {
	path := flag.String("path", config.DefaultDir(), "save data path")
	backend := flag.String("backend", "", "store backend: bbolt, badger, pebble or memory")
	listen := flag.String("metrics", "", "prometheus listen address")
	flag.Parse()

	if err := run(*path, *backend, *listen); err != nil {
		log.Error("dlist exited", "err", err)
		os.Exit(1)
	}
}

func run(path, backend, listen string) error {
	cfg, err := config.Init(filepath.Join(path, "config.json"))
	if err != nil {
		return err
	}
	if backend != "" {
		cfg.Store.Backend = backend
	}
	if listen != "" {
		cfg.Metrics.Listen = listen
	}

	lc := log.NewController()
	lc.Set(cfg.Log.SLogLevel(), cfg.Log.Save, filepath.Join(path, "log", "dlist.log"))
	defer lc.Close()

	log.Info("save data at", "path", path, "backend", cfg.Store.Backend)

	db, err := cfg.Store.OpenCache(filepath.Join(path, "data"))
	if err != nil {
		return err
	}
	defer db.Close()

	st := store.New(db.NewCache(cfg.Store.Bucket), snapshot.String)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var opts []shell.Option
	if cfg.Backup.Enabled {
		up, err := backup.NewS3(ctx, cfg.Backup.S3Options())
		if err != nil {
			return err
		}
		opts = append(opts, shell.WithBackup(up, cfg.Backup.Prefix))
	}

	eg, ctx := errgroup.WithContext(ctx)

	if cfg.Metrics.Listen != "" {
		metrics.SetPrometheus()
		if cfg.Store.Backend == "badger" {
			prometheus.MustRegister(badger.Collector("dlist"))
		}

		srv := &http.Server{
			Addr:              cfg.Metrics.Listen,
			Handler:           promhttp.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		eg.Go(func() error {
			log.Info("metrics listen at", "addr", srv.Addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		eg.Go(func() error {
			<-ctx.Done()
			sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer scancel()
			return srv.Shutdown(sctx)
		})
	}

	sh := shell.New(st, os.Stdout, opts...)
	eg.Go(func() error {
		defer cancel()
		return sh.Run(ctx, os.Stdin)
	})

	return eg.Wait()
}
