// Package config loads the dlist settings file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Asutorufa/dlist/pkg/backup"
	"github.com/Asutorufa/dlist/pkg/log"
)

type Log struct {
	Level string `json:"level"`
	Save  bool   `json:"save"`
}

func (l Log) SLogLevel() slog.Level {
	lev, err := log.ParseLevel(l.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return lev
}

type Store struct {
	// bbolt, badger, pebble or memory
	Backend string `json:"backend"`
	Bucket  string `json:"bucket"`
}

type Metrics struct {
	Listen string `json:"listen"`
}

type Backup struct {
	Enabled      bool   `json:"enabled"`
	Bucket       string `json:"bucket"`
	Region       string `json:"region"`
	EndpointURL  string `json:"endpoint_url"`
	AccessKey    string `json:"access_key"`
	SecretKey    string `json:"secret_key"`
	UsePathStyle bool   `json:"use_path_style"`
	Prefix       string `json:"prefix"`
}

func (b Backup) S3Options() backup.S3Options {
	return backup.S3Options{
		Bucket:       b.Bucket,
		Region:       b.Region,
		EndpointURL:  b.EndpointURL,
		AccessKey:    b.AccessKey,
		SecretKey:    b.SecretKey,
		UsePathStyle: b.UsePathStyle,
	}
}

type Config struct {
	Log     Log     `json:"log"`
	Store   Store   `json:"store"`
	Metrics Metrics `json:"metrics"`
	Backup  Backup  `json:"backup"`
}

func Default() *Config {
	return &Config{
		Log:   Log{Level: "info"},
		Store: Store{Backend: "bbolt", Bucket: "lists"},
		Backup: Backup{
			Region: "us-east-1",
			Prefix: "dlist/",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("config file not found, use default", "path", path)
			return c, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config %s failed: %w", path, err)
	}

	def := Default()
	if c.Store.Bucket == "" {
		c.Store.Bucket = def.Store.Bucket
	}
	if c.Store.Backend == "" {
		c.Store.Backend = def.Store.Backend
	}

	return c, nil
}

// Init loads path, first writing the defaults there when it does not exist.
func Init(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Default().Save(path); err != nil {
			return nil, fmt.Errorf("write default config failed: %w", err)
		}
		log.Info("default config written", "path", path)
	}
	return Load(path)
}

// Save writes c to path through a temporary file and a rename.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "\t")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), path)
}

// DefaultDir is the user config dir, or a dlist dir beside the executable.
func DefaultDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "dlist")
	}

	exe, err := os.Executable()
	if err != nil {
		log.Warn("lookup executable failed", "err", err)
		return "dlist"
	}
	return filepath.Join(filepath.Dir(exe), "dlist")
}
