package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

var _ io.WriteCloser = new(FileWriter)

const (
	maxLogSize    = 1024 * 1024
	maxLogBackups = 5
)

// FileWriter appends to a log file and, at most once an hour, moves the file
// aside when it grows past 1 MB. Only the newest backups are kept.
type FileWriter struct {
	path  string
	timer *time.Ticker
	w     *os.File
	log   *log.Logger

	fileLock sync.RWMutex
}

func NewLogWriter(file string) *FileWriter {
	return &FileWriter{
		path:  file,
		timer: time.NewTicker(1),
		log:   log.New(os.Stderr, "[log]: ", 0),
	}
}

func (f *FileWriter) Close() error {
	f.timer.Stop()

	f.fileLock.Lock()
	defer f.fileLock.Unlock()
	if f.w != nil {
		err := f.w.Close()
		f.w = nil
		return err
	}

	return nil
}

func (f *FileWriter) Write(p []byte) (n int, err error) {
	select {
	case <-f.timer.C:
		f.timer.Reset(time.Hour)
		f.rotate()
	default:
	}

	f.fileLock.Lock()
	defer f.fileLock.Unlock()
	if f.w == nil {
		if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
			return 0, err
		}
		f.w, err = os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			f.log.Println(err)
			return 0, err
		}
	}

	return f.w.Write(p)
}

func (f *FileWriter) rotate() {
	fs, err := os.Stat(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.log.Println(err)
		}
		return
	}

	if fs.Size() < maxLogSize {
		return
	}

	f.fileLock.Lock()
	defer f.fileLock.Unlock()

	if f.w != nil {
		_ = f.w.Close()
		f.w = nil
	}

	if err = os.Rename(f.path, fmt.Sprintf("%s_%d", f.path, time.Now().UnixNano())); err != nil {
		f.log.Println(err)
	}
	f.removeOldFile()
}

func (f *FileWriter) removeOldFile() {
	dir, filename := filepath.Split(f.path)
	if dir == "" {
		dir = "."
	}
	files, err := os.ReadDir(dir)
	if err != nil {
		f.log.Println(err)
		return
	}

	var backups []string
	for _, file := range files {
		if strings.HasPrefix(file.Name(), filename+"_") {
			backups = append(backups, file.Name())
		}
	}

	if len(backups) <= maxLogBackups {
		return
	}

	slices.Sort(backups)

	for _, name := range backups[:len(backups)-maxLogBackups] {
		if err = os.Remove(filepath.Join(dir, name)); err != nil {
			f.log.Printf("remove log file %s failed: %v\n", name, err)
		}
	}
}
