package log

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Controller switches the default logger between stderr and a rotating
// log file.
type Controller struct {
	writer *FileWriter
	path   string
	wmu    sync.RWMutex
}

func NewController() *Controller {
	return &Controller{}
}

func (l *Controller) Set(level slog.Level, save bool, path string) {
	SetLevel(level)

	if !save {
		_ = l.Close()
		return
	}

	l.wmu.Lock()
	defer l.wmu.Unlock()

	if l.writer != nil && l.path == path {
		return
	}

	if l.writer != nil {
		_ = l.writer.Close()
	}

	l.path = path
	l.writer = NewLogWriter(path)
	var w io.Writer = l.writer
	if OutputStderr.Load() {
		w = io.MultiWriter(w, os.Stderr)
	}

	SetDefault(NewSLogger(w))
}

func (l *Controller) Path() string {
	l.wmu.RLock()
	defer l.wmu.RUnlock()
	return l.path
}

func (l *Controller) Close() error {
	SetDefault(NewSLogger(os.Stderr))

	l.wmu.Lock()
	w := l.writer
	l.writer = nil
	l.path = ""
	l.wmu.Unlock()

	if w != nil {
		return w.Close()
	}

	return nil
}
