package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

var (
	leveler       = &slog.LevelVar{}
	defaultLogger atomic.Pointer[slog.Logger]
	// OutputStderr copies file output to stderr as well.
	OutputStderr atomic.Bool
)

func init() {
	OutputStderr.Store(true)
	SetDefault(NewSLogger(os.Stderr))
}

func NewSLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: true,
		Level:     leveler,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if s, ok := a.Value.Any().(*slog.Source); ok {
					// keep "dir/file.go" only
					file := s.File
					if i := strings.LastIndexByte(file, '/'); i > 0 {
						if j := strings.LastIndexByte(file[:i], '/'); j >= 0 {
							file = file[j+1:]
						}
					}
					return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", file, s.Line))
				}
			}
			return a
		},
	}))
}

func SetDefault(l *slog.Logger) { defaultLogger.Store(l) }
func Default() *slog.Logger     { return defaultLogger.Load() }

func SetLevel(l slog.Level)         { leveler.Set(l) }
func Level() slog.Level             { return leveler.Level() }
func IsOutput(l slog.Level) bool    { return leveler.Level() <= l }
func Debug(msg string, args ...any) { Output(1, slog.LevelDebug, msg, args...) }
func Info(msg string, args ...any)  { Output(1, slog.LevelInfo, msg, args...) }
func Warn(msg string, args ...any)  { Output(1, slog.LevelWarn, msg, args...) }
func Error(msg string, args ...any) { Output(1, slog.LevelError, msg, args...) }

// ParseLevel accepts the slog names (debug, info, warn, error) in any case
// and "warning" as an alias of warn.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if strings.EqualFold(s, "warning") {
		s = "warn"
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, err
	}
	return l, nil
}

// Output logs msg with the source location depth frames above the caller.
func Output(depth int, lev slog.Level, msg string, args ...any) {
	l := Default()
	ctx := context.Background()
	if !l.Enabled(ctx, lev) {
		return
	}

	var pcs [1]uintptr
	runtime.Callers(depth+2, pcs[:])
	r := slog.NewRecord(time.Now(), lev, msg, pcs[0])
	r.Add(args...)
	_ = l.Handler().Handle(ctx, r)
}
