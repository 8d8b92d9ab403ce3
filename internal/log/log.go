package log

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
)

type Level string

const (
	LevelTrace Level = "TRACE"
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var (
	mu         sync.RWMutex
	logger     hclog.Logger
	loggerOnce sync.Once
)

// initLogger builds the global logger writing to stderr. The initial level
// comes from INKVIEW_LOG_LEVEL (default info); INKVIEW_JSON_LOG=1 switches
// to JSON lines.
func initLogger() {
	loggerOnce.Do(func() {
		level := os.Getenv("INKVIEW_LOG_LEVEL")
		if level == "" {
			level = "info"
		}
		logger = newLogger(os.Stderr, hclog.LevelFromString(level))
	})
}

func newLogger(w io.Writer, level hclog.Level) hclog.Logger {
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "inkview",
		Level:      level,
		Output:     w,
		JSONFormat: os.Getenv("INKVIEW_JSON_LOG") == "1",
		TimeFormat: time.RFC3339Nano,
	})
}

func current() hclog.Logger {
	initLogger()
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func SetLevel(l Level) {
	current().SetLevel(hclog.LevelFromString(strings.ToLower(string(l))))
}

// SetOutput redirects all subsequent log lines to w, keeping the level.
func SetOutput(w io.Writer) {
	initLogger()
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w, logger.GetLevel())
}

// Named returns a sub-logger for a component, e.g. Named("sim").
func Named(name string) hclog.Logger {
	return current().Named(name)
}

func Debug(msg string, kv ...any) {
	current().Debug(msg, kv...)
}

func Info(msg string, kv ...any) {
	current().Info(msg, kv...)
}

func Warn(msg string, kv ...any) {
	current().Warn(msg, kv...)
}

func Error(msg string, err error, kv ...any) {
	// Prepend error into key-value list.
	extended := append([]any{"err", err}, kv...)
	current().Error(msg, extended...)
}

// Enabled reports whether messages at level l are currently emitted.
func Enabled(l Level) bool {
	lv := hclog.LevelFromString(strings.ToLower(string(l)))
	return lv != hclog.NoLevel && lv >= current().GetLevel()
}
