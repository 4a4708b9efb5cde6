package debug

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	file   *os.File
	mu     sync.Mutex
	logger *slog.Logger
)

// DefaultPath is ~/.config/go-surface/debug.log
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "go-surface", "debug.log")
}

// Enable starts debug logging to path (DefaultPath when empty). The file is
// truncated.
func Enable(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if logger != nil {
		return nil
	}
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	file = f
	logger = newLogger(f)
	logger.Info("=== Debug logging started ===", "cat", "debug")
	return nil
}

// EnableWriter logs to w instead of a file. Tests use it to capture output.
func EnableWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	logger = newLogger(w)
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	logger = nil
}

func closeFile() {
	if file != nil {
		file.Close()
		file = nil
	}
}

// Enabled reports whether a sink is attached.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return logger != nil
}

// Log writes a message to the debug log
func Log(category, format string, args ...any) {
	write(slog.LevelDebug, category, format, args)
}

// Warn is Log at warning level, for dropped frames and misuse.
func Warn(category, format string, args ...any) {
	write(slog.LevelWarn, category, format, args)
}

func write(level slog.Level, category, format string, args []any) {
	mu.Lock()
	defer mu.Unlock()

	if logger == nil {
		return
	}
	logger.Log(context.Background(), level, fmt.Sprintf(format, args...), "cat", category)
	if file != nil {
		file.Sync() // flush immediately so we see logs even on crash
	}
}

// LogEvery logs only every N calls (use for high-frequency events)
var counters = make(map[string]int)

func LogEvery(n int, category, format string, args ...any) {
	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}
