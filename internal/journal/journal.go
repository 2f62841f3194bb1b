// Package journal provides the append-only textual run log shared by every
// crawl component. Each entry is written as a timestamped "[LEVEL] message"
// line to a log file, mirrored to the structured logger, and fanned out to
// any registered live listeners (e.g. a console or UI).
package journal

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Level labels the severity of a journal line.
type Level string

// Supported journal levels.
const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

const timestampLayout = "2006-01-02 15:04:05"

// Journal is safe for concurrent use by all crawl workers.
type Journal struct {
	mu        sync.Mutex
	file      *os.File
	logger    *zap.Logger
	listeners []func(line string)
	runID     string
	now       func() time.Time
}

// New opens (or creates) the append-only log file at path and returns the
// journal for one run. An empty path disables the file; lines still reach
// the structured logger and listeners.
func New(path string, logger *zap.Logger) (*Journal, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	j := &Journal{
		logger: logger,
		runID:  uuid.NewString(),
		now:    time.Now,
	}
	if path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open journal %s: %w", path, err)
		}
		j.file = f
	}
	return j, nil
}

// RunID identifies this run; it is stamped on every mirrored log entry.
func (j *Journal) RunID() string {
	return j.runID
}

// AddListener registers a live callback invoked with every formatted line.
// Listeners must be registered before the crawl starts; they are called
// synchronously and should return quickly.
func (j *Journal) AddListener(fn func(line string)) {
	if fn == nil {
		return
	}
	j.mu.Lock()
	j.listeners = append(j.listeners, fn)
	j.mu.Unlock()
}

// Infof records an informational line.
func (j *Journal) Infof(format string, args ...any) {
	j.write(LevelInfo, fmt.Sprintf(format, args...))
}

// Warnf records a warning line.
func (j *Journal) Warnf(format string, args ...any) {
	j.write(LevelWarn, fmt.Sprintf(format, args...))
}

// Errorf records an error line.
func (j *Journal) Errorf(format string, args ...any) {
	j.write(LevelError, fmt.Sprintf(format, args...))
}

// Close flushes and closes the underlying log file.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.file == nil {
		return nil
	}
	err := j.file.Close()
	j.file = nil
	if err != nil {
		return fmt.Errorf("close journal: %w", err)
	}
	return nil
}

func (j *Journal) write(level Level, msg string) {
	line := fmt.Sprintf("%s [%s] %s", j.now().Format(timestampLayout), level, msg)

	j.mu.Lock()
	if j.file != nil {
		// A write failure must never take the crawl down; surface it on
		// the structured logger instead.
		if _, err := fmt.Fprintln(j.file, line); err != nil {
			j.logger.Warn("journal write failed", zap.Error(err))
		}
	}
	listeners := append(([]func(string))(nil), j.listeners...)
	j.mu.Unlock()

	j.mirror(level, msg)
	for _, fn := range listeners {
		fn(line)
	}
}

func (j *Journal) mirror(level Level, msg string) {
	fields := []zap.Field{zap.String("run_id", j.runID)}
	switch level {
	case LevelWarn:
		j.logger.Warn(msg, fields...)
	case LevelError:
		j.logger.Error(msg, fields...)
	default:
		j.logger.Info(msg, fields...)
	}
}
