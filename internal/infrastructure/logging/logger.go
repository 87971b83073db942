package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	applogging "github.com/andrescamacho/annocalc-go/internal/application/logging"
	"github.com/andrescamacho/annocalc-go/internal/domain/shared"
	"github.com/andrescamacho/annocalc-go/internal/infrastructure/config"
)

var levelRank = map[string]int{
	applogging.LevelDebug: 0,
	applogging.LevelInfo:  1,
	applogging.LevelWarn:  2,
	applogging.LevelError: 3,
}

// StandardLogger writes log entries as text lines or JSON objects.
// It implements application/logging.Logger and is safe for concurrent use.
type StandardLogger struct {
	mu       sync.Mutex
	out      io.Writer
	closer   io.Closer
	json     bool
	minLevel int
	clock    shared.Clock
}

// NewStandardLogger creates a logger writing to out
func NewStandardLogger(out io.Writer, level, format string, clock shared.Clock) *StandardLogger {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	rank, ok := levelRank[strings.ToUpper(level)]
	if !ok {
		rank = levelRank[applogging.LevelInfo]
	}
	return &StandardLogger{
		out:      out,
		json:     strings.EqualFold(format, "json"),
		minLevel: rank,
		clock:    clock,
	}
}

// NewLoggerFromConfig builds a logger from the logging configuration.
// Close must be called when output is "file".
func NewLoggerFromConfig(cfg *config.LoggingConfig, clock shared.Clock) (*StandardLogger, error) {
	var out io.Writer
	var closer io.Closer

	switch cfg.Output {
	case "stdout":
		out = os.Stdout
	case "", "stderr":
		out = os.Stderr
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closer = f
	default:
		return nil, fmt.Errorf("unsupported log output: %s", cfg.Output)
	}

	logger := NewStandardLogger(out, cfg.Level, cfg.Format, clock)
	logger.closer = closer
	return logger, nil
}

// Log writes an entry if level is at or above the configured minimum
func (l *StandardLogger) Log(level, message string, metadata map[string]interface{}) {
	level = strings.ToUpper(level)
	rank, ok := levelRank[level]
	if ok && rank < l.minLevel {
		return
	}

	timestamp := l.clock.Now().UTC()

	var line string
	if l.json {
		line = l.formatJSON(timestamp, level, message, metadata)
	} else {
		line = l.formatText(timestamp, level, message, metadata)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, line)
}

// Close releases the log file, if any
func (l *StandardLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func (l *StandardLogger) formatText(ts time.Time, level, message string, metadata map[string]interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", ts.Format(time.RFC3339), level, message)

	keys := make([]string, 0, len(metadata))
	for key := range metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&b, " %s=%v", key, metadata[key])
	}
	return b.String()
}

func (l *StandardLogger) formatJSON(ts time.Time, level, message string, metadata map[string]interface{}) string {
	entry := make(map[string]interface{}, len(metadata)+3)
	for key, value := range metadata {
		entry[key] = value
	}
	entry["time"] = ts.Format(time.RFC3339)
	entry["level"] = level
	entry["message"] = message

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Sprintf(`{"time":%q,"level":%q,"message":%q,"error":"unencodable metadata"}`,
			ts.Format(time.RFC3339), level, message)
	}
	return string(data)
}
