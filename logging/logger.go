package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level orders log severities
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

// String returns the level tag printed in each line
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config string to a level, defaulting to INFO
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// Logger writes levelled lines to the console and an optional file
type Logger struct {
	mu      sync.Mutex
	level   Level
	console *log.Logger
	file    *log.Logger
	closer  io.Closer
}

var global = &Logger{
	level:   INFO,
	console: log.New(os.Stdout, "", log.LstdFlags),
}

// Init sets the level and opens path as an additional sink when non-empty
func Init(level Level, path string) error {
	global.mu.Lock()
	defer global.mu.Unlock()

	global.level = level
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	global.file = log.New(f, "", log.LstdFlags|log.Lmicroseconds)
	global.closer = f
	return nil
}

// SetOutput redirects the console sink
func SetOutput(w io.Writer) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.console = log.New(w, "", log.LstdFlags)
}

// Close releases the file sink
func Close() {
	global.mu.Lock()
	defer global.mu.Unlock()
	if global.closer != nil {
		global.closer.Close()
		global.closer = nil
		global.file = nil
	}
}

func Debug(format string, args ...interface{}) { global.logf(DEBUG, format, args...) }
func Info(format string, args ...interface{})  { global.logf(INFO, format, args...) }
func Warn(format string, args ...interface{})  { global.logf(WARN, format, args...) }
func Error(format string, args ...interface{}) { global.logf(ERROR, format, args...) }

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf("[%s] %s", level, fmt.Sprintf(format, args...))
	// The file keeps everything, the console only what passes the level
	if l.file != nil {
		l.file.Println(msg)
	}
	if level >= l.level {
		l.console.Println(msg)
	}
}
