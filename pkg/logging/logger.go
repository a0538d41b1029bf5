// Package logging provides structured, session-scoped file logging for
// meetbot components.
//
// Each meeting attempt gets one log file under ~/.meetbot/logs/, shared
// by every component participating in that session. When the log
// directory or file cannot be created the logger falls back to stderr
// so automation sessions never fail because of logging.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger writes structured log lines for one component within one
// meeting session. Loggers created via WithComponent share the
// underlying file.
//
// All log methods (Debugf, Infof, Warnf, Errorf) write unconditionally;
// there is no level filtering.
type Logger struct {
	sessionID string
	component string
	file      *os.File
	out       *log.Logger
	logPath   string

	mu        *sync.Mutex
	closeOnce *sync.Once
}

// New creates a logger for the given component, scoped to sessionID.
// An empty sessionID gets a random one. The logger writes to
// ~/.meetbot/logs/<session-id>-meetbot.log, or to stderr when that file
// cannot be opened.
func New(component, sessionID string) *Logger {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	dir, err := logDirectory()
	if err != nil {
		return fallback(component, sessionID, err)
	}

	logPath := filepath.Join(dir, fmt.Sprintf("%s-meetbot.log", sessionID))
	// Append mode: multiple components write to the same session file.
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fallback(component, sessionID, err)
	}

	return &Logger{
		sessionID: sessionID,
		component: component,
		file:      file,
		out:       log.New(file, "", 0), // timestamps are formatted by the logger itself
		logPath:   logPath,
		mu:        &sync.Mutex{},
		closeOnce: &sync.Once{},
	}
}

// Discard returns a logger that drops all output. Intended for tests
// and for callers that genuinely want silence.
func Discard() *Logger {
	return &Logger{
		sessionID: "discard",
		component: "discard",
		out:       log.New(io.Discard, "", 0),
		mu:        &sync.Mutex{},
		closeOnce: &sync.Once{},
	}
}

func logDirectory() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".meetbot", "logs")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create log directory: %w", err)
	}
	return dir, nil
}

func fallback(component, sessionID string, cause error) *Logger {
	out := log.New(os.Stderr, "", 0)
	l := &Logger{
		sessionID: sessionID,
		component: component,
		out:       out,
		mu:        &sync.Mutex{},
		closeOnce: &sync.Once{},
	}
	l.Warnf("file logging unavailable, using stderr: %v", cause)
	return l
}

// WithComponent returns a logger that shares this logger's session and
// output but tags lines with a different component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		sessionID: l.sessionID,
		component: component,
		file:      l.file,
		out:       l.out,
		logPath:   l.logPath,
		mu:        l.mu,
		closeOnce: l.closeOnce,
	}
}

func (l *Logger) write(level, format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	shortSession := l.sessionID
	if len(shortSession) > 8 {
		shortSession = shortSession[:8]
	}
	l.out.Printf("[%s] [%s] [%s] [%s] %s",
		time.Now().Format("2006-01-02 15:04:05.000"),
		l.component,
		shortSession,
		level,
		fmt.Sprintf(format, v...),
	)
}

// Debugf logs a debug-level message.
func (l *Logger) Debugf(format string, v ...any) { l.write("DEBUG", format, v...) }

// Infof logs an info-level message.
func (l *Logger) Infof(format string, v ...any) { l.write("INFO", format, v...) }

// Warnf logs a warning-level message.
func (l *Logger) Warnf(format string, v ...any) { l.write("WARN", format, v...) }

// Errorf logs an error-level message.
func (l *Logger) Errorf(format string, v ...any) { l.write("ERROR", format, v...) }

// SessionID returns the session this logger is scoped to.
func (l *Logger) SessionID() string { return l.sessionID }

// LogPath returns the path of the log file, or an empty string in
// stderr-fallback mode.
func (l *Logger) LogPath() string { return l.logPath }

// Close closes the underlying log file. Safe to call multiple times and
// across WithComponent copies.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}
