package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// DefaultLogPath is where the logger writes unless Configure is called first
const DefaultLogPath = "/tmp/reqninja.out"

// Logger writes leveled lines to a file so the alternate-screen TUI stays clean
type Logger struct {
	infoLogger    *log.Logger
	warningLogger *log.Logger
	debugLogger   *log.Logger
	errorLogger   *log.Logger
	closer        io.Closer
	mu            sync.Mutex
}

var (
	defaultLogger *Logger
	defaultMu     sync.Mutex
)

// GetLogger returns the process-wide logger, opening DefaultLogPath on first use
func GetLogger() *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultLogger == nil {
		defaultLogger = openOrStderr(DefaultLogPath)
	}
	return defaultLogger
}

// Configure replaces the process-wide logger with one writing to logPath
func Configure(logPath string) error {
	logger, err := NewLogger(logPath)
	if err != nil {
		return err
	}
	SetDefault(logger)
	return nil
}

// SetDefault swaps the process-wide logger and closes the previous one
func SetDefault(logger *Logger) {
	defaultMu.Lock()
	previous := defaultLogger
	defaultLogger = logger
	defaultMu.Unlock()

	if previous != nil && previous != logger {
		previous.Close()
	}
}

func openOrStderr(logPath string) *Logger {
	logger, err := NewLogger(logPath)
	if err != nil {
		log.Printf("Failed to create log file, falling back to stderr: %v", err)
		return NewWriterLogger(os.Stderr)
	}
	return logger
}

// NewLogger creates a new logger that appends to the specified file
func NewLogger(logPath string) (*Logger, error) {
	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := NewWriterLogger(file)
	logger.closer = file
	return logger, nil
}

// NewWriterLogger creates a logger on top of an arbitrary writer
func NewWriterLogger(w io.Writer) *Logger {
	flags := log.LstdFlags | log.Lshortfile
	return &Logger{
		infoLogger:    log.New(w, "[INFO] ", flags),
		warningLogger: log.New(w, "[WARN] ", flags),
		debugLogger:   log.New(w, "[DEBUG] ", flags),
		errorLogger:   log.New(w, "[ERROR] ", flags),
	}
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infoLogger.Output(2, fmt.Sprintf(format, args...))
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warningLogger.Output(2, fmt.Sprintf(format, args...))
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debugLogger.Output(2, fmt.Sprintf(format, args...))
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errorLogger.Output(2, fmt.Sprintf(format, args...))
}

// Close closes the log file (if any)
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer != nil {
		err := l.closer.Close()
		l.closer = nil
		return err
	}
	return nil
}

// Convenience functions for the default logger

func Info(format string, args ...interface{}) {
	GetLogger().Info(format, args...)
}

func Warning(format string, args ...interface{}) {
	GetLogger().Warning(format, args...)
}

func Debug(format string, args ...interface{}) {
	GetLogger().Debug(format, args...)
}

func Error(format string, args ...interface{}) {
	GetLogger().Error(format, args...)
}
