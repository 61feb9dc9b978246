// File: logger.go
// Title: Logger Implementation
// Description: Implements the structured logger used across cliscript.
//              Loggers are cheap to derive: WithField and friends return
//              clones so that each component can carry its own context
//              without affecting the parent.
// Author: msto63
// Version: v0.1.0
// Created: 2026-08-20
// Modified: 2026-08-25
//
// Change History:
// - 2026-08-20 v0.1.0: Initial implementation

package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	cerror "github.com/msto63/cliscript/core/error"
)

// Logger is a structured, leveled logger
type Logger struct {
	mu            sync.Mutex
	level         Level
	formatter     Formatter
	output        io.Writer
	name          string
	contextFields Fields
}

// Config holds logger configuration
type Config struct {
	Level  string
	Format string
	Output io.Writer
	Name   string
}

// New creates a new logger with default settings (info level, text
// format, stderr output)
func New() *Logger {
	return &Logger{
		level:         DefaultLevel(),
		formatter:     &TextFormatter{},
		output:        os.Stderr,
		contextFields: make(Fields),
	}
}

// NewWithConfig creates a new logger from a configuration
func NewWithConfig(cfg Config) (*Logger, error) {
	logger := New()

	if cfg.Level != "" {
		level, err := ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		logger.level = level
	}

	if cfg.Format != "" {
		format, err := ParseFormat(cfg.Format)
		if err != nil {
			return nil, err
		}
		logger.formatter = GetFormatter(format)
	}

	if cfg.Output != nil {
		logger.output = cfg.Output
	}
	logger.name = cfg.Name

	return logger, nil
}

// clone returns a copy of the logger with its own field map
func (l *Logger) clone() *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	fields := make(Fields, len(l.contextFields))
	for k, v := range l.contextFields {
		fields[k] = v
	}

	return &Logger{
		level:         l.level,
		formatter:     l.formatter,
		output:        l.output,
		name:          l.name,
		contextFields: fields,
	}
}

// WithLevel returns a logger with the given minimum level
func (l *Logger) WithLevel(level Level) *Logger {
	derived := l.clone()
	derived.level = level
	return derived
}

// WithFormat returns a logger with the given output format
func (l *Logger) WithFormat(format Format) *Logger {
	derived := l.clone()
	derived.formatter = GetFormatter(format)
	return derived
}

// WithOutput returns a logger writing to the given writer
func (l *Logger) WithOutput(output io.Writer) *Logger {
	derived := l.clone()
	derived.output = output
	return derived
}

// WithName returns a logger with the given name
func (l *Logger) WithName(name string) *Logger {
	derived := l.clone()
	derived.name = name
	return derived
}

// WithField returns a logger that includes the given field in every entry
func (l *Logger) WithField(key string, value interface{}) *Logger {
	derived := l.clone()
	derived.contextFields[key] = value
	return derived
}

// WithFields returns a logger that includes the given fields in every entry
func (l *Logger) WithFields(fields Fields) *Logger {
	derived := l.clone()
	for k, v := range fields {
		derived.contextFields[k] = v
	}
	return derived
}

// Level returns the logger's minimum level
func (l *Logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetLevel changes the logger's minimum level in place
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// log writes an entry if the level passes the logger's threshold
func (l *Logger) log(level Level, message string, fields Fields, err error) {
	if !level.ShouldLog(l.level) {
		return
	}

	entry := NewEntry(level, message)
	entry.Logger = l.name
	entry.Error = err

	l.mu.Lock()
	defer l.mu.Unlock()

	for k, v := range l.contextFields {
		entry.Fields[k] = v
	}
	for k, v := range fields {
		entry.Fields[k] = v
	}

	data, ferr := l.formatter.Format(entry)
	if ferr != nil {
		fmt.Fprintf(os.Stderr, "log: failed to format entry: %v\n", ferr)
		return
	}

	if _, werr := l.output.Write(data); werr != nil {
		fmt.Fprintf(os.Stderr, "log: failed to write entry: %v\n", werr)
	}
}

// Trace logs a message at trace level
func (l *Logger) Trace(message string, fields ...Fields) {
	l.log(LevelTrace, message, mergeFields(fields), nil)
}

// Debug logs a message at debug level
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(LevelDebug, message, mergeFields(fields), nil)
}

// Info logs a message at info level
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(LevelInfo, message, mergeFields(fields), nil)
}

// Warn logs a message at warn level
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(LevelWarn, message, mergeFields(fields), nil)
}

// Error logs a message at error level
func (l *Logger) Error(message string, fields ...Fields) {
	l.log(LevelError, message, mergeFields(fields), nil)
}

// Fatal logs a message at fatal level. It does not terminate the program;
// exit decisions belong to the caller.
func (l *Logger) Fatal(message string, fields ...Fields) {
	l.log(LevelFatal, message, mergeFields(fields), nil)
}

// WarnWithErr logs a message with an attached error at warn level
func (l *Logger) WarnWithErr(message string, err error, fields ...Fields) {
	l.log(LevelWarn, message, mergeFields(fields), err)
}

// ErrorWithErr logs a message with an attached error at error level
func (l *Logger) ErrorWithErr(message string, err error, fields ...Fields) {
	l.log(LevelError, message, mergeFields(fields), err)
}

// LogError logs a cliscript error at the level implied by its severity.
// Code, category and position details are included as fields.
func (l *Logger) LogError(err error, fields ...Fields) {
	if err == nil {
		return
	}

	merged := mergeFields(fields)
	if merged == nil {
		merged = make(Fields)
	}

	level := LevelError
	if cerr, ok := err.(*cerror.Error); ok {
		switch cerr.Severity() {
		case cerror.SeverityLow:
			level = LevelWarn
		case cerror.SeverityMedium, cerror.SeverityHigh:
			level = LevelError
		case cerror.SeverityCritical:
			level = LevelFatal
		}

		merged["code"] = cerr.Code().String()
		merged["category"] = cerr.Code().Category()
		if line, column, ok := cerr.Position(); ok {
			merged["line"] = line
			merged["column"] = column
		}
		if op := cerr.Operation(); op != "" {
			merged["operation"] = op
		}
	}

	l.log(level, err.Error(), merged, nil)
}

func mergeFields(fields []Fields) Fields {
	if len(fields) == 0 {
		return nil
	}
	if len(fields) == 1 {
		return fields[0]
	}
	merged := make(Fields)
	for _, fs := range fields {
		for k, v := range fs {
			merged[k] = v
		}
	}
	return merged
}

// Default logger management

var (
	defaultLogger *Logger
	defaultOnce   sync.Once
	defaultMu     sync.RWMutex
)

// Default returns the package-level default logger
func Default() *Logger {
	defaultOnce.Do(func() {
		defaultLogger = New()
	})
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the package-level default logger
func SetDefault(logger *Logger) {
	defaultOnce.Do(func() {})
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// Trace logs on the default logger
func Trace(message string, fields ...Fields) { Default().Trace(message, fields...) }

// Debug logs on the default logger
func Debug(message string, fields ...Fields) { Default().Debug(message, fields...) }

// Info logs on the default logger
func Info(message string, fields ...Fields) { Default().Info(message, fields...) }

// Warn logs on the default logger
func Warn(message string, fields ...Fields) { Default().Warn(message, fields...) }

// Error logs on the default logger
func Error(message string, fields ...Fields) { Default().Error(message, fields...) }
