// Package logging provides leveled key=value logging for asynckit
// components. Dispatchers and event publishers log through it; the core
// lifecycle engine stays silent so canceled results are dropped without
// any observable signal.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// levelPriority maps levels to numeric priority for filtering.
var levelPriority = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// Logger provides structured logging to an io.Writer.
type Logger struct {
	mu        sync.Mutex
	output    io.Writer
	minLevel  Level
	component string
}

// New creates a new Logger writing to stdout at Info level.
func New() *Logger {
	return &Logger{
		output:   os.Stdout,
		minLevel: LevelInfo,
	}
}

// WithComponent returns a new logger with the given component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		output:    l.output,
		minLevel:  l.minLevel,
		component: component,
	}
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.minLevel = level
}

// SetOutput sets the output writer (default: stdout).
func (l *Logger) SetOutput(w io.Writer) {
	l.output = w
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	l.log(LevelDebug, msg, fields...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	l.log(LevelInfo, msg, fields...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	l.log(LevelWarn, msg, fields...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	l.log(LevelError, msg, fields...)
}

// formatFields formats a map of fields as key=value pairs.
func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	var parts []string
	for k, v := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return " " + strings.Join(parts, " ")
}

// log writes a log entry: LEVEL TIMESTAMP [component] message key=value ...
func (l *Logger) log(level Level, msg string, fields ...map[string]interface{}) {
	if levelPriority[level] < levelPriority[l.minLevel] {
		return
	}

	timestamp := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")

	var fieldStr string
	if len(fields) > 0 && fields[0] != nil {
		fieldStr = formatFields(fields[0])
	}

	var line string
	if l.component != "" {
		line = fmt.Sprintf("%-5s %s [%s] %s%s\n", level, timestamp, l.component, msg, fieldStr)
	} else {
		line = fmt.Sprintf("%-5s %s %s%s\n", level, timestamp, msg, fieldStr)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.Write([]byte(line))
}

// TaskLaunched logs a task submission.
func (l *Logger) TaskLaunched(taskID string, delay time.Duration) {
	l.Debug("task_launched", map[string]interface{}{
		"task_id": taskID,
		"delay":   delay.String(),
	})
}

// TaskStarted logs a task's run entry.
func (l *Logger) TaskStarted(taskID string) {
	l.Debug("task_started", map[string]interface{}{
		"task_id": taskID,
	})
}

// TaskFinished logs the end of a task run with its terminal state.
func (l *Logger) TaskFinished(taskID, state string, duration time.Duration) {
	l.Debug("task_finished", map[string]interface{}{
		"task_id":  taskID,
		"state":    state,
		"duration": duration.String(),
	})
}

// DispatcherClosed logs dispatcher shutdown.
func (l *Logger) DispatcherClosed(pending int) {
	l.Info("dispatcher_closed", map[string]interface{}{
		"pending": pending,
	})
}
