package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[37m"
)

type ConsoleLogger struct {
	defaultFields out.LogFields
	module        string
	location      *time.Location
	minLevel      out.LogLevel
	writer        io.Writer
	mu            *sync.Mutex
}

func NewConsoleLogger(timezone string, minLevel out.LogLevel) (*ConsoleLogger, error) {
	return NewConsoleLoggerWithWriter(timezone, minLevel, os.Stdout)
}

func NewConsoleLoggerWithWriter(timezone string, minLevel out.LogLevel, w io.Writer) (*ConsoleLogger, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	return &ConsoleLogger{
		defaultFields: make(out.LogFields),
		module:        "unknown",
		location:      loc,
		minLevel:      minLevel,
		writer:        w,
		mu:            &sync.Mutex{},
	}, nil
}

// NewDiscardLogger drops every record. Used by tests.
func NewDiscardLogger() *ConsoleLogger {
	l, _ := NewConsoleLoggerWithWriter("UTC", out.LogLevelError, io.Discard)
	return l
}

func (l *ConsoleLogger) clone() *ConsoleLogger {
	next := *l
	next.defaultFields = make(out.LogFields, len(l.defaultFields))
	for k, v := range l.defaultFields {
		next.defaultFields[k] = v
	}
	return &next
}

func (l *ConsoleLogger) WithFields(fields out.LogFields) out.LoggerPort {
	next := l.clone()
	for k, v := range fields {
		next.defaultFields[k] = v
	}
	return next
}

func (l *ConsoleLogger) WithModule(module string) out.LoggerPort {
	next := l.clone()
	next.module = module
	return next
}

func (l *ConsoleLogger) Debug(event string, fields out.LogFields) {
	l.log(out.LogLevelDebug, event, fields)
}

func (l *ConsoleLogger) Info(event string, fields out.LogFields) {
	l.log(out.LogLevelInfo, event, fields)
}

func (l *ConsoleLogger) Warn(event string, fields out.LogFields) {
	l.log(out.LogLevelWarn, event, fields)
}

func (l *ConsoleLogger) Error(event string, fields out.LogFields) {
	l.log(out.LogLevelError, event, fields)
}

func (l *ConsoleLogger) log(level out.LogLevel, event string, fields out.LogFields) {
	if !level.Enabled(l.minLevel) {
		return
	}

	merged := make(out.LogFields, len(l.defaultFields)+len(fields)+1)
	for k, v := range l.defaultFields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	merged["event"] = event

	timestamp := time.Now().In(l.location).Format("2006-01-02 15:04:05.000")

	levelColor := colorGray
	switch level {
	case out.LogLevelInfo:
		levelColor = colorGreen
	case out.LogLevelWarn:
		levelColor = colorYellow
	case out.LogLevelError:
		levelColor = colorRed
	}

	fieldsBytes, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		fieldsBytes = []byte(fmt.Sprintf("%v", merged))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.writer, "%s[%s]%s %s[%s]%s %s[%s]%s\n%s\n",
		colorGray, timestamp, colorReset,
		levelColor, level, colorReset,
		colorCyan, l.module, colorReset,
		string(fieldsBytes),
	)
}
