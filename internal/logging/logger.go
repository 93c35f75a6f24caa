package logging

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

type Fields map[string]interface{}

// Level filtering; everything at or above the configured level is
// emitted. Defaults to info.
const (
	LevelDebug = iota
	LevelInfo
	LevelError
)

var minLevel = LevelInfo

// SetLevel adjusts the minimum emitted level ("debug", "info", "error").
func SetLevel(name string) {
	switch name {
	case "debug":
		minLevel = LevelDebug
	case "error":
		minLevel = LevelError
	default:
		minLevel = LevelInfo
	}
}

func output(level int, name, msg string, fields Fields) {
	if level < minLevel {
		return
	}
	if fields == nil {
		fields = Fields{}
	}
	fields["level"] = name
	fields["ts"] = time.Now().UTC().Format(time.RFC3339)
	fields["msg"] = msg
	b, err := json.Marshal(fields)
	if err != nil {
		// fallback to plain logging
		log.Printf("%s: %s (%v)\n", name, msg, fields)
		return
	}
	log.Println(string(b))
}

// Debug logs a debug message with optional fields.
func Debug(msg string, fields Fields) {
	output(LevelDebug, "debug", msg, fields)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	output(LevelInfo, "info", msg, fields)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	output(LevelError, "error", msg, fields)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	output(LevelError, "fatal", msg, fields)
	os.Exit(1)
}
