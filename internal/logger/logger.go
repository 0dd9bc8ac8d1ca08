// Package logger provides leveled logging for the whole application.
package logger

import (
	"fmt"
	"log"
	"os"
)

var (
	debugEnabled = false

	debugLogger = log.New(os.Stdout, "[DEBUG] ", log.Ldate|log.Ltime)
	infoLogger  = log.New(os.Stdout, "[INFO] ", log.Ldate|log.Ltime)
	errorLogger = log.New(os.Stderr, "[ERROR] ", log.Ldate|log.Ltime)
)

// Init configures the debug level. Safe to call more than once.
func Init(debug bool) {
	debugEnabled = debug
	if debugEnabled {
		Debug("debug logging enabled")
	}
}

// Debug logs a debug message when debug mode is on.
func Debug(format string, v ...any) {
	if debugEnabled {
		debugLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

// Info logs an informational message.
func Info(format string, v ...any) {
	infoLogger.Output(2, fmt.Sprintf(format, v...))
}

// Error logs an error message to stderr.
func Error(format string, v ...any) {
	errorLogger.Output(2, fmt.Sprintf(format, v...))
}
