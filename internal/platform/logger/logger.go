// Package logger provides leveled logging for the farm server.
// Everything the simulation decides should be traceable through this.
package logger

import (
	"log"
	"os"
)

// Logger provides leveled logging with a shared prefix scheme.
type Logger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

// NewLogger creates a new logger instance.
func NewLogger() *Logger {
	return &Logger{
		infoLogger:  log.New(os.Stdout, "[FARM-INFO] ", log.Ldate|log.Ltime|log.Lshortfile),
		warnLogger:  log.New(os.Stdout, "[FARM-WARN] ", log.Ldate|log.Ltime|log.Lshortfile),
		errorLogger: log.New(os.Stderr, "[FARM-ERROR] ", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

// Info logs informational messages.
func (l *Logger) Info(msg string) {
	l.infoLogger.Println(msg)
}

// Warn logs warning messages.
func (l *Logger) Warn(msg string) {
	l.warnLogger.Println(msg)
}

// Error logs error messages.
func (l *Logger) Error(msg string) {
	l.errorLogger.Println(msg)
}

// Event logs a simulation event with its farm for later auditing.
func (l *Logger) Event(eventType string, farmID string, details string) {
	l.infoLogger.Printf("[EVENT:%s] Farm:%s | %s", eventType, farmID, details)
}
