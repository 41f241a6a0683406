package common

import (
	"io"
	"log"
	"os"
)

// Logger holds several logger instances with different prefixes
type Logger struct {
	Warn *log.Logger
	Info *log.Logger
	Err  *log.Logger
}

// GetNewLogger creates an instance of all needed loggers
func GetNewLogger() *Logger {
	return NewLogger(os.Stderr)
}

// NewLogger creates the prefixed loggers on top of the given writer
func NewLogger(w io.Writer) *Logger {
	return &Logger{
		Warn: log.New(w, "[ Warn ] ", log.LstdFlags|log.Lshortfile),
		Info: log.New(w, "[ Info ] ", log.LstdFlags|log.Lshortfile),
		Err:  log.New(w, "[ Error ] ", log.LstdFlags|log.Lshortfile),
	}
}

// NewDiscardLogger returns logger which drops everything
func NewDiscardLogger() *Logger {
	return NewLogger(io.Discard)
}
