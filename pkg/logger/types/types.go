package types

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a named sugared logger
type Logger struct {
	*zap.SugaredLogger
	LogsPath string
	Name     string
}

// Log is a single log entry passed to hooks
type Log struct {
	Timestamp  time.Time
	Caller     string
	LoggerName string
	Level      zapcore.Level
	Message    string
}

// Text formats the entry as a short plain-text message
func (l Log) Text() string {
	return fmt.Sprintf("[%s] %s %s\n%s\n%s",
		l.Level.CapitalString(), l.Timestamp.Format("2006-01-02 15:04:05"), l.LoggerName, l.Caller, l.Message)
}

// LogHook is called for each log entry
type LogHook func(log Log)
